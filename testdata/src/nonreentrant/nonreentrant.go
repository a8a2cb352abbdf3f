package nonreentrant

import (
	"time"

	"golang.org/x/sys/unix"
)

func brokenClock(t *int64) {
	unix.Localtime(t) // want `use of non-reentrant function \(consider using its reentrant counterpart\)`
}

func tokenize(s, delim *byte) *byte {
	return unix.Strtok(s, delim) // want `use of non-reentrant function \(consider using its reentrant counterpart\)`
}

func safeClock() time.Time {
	return time.Now()
}
