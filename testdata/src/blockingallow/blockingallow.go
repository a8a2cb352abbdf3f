package blockingallow

import (
	"context"
	"os"
	"time"
)

// With -allow-io-blocking the I/O set stays out of the denylist.
func fileRead(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

func sleepStillFlagged(ctx context.Context) {
	time.Sleep(time.Second) // want `blocking call in a function that accepts a context \(use a cancellable alternative that honors the context\)`
}
