package blockingop

import (
	"context"
	"os"
	"sync"
	"time"
)

func sleepWithContext(ctx context.Context) {
	time.Sleep(time.Second) // want `blocking call in a function that accepts a context \(use a cancellable alternative that honors the context\)`
}

func sleepInClosure(ctx context.Context) {
	retry := func() {
		time.Sleep(time.Second) // want `blocking call in a function that accepts a context \(use a cancellable alternative that honors the context\)`
	}
	retry()
}

func waitGroup(ctx context.Context, wg *sync.WaitGroup) {
	wg.Wait() // want `blocking call in a function that accepts a context \(use a cancellable alternative that honors the context\)`
}

func fileRead(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(name) // want `blocking call in a function that accepts a context \(use a cancellable alternative that honors the context\)`
}

// No context parameter, so blocking is fine.
func sleepWithoutContext() {
	time.Sleep(time.Second)
}

func timerSelect(ctx context.Context) {
	t := time.NewTimer(time.Second)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
