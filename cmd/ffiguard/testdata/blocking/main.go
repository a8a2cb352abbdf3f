package main

import (
	"context"
	"time"
)

func main() {
	wait(context.Background())
}

func wait(ctx context.Context) {
	time.Sleep(time.Millisecond)
}
