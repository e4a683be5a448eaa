// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// SafeGo launches a goroutine with panic recovery. If the goroutine panics,
// the panic is caught and logged with stack trace instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverAndLog(log, name)
		fn()
	}()
}

// RunEvery calls fn immediately and then on every tick until ctx is done.
// A panic inside one invocation is logged and does not stop the loop.
func RunEvery(ctx context.Context, log logger.Interface, name string, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce := func() {
		defer recoverAndLog(log, name)
		fn(ctx)
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			log.Infow("periodic task stopped", "task", name)
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func recoverAndLog(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
