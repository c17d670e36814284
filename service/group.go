package service

import (
	"context"
	"sync"
)

type GroupTask func(ctx context.Context) error

// RunGroup runs the tasks with a common context. The channel returns the
// result of every task and is closed after the last one. cancel stops
// the context of all tasks.
func RunGroup(parent context.Context, tasks ...GroupTask) (_ <-chan error, cancel func()) {

	var (
		wg    sync.WaitGroup
		ctx   context.Context
		chErr = make(chan error)
	)

	ctx, cancel = context.WithCancel(parent)

	for _, task := range tasks {
		wg.Add(1)
		go func(fn GroupTask) {
			defer wg.Done()
			chErr <- fn(ctx)
		}(task)
	}

	go func() {
		wg.Wait()
		close(chErr)
	}()

	return chErr, cancel
}
