package main

import (
	"context"
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/processors"
	"github.com/HecaiYuan/crossfs/internal/queue"
)

// queueRunner drains operation queues through the executor, with the
// configured worker count deciding between sequential and concurrent
// processing.
type queueRunner struct {
	executor *processors.Executor
	workers  int
}

func newQueueRunner(executor *processors.Executor, workers int) *queueRunner {
	return &queueRunner{
		executor: executor,
		workers:  workers,
	}
}

func (r *queueRunner) Drain(ctx context.Context, q *queue.OperationQueue) error {
	if r.workers > 1 {
		if err := r.executor.DrainConc(ctx, q, r.workers); err != nil {
			return fmt.Errorf("(app-drain) %w", err)
		}

		return nil
	}

	if err := r.executor.Drain(ctx, q); err != nil {
		return fmt.Errorf("(app-drain) %w", err)
	}

	return nil
}
