// Package processors bridges queued filesystem operations to the portable
// io layer. An [Executor] maps each [queue.Operation] onto the matching
// handler call and reports the per-item queue decision, so queue draining
// stays decoupled from the operations themselves.
package processors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HecaiYuan/crossfs/internal/queue"
)

type ioProvider interface {
	BytesCopied() uint64
	CopyFile(ctx context.Context, src string, dst string) error
	MakeDirectoryTree(path string) error
	PruneEmptyDirectories(ctx context.Context, path string) (int, error)
	RemovePath(path string) error
	RemoveTree(ctx context.Context, path string) error
	RenamePath(oldpath string, newpath string) error
}

// Executor runs queued filesystem operations against the io layer.
type Executor struct {
	IOOps ioProvider
}

// NewExecutor returns an [Executor] for the principal program.
func NewExecutor(ioOps ioProvider) *Executor {
	return &Executor{
		IOOps: ioOps,
	}
}

// Execute runs a single [queue.Operation] and returns the queue decision for
// it. A failed operation has the failure recorded on it and is decided as
// skipped, never as fatal, so one bad item cannot sink a whole batch.
func (e *Executor) Execute(ctx context.Context, op *queue.Operation) int {
	var err error

	switch op.Kind {
	case queue.KindCopy:
		err = e.IOOps.CopyFile(ctx, op.Source, op.Target)

	case queue.KindRename:
		err = e.IOOps.RenamePath(op.Source, op.Target)

	case queue.KindRemove:
		err = e.IOOps.RemovePath(op.Source)

	case queue.KindRemoveTree:
		err = e.IOOps.RemoveTree(ctx, op.Source)

	case queue.KindMakeDirectoryTree:
		err = e.IOOps.MakeDirectoryTree(op.Source)

	case queue.KindPrune:
		var pruned int

		pruned, err = e.IOOps.PruneEmptyDirectories(ctx, op.Source)
		if err == nil {
			slog.Info("Pruned empty directories:",
				"path", op.Source,
				"count", pruned,
			)
		}

	default:
		err = fmt.Errorf("(proc-execute) %w: %v", ErrUnknownOperation, op.Kind)
	}

	if err != nil {
		op.Err = err

		slog.Warn("Skipped operation: failure during processing",
			"op", op.Kind.String(),
			"source", op.Source,
			"target", op.Target,
			"err", err,
		)

		return queue.DecisionSkipped
	}

	slog.Info("Processed:",
		"op", op.Kind.String(),
		"source", op.Source,
		"target", op.Target,
	)

	return queue.DecisionSuccess
}

// Drain sequentially processes a queue until no items remain, crediting any
// bytes copied back to the queue for transfer speed reporting.
func (e *Executor) Drain(ctx context.Context, q *queue.OperationQueue) error {
	if err := q.DequeueAndProcess(ctx, func(op *queue.Operation) int {
		before := e.IOOps.BytesCopied()
		decision := e.Execute(ctx, op)

		if copied := e.IOOps.BytesCopied() - before; copied > 0 {
			q.AddBytesTransferred(copied)
		}

		return decision
	}); err != nil {
		return fmt.Errorf("(proc-drain) %w", err)
	}

	return nil
}

// DrainConc processes a queue with maxWorkers concurrent workers until no
// items remain. Operations on overlapping paths should not share a queue that
// is drained concurrently, as their relative order is not defined.
//
// The copied byte total is measured over the whole drain and credited once at
// the end, as per-item deltas of the shared counter would overlap between
// workers.
func (e *Executor) DrainConc(ctx context.Context, q *queue.OperationQueue, maxWorkers int) error {
	before := e.IOOps.BytesCopied()

	err := q.DequeueAndProcessConc(ctx, maxWorkers, func(op *queue.Operation) int {
		return e.Execute(ctx, op)
	})

	if copied := e.IOOps.BytesCopied() - before; copied > 0 {
		q.AddBytesTransferred(copied)
	}

	if err != nil {
		return fmt.Errorf("(proc-drainconc) %w", err)
	}

	return nil
}
