// Package ui implements an interactive filesystem inspector as a command-line
// user interface using [tea]. All filesystem access flows through the portable
// handlers, so the inspector behaves identically on every supported platform.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HecaiYuan/crossfs/internal/queue"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

type fsProvider interface {
	Enumerate(ctx context.Context, path string, fn schema.EnumerateCallback) error
	GetPathInfo(path string) (schema.PathInfo, error)
	Glob(ctx context.Context, root string, pattern string) ([]string, error)
}

type operationRunner interface {
	Drain(ctx context.Context, q *queue.OperationQueue) error
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	opQueue *queue.OperationQueue
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler].
func NewHandler(ctx context.Context, cancel context.CancelFunc, fsOps fsProvider, runner operationRunner,
	opQueue *queue.OperationQueue, startPath string, showHidden bool,
) *Handler {
	handler := &Handler{
		opQueue: opQueue,
	}

	model := NewTeaModel(ctx, cancel, handler, fsOps, runner, opQueue, startPath, showHidden)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]).
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
