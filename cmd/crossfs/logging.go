package main

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// SlogManager is a [slog.Handler] fanning records out to a mutable set of
// named handlers, so log destinations can be swapped while the program runs.
type SlogManager struct {
	sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

func NewSlogManager() *SlogManager {
	return &SlogManager{
		handlers: make(map[string]slog.Handler),
	}
}

func (m *SlogManager) Enabled(ctx context.Context, level slog.Level) bool {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (m *SlogManager) Handle(ctx context.Context, r slog.Record) error {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		_ = h.Handle(ctx, r)
	}

	return nil
}

func (m *SlogManager) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	newM := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append(slices.Clone(m.attrs), attrs...),
		groups:   slices.Clone(m.groups),
	}

	for name, h := range m.handlers {
		newM.handlers[name] = h.WithAttrs(attrs)
	}

	return newM
}

func (m *SlogManager) WithGroup(name string) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	newM := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    slices.Clone(m.attrs),
		groups:   append(slices.Clone(m.groups), name),
	}

	for handlerName, h := range m.handlers {
		newM.handlers[handlerName] = h.WithGroup(name)
	}

	return newM
}

func (m *SlogManager) GetHandler(name string) (slog.Handler, bool) {
	m.RLock()
	defer m.RUnlock()

	h, ok := m.handlers[name]

	return h, ok
}

// AddHandler installs or replaces the handler under the given name. Attrs
// and groups accumulated on the manager are replayed onto the newcomer, so
// it observes the same state as handlers present from the start.
func (m *SlogManager) AddHandler(name string, handler slog.Handler) {
	m.Lock()
	defer m.Unlock()

	h := handler
	if len(m.attrs) > 0 {
		h = h.WithAttrs(slices.Clone(m.attrs))
	}

	for _, group := range m.groups {
		h = h.WithGroup(group)
	}

	m.handlers[name] = h
}

func (m *SlogManager) RemoveHandler(name string) {
	m.Lock()
	defer m.Unlock()

	delete(m.handlers, name)
}
