// Package lasterr provides a process-wide record of the most recent
// filesystem failure. Backends record every native failure here before
// returning it, so diagnostics can surface the last underlying cause even
// after the error itself was wrapped or discarded by upper layers.
package lasterr

import "sync"

// Sink is a structure recording the most recent failure passed to it.
// The zero value is ready for use.
//
// Sinks are safe for concurrent use.
type Sink struct {
	mu  sync.RWMutex
	err error
}

var defaultSink = &Sink{}

// Default returns the process-wide [Sink] shared by all backends.
func Default() *Sink {
	return defaultSink
}

// Record stores err as the most recent failure and returns it unchanged, so
// call sites can record and propagate in one statement. A nil err is returned
// as-is without clearing the previous record.
func (s *Sink) Record(err error) error {
	if err == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err

	return err
}

// Err returns the most recent recorded failure, or nil when none was
// recorded since the last [Sink.Clear].
func (s *Sink) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

// Message returns the message of the most recent recorded failure, or an
// empty string when none was recorded since the last [Sink.Clear].
func (s *Sink) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err == nil {
		return ""
	}

	return s.err.Error()
}

// Clear discards the recorded failure.
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = nil
}
