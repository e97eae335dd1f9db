// Package paint batches interactive tile strokes into single undo
// units. A session captures the room state when a stroke begins,
// records each cell edit as it is applied live, and on completion
// emits one history entry covering the whole stroke.
package paint

import (
	"sync"

	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/document"
)

// Session accumulates tile edits between Begin and End.
type Session struct {
	mu       sync.Mutex
	active   bool
	label    string
	baseline *document.Room
	entries  []command.TileEntry
}

func NewSession() *Session {
	return &Session{}
}

// Begin starts a stroke against the given room state. An active
// session is implicitly ended first; its batch, if any, is returned so
// the caller can commit it to history.
func (s *Session) Begin(label string, r *document.Room) *command.AppliedBatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *command.AppliedBatch
	if s.active {
		prev = s.endLocked()
	}

	s.active = true
	s.label = label
	s.baseline = r.Clone()
	s.entries = nil
	return prev
}

// Active reports whether a stroke is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Record buffers one cell edit that has already been applied to the
// live room. Ignored when no stroke is active.
func (s *Session) Record(e command.TileEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.entries = append(s.entries, e)
}

// End finishes the stroke and returns a single batch covering every
// recorded edit, or nil when nothing was recorded.
func (s *Session) End() *command.AppliedBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil
	}
	return s.endLocked()
}

func (s *Session) endLocked() *command.AppliedBatch {
	s.active = false
	baseline := s.baseline
	entries := s.entries
	s.baseline = nil
	s.entries = nil

	if len(entries) == 0 {
		return nil
	}
	return command.NewAppliedBatch(s.label, baseline, entries)
}

// Cancel aborts the stroke and returns the captured baseline so the
// caller can restore the room, or nil when no stroke is active.
func (s *Session) Cancel() *document.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil
	}
	s.active = false
	baseline := s.baseline
	s.baseline = nil
	s.entries = nil
	return baseline
}
