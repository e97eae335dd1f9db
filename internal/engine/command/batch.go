package command

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// TileEntry is one cell change inside a batch. A nil Index erases the
// cell; a non-nil Index upserts it.
type TileEntry struct {
	Layer string
	X, Y  int
	Index *int
}

// BatchTiles applies a sequence of tile upserts and erasures as one
// history entry. Entries that reference missing layers or out-of-bounds
// cells are skipped; if nothing applies the whole batch is a no-op.
type BatchTiles struct {
	Entries []TileEntry
	Label   string

	applied []appliedEntry
}

// appliedEntry pairs an entry with the cell's prior occupant.
type appliedEntry struct {
	entry TileEntry
	prev  *int
}

func NewBatchTiles(label string, entries []TileEntry) *BatchTiles {
	return &BatchTiles{Entries: entries, Label: label}
}

func (c *BatchTiles) Apply(r *document.Room) (*document.Room, error) {
	next := r.Clone()
	c.applied = c.applied[:0]
	for _, e := range c.Entries {
		l := next.Layer(e.Layer)
		if l == nil || l.Type != document.LayerTile || !next.InBounds(e.X, e.Y) {
			continue
		}
		var prev *int
		if t := l.TileAt(e.X, e.Y); t != nil {
			v := t.Index
			prev = &v
		}
		if e.Index == nil {
			if prev == nil {
				continue
			}
			l.RemoveTile(e.X, e.Y)
		} else {
			if *e.Index < 0 || (prev != nil && *prev == *e.Index) {
				continue
			}
			l.SetTile(e.X, e.Y, *e.Index)
		}
		c.applied = append(c.applied, appliedEntry{entry: e, prev: prev})
	}
	if len(c.applied) == 0 {
		return nil, ErrNoop
	}
	return next, nil
}

// Revert undoes the applied entries in reverse order so overlapping
// writes to the same cell unwind correctly.
func (c *BatchTiles) Revert(r *document.Room) (*document.Room, error) {
	if len(c.applied) == 0 {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	for i := len(c.applied) - 1; i >= 0; i-- {
		a := c.applied[i]
		l := next.Layer(a.entry.Layer)
		if l == nil {
			continue
		}
		if a.prev == nil {
			l.RemoveTile(a.entry.X, a.entry.Y)
		} else {
			l.SetTile(a.entry.X, a.entry.Y, *a.prev)
		}
	}
	return next, nil
}

func (c *BatchTiles) Description() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("Edit %d tiles", len(c.Entries))
}
func (c *BatchTiles) Kind() Kind { return KindBatchTiles }

// AppliedBatch wraps edits that were already applied to the live room,
// one cell at a time, before being committed as a single history entry.
// Paint sessions produce these. Revert restores the captured baseline;
// Apply (redo) replays the recorded entries deterministically.
type AppliedBatch struct {
	Entries  []TileEntry
	Label    string
	baseline *document.Room
}

// NewAppliedBatch records a batch whose effects are already present in
// the current room. baseline is the room state from before the first
// edit.
func NewAppliedBatch(label string, baseline *document.Room, entries []TileEntry) *AppliedBatch {
	return &AppliedBatch{Entries: entries, Label: label, baseline: baseline.Clone()}
}

func (c *AppliedBatch) Apply(r *document.Room) (*document.Room, error) {
	next := r.Clone()
	for _, e := range c.Entries {
		l := next.Layer(e.Layer)
		if l == nil || !next.InBounds(e.X, e.Y) {
			continue
		}
		if e.Index == nil {
			l.RemoveTile(e.X, e.Y)
		} else {
			l.SetTile(e.X, e.Y, *e.Index)
		}
	}
	return next, nil
}

func (c *AppliedBatch) Revert(*document.Room) (*document.Room, error) {
	if c.baseline == nil {
		return nil, ErrNotApplied
	}
	return c.baseline.Clone(), nil
}

func (c *AppliedBatch) Description() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("Paint %d tiles", len(c.Entries))
}
func (c *AppliedBatch) Kind() Kind { return KindBatchTiles }
