package command

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// AddTile upserts a tile at (x, y) on a tile layer, replacing any
// occupant of the cell. The inverse is a precise delta: the prior
// occupant's index, or absence.
type AddTile struct {
	Layer   string
	X, Y    int
	Index   int
	prev    *int
	applied bool
}

func NewAddTile(layer string, x, y, index int) *AddTile {
	return &AddTile{Layer: layer, X: x, Y: y, Index: index}
}

func (c *AddTile) Apply(r *document.Room) (*document.Room, error) {
	l := r.Layer(c.Layer)
	if l == nil || l.Type != document.LayerTile {
		return nil, ErrNoop
	}
	if c.Index < 0 || !r.InBounds(c.X, c.Y) {
		return nil, ErrNoop
	}
	c.prev = nil
	if t := l.TileAt(c.X, c.Y); t != nil {
		if t.Index == c.Index {
			return nil, ErrNoop
		}
		v := t.Index
		c.prev = &v
	}
	next := r.Clone()
	next.Layer(c.Layer).SetTile(c.X, c.Y, c.Index)
	c.applied = true
	return next, nil
}

// Revert removes the tile, or restores the prior occupant's index.
func (c *AddTile) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	l := next.Layer(c.Layer)
	if l == nil {
		return next, nil
	}
	if c.prev == nil {
		l.RemoveTile(c.X, c.Y)
	} else {
		l.SetTile(c.X, c.Y, *c.prev)
	}
	return next, nil
}

func (c *AddTile) Description() string {
	return fmt.Sprintf("Paint tile %d at (%d,%d) on %q", c.Index, c.X, c.Y, c.Layer)
}
func (c *AddTile) Kind() Kind { return KindAddTile }

// RemoveTile deletes the tile at (x, y) if present. The inverse
// restores the removed tile's index.
type RemoveTile struct {
	Layer   string
	X, Y    int
	prev    int
	applied bool
}

func NewRemoveTile(layer string, x, y int) *RemoveTile {
	return &RemoveTile{Layer: layer, X: x, Y: y}
}

func (c *RemoveTile) Apply(r *document.Room) (*document.Room, error) {
	l := r.Layer(c.Layer)
	if l == nil {
		return nil, ErrNoop
	}
	t := l.TileAt(c.X, c.Y)
	if t == nil {
		return nil, ErrNoop
	}
	c.prev = t.Index
	next := r.Clone()
	next.Layer(c.Layer).RemoveTile(c.X, c.Y)
	c.applied = true
	return next, nil
}

func (c *RemoveTile) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	if l := next.Layer(c.Layer); l != nil {
		l.SetTile(c.X, c.Y, c.prev)
	}
	return next, nil
}

func (c *RemoveTile) Description() string {
	return fmt.Sprintf("Erase tile at (%d,%d) on %q", c.X, c.Y, c.Layer)
}
func (c *RemoveTile) Kind() Kind { return KindRemoveTile }
