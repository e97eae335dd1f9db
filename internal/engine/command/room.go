package command

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// RenameRoom sets the room name and recomputes the derived index.
// Uniqueness against other rooms is the caller's responsibility.
type RenameRoom struct {
	snapshot
	Name string
}

func NewRenameRoom(name string) *RenameRoom {
	return &RenameRoom{Name: name}
}

func (c *RenameRoom) Apply(r *document.Room) (*document.Room, error) {
	if c.Name == r.Name {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Name = c.Name
	next.Index = document.RefIndex(c.Name)
	return next, nil
}

func (c *RenameRoom) Description() string { return fmt.Sprintf("Rename room to %q", c.Name) }
func (c *RenameRoom) Kind() Kind          { return KindRenameRoom }

// ResizeRoom sets new bounds and prunes every tile and instance whose
// coordinates fall outside them. Pruning is only reversible through the
// full snapshot inverse.
type ResizeRoom struct {
	snapshot
	Width  int
	Height int
}

func NewResizeRoom(width, height int) *ResizeRoom {
	return &ResizeRoom{Width: width, Height: height}
}

func (c *ResizeRoom) Apply(r *document.Room) (*document.Room, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, ErrNoop
	}
	if c.Width == r.Width && c.Height == r.Height {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Width = c.Width
	next.Height = c.Height
	for _, l := range next.Layers {
		kept := l.Tiles[:0]
		for _, t := range l.Tiles {
			if next.InBounds(t.X, t.Y) {
				kept = append(kept, t)
			}
		}
		l.Tiles = kept
	}
	insts := next.Instances[:0]
	for _, in := range next.Instances {
		if next.InBounds(in.X, in.Y) {
			insts = append(insts, in)
		}
	}
	next.Instances = insts
	return next, nil
}

func (c *ResizeRoom) Description() string {
	return fmt.Sprintf("Resize room to %dx%d", c.Width, c.Height)
}
func (c *ResizeRoom) Kind() Kind { return KindResizeRoom }

// UpdateRoomType replaces the room's free-form type tag.
type UpdateRoomType struct {
	snapshot
	Value string
}

func NewUpdateRoomType(value string) *UpdateRoomType { return &UpdateRoomType{Value: value} }

func (c *UpdateRoomType) Apply(r *document.Room) (*document.Room, error) {
	if c.Value == r.Type {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Type = c.Value
	return next, nil
}

func (c *UpdateRoomType) Description() string { return fmt.Sprintf("Set room type %q", c.Value) }
func (c *UpdateRoomType) Kind() Kind          { return KindUpdateRoomType }

// UpdateRoomBiome replaces the room's free-form biome tag.
type UpdateRoomBiome struct {
	snapshot
	Value string
}

func NewUpdateRoomBiome(value string) *UpdateRoomBiome { return &UpdateRoomBiome{Value: value} }

func (c *UpdateRoomBiome) Apply(r *document.Room) (*document.Room, error) {
	if c.Value == r.Biome {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Biome = c.Value
	return next, nil
}

func (c *UpdateRoomBiome) Description() string { return fmt.Sprintf("Set room biome %q", c.Value) }
func (c *UpdateRoomBiome) Kind() Kind          { return KindUpdateRoomBiome }

// UpdateRoomChance replaces the room's optional spawn chance (0-100).
// A nil value clears it.
type UpdateRoomChance struct {
	snapshot
	Value *int
}

func NewUpdateRoomChance(value *int) *UpdateRoomChance { return &UpdateRoomChance{Value: value} }

func (c *UpdateRoomChance) Apply(r *document.Room) (*document.Room, error) {
	if c.Value != nil && (*c.Value < 0 || *c.Value > 100) {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	if c.Value == nil {
		next.Chance = nil
	} else {
		v := *c.Value
		next.Chance = &v
	}
	return next, nil
}

func (c *UpdateRoomChance) Description() string {
	if c.Value == nil {
		return "Clear room chance"
	}
	return fmt.Sprintf("Set room chance %d", *c.Value)
}
func (c *UpdateRoomChance) Kind() Kind { return KindUpdateRoomChance }
