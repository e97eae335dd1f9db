package command

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// AddLayer appends a layer to the end of the paint sequence. Type
// defaults to tile and visibility to true when unset. Duplicate names
// are a no-op.
type AddLayer struct {
	Layer   document.Layer
	applied bool
}

func NewAddLayer(layer document.Layer) *AddLayer {
	return &AddLayer{Layer: layer}
}

func (c *AddLayer) Apply(r *document.Room) (*document.Room, error) {
	if c.Layer.Name == "" || r.Layer(c.Layer.Name) != nil {
		return nil, ErrNoop
	}
	next := r.Clone()
	l := c.Layer.Clone()
	if !l.Type.Valid() {
		l.Type = document.LayerTile
	}
	if l.Tiles == nil {
		l.Tiles = []document.Tile{}
	}
	next.Layers = append(next.Layers, l)
	c.applied = true
	return next, nil
}

// Revert drops the appended layer again. The layer was new, so no
// instances can reference it yet.
func (c *AddLayer) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	i := next.LayerIndex(c.Layer.Name)
	if i >= 0 {
		next.Layers = append(next.Layers[:i], next.Layers[i+1:]...)
	}
	return next, nil
}

func (c *AddLayer) Description() string { return fmt.Sprintf("Add layer %q", c.Layer.Name) }
func (c *AddLayer) Kind() Kind          { return KindAddLayer }

// RemoveLayer removes a layer and cascades: every instance placed on it
// is removed in the same transform. The full snapshot inverse restores
// layer position and cascaded instances atomically.
type RemoveLayer struct {
	snapshot
	Name string
}

func NewRemoveLayer(name string) *RemoveLayer {
	return &RemoveLayer{Name: name}
}

func (c *RemoveLayer) Apply(r *document.Room) (*document.Room, error) {
	i := r.LayerIndex(c.Name)
	if i < 0 {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Layers = append(next.Layers[:i], next.Layers[i+1:]...)
	insts := next.Instances[:0]
	for _, in := range next.Instances {
		if in.InstanceLayerName != c.Name {
			insts = append(insts, in)
		}
	}
	next.Instances = insts
	return next, nil
}

func (c *RemoveLayer) Description() string { return fmt.Sprintf("Remove layer %q", c.Name) }
func (c *RemoveLayer) Kind() Kind          { return KindRemoveLayer }

// ToggleLayerVisibility flips a layer's visible flag.
type ToggleLayerVisibility struct {
	Name    string
	applied bool
}

func NewToggleLayerVisibility(name string) *ToggleLayerVisibility {
	return &ToggleLayerVisibility{Name: name}
}

func (c *ToggleLayerVisibility) Apply(r *document.Room) (*document.Room, error) {
	if r.Layer(c.Name) == nil {
		return nil, ErrNoop
	}
	next := r.Clone()
	l := next.Layer(c.Name)
	l.Visible = !l.Visible
	c.applied = true
	return next, nil
}

// Revert flips the flag back; the toggle is its own inverse.
func (c *ToggleLayerVisibility) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	if l := next.Layer(c.Name); l != nil {
		l.Visible = !l.Visible
	}
	return next, nil
}

func (c *ToggleLayerVisibility) Description() string {
	return fmt.Sprintf("Toggle layer %q visibility", c.Name)
}
func (c *ToggleLayerVisibility) Kind() Kind { return KindToggleLayer }

// UpdateLayerType retypes a layer. Instances referencing a layer that is
// retyped away from object are pruned to keep the room consistent; the
// snapshot inverse restores them.
type UpdateLayerType struct {
	snapshot
	Name string
	Type document.LayerType
}

func NewUpdateLayerType(name string, t document.LayerType) *UpdateLayerType {
	return &UpdateLayerType{Name: name, Type: t}
}

func (c *UpdateLayerType) Apply(r *document.Room) (*document.Room, error) {
	l := r.Layer(c.Name)
	if l == nil || !c.Type.Valid() || l.Type == c.Type {
		return nil, ErrNoop
	}
	c.capture(r)
	next := r.Clone()
	next.Layer(c.Name).Type = c.Type
	if c.Type != document.LayerObject {
		insts := next.Instances[:0]
		for _, in := range next.Instances {
			if in.InstanceLayerName != c.Name {
				insts = append(insts, in)
			}
		}
		next.Instances = insts
	}
	return next, nil
}

func (c *UpdateLayerType) Description() string {
	return fmt.Sprintf("Set layer %q type %s", c.Name, c.Type)
}
func (c *UpdateLayerType) Kind() Kind { return KindUpdateLayerType }

// UpdateLayerTexture sets the tileset reference of a layer.
type UpdateLayerTexture struct {
	Name    string
	Texture string
	prev    string
	applied bool
}

func NewUpdateLayerTexture(name, texture string) *UpdateLayerTexture {
	return &UpdateLayerTexture{Name: name, Texture: texture}
}

func (c *UpdateLayerTexture) Apply(r *document.Room) (*document.Room, error) {
	l := r.Layer(c.Name)
	if l == nil || l.Texture == c.Texture {
		return nil, ErrNoop
	}
	c.prev = l.Texture
	next := r.Clone()
	next.Layer(c.Name).Texture = c.Texture
	c.applied = true
	return next, nil
}

func (c *UpdateLayerTexture) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	if l := next.Layer(c.Name); l != nil {
		l.Texture = c.prev
	}
	return next, nil
}

func (c *UpdateLayerTexture) Description() string {
	return fmt.Sprintf("Set layer %q texture %q", c.Name, c.Texture)
}
func (c *UpdateLayerTexture) Kind() Kind { return KindLayerTexture }

// RenameLayer renames a layer and retargets every instance referencing
// it in the same transform.
type RenameLayer struct {
	Old     string
	New     string
	applied bool
}

func NewRenameLayer(oldName, newName string) *RenameLayer {
	return &RenameLayer{Old: oldName, New: newName}
}

func (c *RenameLayer) Apply(r *document.Room) (*document.Room, error) {
	if c.New == "" || c.Old == c.New {
		return nil, ErrNoop
	}
	if r.Layer(c.Old) == nil || r.Layer(c.New) != nil {
		return nil, ErrNoop
	}
	next := rename(r, c.Old, c.New)
	c.applied = true
	return next, nil
}

// Revert renames back; the rename is symmetric.
func (c *RenameLayer) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	return rename(r, c.New, c.Old), nil
}

func rename(r *document.Room, from, to string) *document.Room {
	next := r.Clone()
	if l := next.Layer(from); l != nil {
		l.Name = to
	}
	for i := range next.Instances {
		if next.Instances[i].InstanceLayerName == from {
			next.Instances[i].InstanceLayerName = to
		}
	}
	return next
}

func (c *RenameLayer) Description() string {
	return fmt.Sprintf("Rename layer %q to %q", c.Old, c.New)
}
func (c *RenameLayer) Kind() Kind { return KindRenameLayer }
