package command

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// AddInstance places an object on an object layer. Placement requires
// an existing object layer and in-bounds coordinates.
type AddInstance struct {
	Instance document.Instance
	applied  bool
}

func NewAddInstance(inst document.Instance) *AddInstance {
	return &AddInstance{Instance: inst}
}

func (c *AddInstance) Apply(r *document.Room) (*document.Room, error) {
	if c.Instance.ObjName == "" {
		return nil, ErrNoop
	}
	if !r.HasObjectLayer(c.Instance.InstanceLayerName) {
		return nil, ErrNoop
	}
	if !r.InBounds(c.Instance.X, c.Instance.Y) {
		return nil, ErrNoop
	}
	next := r.Clone()
	next.Instances = append(next.Instances, c.Instance)
	c.applied = true
	return next, nil
}

// Revert drops the appended instance from the tail.
func (c *AddInstance) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	for i := len(next.Instances) - 1; i >= 0; i-- {
		if next.Instances[i] == c.Instance {
			next.Instances = append(next.Instances[:i], next.Instances[i+1:]...)
			break
		}
	}
	return next, nil
}

func (c *AddInstance) Description() string {
	return fmt.Sprintf("Place %q at (%d,%d) on %q",
		c.Instance.ObjName, c.Instance.X, c.Instance.Y, c.Instance.InstanceLayerName)
}
func (c *AddInstance) Kind() Kind { return KindAddInstance }

// RemoveInstance deletes the instance at a position in the instance
// list. The inverse reinserts it at the same position.
type RemoveInstance struct {
	Position int
	removed  document.Instance
	applied  bool
}

func NewRemoveInstance(position int) *RemoveInstance {
	return &RemoveInstance{Position: position}
}

func (c *RemoveInstance) Apply(r *document.Room) (*document.Room, error) {
	if c.Position < 0 || c.Position >= len(r.Instances) {
		return nil, ErrNoop
	}
	c.removed = r.Instances[c.Position]
	next := r.Clone()
	next.Instances = append(next.Instances[:c.Position], next.Instances[c.Position+1:]...)
	c.applied = true
	return next, nil
}

func (c *RemoveInstance) Revert(r *document.Room) (*document.Room, error) {
	if !c.applied {
		return nil, ErrNotApplied
	}
	next := r.Clone()
	i := c.Position
	if i > len(next.Instances) {
		i = len(next.Instances)
	}
	next.Instances = append(next.Instances, document.Instance{})
	copy(next.Instances[i+1:], next.Instances[i:])
	next.Instances[i] = c.removed
	return next, nil
}

func (c *RemoveInstance) Description() string {
	return fmt.Sprintf("Remove %q at (%d,%d)", c.removed.ObjName, c.removed.X, c.removed.Y)
}
func (c *RemoveInstance) Kind() Kind { return KindRemoveInstance }
