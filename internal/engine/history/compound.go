package history

import (
	"fmt"

	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/document"
)

// KindCompound tags grouped history entries.
const KindCompound command.Kind = "compound"

// Compound combines multiple commands into a single undo unit.
type Compound struct {
	Name     string
	Commands []command.Command
}

// Apply runs the commands in order. Commands that report no effect are
// skipped; any other failure aborts the whole group.
func (c *Compound) Apply(r *document.Room) (*document.Room, error) {
	cur := r
	applied := false
	for _, cmd := range c.Commands {
		next, err := cmd.Apply(cur)
		if err != nil {
			if err == command.ErrNoop {
				continue
			}
			return nil, err
		}
		cur = next
		applied = true
	}
	if !applied {
		return nil, command.ErrNoop
	}
	return cur, nil
}

// Revert undoes the commands in reverse order.
func (c *Compound) Revert(r *document.Room) (*document.Room, error) {
	cur := r
	for i := len(c.Commands) - 1; i >= 0; i-- {
		prev, err := c.Commands[i].Revert(cur)
		if err != nil {
			if err == command.ErrNotApplied {
				continue
			}
			return nil, err
		}
		cur = prev
	}
	return cur, nil
}

func (c *Compound) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d changes", len(c.Commands))
}

func (c *Compound) Kind() command.Kind { return KindCompound }

// Transaction executes fn within a grouped undo context. If fn returns
// an error the group is cancelled; otherwise it is recorded as one
// entry.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}

	h.EndGroup()
	return nil
}

// ExecuteGrouped applies several commands as a single undo unit and
// returns the resulting room. Commands with no effect are skipped; an
// error from any other command cancels the group and returns the room
// as transformed so far.
func (h *History) ExecuteGrouped(name string, r *document.Room, cmds ...command.Command) (*document.Room, error) {
	if len(cmds) == 0 {
		return r, nil
	}
	if len(cmds) == 1 {
		return h.Execute(cmds[0], r)
	}

	h.BeginGroup(name)
	cur := r
	for _, cmd := range cmds {
		next, err := h.Execute(cmd, cur)
		if err != nil {
			if err == command.ErrNoop {
				continue
			}
			h.CancelGroup()
			return cur, err
		}
		cur = next
	}
	h.EndGroup()
	return cur, nil
}
