// Package command implements the closed set of room mutations. Every
// command clones the room it is applied to and returns a replacement,
// together with enough captured state to revert the change exactly.
package command

import (
	"errors"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// Errors returned by command application.
var (
	// ErrNoop indicates the command would have no effect (invalid
	// placement or missing reference). The caller records no history
	// entry and keeps the current room.
	ErrNoop = errors.New("command has no effect")

	// ErrNotApplied indicates Revert was called before a successful Apply.
	ErrNotApplied = errors.New("command has not been applied")
)

// Kind tags the mutation type of a command.
type Kind string

const (
	KindRenameRoom       Kind = "rename-room"
	KindResizeRoom       Kind = "resize-room"
	KindUpdateRoomType   Kind = "update-room-type"
	KindUpdateRoomBiome  Kind = "update-room-biome"
	KindUpdateRoomChance Kind = "update-room-chance"
	KindAddLayer         Kind = "add-layer"
	KindRemoveLayer      Kind = "remove-layer"
	KindToggleLayer      Kind = "toggle-layer-visibility"
	KindUpdateLayerType  Kind = "update-layer-type"
	KindLayerTexture     Kind = "update-layer-texture"
	KindRenameLayer      Kind = "rename-layer"
	KindAddTile          Kind = "add-tile"
	KindRemoveTile       Kind = "remove-tile"
	KindBatchTiles       Kind = "batch-tiles"
	KindAddInstance      Kind = "add-instance"
	KindRemoveInstance   Kind = "remove-instance"
)

// Command is an invertible room mutation. Apply never mutates its
// argument; it returns a new room. Revert takes the post-apply room and
// returns the pre-apply room.
type Command interface {
	Apply(r *document.Room) (*document.Room, error)
	Revert(r *document.Room) (*document.Room, error)
	Description() string
	Kind() Kind
}

// snapshot is embedded by commands whose inverse is a full copy of the
// prior room. Revert hands out clones so a stored snapshot survives
// repeated undo/redo cycles.
type snapshot struct {
	prev *document.Room
}

func (s *snapshot) capture(r *document.Room) {
	s.prev = r.Clone()
}

func (s *snapshot) Revert(*document.Room) (*document.Room, error) {
	if s.prev == nil {
		return nil, ErrNotApplied
	}
	return s.prev.Clone(), nil
}
