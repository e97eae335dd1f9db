package engine

import (
	"sync"

	"github.com/dshills/roomstorm/internal/engine/brush"
	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/document"
	"github.com/dshills/roomstorm/internal/engine/history"
	"github.com/dshills/roomstorm/internal/engine/paint"
)

// Re-export commonly used types for convenience.
type (
	// Room is the document a single engine edits.
	Room = document.Room

	// Layer is one paint layer of a room.
	Layer = document.Layer

	// Instance is a placed object.
	Instance = document.Instance

	// Command is an invertible room mutation.
	Command = command.Command

	// TileEntry is one cell change inside a batch.
	TileEntry = command.TileEntry

	// Brush is a reusable tile stamp.
	Brush = brush.Brush

	// OperationInfo describes a recorded history entry.
	OperationInfo = history.OperationInfo
)

// Engine edits one room document. All operations are thread-safe and
// can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	room    *document.Room
	history *history.History
	session *paint.Session
	brushes *brush.Library

	// Configuration
	tileSize       int
	objectGrid     int
	maxUndoEntries int
}

// New creates an Engine with the given options. Without WithRoom the
// engine starts on an empty 800x600 room named "untitled".
func New(opts ...Option) *Engine {
	e := &Engine{
		tileSize:       DefaultTileSize,
		objectGrid:     DefaultObjectGrid,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.room == nil {
		e.room = document.New("untitled", 800, 600)
	}
	e.history = history.New(e.maxUndoEntries)
	e.session = paint.NewSession()
	e.brushes = brush.NewLibrary()

	return e
}

// NewFromJSON creates an Engine editing a room decoded from its JSON
// form.
func NewFromJSON(data []byte, opts ...Option) (*Engine, error) {
	r, err := document.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithRoom(r)}, opts...)...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Snapshot returns a deep copy of the current room.
func (e *Engine) Snapshot() *document.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.room.Clone()
}

// Name returns the room name.
func (e *Engine) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.room.Name
}

// Size returns the room dimensions in pixels.
func (e *Engine) Size() (width, height int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.room.Width, e.room.Height
}

// TileSize returns the active tile grid size.
func (e *Engine) TileSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tileSize
}

// ObjectGrid returns the object placement grid size.
func (e *Engine) ObjectGrid() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.objectGrid
}

// Export returns the room's canonical JSON form.
func (e *Engine) Export() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return document.Marshal(e.room)
}

// Brushes returns the engine's brush library.
func (e *Engine) Brushes() *brush.Library {
	return e.brushes
}

// ============================================================================
// Command Execution
// ============================================================================

// Apply executes a command against the room and records it in history.
// Returns ErrNoEffect, with the room unchanged, when the command has
// nothing to do.
func (e *Engine) Apply(cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.history.Execute(cmd, e.room)
	if err != nil {
		return err
	}
	e.room = next
	return nil
}

// Undo reverts the most recent history entry. An active paint stroke
// is committed first so it undoes as a unit.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.commitStrokeLocked()
	prev, err := e.history.Undo(e.room)
	if err != nil {
		return err
	}
	e.room = prev
	return nil
}

// Redo reapplies the most recently undone entry.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.history.Redo(e.room)
	if err != nil {
		return err
	}
	e.room = next
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoInfo returns info about available undo operations, oldest first.
func (e *Engine) UndoInfo() []OperationInfo {
	return e.history.UndoInfo()
}

// RedoInfo returns info about available redo operations, oldest first.
func (e *Engine) RedoInfo() []OperationInfo {
	return e.history.RedoInfo()
}

// Transaction groups every command applied inside fn into one undo
// unit. If fn returns an error the group is discarded from history.
func (e *Engine) Transaction(name string, fn func() error) error {
	return e.history.Transaction(name, fn)
}

// ============================================================================
// Paint Strokes
// ============================================================================

// BeginPaint starts a paint stroke. Edits made until EndPaint apply to
// the live room immediately and undo as a single step. A stroke
// already in progress is committed first.
func (e *Engine) BeginPaint(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if flushed := e.session.Begin(label, e.room); flushed != nil {
		e.history.Push(flushed)
	}
}

// EndPaint finishes the stroke and records it as one history entry.
// A stroke with no edits records nothing.
func (e *Engine) EndPaint() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commitStrokeLocked()
}

// CancelPaint aborts the stroke and restores the room to its
// pre-stroke state without touching history.
func (e *Engine) CancelPaint() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if baseline := e.session.Cancel(); baseline != nil {
		e.room = baseline
	}
}

// Painting reports whether a stroke is in progress.
func (e *Engine) Painting() bool {
	return e.session.Active()
}

func (e *Engine) commitStrokeLocked() {
	if batch := e.session.End(); batch != nil {
		e.history.Push(batch)
	}
}

// PaintTile places a tile at the cursor position, snapped to the tile
// grid. Inside a stroke the edit is buffered; outside one it records
// its own history entry.
func (e *Engine) PaintTile(layer string, x, y, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	x = brush.SnapToGrid(x, e.tileSize)
	y = brush.SnapToGrid(y, e.tileSize)

	if !e.session.Active() {
		next, err := e.history.Execute(command.NewAddTile(layer, x, y, index), e.room)
		if err != nil {
			return err
		}
		e.room = next
		return nil
	}

	l := e.room.Layer(layer)
	if l == nil || l.Type != document.LayerTile || index < 0 || !e.room.InBounds(x, y) {
		return ErrNoEffect
	}
	l.SetTile(x, y, index)
	idx := index
	e.session.Record(command.TileEntry{Layer: layer, X: x, Y: y, Index: &idx})
	return nil
}

// EraseTile removes the tile at the cursor position, snapped to the
// tile grid.
func (e *Engine) EraseTile(layer string, x, y int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	x = brush.SnapToGrid(x, e.tileSize)
	y = brush.SnapToGrid(y, e.tileSize)

	if !e.session.Active() {
		next, err := e.history.Execute(command.NewRemoveTile(layer, x, y), e.room)
		if err != nil {
			return err
		}
		e.room = next
		return nil
	}

	l := e.room.Layer(layer)
	if l == nil || !l.RemoveTile(x, y) {
		return ErrNoEffect
	}
	e.session.Record(command.TileEntry{Layer: layer, X: x, Y: y, Index: nil})
	return nil
}

// ============================================================================
// Brushes
// ============================================================================

// BrushFromSelection derives a brush from the tiles of a layer inside
// the selection rectangle (pixel units) and stores it in the library
// under the given name.
func (e *Engine) BrushFromSelection(name, layer string, selX, selY, selW, selH int) (*brush.Brush, error) {
	e.mu.RLock()
	l := e.room.Layer(layer)
	b, err := brush.FromSelection(l, selX, selY, selW, selH, e.tileSize)
	e.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	e.brushes.Put(name, b)
	return b, nil
}

// StampBrush places a named brush with its hot-spot at the cursor
// position. Tiles landing outside the room are discarded. Inside a
// stroke the edits are buffered; outside one the whole stamp records
// a single history entry.
func (e *Engine) StampBrush(name, layer string, anchorX, anchorY int) error {
	b, err := e.brushes.Get(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	anchorX = brush.SnapToGrid(anchorX, e.tileSize)
	anchorY = brush.SnapToGrid(anchorY, e.tileSize)
	entries := b.Stamp(e.room, layer, anchorX, anchorY, e.tileSize)
	if len(entries) == 0 {
		return ErrNoEffect
	}

	if !e.session.Active() {
		next, err := e.history.Execute(command.NewBatchTiles("Stamp "+name, entries), e.room)
		if err != nil {
			return err
		}
		e.room = next
		return nil
	}

	l := e.room.Layer(layer)
	if l == nil || l.Type != document.LayerTile {
		return ErrNoEffect
	}
	for _, entry := range entries {
		l.SetTile(entry.X, entry.Y, *entry.Index)
		e.session.Record(entry)
	}
	return nil
}
