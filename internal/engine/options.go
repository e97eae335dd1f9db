package engine

import (
	"github.com/dshills/roomstorm/internal/engine/document"
)

// Default configuration values.
const (
	DefaultTileSize       = 16
	DefaultObjectGrid     = 32
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRoom sets the initial room document.
func WithRoom(r *document.Room) Option {
	return func(e *Engine) {
		if r != nil {
			e.room = r
		}
	}
}

// WithTileSize sets the tile grid size in pixels.
func WithTileSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.tileSize = size
		}
	}
}

// WithObjectGrid sets the object placement grid size in pixels.
func WithObjectGrid(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.objectGrid = size
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}
