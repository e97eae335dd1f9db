package engine

import (
	"github.com/dshills/roomstorm/internal/engine/brush"
	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNoEffect indicates a command had nothing to change; no history
	// entry was recorded.
	ErrNoEffect = command.ErrNoop

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrBrushNotFound indicates the named brush is not in the library.
	ErrBrushNotFound = brush.ErrNotFound
)
