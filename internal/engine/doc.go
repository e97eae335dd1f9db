// Package engine is the main facade for the room document engine.
// It combines the room model, the command set, undo/redo history,
// paint-session batching, and the brush library into a unified,
// thread-safe API.
//
// Callers work in pixel coordinates; the engine snaps them to the
// active tile grid. Every mutation goes through a command so it can
// be undone, except live paint strokes, which are buffered by a paint
// session and committed as one history entry when the stroke ends.
package engine
