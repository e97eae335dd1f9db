// Package history provides undo/redo stacks over room commands.
//
// The history holds commands, not room snapshots; each command carries
// its own inverse. Executing a command pushes it onto the undo stack
// and clears the redo stack. Undo pops a command, reverts it against
// the current room, and moves it to the redo stack; redo reapplies it.
//
// Commands can be grouped into a single undo unit with BeginGroup /
// EndGroup, or with Transaction for error-safe grouping.
package history
