// Package document defines the Room aggregate: the mutable data model
// for layers, painted tiles, and placed object instances that the rest
// of the engine operates on.
//
// A Room is a plain value with invariants and no behavior beyond
// accessors, cloning, and invariant repair. Mutation lives in the
// command package; every command clones the room it is given and
// returns a replacement, so a *Room held by a reader is never mutated
// underneath it.
//
// Invariants maintained by Normalize and relied on everywhere:
//
//   - at most one tile per (x, y) cell per layer
//   - layer names are unique within a room
//   - instances reference existing layers of type object
//   - Index is always "@ref room(<name>)" for the current name
package document
