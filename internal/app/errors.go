package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoActiveTab indicates no editing tab is currently active.
	ErrNoActiveTab = errors.New("no active tab")

	// ErrRoomNotFound indicates a room was not found in the store.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomExists indicates a room with that name is already stored.
	ErrRoomExists = errors.New("room already exists")
)

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
