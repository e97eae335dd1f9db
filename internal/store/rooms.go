package store

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/dshills/roomstorm/internal/engine/document"
)

const (
	roomKeyPrefix = "room_"
	recentKey     = "recent_rooms"

	// maxRecent caps the most-recently-used room list.
	maxRecent = 10
)

// RoomStore layers room document semantics over a key/value Store:
// rooms live under "room_<name>" keys and the MRU list under its own
// key.
type RoomStore struct {
	kv Store
}

// NewRoomStore wraps a backend store.
func NewRoomStore(kv Store) *RoomStore {
	return &RoomStore{kv: kv}
}

// Save serializes the room, stores it under its name, and promotes the
// name to the front of the recent list.
func (rs *RoomStore) Save(r *document.Room) error {
	payload, err := document.Marshal(r)
	if err != nil {
		return err
	}
	if err := rs.kv.Put(roomKeyPrefix+r.Name, payload); err != nil {
		return err
	}
	return rs.touchRecent(r.Name)
}

// Load retrieves and decodes the named room.
// Returns ErrNotFound when no such room is stored.
func (rs *RoomStore) Load(name string) (*document.Room, error) {
	payload, err := rs.kv.Get(roomKeyPrefix + name)
	if err != nil {
		return nil, err
	}
	r, err := document.Unmarshal(payload)
	if err != nil {
		return nil, err
	}
	if err := rs.touchRecent(name); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the named room and drops it from the recent list.
func (rs *RoomStore) Delete(name string) error {
	if err := rs.kv.Delete(roomKeyPrefix + name); err != nil {
		return err
	}
	recent, err := rs.Recent()
	if err != nil {
		return err
	}
	kept := recent[:0]
	for _, n := range recent {
		if n != name {
			kept = append(kept, n)
		}
	}
	return rs.putRecent(kept)
}

// List returns the names of all stored rooms, sorted.
func (rs *RoomStore) List() ([]string, error) {
	keys, err := rs.kv.Keys(roomKeyPrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, roomKeyPrefix))
	}
	return names, nil
}

// Recent returns room names most-recent first, capped at 10.
func (rs *RoomStore) Recent() ([]string, error) {
	payload, err := rs.kv.Get(recentKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// touchRecent moves a name to the front, de-duplicated, capped.
func (rs *RoomStore) touchRecent(name string) error {
	recent, err := rs.Recent()
	if err != nil {
		return err
	}
	next := make([]string, 0, len(recent)+1)
	next = append(next, name)
	for _, n := range recent {
		if n != name {
			next = append(next, n)
		}
	}
	if len(next) > maxRecent {
		next = next[:maxRecent]
	}
	return rs.putRecent(next)
}

func (rs *RoomStore) putRecent(names []string) error {
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return rs.kv.Put(recentKey, payload)
}
