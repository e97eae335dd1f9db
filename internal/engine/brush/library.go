package brush

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// Library holds named brushes and moves them through an opaque JSON
// interchange format.
type Library struct {
	mu      sync.RWMutex
	brushes map[string]*Brush
}

func NewLibrary() *Library {
	return &Library{brushes: make(map[string]*Brush)}
}

// Put stores a brush under its name, replacing any existing entry.
func (lib *Library) Put(name string, b *Brush) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	c := b.Clone()
	c.Name = name
	lib.brushes[name] = c
}

// Get returns a copy of the named brush.
func (lib *Library) Get(name string) (*Brush, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	b, ok := lib.brushes[name]
	if !ok {
		return nil, ErrNotFound
	}
	return b.Clone(), nil
}

// Delete removes the named brush and reports whether it existed.
func (lib *Library) Delete(name string) bool {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	_, ok := lib.brushes[name]
	delete(lib.brushes, name)
	return ok
}

// Names returns the brush names in sorted order.
func (lib *Library) Names() []string {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	names := make([]string, 0, len(lib.brushes))
	for name := range lib.brushes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored brushes.
func (lib *Library) Len() int {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return len(lib.brushes)
}

// Export serializes the library as a JSON array, sorted by name.
func (lib *Library) Export() ([]byte, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	names := make([]string, 0, len(lib.brushes))
	for name := range lib.brushes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := []byte(`[]`)
	for _, name := range names {
		b := lib.brushes[name]
		item := []byte(`{}`)
		var err error
		if item, err = sjson.SetBytes(item, "name", b.Name); err != nil {
			return nil, err
		}
		tiles, err := json.Marshal(b.Tiles)
		if err != nil {
			return nil, err
		}
		if item, err = sjson.SetRawBytes(item, "tiles", tiles); err != nil {
			return nil, err
		}
		if item, err = sjson.SetBytes(item, "width", b.Width); err != nil {
			return nil, err
		}
		if item, err = sjson.SetBytes(item, "height", b.Height); err != nil {
			return nil, err
		}
		if item, err = sjson.SetBytes(item, "texture", b.Texture); err != nil {
			return nil, err
		}
		if item, err = sjson.SetBytes(item, "offset_x", b.OffsetX); err != nil {
			return nil, err
		}
		if item, err = sjson.SetBytes(item, "offset_y", b.OffsetY); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "-1", item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Import merges brushes from a JSON array into the library. Each entry
// is validated on its own: a string name (or id), a tiles array,
// numeric width and height, and a string texture. Invalid entries are
// dropped. If the data is not an array, or no entry is valid, the
// library is left untouched and ErrInvalidLibrary is returned.
// The count of imported brushes is returned on success.
func (lib *Library) Import(data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, ErrInvalidLibrary
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return 0, ErrInvalidLibrary
	}

	var parsed []*Brush
	root.ForEach(func(_, v gjson.Result) bool {
		if b, ok := parseEntry(v); ok {
			parsed = append(parsed, b)
		}
		return true
	})
	if len(parsed) == 0 {
		return 0, ErrInvalidLibrary
	}

	lib.mu.Lock()
	defer lib.mu.Unlock()
	for _, b := range parsed {
		lib.brushes[b.Name] = b
	}
	return len(parsed), nil
}

func parseEntry(v gjson.Result) (*Brush, bool) {
	if !v.IsObject() {
		return nil, false
	}
	name := v.Get("name")
	if name.Type != gjson.String {
		name = v.Get("id")
	}
	tiles := v.Get("tiles")
	width := v.Get("width")
	height := v.Get("height")
	texture := v.Get("texture")
	if name.Type != gjson.String || name.Str == "" ||
		!tiles.IsArray() ||
		width.Type != gjson.Number || height.Type != gjson.Number ||
		texture.Type != gjson.String {
		return nil, false
	}

	b := &Brush{
		Name:    name.Str,
		Width:   int(width.Int()),
		Height:  int(height.Int()),
		Texture: texture.Str,
		OffsetX: int(v.Get("offset_x").Int()),
		OffsetY: int(v.Get("offset_y").Int()),
	}
	tiles.ForEach(func(_, t gjson.Result) bool {
		b.Tiles = append(b.Tiles, documentTile(t))
		return true
	})
	return b, true
}

func documentTile(t gjson.Result) document.Tile {
	return document.Tile{
		X:     int(t.Get("x").Int()),
		Y:     int(t.Get("y").Int()),
		Index: int(t.Get("index").Int()),
	}
}
