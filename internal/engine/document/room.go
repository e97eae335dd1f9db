package document

import (
	"fmt"
)

// LayerType distinguishes tile layers from object layers.
type LayerType string

const (
	// LayerTile holds painted tiles.
	LayerTile LayerType = "tile"
	// LayerObject holds placed object instances.
	LayerObject LayerType = "object"
)

// Valid reports whether t is a known layer type.
func (t LayerType) Valid() bool {
	return t == LayerTile || t == LayerObject
}

// Tile is one grid cell's texture-index assignment within a tile layer.
// X and Y are pixel coordinates aligned to the active tile size.
type Tile struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Index int `json:"index"`
	// Selected is transient UI state and is never persisted.
	Selected bool `json:"-"`
}

// Instance is one placed occurrence of a catalog object on an object layer.
type Instance struct {
	InstanceLayerName string `json:"instance_layer_name"`
	ObjName           string `json:"obj_name"`
	X                 int    `json:"x"`
	Y                 int    `json:"y"`
}

// Layer is one ordered plane of either painted tiles or placed objects.
// Tiles is present on every layer for structural uniformity but is only
// semantically populated when Type is LayerTile.
type Layer struct {
	Name    string    `json:"name"`
	Depth   int       `json:"depth"`
	Type    LayerType `json:"type"`
	Visible bool      `json:"visible"`
	Texture string    `json:"texture,omitempty"`
	Tiles   []Tile    `json:"tiles"`
}

// Room is the aggregate root: the complete editable document.
// Layer order is the authored paint order, not depth order.
type Room struct {
	Instances []Instance `json:"instances"`
	Layers    []*Layer   `json:"layers"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Name      string     `json:"name"`
	Index     string     `json:"index"`
	Type      string     `json:"type,omitempty"`
	Biome     string     `json:"biome,omitempty"`
	Chance    *int       `json:"chance,omitempty"`
}

// RefIndex returns the derived reference string for a room name.
func RefIndex(name string) string {
	return fmt.Sprintf("@ref room(%s)", name)
}

// New creates an empty room with the given name and bounds.
func New(name string, width, height int) *Room {
	return &Room{
		Name:      name,
		Index:     RefIndex(name),
		Width:     width,
		Height:    height,
		Layers:    []*Layer{},
		Instances: []Instance{},
	}
}

// Layer returns the layer with the given name, or nil if absent.
func (r *Room) Layer(name string) *Layer {
	for _, l := range r.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// LayerIndex returns the position of the named layer, or -1.
func (r *Room) LayerIndex(name string) int {
	for i, l := range r.Layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// HasObjectLayer reports whether name refers to an existing object layer.
func (r *Room) HasObjectLayer(name string) bool {
	l := r.Layer(name)
	return l != nil && l.Type == LayerObject
}

// InBounds reports whether the point lies within [0,width) x [0,height).
func (r *Room) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

// TileAt returns the tile at (x, y) on the layer, or nil.
func (l *Layer) TileAt(x, y int) *Tile {
	for i := range l.Tiles {
		if l.Tiles[i].X == x && l.Tiles[i].Y == y {
			return &l.Tiles[i]
		}
	}
	return nil
}

// SetTile upserts a tile at (x, y), replacing any occupant of that cell.
func (l *Layer) SetTile(x, y, index int) {
	for i := range l.Tiles {
		if l.Tiles[i].X == x && l.Tiles[i].Y == y {
			l.Tiles[i].Index = index
			return
		}
	}
	l.Tiles = append(l.Tiles, Tile{X: x, Y: y, Index: index})
}

// RemoveTile deletes the tile at (x, y) if present.
// Returns true if a tile was removed.
func (l *Layer) RemoveTile(x, y int) bool {
	for i := range l.Tiles {
		if l.Tiles[i].X == x && l.Tiles[i].Y == y {
			l.Tiles = append(l.Tiles[:i], l.Tiles[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Tiles = make([]Tile, len(l.Tiles))
	copy(c.Tiles, l.Tiles)
	return &c
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	c := *r
	c.Layers = make([]*Layer, len(r.Layers))
	for i, l := range r.Layers {
		c.Layers[i] = l.Clone()
	}
	c.Instances = make([]Instance, len(r.Instances))
	copy(c.Instances, r.Instances)
	if r.Chance != nil {
		v := *r.Chance
		c.Chance = &v
	}
	return &c
}

// Equal reports structural equality, ignoring transient tile selection.
func (r *Room) Equal(o *Room) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Name != o.Name || r.Index != o.Index ||
		r.Width != o.Width || r.Height != o.Height ||
		r.Type != o.Type || r.Biome != o.Biome {
		return false
	}
	if (r.Chance == nil) != (o.Chance == nil) {
		return false
	}
	if r.Chance != nil && *r.Chance != *o.Chance {
		return false
	}
	if len(r.Layers) != len(o.Layers) || len(r.Instances) != len(o.Instances) {
		return false
	}
	for i := range r.Layers {
		if !r.Layers[i].equal(o.Layers[i]) {
			return false
		}
	}
	for i := range r.Instances {
		if r.Instances[i] != o.Instances[i] {
			return false
		}
	}
	return true
}

func (l *Layer) equal(o *Layer) bool {
	if l.Name != o.Name || l.Depth != o.Depth || l.Type != o.Type ||
		l.Visible != o.Visible || l.Texture != o.Texture {
		return false
	}
	if len(l.Tiles) != len(o.Tiles) {
		return false
	}
	for i := range l.Tiles {
		a, b := l.Tiles[i], o.Tiles[i]
		if a.X != b.X || a.Y != b.Y || a.Index != b.Index {
			return false
		}
	}
	return true
}

// Normalize re-establishes the room invariants in place:
// derived index, layer defaults, unique layer names, one tile per cell
// (the later tile wins), and instances only on existing object layers.
func (r *Room) Normalize() {
	r.Index = RefIndex(r.Name)

	seen := make(map[string]bool, len(r.Layers))
	kept := r.Layers[:0]
	for _, l := range r.Layers {
		if l == nil || seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		if !l.Type.Valid() {
			l.Type = LayerTile
		}
		if l.Tiles == nil {
			l.Tiles = []Tile{}
		}
		l.dedupeTiles()
		kept = append(kept, l)
	}
	r.Layers = kept

	insts := r.Instances[:0]
	for _, in := range r.Instances {
		if r.HasObjectLayer(in.InstanceLayerName) {
			insts = append(insts, in)
		}
	}
	r.Instances = insts
	if r.Instances == nil {
		r.Instances = []Instance{}
	}
}

// dedupeTiles keeps the last tile written for each cell, preserving the
// position of the first occurrence so paint order stays stable.
func (l *Layer) dedupeTiles() {
	at := make(map[[2]int]int, len(l.Tiles))
	out := l.Tiles[:0]
	for _, t := range l.Tiles {
		key := [2]int{t.X, t.Y}
		if i, ok := at[key]; ok {
			out[i].Index = t.Index
			continue
		}
		at[key] = len(out)
		out = append(out, t)
	}
	l.Tiles = out
}
