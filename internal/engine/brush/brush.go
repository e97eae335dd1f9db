// Package brush derives reusable tile stamps from selections and
// replays them at anchor positions. Brush tiles are stored in
// grid-cell units relative to the brush's top-left corner; the
// hot-spot offset is in cells too.
package brush

import (
	"errors"

	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/document"
)

var (
	// ErrEmptySelection indicates the selection contained no tiles.
	ErrEmptySelection = errors.New("selection contains no tiles")

	// ErrNotFound indicates the named brush is not in the library.
	ErrNotFound = errors.New("brush not found")

	// ErrInvalidLibrary indicates import data yielded no usable brushes.
	ErrInvalidLibrary = errors.New("invalid brush library data")
)

// Brush is a rectangular stamp of tiles plus a hot-spot.
type Brush struct {
	Name    string          `json:"name"`
	Tiles   []document.Tile `json:"tiles"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Texture string          `json:"texture"`
	OffsetX int             `json:"offset_x"`
	OffsetY int             `json:"offset_y"`
}

// SnapToGrid snaps a pixel coordinate to the nearest lower grid line.
func SnapToGrid(v, tileSize int) int {
	if tileSize <= 0 {
		return v
	}
	if v < 0 {
		return -(((-v) + tileSize - 1) / tileSize) * tileSize
	}
	return (v / tileSize) * tileSize
}

// FromSelection builds a brush from the tiles of a layer inside the
// selection rectangle (pixel units). Tile coordinates are rebased to
// the minimum corner of the collected tiles and converted to cells.
// The hot-spot defaults to the center of the bounding box.
func FromSelection(l *document.Layer, selX, selY, selW, selH, tileSize int) (*Brush, error) {
	if l == nil || tileSize <= 0 || selW <= 0 || selH <= 0 {
		return nil, ErrEmptySelection
	}

	var picked []document.Tile
	minX, minY := 0, 0
	for _, t := range l.Tiles {
		if t.X < selX || t.X >= selX+selW || t.Y < selY || t.Y >= selY+selH {
			continue
		}
		if len(picked) == 0 || t.X < minX {
			minX = t.X
		}
		if len(picked) == 0 || t.Y < minY {
			minY = t.Y
		}
		picked = append(picked, t)
	}
	if len(picked) == 0 {
		return nil, ErrEmptySelection
	}

	tiles := make([]document.Tile, len(picked))
	for i, t := range picked {
		tiles[i] = document.Tile{
			X:     (t.X - minX) / tileSize,
			Y:     (t.Y - minY) / tileSize,
			Index: t.Index,
		}
	}

	w := (selW + tileSize - 1) / tileSize
	h := (selH + tileSize - 1) / tileSize
	return &Brush{
		Tiles:   tiles,
		Width:   w,
		Height:  h,
		Texture: l.Texture,
		OffsetX: w / 2,
		OffsetY: h / 2,
	}, nil
}

// Stamp places the brush with its hot-spot at the snapped anchor
// (pixel units) and returns one batch entry per tile that lands inside
// the room. The brush's top-left corner ends up at
// anchor - offset*tileSize.
func (b *Brush) Stamp(r *document.Room, layer string, anchorX, anchorY, tileSize int) []command.TileEntry {
	topX := anchorX - b.OffsetX*tileSize
	topY := anchorY - b.OffsetY*tileSize

	var entries []command.TileEntry
	for _, t := range b.Tiles {
		x := topX + t.X*tileSize
		y := topY + t.Y*tileSize
		if !r.InBounds(x, y) {
			continue
		}
		idx := t.Index
		entries = append(entries, command.TileEntry{Layer: layer, X: x, Y: y, Index: &idx})
	}
	return entries
}

// Clone returns a deep copy of the brush.
func (b *Brush) Clone() *Brush {
	c := *b
	c.Tiles = append([]document.Tile(nil), b.Tiles...)
	return &c
}
