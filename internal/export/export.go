// Package export renders a room snapshot into a target document for
// game engines. It consumes a read-only room and the external object
// catalog; the engine itself never depends on the export format.
package export

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dshills/roomstorm/internal/engine/document"
)

// ObjectDefinition describes a placeable object from the external
// catalog.
type ObjectDefinition struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
	Sprite string `json:"sprite,omitempty"`
}

// Catalog maps object names to their definitions.
type Catalog map[string]ObjectDefinition

// Placement is an instance resolved against the catalog.
type Placement struct {
	Layer      string           `json:"layer"`
	X          int              `json:"x"`
	Y          int              `json:"y"`
	Definition ObjectDefinition `json:"definition"`
}

// LayerExport is one layer with its tiles in deterministic order.
type LayerExport struct {
	Name    string          `json:"name"`
	Depth   int             `json:"depth"`
	Type    string          `json:"type"`
	Visible bool            `json:"visible"`
	Texture string          `json:"texture,omitempty"`
	Tiles   []document.Tile `json:"tiles"`
}

// Document is the exported form of a room.
type Document struct {
	Name       string        `json:"name"`
	Index      string        `json:"index"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Type       string        `json:"type,omitempty"`
	Biome      string        `json:"biome,omitempty"`
	Chance     *int          `json:"chance,omitempty"`
	Layers     []LayerExport `json:"layers"`
	Placements []Placement   `json:"placements"`
}

// Export resolves a room snapshot against the object catalog. Layer
// order is preserved (it is the paint order); tiles are sorted by row
// then column so output is reproducible. An instance naming an object
// absent from the catalog is an error: the target engine could not
// spawn it.
func Export(r *document.Room, catalog Catalog) (*Document, error) {
	doc := &Document{
		Name:   r.Name,
		Index:  r.Index,
		Width:  r.Width,
		Height: r.Height,
		Type:   r.Type,
		Biome:  r.Biome,
		Chance: r.Chance,
	}

	for _, l := range r.Layers {
		tiles := append([]document.Tile(nil), l.Tiles...)
		sort.Slice(tiles, func(i, j int) bool {
			if tiles[i].Y != tiles[j].Y {
				return tiles[i].Y < tiles[j].Y
			}
			return tiles[i].X < tiles[j].X
		})
		doc.Layers = append(doc.Layers, LayerExport{
			Name:    l.Name,
			Depth:   l.Depth,
			Type:    string(l.Type),
			Visible: l.Visible,
			Texture: l.Texture,
			Tiles:   tiles,
		})
	}

	for _, in := range r.Instances {
		def, ok := catalog[in.ObjName]
		if !ok {
			return nil, fmt.Errorf("object %q not in catalog", in.ObjName)
		}
		doc.Placements = append(doc.Placements, Placement{
			Layer:      in.InstanceLayerName,
			X:          in.X,
			Y:          in.Y,
			Definition: def,
		})
	}
	sort.Slice(doc.Placements, func(i, j int) bool {
		a, b := doc.Placements[i], doc.Placements[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	return doc, nil
}

// Marshal renders the export document as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
