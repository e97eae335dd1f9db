package document

import (
	"encoding/json"
	"fmt"
)

// layerJSON mirrors Layer with optional fields so that documents written
// by older tools, which omit type and visible, load with the documented
// defaults (tile / true).
type layerJSON struct {
	Name    string  `json:"name"`
	Depth   int     `json:"depth"`
	Type    *string `json:"type"`
	Visible *bool   `json:"visible"`
	Texture string  `json:"texture,omitempty"`
	Tiles   []Tile  `json:"tiles"`
}

// UnmarshalJSON decodes a layer, defaulting missing type/visible fields.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var raw layerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Name = raw.Name
	l.Depth = raw.Depth
	l.Texture = raw.Texture
	l.Tiles = raw.Tiles
	if l.Tiles == nil {
		l.Tiles = []Tile{}
	}
	l.Type = LayerTile
	if raw.Type != nil {
		l.Type = LayerType(*raw.Type)
	}
	l.Visible = true
	if raw.Visible != nil {
		l.Visible = *raw.Visible
	}
	return nil
}

// Marshal encodes the room in the interchange schema.
func Marshal(r *Room) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode room %q: %w", r.Name, err)
	}
	return data, nil
}

// Unmarshal decodes a room from the interchange schema, applying layer
// defaults and repairing invariants.
func Unmarshal(data []byte) (*Room, error) {
	var r Room
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode room: %w", err)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("decode room %q: invalid dimensions %dx%d", r.Name, r.Width, r.Height)
	}
	if r.Layers == nil {
		r.Layers = []*Layer{}
	}
	r.Normalize()
	return &r, nil
}
