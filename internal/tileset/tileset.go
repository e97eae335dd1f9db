// Package tileset reports texture dimensions to the editing UI. The
// engine treats a texture as an opaque string; this catalog maps that
// string to decoded pixel dimensions so selection UIs can bound tile
// indices.
package tileset

import (
	"errors"
	"image"
	"io"
	"os"
	"sync"

	_ "image/gif"  // decoder registration
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
)

// ErrUnknownTexture is returned for textures never registered.
var ErrUnknownTexture = errors.New("unknown texture")

// Dimensions is a texture's pixel size.
type Dimensions struct {
	Width  int
	Height int
}

// Catalog maps texture names to their dimensions.
type Catalog struct {
	mu       sync.RWMutex
	textures map[string]Dimensions
}

func NewCatalog() *Catalog {
	return &Catalog{textures: make(map[string]Dimensions)}
}

// Register records a texture's dimensions.
func (c *Catalog) Register(name string, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textures[name] = Dimensions{Width: width, Height: height}
}

// RegisterReader decodes the image header from r and registers the
// texture under name.
func (c *Catalog) RegisterReader(name string, r io.Reader) error {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return err
	}
	c.Register(name, cfg.Width, cfg.Height)
	return nil
}

// RegisterFile decodes the image header of the file at path and
// registers it under name.
func (c *Catalog) RegisterFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return c.RegisterReader(name, f)
}

// Dimensions returns the registered size of a texture.
func (c *Catalog) Dimensions(name string) (Dimensions, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.textures[name]
	if !ok {
		return Dimensions{}, ErrUnknownTexture
	}
	return d, nil
}

// TileCount returns how many tile cells of the given size fit in the
// texture, the upper bound for valid tile indices.
func (c *Catalog) TileCount(name string, tileSize int) (int, error) {
	d, err := c.Dimensions(name)
	if err != nil {
		return 0, err
	}
	if tileSize <= 0 {
		return 0, nil
	}
	return (d.Width / tileSize) * (d.Height / tileSize), nil
}
