package tileset

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRegisterAndLookup(t *testing.T) {
	c := NewCatalog()
	c.Register("tiles.png", 128, 64)

	d, err := c.Dimensions("tiles.png")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if d.Width != 128 || d.Height != 64 {
		t.Errorf("dimensions = %+v", d)
	}

	if _, err := c.Dimensions("ghost.png"); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("unknown texture = %v, want ErrUnknownTexture", err)
	}
}

func TestRegisterReader(t *testing.T) {
	c := NewCatalog()
	if err := c.RegisterReader("tiles.png", bytes.NewReader(pngBytes(t, 96, 32))); err != nil {
		t.Fatalf("RegisterReader: %v", err)
	}
	d, err := c.Dimensions("tiles.png")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if d.Width != 96 || d.Height != 32 {
		t.Errorf("dimensions = %+v, want 96x32", d)
	}

	if err := c.RegisterReader("bad", bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("garbage data should fail to decode")
	}
}

func TestTileCount(t *testing.T) {
	c := NewCatalog()
	c.Register("tiles.png", 128, 64)

	tests := []struct {
		size, want int
	}{
		{16, 32},
		{32, 8},
		{64, 2},
		{100, 0},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := c.TileCount("tiles.png", tt.size)
		if err != nil {
			t.Fatalf("TileCount(%d): %v", tt.size, err)
		}
		if got != tt.want {
			t.Errorf("TileCount(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
