package brush

import (
	"errors"
	"testing"

	"github.com/dshills/roomstorm/internal/engine/document"
)

func groundLayer() *document.Layer {
	l := &document.Layer{Name: "Ground", Type: document.LayerTile, Visible: true, Texture: "tiles.png"}
	l.SetTile(32, 32, 1)
	l.SetTile(48, 32, 2)
	l.SetTile(32, 48, 3)
	l.SetTile(48, 48, 4)
	return l
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		v, size, want int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 16},
		{100, 16, 96},
		{-1, 16, -16},
		{-16, 16, -16},
		{-17, 16, -32},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := SnapToGrid(tt.v, tt.size); got != tt.want {
			t.Errorf("SnapToGrid(%d, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestFromSelection(t *testing.T) {
	b, err := FromSelection(groundLayer(), 32, 32, 32, 32, 16)
	if err != nil {
		t.Fatalf("FromSelection: %v", err)
	}
	if b.Width != 2 || b.Height != 2 {
		t.Errorf("bbox = %dx%d, want 2x2", b.Width, b.Height)
	}
	if b.OffsetX != 1 || b.OffsetY != 1 {
		t.Errorf("offset = (%d,%d), want (1,1)", b.OffsetX, b.OffsetY)
	}
	if b.Texture != "tiles.png" {
		t.Errorf("texture = %q", b.Texture)
	}
	want := map[[2]int]int{{0, 0}: 1, {1, 0}: 2, {0, 1}: 3, {1, 1}: 4}
	if len(b.Tiles) != len(want) {
		t.Fatalf("tiles = %d, want %d", len(b.Tiles), len(want))
	}
	for _, tile := range b.Tiles {
		if idx, ok := want[[2]int{tile.X, tile.Y}]; !ok || idx != tile.Index {
			t.Errorf("unexpected tile %+v", tile)
		}
	}
}

func TestFromSelectionPartial(t *testing.T) {
	// Only the right column falls inside the selection.
	b, err := FromSelection(groundLayer(), 48, 32, 16, 32, 16)
	if err != nil {
		t.Fatalf("FromSelection: %v", err)
	}
	if len(b.Tiles) != 2 {
		t.Fatalf("tiles = %d, want 2", len(b.Tiles))
	}
	for _, tile := range b.Tiles {
		if tile.X != 0 {
			t.Errorf("tile x = %d, want 0 after rebase", tile.X)
		}
	}
	if b.Width != 1 || b.Height != 2 {
		t.Errorf("bbox = %dx%d, want 1x2", b.Width, b.Height)
	}
}

func TestFromSelectionEmpty(t *testing.T) {
	if _, err := FromSelection(groundLayer(), 200, 200, 32, 32, 16); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection", err)
	}
}

func TestStampCenterOffset(t *testing.T) {
	r := document.New("cavern", 800, 600)
	r.Layers = append(r.Layers, groundLayer())
	b, err := FromSelection(r.Layer("Ground"), 32, 32, 32, 32, 16)
	if err != nil {
		t.Fatalf("FromSelection: %v", err)
	}

	entries := b.Stamp(r, "Ground", 100, 100, 16)
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	// Hot-spot (1,1) pulls the top-left corner back one cell.
	wantTopLeft := [2]int{84, 84}
	minX, minY := entries[0].X, entries[0].Y
	for _, e := range entries {
		if e.X < minX {
			minX = e.X
		}
		if e.Y < minY {
			minY = e.Y
		}
	}
	if minX != wantTopLeft[0] || minY != wantTopLeft[1] {
		t.Errorf("top-left = (%d,%d), want (84,84)", minX, minY)
	}
}

func TestStampDiscardsOutOfBounds(t *testing.T) {
	r := document.New("tiny", 100, 100)
	r.Layers = append(r.Layers, groundLayer())
	b, err := FromSelection(r.Layer("Ground"), 32, 32, 32, 32, 16)
	if err != nil {
		t.Fatalf("FromSelection: %v", err)
	}

	// Top-left lands at (96,96); only that tile stays inside 100x100.
	entries := b.Stamp(r, "Ground", 112, 112, 16)
	for _, e := range entries {
		if !r.InBounds(e.X, e.Y) {
			t.Errorf("entry (%d,%d) is out of bounds", e.X, e.Y)
		}
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1 survivor", len(entries))
	}
}

func TestLibraryCRUD(t *testing.T) {
	lib := NewLibrary()
	b, _ := FromSelection(groundLayer(), 32, 32, 32, 32, 16)
	lib.Put("checker", b)
	lib.Put("checker2", b)

	got, err := lib.Get("checker")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "checker" {
		t.Errorf("name = %q, want checker", got.Name)
	}
	got.Tiles[0].Index = 99
	again, _ := lib.Get("checker")
	if again.Tiles[0].Index == 99 {
		t.Error("Get should hand out copies")
	}

	if names := lib.Names(); len(names) != 2 || names[0] != "checker" {
		t.Errorf("Names = %v", names)
	}
	if !lib.Delete("checker2") {
		t.Error("Delete should report removal")
	}
	if lib.Delete("checker2") {
		t.Error("second Delete should report false")
	}
	if _, err := lib.Get("checker2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted = %v, want ErrNotFound", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	lib := NewLibrary()
	b, _ := FromSelection(groundLayer(), 32, 32, 32, 32, 16)
	lib.Put("checker", b)

	data, err := lib.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := NewLibrary()
	n, err := other.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("imported = %d, want 1", n)
	}
	got, err := other.Get("checker")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Width != b.Width || got.Height != b.Height || got.Texture != b.Texture ||
		got.OffsetX != b.OffsetX || got.OffsetY != b.OffsetY || len(got.Tiles) != len(b.Tiles) {
		t.Errorf("round trip mismatch: %+v vs %+v", got, b)
	}
}

func TestImportPartiallyValid(t *testing.T) {
	data := []byte(`[
		{"name": "good", "tiles": [{"x":0,"y":0,"index":1}], "width": 1, "height": 1, "texture": "t.png"},
		{"name": "no-tiles", "width": 1, "height": 1, "texture": "t.png"},
		{"id": "by-id", "tiles": [], "width": 2, "height": 2, "texture": "u.png", "offset_x": 1, "offset_y": 1}
	]`)
	lib := NewLibrary()
	n, err := lib.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
	if _, err := lib.Get("no-tiles"); !errors.Is(err, ErrNotFound) {
		t.Error("invalid entry should be dropped")
	}
	byID, err := lib.Get("by-id")
	if err != nil {
		t.Fatalf("Get by-id: %v", err)
	}
	if byID.OffsetX != 1 || byID.OffsetY != 1 {
		t.Errorf("offset = (%d,%d), want (1,1)", byID.OffsetX, byID.OffsetY)
	}
}

func TestImportRejectsNonArrayAndAllInvalid(t *testing.T) {
	lib := NewLibrary()
	b, _ := FromSelection(groundLayer(), 32, 32, 32, 32, 16)
	lib.Put("keep", b)

	tests := []struct {
		name string
		data string
	}{
		{"object", `{}`},
		{"garbage", `not json`},
		{"all invalid", `[{"width": 1}, 42]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := lib.Import([]byte(tt.data)); !errors.Is(err, ErrInvalidLibrary) {
				t.Errorf("Import = %v, want ErrInvalidLibrary", err)
			}
			if lib.Len() != 1 {
				t.Errorf("library should be untouched, len = %d", lib.Len())
			}
		})
	}
}
