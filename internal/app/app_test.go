package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/roomstorm/internal/engine/command"
	"github.com/dshills/roomstorm/internal/engine/document"
)

func testApp(t *testing.T) *Application {
	t.Helper()
	a, err := New(Options{StoreDriver: "memory", LogLevel: "error"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func TestNewRoomPersistsAndOpens(t *testing.T) {
	a := testApp(t)

	tab, err := a.NewRoom("cavern", 800, 600)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	if a.Tabs().Active() != tab {
		t.Error("new room should open in the active tab")
	}
	if _, err := a.Rooms().Load("cavern"); err != nil {
		t.Errorf("room should be persisted: %v", err)
	}

	if _, err := a.NewRoom("cavern", 100, 100); !errors.Is(err, ErrRoomExists) {
		t.Errorf("duplicate NewRoom = %v, want ErrRoomExists", err)
	}
}

func TestOpenRoom(t *testing.T) {
	a := testApp(t)
	if _, err := a.NewRoom("cavern", 800, 600); err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	if _, err := a.NewRoom("hall", 400, 300); err != nil {
		t.Fatalf("NewRoom: %v", err)
	}

	tab, err := a.OpenRoom("cavern")
	if err != nil {
		t.Fatalf("OpenRoom: %v", err)
	}
	if a.Tabs().Active() != tab || tab.Name() != "cavern" {
		t.Error("OpenRoom should activate the room's tab")
	}
	if a.Tabs().Count() != 2 {
		t.Errorf("Count = %d, want 2 (no duplicate tab)", a.Tabs().Count())
	}

	if _, err := a.OpenRoom("ghost"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("OpenRoom missing = %v, want ErrRoomNotFound", err)
	}
}

func TestSaveActiveRoundTrip(t *testing.T) {
	a := testApp(t)
	tab, err := a.NewRoom("cavern", 800, 600)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}

	if err := tab.Engine.Apply(command.NewAddLayer(document.Layer{Name: "Ground"})); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	if err := tab.Engine.PaintTile("Ground", 16, 16, 3); err != nil {
		t.Fatalf("PaintTile: %v", err)
	}
	tab.SetModified(true)
	if err := a.SaveActive(); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}
	if tab.IsModified() {
		t.Error("save should clear the modified flag")
	}

	stored, err := a.Rooms().Load("cavern")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !stored.Equal(tab.Engine.Snapshot()) {
		t.Error("stored room should match the live room")
	}
}

func TestEngineUsesConfiguredGrid(t *testing.T) {
	t.Setenv("ROOMSTORM_TILE_SIZE", "32")
	a := testApp(t)
	tab, err := a.NewRoom("cavern", 800, 600)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	if tab.Engine.TileSize() != 32 {
		t.Errorf("TileSize = %d, want 32 from config", tab.Engine.TileSize())
	}
}

func TestExportRoom(t *testing.T) {
	a := testApp(t)
	if _, err := a.NewRoom("cavern", 800, 600); err != nil {
		t.Fatalf("NewRoom: %v", err)
	}

	data, err := a.ExportRoom("cavern")
	if err != nil {
		t.Fatalf("ExportRoom: %v", err)
	}
	if !strings.Contains(string(data), `"name": "cavern"`) {
		t.Errorf("export missing room name: %s", data)
	}

	if _, err := a.ExportRoom("ghost"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("ExportRoom missing = %v, want ErrRoomNotFound", err)
	}
}

func TestBadStoreDriverFailsBootstrap(t *testing.T) {
	_, err := New(Options{StoreDriver: "bogus"})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "store" {
		t.Errorf("New = %v, want store InitError", err)
	}
}
