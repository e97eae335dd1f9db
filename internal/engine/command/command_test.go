package command

import (
	"errors"
	"testing"

	"github.com/dshills/roomstorm/internal/engine/document"
)

func intp(v int) *int { return &v }

func testRoom() *document.Room {
	r := document.New("cavern", 800, 600)
	ground := &document.Layer{Name: "Ground", Type: document.LayerTile, Visible: true, Texture: "tiles.png", Tiles: []document.Tile{}}
	ground.SetTile(16, 16, 3)
	ground.SetTile(32, 16, 4)
	objects := &document.Layer{Name: "Objects", Depth: 10, Type: document.LayerObject, Visible: true, Tiles: []document.Tile{}}
	r.Layers = append(r.Layers, ground, objects)
	r.Instances = append(r.Instances,
		document.Instance{InstanceLayerName: "Objects", ObjName: "chest", X: 64, Y: 128},
		document.Instance{InstanceLayerName: "Objects", ObjName: "lamp", X: 700, Y: 500},
	)
	return r
}

// roundTrip applies cmd, reverts it, and checks the result matches the
// original room exactly.
func roundTrip(t *testing.T, cmd Command, r *document.Room) {
	t.Helper()
	after, err := cmd.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if r.Equal(after) {
		t.Fatal("Apply should change the room")
	}
	back, err := cmd.Revert(after)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !r.Equal(back) {
		t.Error("Revert should restore the original room")
	}
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"rename room", NewRenameRoom("grotto")},
		{"resize", NewResizeRoom(400, 300)},
		{"room type", NewUpdateRoomType("dungeon")},
		{"room biome", NewUpdateRoomBiome("cave")},
		{"room chance", NewUpdateRoomChance(intp(40))},
		{"add layer", NewAddLayer(document.Layer{Name: "Detail", Depth: 5})},
		{"remove layer", NewRemoveLayer("Objects")},
		{"toggle visibility", NewToggleLayerVisibility("Ground")},
		{"layer type", NewUpdateLayerType("Objects", document.LayerTile)},
		{"layer texture", NewUpdateLayerTexture("Ground", "cave.png")},
		{"rename layer", NewRenameLayer("Objects", "Props")},
		{"add tile", NewAddTile("Ground", 48, 48, 9)},
		{"replace tile", NewAddTile("Ground", 16, 16, 9)},
		{"remove tile", NewRemoveTile("Ground", 16, 16)},
		{"batch", NewBatchTiles("", []TileEntry{
			{Layer: "Ground", X: 0, Y: 0, Index: intp(1)},
			{Layer: "Ground", X: 16, Y: 16, Index: nil},
		})},
		{"add instance", NewAddInstance(document.Instance{InstanceLayerName: "Objects", ObjName: "barrel", X: 10, Y: 10})},
		{"remove instance", NewRemoveInstance(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, tt.cmd, testRoom())
		})
	}
}

func TestRenameRoomUpdatesIndex(t *testing.T) {
	r := testRoom()
	after, err := NewRenameRoom("grotto").Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Index != "@ref room(grotto)" {
		t.Errorf("Index = %q, want %q", after.Index, "@ref room(grotto)")
	}
	if r.Name != "cavern" {
		t.Error("Apply mutated its argument")
	}
}

func TestResizePrunesOutOfBounds(t *testing.T) {
	r := testRoom()
	after, err := NewResizeRoom(100, 100).Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Layer("Ground").TileAt(16, 16) == nil {
		t.Error("in-bounds tile should survive the resize")
	}
	if len(after.Instances) != 1 {
		t.Errorf("instances = %d, want 1 (lamp at (700,500) pruned)", len(after.Instances))
	}
}

func TestRemoveLayerCascadesInstances(t *testing.T) {
	r := testRoom()
	cmd := NewRemoveLayer("Objects")
	after, err := cmd.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(after.Instances) != 0 {
		t.Errorf("instances = %d, want 0", len(after.Instances))
	}
	back, err := cmd.Revert(after)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if len(back.Instances) != 2 {
		t.Errorf("restored instances = %d, want 2", len(back.Instances))
	}
	if back.LayerIndex("Objects") != 1 {
		t.Errorf("restored layer position = %d, want 1", back.LayerIndex("Objects"))
	}
}

func TestRetypeLayerPrunesInstances(t *testing.T) {
	r := testRoom()
	after, err := NewUpdateLayerType("Objects", document.LayerTile).Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(after.Instances) != 0 {
		t.Errorf("instances = %d, want 0 after retype away from object", len(after.Instances))
	}
}

func TestRenameLayerRetargetsInstances(t *testing.T) {
	r := testRoom()
	after, err := NewRenameLayer("Objects", "Props").Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, in := range after.Instances {
		if in.InstanceLayerName != "Props" {
			t.Errorf("instance layer = %q, want Props", in.InstanceLayerName)
		}
	}
}

func TestNoops(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"rename to same", NewRenameRoom("cavern")},
		{"resize to same", NewResizeRoom(800, 600)},
		{"resize invalid", NewResizeRoom(0, 600)},
		{"chance out of range", NewUpdateRoomChance(intp(150))},
		{"duplicate layer", NewAddLayer(document.Layer{Name: "Ground"})},
		{"remove missing layer", NewRemoveLayer("Sky")},
		{"toggle missing layer", NewToggleLayerVisibility("Sky")},
		{"rename to taken name", NewRenameLayer("Ground", "Objects")},
		{"tile on object layer", NewAddTile("Objects", 0, 0, 1)},
		{"tile out of bounds", NewAddTile("Ground", 900, 0, 1)},
		{"tile negative index", NewAddTile("Ground", 0, 0, -1)},
		{"same tile index", NewAddTile("Ground", 16, 16, 3)},
		{"remove empty cell", NewRemoveTile("Ground", 0, 0)},
		{"empty batch", NewBatchTiles("", nil)},
		{"instance on tile layer", NewAddInstance(document.Instance{InstanceLayerName: "Ground", ObjName: "chest"})},
		{"instance out of bounds", NewAddInstance(document.Instance{InstanceLayerName: "Objects", ObjName: "chest", X: -1})},
		{"instance bad position", NewRemoveInstance(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRoom()
			if _, err := tt.cmd.Apply(r); !errors.Is(err, ErrNoop) {
				t.Errorf("Apply = %v, want ErrNoop", err)
			}
		})
	}
}

func TestRevertBeforeApply(t *testing.T) {
	if _, err := NewAddTile("Ground", 0, 0, 1).Revert(testRoom()); !errors.Is(err, ErrNotApplied) {
		t.Errorf("Revert = %v, want ErrNotApplied", err)
	}
}

func TestBatchSkipsInvalidEntries(t *testing.T) {
	r := testRoom()
	cmd := NewBatchTiles("", []TileEntry{
		{Layer: "Sky", X: 0, Y: 0, Index: intp(1)},
		{Layer: "Ground", X: 900, Y: 0, Index: intp(1)},
		{Layer: "Ground", X: 0, Y: 0, Index: intp(1)},
	})
	after, err := cmd.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Layer("Ground").TileAt(0, 0) == nil {
		t.Error("valid entry should have applied")
	}
	back, err := cmd.Revert(after)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !r.Equal(back) {
		t.Error("Revert should restore the original room")
	}
}

func TestBatchOverlappingWrites(t *testing.T) {
	r := testRoom()
	cmd := NewBatchTiles("", []TileEntry{
		{Layer: "Ground", X: 0, Y: 0, Index: intp(1)},
		{Layer: "Ground", X: 0, Y: 0, Index: intp(2)},
		{Layer: "Ground", X: 0, Y: 0, Index: nil},
	})
	after, err := cmd.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Layer("Ground").TileAt(0, 0) != nil {
		t.Error("final erase should leave the cell empty")
	}
	back, err := cmd.Revert(after)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !r.Equal(back) {
		t.Error("Revert should unwind overlapping writes")
	}
}

func TestAppliedBatchRoundTrip(t *testing.T) {
	baseline := testRoom()
	live := baseline.Clone()
	entries := []TileEntry{
		{Layer: "Ground", X: 0, Y: 0, Index: intp(5)},
		{Layer: "Ground", X: 16, Y: 0, Index: intp(5)},
	}
	for _, e := range entries {
		live.Layer(e.Layer).SetTile(e.X, e.Y, *e.Index)
	}
	cmd := NewAppliedBatch("Paint stroke", baseline, entries)

	back, err := cmd.Revert(live)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if !baseline.Equal(back) {
		t.Error("Revert should restore the baseline")
	}
	redone, err := cmd.Apply(back)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !live.Equal(redone) {
		t.Error("Apply should replay to the post-stroke state")
	}
}

func TestRemoveInstanceRestoresPosition(t *testing.T) {
	r := testRoom()
	cmd := NewRemoveInstance(0)
	after, err := cmd.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after.Instances[0].ObjName != "lamp" {
		t.Errorf("remaining instance = %q, want lamp", after.Instances[0].ObjName)
	}
	back, err := cmd.Revert(after)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if back.Instances[0].ObjName != "chest" {
		t.Errorf("restored instance[0] = %q, want chest", back.Instances[0].ObjName)
	}
}
