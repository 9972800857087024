package procgen

import (
	"encoding/json"
	"errors"
	"testing"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/scene"
	"chosenoffset.com/umbra/internal/world/maploader"
)

var testViewport = shadows.Viewport{Width: 1280, Height: 800}

func generate(t *testing.T, seed int64) *maploader.SceneData {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	data, err := NewGenerator(cfg).Generate(testViewport)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return data
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(t, 42)
	b := generate(t, 42)

	if len(a.Walls) != len(b.Walls) {
		t.Fatalf("Expected same wall count, got %d and %d", len(a.Walls), len(b.Walls))
	}
	for i := range a.Walls {
		if a.Walls[i] != b.Walls[i] {
			t.Errorf("Wall %d differs: %+v vs %+v", i, a.Walls[i], b.Walls[i])
		}
	}
	if a.Player != b.Player {
		t.Errorf("Player spawn differs: %+v vs %+v", a.Player, b.Player)
	}
}

func TestGenerateKeepsClearance(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		data := generate(t, seed)

		boxes := []maploader.Rect{data.Player.Rect}
		for _, w := range data.Walls {
			boxes = append(boxes, w.Rect)
		}
		for _, n := range data.NPCs {
			boxes = append(boxes, n.Rect)
		}
		boxes = append(boxes, data.Objects...)

		if len(data.Walls) < 1 {
			t.Errorf("Seed %d: expected at least one wall", seed)
		}

		for i, a := range boxes {
			if !testViewport.Contains(shadows.Point{X: a.X, Y: a.Y}) {
				t.Errorf("Seed %d: box %d at (%v, %v) outside viewport", seed, i, a.X, a.Y)
			}
			for j := i + 1; j < len(boxes); j++ {
				b := boxes[j]
				ax := box{a.X, a.Y, a.Width / 2, a.Height / 2}
				bx := box{b.X, b.Y, b.Width / 2, b.Height / 2}
				if ax.overlaps(bx, cfg.Gap) {
					t.Errorf("Seed %d: boxes %d and %d overlap", seed, i, j)
				}
			}
		}
	}
}

func TestGeneratedScenePopulates(t *testing.T) {
	data := generate(t, 7)
	if _, err := maploader.ParseScene(mustJSON(t, data)); err != nil {
		t.Fatalf("Generated scene does not validate: %v", err)
	}

	sc := scene.New()
	loaded, err := data.Populate(sc)
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	if sc.Occluders.Len() != len(loaded.Walls) {
		t.Errorf("Expected %d occluders, got %d", len(loaded.Walls), sc.Occluders.Len())
	}
}

func TestGenerateRejectsTinyViewport(t *testing.T) {
	_, err := NewGenerator(DefaultConfig()).Generate(shadows.Viewport{Width: 30, Height: 30})
	if !errors.Is(err, ErrNoRoom) {
		t.Errorf("Expected ErrNoRoom, got %v", err)
	}
}

func mustJSON(t *testing.T, data *maploader.SceneData) []byte {
	t.Helper()
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal scene: %v", err)
	}
	return b
}
