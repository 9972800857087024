// Package procgen generates random scenes: non-overlapping walls with guards
// and props scattered in the open space between them.
package procgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/world/maploader"
)

// ErrNoRoom is returned when the viewport is too small to place anything.
var ErrNoRoom = errors.New("not enough room to generate scene")

// placementAttempts bounds the retries for each wall, guard or prop.
const placementAttempts = 200

// GeneratorConfig holds configuration for scene generation
type GeneratorConfig struct {
	MinWalls    int     // Minimum number of walls to place
	MaxWalls    int     // Maximum number of walls to place
	MinWallSize float64 // Shortest wall side in world units
	MaxWallSize float64 // Longest wall side in world units
	Gap         float64 // Clear space kept around every wall
	NPCs        int     // Guards to place
	Objects     int     // Props to place
	ActorSize   float64 // Footprint side of player, guards and props
	Seed        int64   // Random seed (0 = use current time)
}

// DefaultConfig returns a config that fills a typical window.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		MinWalls:    6,
		MaxWalls:    12,
		MinWallSize: 20,
		MaxWallSize: 180,
		Gap:         24,
		NPCs:        3,
		Objects:     5,
		ActorSize:   14,
	}
}

// Generator handles procedural scene generation
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a new scene generator
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// box is an axis-aligned rectangle by center and half extents.
type box struct {
	x, y, hw, hh float64
}

func (b box) overlaps(o box, gap float64) bool {
	return math.Abs(b.x-o.x) < b.hw+o.hw+gap && math.Abs(b.y-o.y) < b.hh+o.hh+gap
}

// Generate creates a new scene that fits inside vp.
func (g *Generator) Generate(vp shadows.Viewport) (*maploader.SceneData, error) {
	cfg := g.config
	if vp.Width <= 4*cfg.ActorSize || vp.Height <= 4*cfg.ActorSize {
		return nil, fmt.Errorf("%w: viewport %.0fx%.0f", ErrNoRoom, vp.Width, vp.Height)
	}

	var placed []box
	spawn := g.findPlayerSpawn(vp)
	placed = append(placed, spawn)

	numWalls := cfg.MinWalls
	if cfg.MaxWalls > cfg.MinWalls {
		numWalls += g.rng.Intn(cfg.MaxWalls - cfg.MinWalls + 1)
	}

	scene := &maploader.SceneData{
		Name: "Procedurally Generated Scene",
		Player: maploader.PlayerData{
			Rect: maploader.Rect{X: spawn.x, Y: spawn.y, Width: cfg.ActorSize, Height: cfg.ActorSize},
		},
	}

	for i := 0; i < numWalls; i++ {
		w := g.between(cfg.MinWallSize, cfg.MaxWallSize)
		h := g.between(cfg.MinWallSize, cfg.MaxWallSize)
		// keep walls thin in one direction so they read as walls
		if g.rng.Intn(2) == 0 {
			w = cfg.MinWallSize
		} else {
			h = cfg.MinWallSize
		}

		b, ok := g.tryPlace(vp, w, h, placed)
		if !ok {
			logging.Logger().Debug("wall placement gave up", "wall", i)
			continue
		}
		placed = append(placed, b)
		scene.Walls = append(scene.Walls, maploader.WallData{Rect: b.rect()})
	}

	for i := 0; i < cfg.NPCs; i++ {
		b, ok := g.tryPlace(vp, cfg.ActorSize, cfg.ActorSize, placed)
		if !ok {
			continue
		}
		placed = append(placed, b)
		scene.NPCs = append(scene.NPCs, maploader.NPCData{
			Rect:    b.rect(),
			Sighted: true,
			FOV:     60 + float64(g.rng.Intn(61)),
			Range:   g.between(150, 300),
			Heading: float64(g.rng.Intn(360)),
		})
	}

	for i := 0; i < cfg.Objects; i++ {
		b, ok := g.tryPlace(vp, cfg.ActorSize, cfg.ActorSize, placed)
		if !ok {
			continue
		}
		placed = append(placed, b)
		scene.Objects = append(scene.Objects, b.rect())
	}

	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("generated scene: %w", err)
	}

	logging.Logger().Info("scene generated",
		"walls", len(scene.Walls), "npcs", len(scene.NPCs), "objects", len(scene.Objects))
	return scene, nil
}

func (b box) rect() maploader.Rect {
	return maploader.Rect{X: b.x, Y: b.y, Width: 2 * b.hw, Height: 2 * b.hh}
}

func (g *Generator) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// tryPlace picks random positions for a w x h box until one clears every
// placed box and stays inside the viewport.
func (g *Generator) tryPlace(vp shadows.Viewport, w, h float64, placed []box) (box, bool) {
	hw, hh := w/2, h/2
	maxX := vp.Width/2 - hw - g.config.Gap
	maxY := vp.Height/2 - hh - g.config.Gap
	if maxX <= 0 || maxY <= 0 {
		return box{}, false
	}

	for attempt := 0; attempt < placementAttempts; attempt++ {
		candidate := box{
			x:  math.Round(g.between(-maxX, maxX)),
			y:  math.Round(g.between(-maxY, maxY)),
			hw: hw,
			hh: hh,
		}
		if g.canPlace(candidate, placed) {
			return candidate, true
		}
	}
	return box{}, false
}

// canPlace checks if a box can be placed without overlap
func (g *Generator) canPlace(b box, placed []box) bool {
	for _, p := range placed {
		if b.overlaps(p, g.config.Gap) {
			return false
		}
	}
	return true
}

// findPlayerSpawn puts the player in the middle of the left third so the
// scene opens up in front of them.
func (g *Generator) findPlayerSpawn(vp shadows.Viewport) box {
	half := g.config.ActorSize / 2
	return box{
		x:  math.Round(-vp.Width / 3),
		y:  math.Round(g.between(-vp.Height/4, vp.Height/4)),
		hw: half,
		hh: half,
	}
}
