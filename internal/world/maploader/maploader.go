// Package maploader reads scene files and populates a scene with the walls,
// player, guards and props they describe.
package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/scene"
)

// ErrInvalidScene wraps every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Rect is an axis-aligned box given by its center and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WallData is one sight-blocking wall.
type WallData struct {
	Rect
	Visible bool `json:"visible"` // eligible to be hidden by other walls' shadows
}

// PlayerData is the player spawn.
type PlayerData struct {
	Rect
	Speed float64 `json:"speed"`
}

// NPCData is a guard or other actor.
type NPCData struct {
	Rect
	Sighted bool    `json:"sighted"`
	FOV     float64 `json:"fov"`     // degrees
	Range   float64 `json:"range"`   // world units
	Heading float64 `json:"heading"` // degrees, counter-clockwise from +X
}

// GridData describes walls as a tile grid; '#' cells block sight.
type GridData struct {
	CellSize float64  `json:"cell_size"`
	OriginX  float64  `json:"origin_x"` // world x of the grid's left edge
	OriginY  float64  `json:"origin_y"` // world y of the grid's top edge
	Rows     []string `json:"rows"`     // row 0 is the top row
}

// SceneData represents the loaded scene configuration
type SceneData struct {
	Name    string     `json:"name"`
	Player  PlayerData `json:"player"`
	Walls   []WallData `json:"walls"`
	Grid    *GridData  `json:"grid,omitempty"`
	NPCs    []NPCData  `json:"npcs"`
	Objects []Rect     `json:"objects"`
}

// Loaded lists the entities a scene file produced.
type Loaded struct {
	Player  scene.Entity
	Walls   []scene.Entity
	NPCs    []scene.Entity
	Objects []scene.Entity
}

// LoadScene loads a scene from a JSON file
func LoadScene(path string) (*SceneData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	sceneData, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file %s: %w", path, err)
	}
	return sceneData, nil
}

// ParseScene decodes and validates scene JSON.
func ParseScene(data []byte) (*SceneData, error) {
	var sceneData SceneData
	if err := json.Unmarshal(data, &sceneData); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := sceneData.Validate(); err != nil {
		return nil, err
	}
	return &sceneData, nil
}

// Validate checks record sizes and the player spawn.
func (d *SceneData) Validate() error {
	if err := validateSceneData(d); err != nil {
		return err
	}
	return validateSpawn(d)
}

// validateSceneData checks if the scene data is valid
func validateSceneData(data *SceneData) error {
	if data.Player.Width <= 0 || data.Player.Height <= 0 {
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidScene, data.Player.Width, data.Player.Height)
	}
	if data.Player.Speed < 0 {
		return fmt.Errorf("%w: negative player speed", ErrInvalidScene)
	}

	for i, w := range data.Walls {
		if w.Width <= 0 || w.Height <= 0 {
			return fmt.Errorf("%w: wall %d size %vx%v", ErrInvalidScene, i, w.Width, w.Height)
		}
	}

	for i, n := range data.NPCs {
		if n.Width <= 0 || n.Height <= 0 {
			return fmt.Errorf("%w: npc %d size %vx%v", ErrInvalidScene, i, n.Width, n.Height)
		}
		if n.FOV < 0 || n.FOV > 360 {
			return fmt.Errorf("%w: npc %d field of view %v", ErrInvalidScene, i, n.FOV)
		}
	}

	for i, o := range data.Objects {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("%w: object %d size %vx%v", ErrInvalidScene, i, o.Width, o.Height)
		}
	}

	if data.Grid != nil {
		if data.Grid.CellSize <= 0 {
			return fmt.Errorf("%w: grid cell size %v", ErrInvalidScene, data.Grid.CellSize)
		}
		for y, row := range data.Grid.Rows {
			if len(row) != len(data.Grid.Rows[0]) {
				return fmt.Errorf("%w: grid row %d width mismatch: expected %d, got %d",
					ErrInvalidScene, y, len(data.Grid.Rows[0]), len(row))
			}
		}
	}

	return nil
}

// validateSpawn rejects a player standing on a wall corner, where the corner
// has no direction to be projected along.
func validateSpawn(data *SceneData) error {
	spawn := shadows.Point{X: data.Player.X, Y: data.Player.Y}
	for i, w := range data.WallRects() {
		o, err := shadows.OccluderFromRect(shadows.Point{X: w.X, Y: w.Y}, w.Width, w.Height)
		if err != nil {
			return fmt.Errorf("%w: wall %d: %v", ErrInvalidScene, i, err)
		}
		if o.HasCorner(spawn) {
			return fmt.Errorf("%w: player spawn (%v, %v) is on a corner of wall %d",
				ErrInvalidScene, spawn.X, spawn.Y, i)
		}
	}
	return nil
}

// WallRects returns every wall rectangle, explicit walls first, then the
// merged grid blocks.
func (d *SceneData) WallRects() []WallData {
	walls := append([]WallData(nil), d.Walls...)
	if d.Grid != nil {
		for _, r := range d.Grid.Rects() {
			walls = append(walls, WallData{Rect: r})
		}
	}
	return walls
}

// Populate validates the scene and spawns its entities into sc.
func (d *SceneData) Populate(sc *scene.Scene) (*Loaded, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	loaded := &Loaded{}

	for i, w := range d.WallRects() {
		center := shadows.Point{X: w.X, Y: w.Y}
		occluder, err := shadows.OccluderFromRect(center, w.Width, w.Height)
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		e := sc.Spawn(scene.KindWall, scene.At(w.X, w.Y))
		sc.SetOccluder(e, occluder)
		sc.Footprints.Set(e, scene.Footprint{Width: w.Width, Height: w.Height})
		if w.Visible {
			sc.Visible.Set(e, scene.Visible{})
		}
		loaded.Walls = append(loaded.Walls, e)
	}

	p := d.Player
	loaded.Player = sc.Spawn(scene.KindPlayer, scene.At(p.X, p.Y))
	sc.Players.Set(loaded.Player, scene.Player{})
	sc.Sighted.Set(loaded.Player, scene.Sighted{})
	sc.Visible.Set(loaded.Player, scene.Visible{})
	sc.Footprints.Set(loaded.Player, scene.Footprint{Width: p.Width, Height: p.Height})
	sc.Kinematics.Set(loaded.Player, scene.Kinematics{Speed: p.Speed})

	for _, n := range d.NPCs {
		e := sc.Spawn(scene.KindNPC, scene.At(n.X, n.Y))
		sc.Visible.Set(e, scene.Visible{})
		sc.Footprints.Set(e, scene.Footprint{Width: n.Width, Height: n.Height})
		if n.Sighted {
			sc.Sighted.Set(e, scene.Sighted{
				FOV:     degrees(n.FOV),
				Range:   n.Range,
				Heading: degrees(n.Heading),
			})
		}
		loaded.NPCs = append(loaded.NPCs, e)
	}

	for _, o := range d.Objects {
		e := sc.Spawn(scene.KindObject, scene.At(o.X, o.Y))
		sc.Visible.Set(e, scene.Visible{})
		sc.Footprints.Set(e, scene.Footprint{Width: o.Width, Height: o.Height})
		loaded.Objects = append(loaded.Objects, e)
	}

	logging.Logger().Info("scene populated", "name", d.Name,
		"walls", len(loaded.Walls), "npcs", len(loaded.NPCs), "objects", len(loaded.Objects))
	return loaded, nil
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}
