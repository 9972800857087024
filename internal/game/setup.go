package game

import (
	"fmt"

	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/simulation"
	"chosenoffset.com/umbra/internal/world/maploader"
	"chosenoffset.com/umbra/internal/world/procgen"
	"chosenoffset.com/umbra/internal/world/scenescanner"
)

// Load resolves and loads a scene and builds its world. scene is a file path
// or a scene name under dataPath; empty picks the first.
func Load(cfg *simulation.Config, dataPath, scene string) (*World, error) {
	path, err := scenescanner.Resolve(dataPath, scene)
	if err != nil {
		return nil, err
	}

	data, err := maploader.LoadScene(path)
	if err != nil {
		return nil, err
	}

	world, err := NewWorld(cfg, data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	logging.Logger().Info("scene loaded", "path", path, "policy", world.Policy())
	return world, nil
}

// SceneOptions selects where a world's scene comes from.
type SceneOptions struct {
	DataDir string
	Scene   string
	Random  bool  // generate a scene instead of loading one
	Seed    int64 // generator seed, 0 for time-based
}

// Open builds a world from a scene file or a generated scene.
func Open(cfg *simulation.Config, opts SceneOptions) (*World, error) {
	if !opts.Random {
		return Load(cfg, opts.DataDir, opts.Scene)
	}

	genCfg := procgen.DefaultConfig()
	genCfg.Seed = opts.Seed
	data, err := procgen.NewGenerator(genCfg).Generate(cfg.ViewportSize())
	if err != nil {
		return nil, err
	}
	return NewWorld(cfg, data)
}
