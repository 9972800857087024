// Command umbra-snapshot renders a scene to a PNG without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/umbra/internal/game"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/render/snapshot"
	"chosenoffset.com/umbra/internal/simulation"
)

func main() {
	configPath := flag.String("config", "data/config.json", "Simulation config file")
	dataDir := flag.String("data", "data/scenes", "Scene directory")
	sceneName := flag.String("scene", "", "Scene name or file (default: first scene found)")
	random := flag.Bool("random", false, "Generate a random scene instead of loading one")
	seed := flag.Int64("seed", 0, "Random scene seed (0 = use current time)")
	output := flag.String("output", "snapshot.png", "Output file")
	ticks := flag.Int("ticks", 1, "Simulation ticks to run before drawing")
	flag.Parse()

	opts := game.SceneOptions{
		DataDir: *dataDir,
		Scene:   *sceneName,
		Random:  *random,
		Seed:    *seed,
	}
	if err := run(*configPath, opts, *output, *ticks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, opts game.SceneOptions, output string, ticks int) error {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := logging.Install(os.Stderr, cfg.Logging.Level); err != nil {
		return err
	}

	world, err := game.Open(cfg, opts)
	if err != nil {
		return err
	}

	g := game.NewGame(world, cfg, snapshot.NewRenderer(), nil)
	for i := 0; i < max(ticks, 1); i++ {
		if err := g.Update(); err != nil {
			return err
		}
	}

	img := snapshot.NewImage(cfg.Viewport.Width, cfg.Viewport.Height)
	g.Draw(img)
	if err := img.SavePNG(output); err != nil {
		return err
	}

	fmt.Printf("Snapshot saved to %s (%dx%d, %d hidden)\n",
		output, cfg.Viewport.Width, cfg.Viewport.Height, g.LastStats.Hidden)
	return nil
}
