package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"chosenoffset.com/umbra/internal/game"
	"chosenoffset.com/umbra/internal/logging"
	ebitenrender "chosenoffset.com/umbra/internal/render/ebiten"
	"chosenoffset.com/umbra/internal/simulation"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "data/config.json", "Simulation config file")
	dataDir := flag.String("data", "data/scenes", "Scene directory")
	sceneName := flag.String("scene", "", "Scene name or file (default: first scene found)")
	random := flag.Bool("random", false, "Generate a random scene instead of loading one")
	seed := flag.Int64("seed", 0, "Random scene seed (0 = use current time)")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Install(os.Stderr, cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	world, err := game.Open(cfg, game.SceneOptions{
		DataDir: *dataDir,
		Scene:   *sceneName,
		Random:  *random,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.NewGame(world, cfg, renderer, inputMgr)
	g.TrackWindow = true

	// Set up the window
	engine.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	engine.SetWindowTitle("Umbra")
	engine.SetWindowResizable(true)

	log.Println("Starting simulation...")
	if err := engine.RunGame(g); err != nil && !errors.Is(err, game.ErrQuit) {
		log.Fatal(err)
	}
}
