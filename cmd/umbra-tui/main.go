// Command umbra-tui runs the simulation in a terminal.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/umbra/internal/game"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/render/terminal"
	"chosenoffset.com/umbra/internal/simulation"
)

func main() {
	configPath := flag.String("config", "data/config.json", "Simulation config file")
	dataDir := flag.String("data", "data/scenes", "Scene directory")
	sceneName := flag.String("scene", "", "Scene name or file (default: first scene found)")
	random := flag.Bool("random", false, "Generate a random scene instead of loading one")
	seed := flag.Int64("seed", 0, "Random scene seed (0 = use current time)")
	logPath := flag.String("log", "", "Log file (the terminal is busy drawing)")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	if err := logging.Install(logOut, cfg.Logging.Level); err != nil {
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	input := terminal.NewInput()
	engine := terminal.NewEngine(screen, input, game.DefaultTPS)
	engine.SetWindowTitle("Umbra")

	g := game.NewGame(world, cfg, terminal.NewRenderer(), input)
	if err := engine.RunGame(g); err != nil && !errors.Is(err, game.ErrQuit) {
		log.Fatal(err)
	}
}
