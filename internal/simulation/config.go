// Package simulation provides configuration for the visibility simulation.
// Values are loaded from a JSON file so each scene can tune its own presentation.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/sight"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds all simulation settings
type Config struct {
	Display    DisplayConfig    `json:"display"`
	Visibility VisibilityConfig `json:"visibility"`
	Viewport   ViewportConfig   `json:"viewport"`
	Movement   MovementConfig   `json:"movement"`
	Logging    LoggingConfig    `json:"logging"`
}

// DisplayConfig gates which derived geometry is drawn. Shadows are always
// computed; these flags only decide what gets materialized on screen.
type DisplayConfig struct {
	Occluders    bool `json:"occluders"`      // outline bars around each occluder
	Shadows      bool `json:"shadows"`        // shadow quads
	Rays         bool `json:"rays"`           // player rays through occluder corners
	Centroids    bool `json:"centroids"`      // centroid marker per shadow quad
	FieldsOfView bool `json:"fields_of_view"` // view cones of sighted entities
}

// VisibilityConfig selects the single active visibility policy.
type VisibilityConfig struct {
	Policy string `json:"policy"` // "raycast" or "shadow"
}

// ViewportConfig is the logical window size in world units.
type ViewportConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MovementConfig defines player movement
type MovementConfig struct {
	PlayerSpeed float64 `json:"player_speed"` // world units per second
}

// LoggingConfig controls the engine logger installed by the binaries.
type LoggingConfig struct {
	Level string `json:"level"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Occluders:    true,
			Shadows:      true,
			Rays:         false,
			Centroids:    false,
			FieldsOfView: false,
		},
		Visibility: VisibilityConfig{
			Policy: sight.PolicyShadow,
		},
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 800,
		},
		Movement: MovementConfig{
			PlayerSpeed: 100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Visibility.Policy {
	case sight.PolicyRayCast, sight.PolicyShadow:
	default:
		return fmt.Errorf("%w: visibility policy %q", ErrInvalidConfig, c.Visibility.Policy)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Movement.PlayerSpeed < 0 {
		return fmt.Errorf("%w: negative player speed %v", ErrInvalidConfig, c.Movement.PlayerSpeed)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ViewportSize returns the viewport in world units.
func (c *Config) ViewportSize() shadows.Viewport {
	return shadows.Viewport{Width: float64(c.Viewport.Width), Height: float64(c.Viewport.Height)}
}
