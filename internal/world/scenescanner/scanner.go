// Package scenescanner discovers scene files in a data directory.
package scenescanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrSceneNotFound is returned by Resolve when no scene matches.
var ErrSceneNotFound = errors.New("scene not found")

// SceneEntry represents a discoverable scene in the data directory
type SceneEntry struct {
	Name string // Display name (file name without extension)
	Path string // Path to the scene file
}

// ScanDataDirectory scans the data directory for scene files. Hidden files
// and config.json are skipped. Entries are sorted by name.
func ScanDataDirectory(dataPath string) ([]SceneEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var scenes []SceneEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "config.json" {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}

		scenes = append(scenes, SceneEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dataPath, name),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// Resolve turns a scene argument into a file path. An existing file path is
// used as is; anything else is looked up by name in dataPath. An empty name
// picks the first scene found.
func Resolve(dataPath, scene string) (string, error) {
	if scene != "" {
		if info, err := os.Stat(scene); err == nil && !info.IsDir() {
			return scene, nil
		}
	}

	scenes, err := ScanDataDirectory(dataPath)
	if err != nil {
		return "", err
	}
	if len(scenes) == 0 {
		return "", fmt.Errorf("%w: no scenes in %s", ErrSceneNotFound, dataPath)
	}
	if scene == "" {
		return scenes[0].Path, nil
	}

	for _, s := range scenes {
		if s.Name == scene {
			return s.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrSceneNotFound, scene, dataPath)
}
