package game

import (
	"image/color"
	"math"

	"chosenoffset.com/umbra/internal/core/shadows"
)

// Intent is the movement the player asked for this tick.
type Intent struct {
	Up, Down, Left, Right bool
}

// Direction returns the unit vector for the intent, or zero when the keys
// cancel out or none are held.
func (i Intent) Direction() shadows.Point {
	var dir shadows.Point
	if i.Up {
		dir.Y++
	}
	if i.Down {
		dir.Y--
	}
	if i.Left {
		dir.X--
	}
	if i.Right {
		dir.X++
	}
	if dir.IsZero() {
		return dir
	}
	return dir.Scale(1 / math.Hypot(dir.X, dir.Y))
}

// StepStats summarizes what one Step changed.
type StepStats struct {
	Moved      bool
	Recomputed bool
	Added      int
	Removed    int
	Hidden     int
	Alerted    int
}

// Palette holds the colors used by Draw.
type Palette struct {
	Background color.Color
	Shadow     color.Color
	Outline    color.Color
	Wall       color.Color
	Player     color.Color
	NPC        color.Color
	Alerted    color.Color
	Object     color.Color
	Ray        color.Color
	Centroid   color.Color
	FOV        color.Color
	Text       color.Color
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{0x20, 0x24, 0x2c, 0xff},
		Shadow:     color.RGBA{0x05, 0x05, 0x08, 0xff},
		Outline:    color.RGBA{0xd0, 0x40, 0x40, 0xff},
		Wall:       color.RGBA{0x70, 0x70, 0x78, 0xff},
		Player:     color.RGBA{0x40, 0x90, 0xff, 0xff},
		NPC:        color.RGBA{0xe0, 0x50, 0x30, 0xff},
		Alerted:    color.RGBA{0x40, 0xe0, 0x60, 0xff},
		Object:     color.RGBA{0xf0, 0xd0, 0x40, 0xff},
		Ray:        color.RGBA{0xff, 0xff, 0x80, 0xff},
		Centroid:   color.RGBA{0xff, 0x40, 0xff, 0xff},
		FOV:        color.RGBA{0x60, 0x60, 0x20, 0x60},
		Text:       color.White,
	}
}
