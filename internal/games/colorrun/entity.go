package colorrun

import (
	"time"

	"github.com/vovakirdan/hue-arcade/internal/core"
)

// NoColor marks an obstacle that matches no palette entry (the boss).
const NoColor = -1

// Player is the runner. X is fixed for a session; Y moves within the playfield.
type Player struct {
	X          float64
	Y          float64
	Size       float64
	Speed      float64
	ColorIndex int

	lastSwitch time.Duration
	switched   bool // false until the first color switch of the session
}

// Rect returns the player's hitbox.
func (p Player) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Obstacle is a colored block moving left across the playfield.
type Obstacle struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	ColorIndex int     // NoColor for the boss
	SpeedMult  float64 // Multiplies the global obstacle speed
	Text       string  // Shown on the boss
}

// Rect returns the obstacle's hitbox.
func (o Obstacle) Rect() core.RectF {
	return core.RectF{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// IsBoss reports whether this is an anti-camping obstacle.
func (o Obstacle) IsBoss() bool {
	return o.ColorIndex == NoColor
}

// Passable reports whether a player of the given color survives touching o.
func (o Obstacle) Passable(colorIndex int) bool {
	return o.ColorIndex != NoColor && o.ColorIndex == colorIndex
}

// Swatch is one palette entry resolved to a screen color.
type Swatch struct {
	Label    string
	Color    core.Color
	UnlockAt float64
}
