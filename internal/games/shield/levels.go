package shield

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoLevels is returned when a level list is empty.
var ErrNoLevels = errors.New("shield: no levels")

// Direction is the side of the arena an arrow comes from, and the side the
// shield faces.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the config name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a config name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Up, fmt.Errorf("shield: unknown direction %q", s)
}

// Level is the set of directions arrows may come from during one level.
type Level []Direction

// ParseLevels converts raw direction names into levels.
// Every level needs at least one valid direction.
func ParseLevels(raw [][]string) ([]Level, error) {
	if len(raw) == 0 {
		return nil, ErrNoLevels
	}

	levels := make([]Level, len(raw))
	for i, names := range raw {
		if len(names) == 0 {
			return nil, fmt.Errorf("shield: level %d has no directions", i+1)
		}
		level := make(Level, len(names))
		for j, name := range names {
			d, err := ParseDirection(name)
			if err != nil {
				return nil, fmt.Errorf("level %d: %w", i+1, err)
			}
			level[j] = d
		}
		levels[i] = level
	}
	return levels, nil
}
