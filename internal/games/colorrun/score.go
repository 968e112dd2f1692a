package colorrun

import "math"

// DisplayScore converts the raw accumulator to the score shown to players.
// The sine term makes the displayed value wobble slightly; it must stay
// exactly floor(secret*1.13 + sin(secret/7)*2).
func DisplayScore(secret float64) int {
	return int(math.Floor(secret*1.13 + math.Sin(secret/7)*2))
}
