package core

// Event is a notable state change emitted by a game tick.
// Platform adapters (audio, logging) react to events; games never read them back.
type Event int

const (
	EventNone Event = iota
	EventDied
	EventPaused
	EventResumed
	EventRestarted
	EventPaletteUnlocked
	EventBossSpawned
	EventBlocked
	EventHit
	EventLevelCleared
	EventWon
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventDied:
		return "died"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventRestarted:
		return "restarted"
	case EventPaletteUnlocked:
		return "palette_unlocked"
	case EventBossSpawned:
		return "boss_spawned"
	case EventBlocked:
		return "blocked"
	case EventHit:
		return "hit"
	case EventLevelCleared:
		return "level_cleared"
	case EventWon:
		return "won"
	default:
		return "unknown"
	}
}
