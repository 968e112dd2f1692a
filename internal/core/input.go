package core

import (
	"sort"
	"time"
)

// Key represents a logical game key, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Key int

const (
	KeyNone    Key = iota
	KeyUp          // W, Up arrow - move up / raise shield up
	KeyDown        // S, Down arrow - move down / raise shield down
	KeyLeft        // A, Left arrow - previous color / shield left
	KeyRight       // D, Right arrow - next color / shield right
	KeyPause       // Esc, P - pause/unpause game
	KeyRestart     // R - restart (any key works after death cooldown)
	KeyDigit1      // 1..9 - absolute color selection
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeyOther // Any other key; only meaningful as a press edge
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyPause:
		return "Pause"
	case KeyRestart:
		return "Restart"
	case KeyOther:
		return "Other"
	}
	if n, ok := k.Digit(); ok {
		return "Digit" + string(rune('0'+n))
	}
	return "Unknown"
}

// DigitKey returns the key for digit n (1..9).
func DigitKey(n int) (Key, bool) {
	if n < 1 || n > 9 {
		return KeyNone, false
	}
	return KeyDigit1 + Key(n-1), true
}

// Digit returns the digit value of a digit key.
func (k Key) Digit() (int, bool) {
	if k < KeyDigit1 || k > KeyDigit9 {
		return 0, false
	}
	return int(k-KeyDigit1) + 1, true
}

// KeySet is the set of logical keys currently held down.
// Duplicate presses and releases of unheld keys are no-ops.
type KeySet struct {
	held map[Key]bool
}

// NewKeySet creates a key set holding the given keys.
func NewKeySet(keys ...Key) KeySet {
	ks := KeySet{held: make(map[Key]bool, len(keys))}
	for _, k := range keys {
		ks.Press(k)
	}
	return ks
}

// Press marks a key as held.
func (ks *KeySet) Press(k Key) {
	if k == KeyNone {
		return
	}
	if ks.held == nil {
		ks.held = make(map[Key]bool)
	}
	ks.held[k] = true
}

// Release marks a key as no longer held.
func (ks *KeySet) Release(k Key) {
	delete(ks.held, k)
}

// Has returns true if the key is held.
func (ks KeySet) Has(k Key) bool {
	return ks.held[k]
}

// Len returns the number of held keys.
func (ks KeySet) Len() int {
	return len(ks.held)
}

// Keys returns the held keys in ascending order.
func (ks KeySet) Keys() []Key {
	keys := make([]Key, 0, len(ks.held))
	for k := range ks.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DefaultHoldTimeout is how long a key counts as held after its last press
// when the input backend reports no release events (terminals).
const DefaultHoldTimeout = 150 * time.Millisecond

// HeldKeys tracks held keys from press/release edges.
// Terminals only report presses (plus auto-repeat), so a key without an
// explicit Release expires HoldTimeout after its most recent press.
type HeldKeys struct {
	lastPress   map[Key]time.Duration
	holdTimeout time.Duration
}

// NewHeldKeys creates a tracker with the given hold timeout.
// A non-positive timeout falls back to DefaultHoldTimeout.
func NewHeldKeys(holdTimeout time.Duration) *HeldKeys {
	if holdTimeout <= 0 {
		holdTimeout = DefaultHoldTimeout
	}
	return &HeldKeys{
		lastPress:   make(map[Key]time.Duration),
		holdTimeout: holdTimeout,
	}
}

// Press records a press (or auto-repeat) of k at time now.
func (h *HeldKeys) Press(k Key, now time.Duration) {
	if k == KeyNone || k == KeyOther {
		return
	}
	h.lastPress[k] = now
}

// Release drops k immediately.
func (h *HeldKeys) Release(k Key) {
	delete(h.lastPress, k)
}

// Reset drops every held key.
func (h *HeldKeys) Reset() {
	for k := range h.lastPress {
		delete(h.lastPress, k)
	}
}

// Held returns the set of keys still held at time now, expiring stale ones.
func (h *HeldKeys) Held(now time.Duration) KeySet {
	ks := NewKeySet()
	for k, at := range h.lastPress {
		if now-at >= h.holdTimeout {
			delete(h.lastPress, k)
			continue
		}
		ks.Press(k)
	}
	return ks
}

// InputFrame is everything a game sees during one simulation tick:
// the frame timing, the keys pressed since the previous tick (edges, in
// arrival order) and the keys currently held.
type InputFrame struct {
	Frame   Frame
	Pressed []Key
	Held    KeySet
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Held: NewKeySet()}
}

// Press appends a press edge and marks the key held for this frame.
func (f *InputFrame) Press(k Key) {
	f.Pressed = append(f.Pressed, k)
	if k != KeyOther {
		f.Held.Press(k)
	}
}

// HasPressed returns true if k was pressed this frame.
func (f InputFrame) HasPressed(k Key) bool {
	for _, p := range f.Pressed {
		if p == k {
			return true
		}
	}
	return false
}

// Clear resets press edges for the next frame. Held keys are owned by
// the caller's HeldKeys tracker and are rebuilt every frame.
func (f *InputFrame) Clear() {
	f.Pressed = f.Pressed[:0]
}
