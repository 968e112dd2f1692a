package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hue-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to logical game keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game key.
// Unbound keys map to KeyOther so that "press any key" prompts see them.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (k core.Key, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.KeyNone, true
	}

	switch key {
	case "w", "up":
		return core.KeyUp, false
	case "s", "down":
		return core.KeyDown, false
	case "a", "left":
		return core.KeyLeft, false
	case "d", "right":
		return core.KeyRight, false
	case "p", "esc":
		return core.KeyPause, false
	case "r":
		return core.KeyRestart, false
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		d, _ := core.DigitKey(int(key[0] - '0'))
		return d, false
	}

	return core.KeyOther, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionSearch
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "/":
		return MenuActionSearch
	}

	return MenuActionNone
}
