package shield

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
)

var _ registry.Game = (*Game)(nil)

const frameDelta = time.Second / 60

func TestParseLevels(t *testing.T) {
	levels, err := ParseLevels([][]string{{"up"}, {"Left", " right "}})
	if err != nil {
		t.Fatalf("ParseLevels() failed: %v", err)
	}
	if len(levels) != 2 || levels[1][0] != Left || levels[1][1] != Right {
		t.Errorf("unexpected levels: %v", levels)
	}

	tests := []struct {
		name string
		raw  [][]string
	}{
		{"empty list", nil},
		{"empty level", [][]string{{"up"}, {}}},
		{"unknown direction", [][]string{{"up", "sideways"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLevels(tc.raw); err == nil {
				t.Error("ParseLevels() should fail")
			}
		})
	}

	if _, err := ParseLevels(nil); !errors.Is(err, ErrNoLevels) {
		t.Errorf("empty list should return ErrNoLevels, got %v", err)
	}
}

// testEngine builds an engine with a small arrow budget.
func testEngine(t *testing.T, raw [][]string, mutate func(*config.ShieldConfig)) *Engine {
	t.Helper()
	cfg := config.DefaultShieldConfig()
	cfg.Arrows.BaseCount = 2
	cfg.Arrows.CountPerLevel = 1
	if mutate != nil {
		mutate(&cfg)
	}
	levels, err := ParseLevels(raw)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(cfg, levels, 7)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

type runner struct {
	e   *Engine
	now time.Duration
}

func (r *runner) step() []core.Event {
	r.now += frameDelta
	return r.e.Step(core.Frame{Now: r.now, Delta: frameDelta})
}

// until steps until the engine reaches phase p or the tick budget runs out.
func (r *runner) until(p Phase, maxTicks int) []core.Event {
	var all []core.Event
	for i := 0; i < maxTicks && r.e.Phase() != p; i++ {
		all = append(all, r.step()...)
	}
	return all
}

func count(events []core.Event, want core.Event) int {
	n := 0
	for _, ev := range events {
		if ev == want {
			n++
		}
	}
	return n
}

func TestNewEngineRequiresLevels(t *testing.T) {
	if _, err := NewEngine(config.DefaultShieldConfig(), nil, 1); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestSpawnTimer(t *testing.T) {
	e := testEngine(t, [][]string{{"up"}}, nil)
	r := &runner{e: e}

	for i := 0; i < 30; i++ {
		r.step()
	}
	if n := len(e.Arrows()); n != 0 {
		t.Fatalf("arrow spawned before 500ms: %d", n)
	}
	r.step()
	arrows := e.Arrows()
	if len(arrows) != 1 {
		t.Fatalf("expected one arrow after 500ms, got %d", len(arrows))
	}
	a := arrows[0]
	if a.X != 400 || a.Y != 5 || a.VY != 5 {
		t.Errorf("unexpected arrow %+v", a)
	}
	if e.Remaining() != 1 {
		t.Errorf("remaining = %d, expected 1", e.Remaining())
	}
}

func TestBlockedArrowsScore(t *testing.T) {
	e := testEngine(t, [][]string{{"up"}, {"up"}}, nil)
	r := &runner{e: e}

	events := r.until(LevelClear, 600)
	if e.Phase() != LevelClear {
		t.Fatalf("level should finish, phase = %v", e.Phase())
	}
	if got := count(events, core.EventBlocked); got != 2 {
		t.Errorf("blocked events = %d, expected 2", got)
	}
	if got := count(events, core.EventLevelCleared); got != 1 {
		t.Errorf("level cleared events = %d, expected 1", got)
	}
	if e.HP() != 10 || e.Score() != 2 {
		t.Errorf("hp=%d score=%d, expected 10 and 2", e.HP(), e.Score())
	}
}

func TestUnblockedArrowsCostHP(t *testing.T) {
	e := testEngine(t, [][]string{{"down"}}, func(cfg *config.ShieldConfig) {
		cfg.Arrows.BaseCount = 3
	})
	r := &runner{e: e}

	events := r.until(LevelClear, 1000)
	if got := count(events, core.EventHit); got != 3 {
		t.Errorf("hit events = %d, expected 3", got)
	}
	if e.HP() != 7 {
		t.Errorf("hp = %d, expected 7", e.HP())
	}
	if len(e.Arrows()) != 0 {
		t.Error("hit arrows must be removed")
	}
}

func TestShieldTurnsOnKeyDown(t *testing.T) {
	e := testEngine(t, [][]string{{"left"}}, nil)
	r := &runner{e: e}

	e.KeyDown(core.KeyLeft, 0)
	if e.Shield() != Left {
		t.Fatalf("shield = %v, expected left", e.Shield())
	}
	events := r.until(LevelClear, 1000)
	if count(events, core.EventBlocked) != 2 || count(events, core.EventHit) != 0 {
		t.Errorf("left arrows should all be blocked: %v", events)
	}
}

func TestDeathAtZeroHP(t *testing.T) {
	e := testEngine(t, [][]string{{"right"}}, func(cfg *config.ShieldConfig) {
		cfg.Player.HP = 2
		cfg.Arrows.BaseCount = 5
	})
	r := &runner{e: e}

	events := r.until(Dead, 2000)
	if e.Phase() != Dead {
		t.Fatalf("phase = %v, expected dead", e.Phase())
	}
	if count(events, core.EventDied) != 1 || e.HP() != 0 {
		t.Errorf("expected one death at hp 0, got %v hp=%d", events, e.HP())
	}

	for i := 0; i < 60; i++ {
		if ev := r.step(); len(ev) != 0 {
			t.Fatalf("dead engine emitted %v", ev)
		}
	}
}

func TestLevelProgressionAndWin(t *testing.T) {
	e := testEngine(t, [][]string{{"up"}, {"up"}}, nil)
	r := &runner{e: e}

	r.until(LevelClear, 1000)
	// The level delay holds the next level back
	for i := 0; i < 110; i++ {
		r.step()
	}
	if e.Phase() != LevelClear {
		t.Fatalf("next level started before the delay, phase = %v", e.Phase())
	}
	r.until(Playing, 20)
	if e.Phase() != Playing || e.Level() != 1 {
		t.Fatalf("expected level 2 to start, phase=%v level=%d", e.Phase(), e.Level())
	}
	if e.Remaining() != 3 {
		t.Errorf("level 2 arrows = %d, expected 3", e.Remaining())
	}

	r.until(Won, 2000)
	if e.Phase() != Won {
		t.Fatalf("expected a win, phase = %v", e.Phase())
	}
	// 2 arrows at level 1 plus 3 at level 2 worth double
	if e.Score() != 2+3*2 {
		t.Errorf("score = %d, expected 8", e.Score())
	}
}

func TestArrowSpeedScalesWithLevel(t *testing.T) {
	e := testEngine(t, [][]string{{"up"}, {"up"}}, nil)
	e.startLevel(1)
	e.spawnArrow()

	a := e.Arrows()[0]
	if math.Abs(a.VY-5.5) > 1e-9 {
		t.Errorf("level 2 arrow speed = %f, expected 5.5", a.VY)
	}
}

func TestPauseResumesPriorPhase(t *testing.T) {
	e := testEngine(t, [][]string{{"up"}, {"up"}}, nil)
	r := &runner{e: e}
	r.until(LevelClear, 1000)

	e.KeyDown(core.KeyPause, r.now)
	if e.Phase() != Paused {
		t.Fatalf("phase = %v, expected paused", e.Phase())
	}
	for i := 0; i < 300; i++ {
		r.step()
	}
	if e.Phase() != Paused {
		t.Fatal("paused engine advanced")
	}

	if ev := e.KeyDown(core.KeyOther, r.now); count(ev, core.EventResumed) != 1 {
		t.Errorf("expected resume, got %v", ev)
	}
	if e.Phase() != LevelClear {
		t.Errorf("resume should return to level clear, got %v", e.Phase())
	}
}

func TestRestartCooldown(t *testing.T) {
	e := testEngine(t, [][]string{{"down"}}, func(cfg *config.ShieldConfig) {
		cfg.Player.HP = 1
	})
	r := &runner{e: e}
	r.until(Dead, 1000)
	deadAt := r.now

	if ev := e.KeyDown(core.KeyUp, deadAt+2*time.Second); len(ev) != 0 {
		t.Error("restart accepted at the cooldown boundary")
	}
	if ev := e.KeyDown(core.KeyUp, deadAt+2*time.Second+time.Millisecond); count(ev, core.EventRestarted) != 1 {
		t.Fatal("restart rejected after the cooldown")
	}
	if e.HP() != 1 || e.Level() != 0 || e.Score() != 0 || e.Phase() != Playing {
		t.Error("restart should reset the run")
	}
}

func TestGameLoadFailsClosed(t *testing.T) {
	dir := t.TempDir()

	g := New()
	g.SetLevelsPath(filepath.Join(dir, "missing.json"))
	if err := g.Load(); err == nil {
		t.Error("Load() should fail for a missing levels file")
	}

	bad := filepath.Join(dir, "levels.json")
	if err := os.WriteFile(bad, []byte(`[["up"], ["diagonal"]]`), 0o600); err != nil {
		t.Fatal(err)
	}
	g = New()
	g.SetLevelsPath(bad)
	if err := g.Load(); err == nil {
		t.Error("Load() should fail for an unknown direction")
	}
}

func TestGameLoadLevelsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "levels.json")
	if err := os.WriteFile(path, []byte(`[["left"], ["left", "right"], ["up"]]`), 0o600); err != nil {
		t.Fatal(err)
	}

	g := New()
	g.SetLevelsPath(path)
	g.SetDifficultyPreset(config.DifficultyHard)
	if err := g.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	g.Reset(core.DefaultConfig())

	if g.engine.LevelCount() != 3 {
		t.Errorf("level count = %d, expected 3", g.engine.LevelCount())
	}
	if g.engine.HP() != 5 {
		t.Errorf("hard preset hp = %d, expected 5", g.engine.HP())
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	now := time.Duration(0)
	for i := 0; i < 40; i++ {
		now += frameDelta
		in := core.NewInputFrame()
		in.Frame = core.Frame{Now: now, Delta: frameDelta}
		g.Step(in)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "HP: 10") {
		t.Errorf("HUD missing: %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), string(CoreChar)) {
		t.Error("player not drawn")
	}

	// Tiny screens must not panic
	g.Render(core.NewScreen(3, 2))
}
