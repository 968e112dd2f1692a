package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/games/colorrun"
	_ "github.com/vovakirdan/hue-arcade/internal/games/shield"
	"github.com/vovakirdan/hue-arcade/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		in   string
		want core.Key
		quit bool
	}{
		{"w", core.KeyUp, false},
		{"up", core.KeyUp, false},
		{"s", core.KeyDown, false},
		{"down", core.KeyDown, false},
		{"a", core.KeyLeft, false},
		{"left", core.KeyLeft, false},
		{"d", core.KeyRight, false},
		{"right", core.KeyRight, false},
		{"p", core.KeyPause, false},
		{"esc", core.KeyPause, false},
		{"r", core.KeyRestart, false},
		{"1", core.KeyDigit1, false},
		{"9", core.KeyDigit9, false},
		{"0", core.KeyOther, false},
		{"x", core.KeyOther, false},
		{"enter", core.KeyOther, false},
		{"q", core.KeyNone, true},
		{"ctrl+c", core.KeyNone, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, quit := km.MapKey(keyMsg(tc.in))
			if got != tc.want || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.in, got, quit, tc.want, tc.quit)
			}
		})
	}
}

func TestRenderScreenGroupsColors(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawTextColored(0, 1, "xyz", core.ColorBrightMagenta)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("default cells should be unstyled: %q", lines[0])
	}
	if !strings.Contains(out, "cd") || !strings.Contains(out, "xyz") {
		t.Errorf("colored runs should stay contiguous: %q", out)
	}

	// Out-of-range colors fall back to the default style
	_ = styleFor(core.Color(200)).Render("x")
}

// newModel builds a model over a manual clock with a temp store.
func newModel(t *testing.T, clock *core.ManualClock) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	g := colorrun.New()
	g.SetDifficultyPreset(config.DifficultyHard)
	if err := g.Load(); err != nil {
		t.Fatal(err)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(g, Services{Store: store, Difficulty: "hard", Clock: clock}, cfg)
	m.Init()
	return m, store
}

func step(t *testing.T, m Model, clock *core.ManualClock) Model {
	t.Helper()
	clock.Advance(time.Second / 60)
	next, _ := m.Update(TickMsg(time.Time{}))
	return next.(Model)
}

func TestModelPauseAndResume(t *testing.T) {
	clock := core.NewManualClock(0)
	m, _ := newModel(t, clock)
	m = step(t, m, clock)

	next, _ := m.Update(keyMsg("p"))
	m = step(t, next.(Model), clock)
	if !m.State().Paused {
		t.Fatal("p should pause the game")
	}

	next, _ = m.Update(keyMsg("x"))
	m = step(t, next.(Model), clock)
	if m.State().Paused {
		t.Error("any key should resume")
	}
}

func TestModelSavesRunOnDeath(t *testing.T) {
	clock := core.NewManualClock(0)
	m, store := newModel(t, clock)

	for i := 0; i < 60*120 && !m.State().GameOver; i++ {
		m = step(t, m, clock)
	}
	if !m.State().GameOver {
		t.Fatal("an idle player should eventually die")
	}
	for i := 0; i < 10; i++ {
		m = step(t, m, clock)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if m.State().Score == 0 {
		if len(runs) != 0 {
			t.Errorf("zero-score run should not be saved: %v", runs)
		}
		return
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	r := runs[0]
	if r.GameID != "colorrun" || r.Difficulty != "hard" || r.Score != m.State().Score {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Duration <= 0 {
		t.Errorf("run duration should be positive: %v", r.Duration)
	}
	if !m.NewBest() {
		t.Error("first saved run should be a new best")
	}
	if !strings.Contains(m.View(), "NEW BEST") {
		t.Error("game over view should show the new best tag")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	clock := core.NewManualClock(0)
	m, _ := newModel(t, clock)

	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	m.allowBack = true
	next, _ = m.Update(keyMsg("p"))
	m = step(t, next.(Model), clock)
	next, _ = m.Update(keyMsg("b"))
	if !next.(Model).BackToMenu() {
		t.Error("b while paused should return to the menu")
	}
}

func TestMenuFilterAndSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	if len(m.Items()) < 2 {
		t.Fatalf("expected registered games in the menu, got %v", m.Items())
	}

	next, _ := m.Update(keyMsg("/"))
	m = next.(MenuModel)
	for _, r := range "shi" {
		next, _ = m.Update(keyMsg(string(r)))
		m = next.(MenuModel)
	}
	if len(m.Items()) != 1 || m.Items()[0].ID != "shield" {
		t.Fatalf("search should leave only shield, got %v", m.Items())
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("right"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("right"))
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("preset = %q, expected normal", m.Preset())
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().ID != "shield" || cmd == nil {
		t.Errorf("enter should select shield, got %v", m.Selected())
	}
}

func TestMenuSearchEscClears(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	all := len(m.Items())

	next, _ := m.Update(keyMsg("/"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("zzz"))
	m = next.(MenuModel)
	if len(m.Items()) != 0 {
		t.Fatalf("no game should match zzz: %v", m.Items())
	}
	if !strings.Contains(m.View(), "No games match") {
		t.Error("empty result message missing")
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(MenuModel)
	if len(m.Items()) != all {
		t.Errorf("esc should clear the search, got %d items", len(m.Items()))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{1500 * time.Millisecond, "0:02"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.in); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreboardFilters(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.RunResult{
		{GameID: "colorrun", Score: 40, Difficulty: "hard", Duration: 30 * time.Second},
		{GameID: "colorrun", Score: 90, Difficulty: "easy", Duration: 75 * time.Second},
		{GameID: "colorrun", Score: 15},
		{GameID: "shield", Score: 7, Won: true},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 40)
	for m.games[m.game].ID != "colorrun" {
		next, _ := m.Update(keyMsg("tab"))
		m = next.(ScoreboardModel)
	}
	if len(m.runs) != 3 {
		t.Fatalf("all filter shows %d runs, expected 3", len(m.runs))
	}
	if m.runs[0].Score != 90 {
		t.Errorf("runs should be ordered by score, got %+v", m.runs)
	}

	// "", easy, normal, hard
	for i := 0; i < 3; i++ {
		next, _ := m.Update(keyMsg("d"))
		m = next.(ScoreboardModel)
	}
	if len(m.runs) != 1 || m.runs[0].Score != 40 {
		t.Errorf("hard filter = %+v, expected the 40 run", m.runs)
	}
	if m.stats == nil || m.stats.GamesCount != 3 || m.stats.HighScore != 90 {
		t.Errorf("stats should cover every run: %+v", m.stats)
	}

	view := m.View()
	for _, want := range []string{"Color Run", "difficulty: hard", "best 90"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, cmd := m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back to the menu")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "not being saved") {
		t.Error("a nil store should say scores are not saved")
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	logger := log.New(io.Discard)
	var s tea.Model = NewSessionModel(nil, core.DefaultConfig(), "tester", logger)

	s, _ = s.Update(keyMsg("tab"))
	if !strings.Contains(s.View(), "only available in the local arcade") {
		t.Error("scoreboard request should leave a notice in remote sessions")
	}

	s, cmd := s.Update(keyMsg("enter"))
	sm := s.(SessionModel)
	if sm.game == nil || cmd == nil {
		t.Fatal("enter should start the highlighted game")
	}
	if sm.game.game.ID() != "colorrun" {
		t.Errorf("started %q, expected colorrun", sm.game.game.ID())
	}

	s, _ = s.Update(keyMsg("p"))
	s, _ = s.Update(TickMsg(time.Time{}))
	s, _ = s.Update(keyMsg("b"))
	sm = s.(SessionModel)
	if sm.game != nil {
		t.Fatal("b while paused should return to the menu")
	}

	s, cmd = s.Update(keyMsg("q"))
	if cmd == nil || s.View() != "" {
		t.Error("q in the menu should end the session")
	}
}
