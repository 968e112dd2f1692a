package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
	"github.com/vovakirdan/hue-arcade/internal/storage"
)

const maxBoardRuns = 100

type boardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Game, k.Filter, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Game:   key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab/←/→", "game")),
		Filter: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows stored runs for one game at a time, optionally
// narrowed to a single difficulty preset.
type ScoreboardModel struct {
	games  []registry.GameInfo
	game   int
	filter int // Index into presets, 0 shows every run
	store  *storage.Store

	runs  []storage.ScoreEntry // After filtering
	stats *storage.GameStats
	err   error

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over store, which may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Level", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the current game's runs and stats and rebuilds the rows.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store == nil || len(m.games) == 0 {
		m.table.SetRows(nil)
		return
	}

	id := m.games[m.game].ID
	all, err := m.store.TopScores(id, maxBoardRuns)
	if err != nil {
		m.err = err
		m.table.SetRows(nil)
		return
	}
	want := presets[m.filter]
	for _, r := range all {
		if want == "" || r.Difficulty == string(want) {
			m.runs = append(m.runs, r)
		}
	}
	m.stats, m.err = m.store.GetGameStats(id)

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		score := fmt.Sprintf("%d", r.Score)
		if r.Won {
			score += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			score,
			difficultyLabel(r.Difficulty),
			formatDuration(r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// difficultyLabel names the preset a run was played on.
func difficultyLabel(d string) string {
	if d == "" {
		return "-"
	}
	return d
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(presets)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Game):
			if n := len(m.games); n > 0 {
				step := 1
				switch msg.String() {
				case "shift+tab", "left", "h":
					step = n - 1
				}
				m.game = (m.game + step) % n
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			tabs[i] = boardActive.Render(g.Title)
		} else {
			tabs[i] = boardTab.Render(g.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")

	filter := "all"
	if p := presets[m.filter]; p != "" {
		filter = string(p)
	}
	b.WriteString(centerText(boardDim.Render("difficulty: "+filter), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrame.Render(m.body()), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(boardDim.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(boardDim.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) body() string {
	switch {
	case m.store == nil:
		return boardDim.Italic(true).Render("Scores are not being saved.")
	case m.err != nil:
		return boardDim.Render("Cannot read scores: " + m.err.Error())
	case len(m.runs) == 0:
		return boardDim.Italic(true).Padding(1, 2).Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// statsLine summarizes every run of the game, whatever the filter.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("best %d · played %d · won %d · longest %s",
		m.stats.HighScore, m.stats.GamesCount, m.stats.Wins, formatDuration(m.stats.LongestRun))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
