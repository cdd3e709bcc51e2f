package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trajguess/internal/core"
	"github.com/vovakirdan/trajguess/internal/registry"
	"github.com/vovakirdan/trajguess/internal/storage"
)

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	embedded   bool // back returns to the caller instead of quitting
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether totals have been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	return m
}

// gameHeight is the screen height left for the game below the help footer.
func (m Model) gameHeight() int {
	h := m.config.ScreenH - lipgloss.Height(m.help.View(m.keys))
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Snapshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(m.config.ScreenW, m.config.ScreenH)
	case key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.embedded {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize adapts the screen and the game to a new terminal size.
func (m Model) handleResize(w, h int) (tea.Model, tea.Cmd) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.help.Width = w
	m.screen.Resize(w, m.gameHeight())

	if r, ok := m.game.(resizer); ok {
		r.Resize(w, m.gameHeight())
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.saveRounds(result.Results)

	// Save totals on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveTotals()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRounds persists finished rounds. Storage errors are logged and the
// game continues.
func (m Model) saveRounds(results []core.Result) {
	for _, r := range results {
		m.logger.Info("round scored",
			"game", m.game.ID(), "player", r.Player,
			"similarity", r.Similarity, "score", fmt.Sprintf("%.2f", r.Score))
		if m.store == nil {
			continue
		}
		_, err := m.store.SaveRound(storage.RoundRecord{
			ID:         r.ID,
			GameID:     m.game.ID(),
			Player:     r.Player,
			Steps:      r.Steps,
			Similarity: r.Similarity,
			Score:      r.Score,
			Elapsed:    r.Elapsed,
		})
		if err != nil {
			m.logger.Warn("could not save round", "id", r.ID, "err", err)
		}
	}
}

// saveTotals records every seat's match total and raises the high score of
// registered users.
func (m Model) saveTotals() {
	if m.store == nil {
		return
	}
	for _, p := range m.gameState.Players {
		if p.Score <= 0 {
			continue
		}
		if _, err := m.store.SaveScore(m.game.ID(), p.Name, p.Score); err != nil {
			m.logger.Warn("could not save score", "player", p.Name, "err", err)
			continue
		}
		raised, err := m.store.UpdateHighScore(p.Name, float64(p.Score))
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
		case err != nil:
			m.logger.Warn("could not update high score", "player", p.Name, "err", err)
		case raised:
			m.logger.Info("new high score", "player", p.Name, "score", p.Score)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".trajguess", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
