// Package tui is a Bubble Tea front-end for one local table. It owns no
// rules: every key press becomes a call on the game engine and the screen
// is redrawn from the returned snapshot.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/leaderboard"
	"github.com/lox/blackjack/internal/statistics"
)

type screen int

const (
	screenSetup screen = iota
	screenTable
	screenLeaderboard
)

// dealerTickMsg drives one dealer step. round guards against a tick that
// outlives its round.
type dealerTickMsg struct {
	round int
}

// Model is the Bubble Tea model for the table
type Model struct {
	game   *game.Game
	board  *leaderboard.Board
	stats  *statistics.Statistics
	logger *log.Logger
	pace   time.Duration

	screen   screen
	previous screen

	inputs      []textinput.Model
	focus       int
	fieldErrors map[int]string
	countError  string

	state   game.State
	entries []leaderboard.Entry

	eventLog    []string
	logViewport viewport.Model

	width    int
	height   int
	quitting bool
}

// Option configures a Model
type Option func(*Model)

// WithBoard shows and records to a leaderboard
func WithBoard(b *leaderboard.Board) Option {
	return func(m *Model) { m.board = b }
}

// WithLogger sets the logger. The TUI owns the terminal, so this should not
// write to stdout.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithPace sets the delay between dealer draws
func WithPace(pace time.Duration) Option {
	return func(m *Model) { m.pace = pace }
}

// WithNames prefills the name entry form
func WithNames(names ...string) Option {
	return func(m *Model) {
		for len(m.inputs) < len(names) && len(m.inputs) < game.MaxPlayers {
			m.inputs = append(m.inputs, newNameInput(len(m.inputs)))
		}
		for i, name := range names {
			if i < len(m.inputs) {
				m.inputs[i].SetValue(name)
			}
		}
	}
}

// NewModel creates a model in the name entry screen
func NewModel(g *game.Game, opts ...Option) *Model {
	m := &Model{
		game:        g,
		stats:       statistics.New(),
		logger:      log.New(io.Discard),
		pace:        600 * time.Millisecond,
		fieldErrors: map[int]string{},
		logViewport: viewport.New(40, 8),
	}
	for i := 0; i < game.MinPlayers; i++ {
		m.inputs = append(m.inputs, newNameInput(i))
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithPrefix("tui")
	m.state = g.State()
	m.setFocus(0)
	return m
}

func newNameInput(i int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("Player %d", i+1)
	ti.CharLimit = game.MaxNameLength
	ti.Width = game.MaxNameLength + 2
	ti.Prompt = "> "
	ti.PromptStyle = SuccessStyle
	return ti
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Statistics returns the session tallies
func (m *Model) Statistics() *statistics.Statistics {
	return m.stats
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = max(msg.Width-4, 10)
		return m, nil

	case dealerTickMsg:
		return m, m.dealerStep(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenSetup:
			return m.updateSetup(msg)
		case screenTable:
			return m, m.updateTable(msg)
		case screenLeaderboard:
			return m, m.updateLeaderboard(msg)
		}
	}

	if m.screen == screenSetup {
		return m, m.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.submitNames()
	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, nil
	case tea.KeyCtrlN:
		if len(m.inputs) < game.MaxPlayers {
			m.inputs = append(m.inputs, newNameInput(len(m.inputs)))
			m.setFocus(len(m.inputs) - 1)
		}
		return m, nil
	case tea.KeyCtrlD:
		if len(m.inputs) > game.MinPlayers {
			m.inputs = m.inputs[:len(m.inputs)-1]
			delete(m.fieldErrors, len(m.inputs))
			m.setFocus(min(m.focus, len(m.inputs)-1))
		}
		return m, nil
	}
	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) submitNames() tea.Cmd {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.Value()
	}

	state, err := m.game.Start(names)
	m.fieldErrors = map[int]string{}
	m.countError = ""

	var verr *game.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, f := range verr.Fields {
			m.fieldErrors[f.Index] = f.Message
		}
		m.countError = verr.Count
		return nil
	case err != nil:
		m.countError = err.Error()
		return nil
	}

	m.screen = screenTable
	m.eventLog = nil
	return m.apply(state)
}

func (m *Model) updateTable(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return tea.Quit
	case "h":
		if state, ok := m.game.Hit(); ok {
			p := state.Players[m.state.CurrentPlayerIndex]
			m.addEvent(fmt.Sprintf("%s hits: %s (%d)", p.Name, p.Hand, p.Score))
			if p.Busted {
				m.addEvent(fmt.Sprintf("%s busts", p.Name))
			}
			return m.apply(state)
		}
	case "s":
		if state, ok := m.game.Stand(); ok {
			p := state.Players[m.state.CurrentPlayerIndex]
			m.addEvent(fmt.Sprintf("%s stands on %d", p.Name, p.Score))
			return m.apply(state)
		}
	case "n":
		if state, ok := m.game.NewGame(); ok {
			m.addEvent(fmt.Sprintf("Round %d dealt", state.Round))
			return m.apply(state)
		}
	case "r":
		if m.state.Phase == game.PhaseGameOver {
			state := m.game.Reset()
			m.screen = screenSetup
			m.setFocus(0)
			return m.apply(state)
		}
	case "l":
		m.showLeaderboard()
	case "up", "k":
		m.logViewport.ScrollUp(1)
	case "down", "j":
		m.logViewport.ScrollDown(1)
	}
	return nil
}

func (m *Model) updateLeaderboard(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "l", "esc", "enter":
		m.screen = m.previous
	case "C":
		if m.board != nil && m.board.Clear(context.Background()) == nil {
			m.entries = nil
		}
	case "q":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) showLeaderboard() {
	m.previous = m.screen
	m.screen = screenLeaderboard
	if m.board != nil {
		m.entries = m.board.List(context.Background())
	}
}

// apply installs a new snapshot and schedules the dealer once players are done.
func (m *Model) apply(state game.State) tea.Cmd {
	m.state = state
	if state.Phase == game.PhaseDealerTurn {
		return m.scheduleDealer()
	}
	return nil
}

func (m *Model) scheduleDealer() tea.Cmd {
	round := m.state.Round
	return tea.Tick(m.pace, func(time.Time) tea.Msg {
		return dealerTickMsg{round: round}
	})
}

func (m *Model) dealerStep(msg dealerTickMsg) tea.Cmd {
	if msg.round != m.state.Round {
		return nil
	}

	before := len(m.state.Dealer.Hand)
	state, ok := m.game.AdvanceDealer()
	if !ok {
		return nil
	}
	m.state = state

	if len(state.Dealer.Hand) > before {
		m.addEvent(fmt.Sprintf("Dealer draws %s (%d)", state.Dealer.Hand[len(state.Dealer.Hand)-1], state.Dealer.Score))
		return m.scheduleDealer()
	}

	m.finishRound()
	return nil
}

func (m *Model) finishRound() {
	if m.state.Dealer.Busted {
		m.addEvent(fmt.Sprintf("Dealer busts with %d", m.state.Dealer.Score))
	} else {
		m.addEvent(fmt.Sprintf("Dealer stands on %d", m.state.Dealer.Score))
	}
	for _, r := range m.state.Results {
		m.addEvent(fmt.Sprintf("%s %s (%d vs %d)", r.PlayerName, r.Outcome.Label(), r.PlayerScore, r.DealerScore))
	}
	m.stats.AddRound(m.state.Results)
	m.logger.Debug("Round finished", "round", m.state.Round, "hands", m.stats.Hands)
}

func (m *Model) addEvent(line string) {
	m.eventLog = append(m.eventLog, line)
	m.logViewport.SetContent(strings.Join(m.eventLog, "\n"))
	m.logViewport.GotoBottom()
}
