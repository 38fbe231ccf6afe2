package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/leaderboard"
	"github.com/lox/blackjack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, opts ...Option) (*Model, *leaderboard.Board) {
	t.Helper()
	SetColor(false)
	logger := log.New(io.Discard)
	board := leaderboard.New(store.NewMemory(), leaderboard.WithLogger(logger))
	g := game.NewTestGame(
		game.WithDeck(game.RiggedDeck([]string{"As Kh", "9c 8d"}, "Td 6c", "2h")),
		game.WithRecorder(board),
	)
	return NewModel(g, append([]Option{WithBoard(board), WithLogger(logger)}, opts...)...), board
}

func TestSetupShowsFieldErrors(t *testing.T) {
	m, _ := newTestModel(t, WithNames("Alice", "alice"))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, screenSetup, m.screen)
	assert.Equal(t, "Name must be unique", m.fieldErrors[1])
	assert.Contains(t, m.View(), "Name must be unique")
}

func TestSetupAddAndRemoveSeats(t *testing.T) {
	m, _ := newTestModel(t)
	require.Len(t, m.inputs, 2)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Len(t, m.inputs, game.MaxPlayers)
	assert.Equal(t, 3, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Len(t, m.inputs, game.MinPlayers)
	assert.Equal(t, 1, m.focus)
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(key("Al"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(key("Bo"))

	assert.Equal(t, "Al", m.inputs[0].Value())
	assert.Equal(t, "Bo", m.inputs[1].Value())
}

func TestPlayRoundWithKeys(t *testing.T) {
	m, board := newTestModel(t, WithNames("Alice", "Bob"))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenTable, m.screen)
	assert.Equal(t, game.PhasePlaying, m.state.Phase)
	assert.Contains(t, m.View(), "??", "hole card hidden")

	m.Update(key("s"))
	_, cmd := m.Update(key("s"))
	require.Equal(t, game.PhaseDealerTurn, m.state.Phase)
	require.NotNil(t, cmd, "dealer turn schedules a tick")

	// Keys are ignored while the dealer plays.
	m.Update(key("h"))
	assert.Len(t, m.state.Players[1].Hand, 2)

	_, cmd = m.Update(dealerTickMsg{round: m.state.Round})
	assert.Equal(t, 18, m.state.Dealer.Score)
	require.NotNil(t, cmd)

	_, cmd = m.Update(dealerTickMsg{round: m.state.Round})
	assert.Nil(t, cmd)
	require.Equal(t, game.PhaseGameOver, m.state.Phase)

	view := m.View()
	assert.Contains(t, view, "WON")
	assert.Contains(t, view, "LOST")
	assert.Equal(t, 1, m.Statistics().Rounds)
	assert.Len(t, board.List(context.Background()), 2)

	m.Update(key("n"))
	assert.Equal(t, 2, m.state.Round)
	assert.Equal(t, game.PhasePlaying, m.state.Phase)
}

func TestStaleDealerTickIgnored(t *testing.T) {
	m, _ := newTestModel(t, WithNames("Alice", "Bob"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(key("s"))
	m.Update(key("s"))

	_, cmd := m.Update(dealerTickMsg{round: m.state.Round + 5})
	assert.Nil(t, cmd)
	assert.Len(t, m.state.Dealer.Hand, 2)
}

func TestLeaderboardScreen(t *testing.T) {
	m, board := newTestModel(t, WithNames("Alice", "Bob"))
	board.Record(context.Background(), []game.Result{{PlayerName: "Zed", Outcome: game.Win}})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(key("l"))
	require.Equal(t, screenLeaderboard, m.screen)
	assert.Contains(t, m.View(), "Zed")

	m.Update(key("C"))
	assert.Contains(t, m.View(), "No games recorded yet")
	assert.Empty(t, board.List(context.Background()))

	m.Update(key("l"))
	assert.Equal(t, screenTable, m.screen)
}

func TestResetReturnsToSetup(t *testing.T) {
	m, _ := newTestModel(t, WithNames("Alice", "Bob"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(key("r"))
	assert.Equal(t, screenTable, m.screen, "reset only after the round")

	m.Update(key("s"))
	m.Update(key("s"))
	m.Update(dealerTickMsg{round: 1})
	m.Update(dealerTickMsg{round: 1})
	m.Update(key("r"))
	assert.Equal(t, screenSetup, m.screen)
	assert.Equal(t, game.PhaseSetup, m.state.Phase)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
