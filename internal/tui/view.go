package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// View renders the current screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenSetup:
		body = m.viewSetup()
	case screenTable:
		body = m.viewTable()
	case screenLeaderboard:
		body = m.viewLeaderboard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render("♠ Blackjack ♥"), "", body)
}

func (m *Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Enter %d-%d player names\n\n", game.MinPlayers, game.MaxPlayers))
	for i, in := range m.inputs {
		b.WriteString(in.View())
		if msg, ok := m.fieldErrors[i]; ok {
			b.WriteString("  ")
			b.WriteString(ErrorStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	if m.countError != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.countError))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("enter start • tab next • ctrl+n add seat • ctrl+d remove seat • esc quit"))
	return b.String()
}

func (m *Model) viewTable() string {
	s := m.state

	dealer := s.Dealer
	dealerLine := fmt.Sprintf("Dealer  %s", renderCards(dealer.Visible()))
	if !dealer.Revealed {
		hidden := len(dealer.Hand) - len(dealer.Visible())
		for i := 0; i < hidden; i++ {
			dealerLine += " " + HiddenCardStyle.Render("??")
		}
		dealerLine += InfoStyle.Render(fmt.Sprintf("  showing %d", dealer.VisibleScore()))
	} else {
		dealerLine += fmt.Sprintf("  (%d)", dealer.Score)
		if dealer.Busted {
			dealerLine += " " + ErrorStyle.Render("BUST")
		}
	}

	var players []string
	for _, p := range s.Players {
		players = append(players, m.renderPlayer(p))
	}

	table := PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		InfoStyle.Render(fmt.Sprintf("Round %d • %s • %d cards left", s.Round, s.Phase, s.Deck.Len())),
		"",
		dealerLine,
		"",
		strings.Join(players, "\n"),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		table,
		PanelStyle.Render(m.logViewport.View()),
		m.renderHelp(),
	)
}

func (m *Model) renderPlayer(p game.Player) string {
	name := PlayerInfoStyle.Render(fmt.Sprintf("%-*s", game.MaxNameLength, p.Name))
	marker := "  "
	if p.Active {
		marker = ActiveStyle.Render("▶ ")
		name = ActiveStyle.Render(fmt.Sprintf("%-*s", game.MaxNameLength, p.Name))
	}

	line := fmt.Sprintf("%s%s %s  (%d)", marker, name, renderCards(p.Hand), p.Score)
	switch {
	case p.Blackjack:
		line += " " + SuccessStyle.Render("BLACKJACK")
	case p.Busted:
		line += " " + ErrorStyle.Render("BUST")
	case p.Standing:
		line += " " + InfoStyle.Render("stand")
	}

	if r, ok := m.state.ResultFor(p.Name); ok {
		line += "  " + outcomeStyle(r.Outcome).Render(r.Outcome.Label())
	}
	return line
}

func (m *Model) renderHelp() string {
	switch m.state.Phase {
	case game.PhasePlaying:
		p, _ := m.state.ActivePlayer()
		return WarningStyle.Render(p.Name+" to act: ") + InfoStyle.Render("h hit • s stand • l leaderboard • q quit")
	case game.PhaseDealerTurn:
		return InfoStyle.Render("Dealer playing...")
	case game.PhaseGameOver:
		return InfoStyle.Render("n new round • r new players • l leaderboard • q quit")
	default:
		return ""
	}
}

func (m *Model) viewLeaderboard() string {
	var b strings.Builder
	b.WriteString(WarningStyle.Render("Leaderboard"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(InfoStyle.Render("No games recorded yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%-3s %-*s %5s %6s %5s %7s", "#", game.MaxNameLength, "Name", "Wins", "Losses", "Ties", "Win %")))
		b.WriteString("\n")
		for i, e := range m.entries {
			b.WriteString(fmt.Sprintf("%-3d %-*s %5d %6d %5d %6.1f%%\n", i+1, game.MaxNameLength, e.Name, e.Wins, e.Losses, e.Ties, e.WinRate*100))
		}
	}

	if m.stats.Hands > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("This session: %d rounds, %d hands, %.1f%% won, dealer bust %.1f%%",
			m.stats.Rounds, m.stats.Hands, m.stats.WinRate()*100, m.stats.DealerBustRate()*100)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("l back • C clear • q quit"))
	return PanelStyle.Render(b.String())
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = RedCardStyle.Render(c.String())
		} else {
			parts[i] = BlackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

func outcomeStyle(o game.Outcome) lipgloss.Style {
	switch o {
	case game.Win:
		return SuccessStyle
	case game.Loss:
		return ErrorStyle
	default:
		return WarningStyle
	}
}
