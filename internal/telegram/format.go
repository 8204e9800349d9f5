package telegram

import (
	"fmt"
	"strings"

	"twentyone-server/pkg/deck"
	"twentyone-server/pkg/playable/twentyone"
)

func formatHand(hand deck.Hand) string {
	symbols := make([]string, len(hand))
	for i, card := range hand {
		symbols[i] = card.Symbol()
	}

	return strings.Join(symbols, " ")
}

func formatParticipant(icon string, p *twentyone.ParticipantState) string {
	total := "?"
	if p.Total != nil {
		total = fmt.Sprintf("%d", *p.Total)
	}

	return fmt.Sprintf("%s %s: %s (%s)", icon, p.Name, formatHand(p.Hand), total)
}

// formatGameState renders the game as a chat message
func formatGameState(gs *twentyone.GameState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d. %s: %d, %s: %d\n\n", gs.Round, gs.User.Name, gs.User.Score, gs.Dealer.Name, gs.Dealer.Score)
	sb.WriteString(formatParticipant("🎴", gs.User))
	sb.WriteString("\n")
	sb.WriteString(formatParticipant("🃏", gs.Dealer))

	if gs.Message != "" {
		sb.WriteString("\n\n")
		sb.WriteString(gs.Message)
	}

	return sb.String()
}

func formatRules(options twentyone.Options) string {
	var sb strings.Builder
	sb.WriteString("📖 House rules:\n")
	for _, rule := range twentyone.HouseRules(options) {
		sb.WriteString("• ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}

	sb.WriteString("\n/play [name] starts a match\n/state shows the table\n/quit leaves the table")
	return sb.String()
}
