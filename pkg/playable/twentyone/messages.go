package twentyone

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultUserName is used when the user does not give a name
const DefaultUserName = "Player 1"

// GoodbyeMessage is shown when the user stops playing
const GoodbyeMessage = "Thanks for playing! Goodbye!"

// NormalizeName capitalizes each word of the name
// An empty name becomes DefaultUserName. The dealer's name is reserved.
func NormalizeName(input string) (string, error) {
	words := strings.Fields(input)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}

	name := strings.Join(words, " ")
	if strings.EqualFold(name, DealerName) {
		return "", ErrReservedName
	}

	if name == "" {
		return DefaultUserName, nil
	}

	return name, nil
}

// HouseRules returns the rules shown before the first round
func HouseRules(options Options) []string {
	return []string{
		"Cards 2-10 are worth their numbered value. Face cards are worth 10.",
		"Aces are worth 1 or 11 depending on your total hand value.",
		fmt.Sprintf("Dealer stands on a soft %d (S%d).", options.DealerStandOn, options.DealerStandOn),
		"No splitting hands.",
		"If you bust before the dealer, you lose.",
		fmt.Sprintf("First to win %d rounds wins the match.", options.ScoreLimit),
	}
}

// RoundBanner returns the heading for a round, e.g., "Round 2. Ann: 1, Dealer: 0"
func RoundBanner(round int, user, dealer *Participant) string {
	return fmt.Sprintf("Round %d. %s: %d, %s: %d", round, user.Name, user.Score, dealer.Name, dealer.Score)
}

// ResultMessage describes how a round ended from the user's point of view
func ResultMessage(user, dealer HandState) string {
	switch {
	case user.Busted:
		return fmt.Sprintf("Bust! The %s wins this hand...", DealerName)
	case dealer.Busted:
		return fmt.Sprintf("%s busts! You win!", DealerName)
	case user.Total > dealer.Total:
		return "You win!"
	case user.Total < dealer.Total:
		return fmt.Sprintf("The %s wins this hand...", DealerName)
	}

	return "It's a tie!"
}

// MatchResultMessage announces the winner of the match
func MatchResultMessage(userWon bool, user, dealer *Participant) string {
	if userWon {
		return fmt.Sprintf("Congratulations, you won the match %d to %d!", user.Score, dealer.Score)
	}

	return fmt.Sprintf("Sorry, the %s won the match %d to %d.", dealer.Name, dealer.Score, user.Score)
}
