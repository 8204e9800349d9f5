package twentyone

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"twentyone-server/internal/rng"
	"twentyone-server/pkg/deck"
	"twentyone-server/pkg/playable"
)

// matchOverState is reported as the state once a participant reaches the score limit
const matchOverState = "match-over"

const quitState = "quit"

// RoundResult is the record of a settled round
type RoundResult struct {
	Number      int     `json:"number"`
	Outcome     Outcome `json:"outcome"`
	UserHand    string  `json:"userHand"`
	UserTotal   int     `json:"userTotal"`
	DealerHand  string  `json:"dealerHand"`
	DealerTotal int     `json:"dealerTotal"`
}

// Game is a match of Twenty-One between a user and the dealer
// A match is a series of rounds that ends when either side reaches the score limit.
// Game is not safe for concurrent use.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
	newDeck func() *deck.Deck

	user   *Participant
	dealer *Participant

	matchID string
	round   *Round
	results []*RoundResult
	winner  *Participant
	quit    bool
}

var _ playable.Playable = &Game{}

// NewGame returns a new match with the first round dealt
func NewGame(logger logrus.FieldLogger, userName string, options Options) (*Game, error) {
	if options.Rand == nil {
		options.Rand = rng.Crypto{}
	}

	gen := options.Rand
	return newGame(logger, userName, options, func() *deck.Deck {
		return deck.NewShuffled(gen)
	})
}

// newGame accepts the deck source for each round
func newGame(logger logrus.FieldLogger, userName string, options Options, newDeck func() *deck.Deck) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	name, err := NormalizeName(userName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		options: options,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
		newDeck: newDeck,
		user:    newParticipant(name, UserPolicy{}),
		dealer:  newParticipant(DealerName, DealerPolicy{StandOn: options.DealerStandOn}),
	}

	if err := g.startMatch(); err != nil {
		return nil, err
	}

	return g, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Twenty-One"
}

// Key returns a unique key
func (g *Game) Key() string {
	return "twenty-one"
}

// User returns the user
func (g *Game) User() *Participant {
	return g.user
}

// Dealer returns the dealer
func (g *Game) Dealer() *Participant {
	return g.dealer
}

// Options returns the options the game was created with
func (g *Game) Options() Options {
	return g.options
}

// MatchID returns the unique ID of the current match
func (g *Game) MatchID() string {
	return g.matchID
}

// CurrentRound returns the round in progress (or the last settled round)
func (g *Game) CurrentRound() *Round {
	return g.round
}

// RoundNumber returns the current round number, starting at 1
func (g *Game) RoundNumber() int {
	return g.round.Number
}

// Results returns the settled rounds of the current match
func (g *Game) Results() []*RoundResult {
	return g.results
}

// Winner returns the match winner, or nil if the match is still in progress
func (g *Game) Winner() *Participant {
	return g.winner
}

// IsMatchOver returns true if a participant reached the score limit
func (g *Game) IsMatchOver() bool {
	return g.winner != nil
}

// IsQuit returns true if the user declined to play again
func (g *Game) IsQuit() bool {
	return g.quit
}

// State returns the name of the state the game is in
func (g *Game) State() string {
	switch {
	case g.quit:
		return quitState
	case g.IsMatchOver():
		return matchOverState
	}

	return string(g.round.State)
}

// ValidActions returns the actions the caller can take right now
func (g *Game) ValidActions() []Action {
	switch {
	case g.quit:
		return nil
	case g.IsMatchOver():
		return []Action{ActionPlayAgain, ActionQuit}
	case g.round.State == RoundStateUserTurn:
		return []Action{ActionHit, ActionStay}
	case g.round.IsDone():
		return []Action{ActionNextRound, ActionQuit}
	}

	return nil
}

// Apply performs an action
// An action that is not valid for the current state returns an *InvalidActionError and changes nothing.
func (g *Game) Apply(action Action) error {
	if !g.isValidAction(action) {
		e := &InvalidActionError{Action: action, State: g.State()}
		if g.IsMatchOver() {
			e.reason = ErrMatchOver
		}

		return e
	}

	switch action {
	case ActionHit:
		if err := g.round.Hit(); err != nil {
			return err
		}

		return g.advance()
	case ActionStay:
		if err := g.round.Stay(); err != nil {
			return err
		}

		return g.advance()
	case ActionNextRound:
		return g.NextRound()
	case ActionPlayAgain:
		return g.PlayAgain()
	case ActionQuit:
		g.quit = true
		g.logger.WithField("match", g.matchID).Info("user quit")
		return nil
	}

	panic(fmt.Sprintf("unhandled action: %s", action))
}

// NextRound clears both hands and deals a new round from a fresh deck
func (g *Game) NextRound() error {
	if g.quit || g.IsMatchOver() || !g.round.IsDone() {
		e := &InvalidActionError{Action: ActionNextRound, State: g.State()}
		if g.IsMatchOver() {
			e.reason = ErrMatchOver
		}

		return e
	}

	return g.startRound(g.round.Number + 1)
}

// PlayAgain resets both scores and starts a new match
func (g *Game) PlayAgain() error {
	if g.quit || !g.IsMatchOver() {
		return &InvalidActionError{Action: ActionPlayAgain, State: g.State()}
	}

	return g.startMatch()
}

// Action performs with a message
// The subject is the action, either by ID or by name
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	action, err := ActionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	if err := g.Apply(action); err != nil {
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}

// GetState returns the current state of the game
func (g *Game) GetState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.Snapshot(),
	}, nil
}

// GetEndOfGameDetails returns the details after a match is over
// If the match is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if !g.IsMatchOver() {
		return nil, false
	}

	outcomes := make([]string, len(g.results))
	for i, result := range g.results {
		outcomes[i] = string(result.Outcome)
	}

	return &playable.GameOverDetails{
		ID:     g.matchID,
		Winner: g.winner.Name,
		Scores: map[string]int{
			g.user.Name:   g.user.Score,
			g.dealer.Name: g.dealer.Score,
		},
		Rounds:   len(g.results),
		Outcomes: outcomes,
		Log:      g.results,
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

func (g *Game) isValidAction(action Action) bool {
	for _, valid := range g.ValidActions() {
		if action == valid {
			return true
		}
	}

	return false
}

func (g *Game) startMatch() error {
	g.matchID = uuid.New().String()
	g.user.Score = 0
	g.dealer.Score = 0
	g.winner = nil
	g.results = nil

	g.logger.WithFields(logrus.Fields{
		"match":      g.matchID,
		"user":       g.user.Name,
		"scoreLimit": g.options.ScoreLimit,
	}).Info("match started")

	return g.startRound(1)
}

func (g *Game) startRound(number int) error {
	d := g.newDeck()
	r := NewRound(number, d, g.user, g.dealer)
	r.logChan = g.logChan
	g.round = r

	g.logger.WithFields(logrus.Fields{
		"match": g.matchID,
		"round": number,
		"deck":  d.HashCode(),
	}).Debug("round started")

	if err := r.Deal(); err != nil {
		return err
	}

	return g.advance()
}

// advance runs every transition that needs no decision from the caller
func (g *Game) advance() error {
	r := g.round
	if r.State == RoundStateDealerTurn {
		if err := r.PlayDealer(); err != nil {
			return err
		}
	}

	if r.State != RoundStateSettlement {
		return nil
	}

	outcome, err := r.Settle()
	if err != nil {
		return err
	}

	user, dealer := g.user.HandState(), g.dealer.HandState()
	g.results = append(g.results, &RoundResult{
		Number:      r.Number,
		Outcome:     outcome,
		UserHand:    g.user.Hand.String(),
		UserTotal:   user.Total,
		DealerHand:  g.dealer.Hand.String(),
		DealerTotal: dealer.Total,
	})

	log := g.logger.WithFields(logrus.Fields{
		"match":       g.matchID,
		"round":       r.Number,
		"outcome":     outcome,
		"userScore":   g.user.Score,
		"dealerScore": g.dealer.Score,
	})
	log.Debug("round settled")

	switch {
	case g.user.Score >= g.options.ScoreLimit:
		g.winner = g.user
	case g.dealer.Score >= g.options.ScoreLimit:
		g.winner = g.dealer
	}

	if g.winner != nil {
		log.WithField("winner", g.winner.Name).Info("match over")
		g.sendLogMessage("%s", MatchResultMessage(g.winner == g.user, g.user, g.dealer))
	}

	return nil
}

func (g *Game) sendLogMessage(format string, a ...interface{}) {
	select {
	case g.logChan <- playable.SimpleLogMessageSlice("", format, a...):
	default:
	}
}
