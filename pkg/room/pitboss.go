package room

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/playable/twentyone"
)

// ErrTableNotFound is returned when no open table has the UUID
var ErrTableNotFound = errors.New("table not found")

// MatchRecorder stores finished matches
type MatchRecorder interface {
	SaveMatch(ctx context.Context, m *model.Match) error
}

// PitBoss is responsible for opening tables and dispatching requests to their dealers
type PitBoss struct {
	logger   logrus.FieldLogger
	options  twentyone.Options
	recorder MatchRecorder

	lock    sync.RWMutex
	dealers map[string]*Dealer
}

// NewPitBoss returns a new PitBoss
// recorder may be nil, in which case finished matches are not stored
func NewPitBoss(logger logrus.FieldLogger, options twentyone.Options, recorder MatchRecorder) *PitBoss {
	return &PitBoss{
		logger:   logger,
		options:  options,
		recorder: recorder,
		dealers:  make(map[string]*Dealer),
	}
}

// OpenTable deals a new match for the player and starts a dealer for it
func (p *PitBoss) OpenTable(playerName string) (*Dealer, error) {
	tableUUID := uuid.New().String()
	log := p.logger.WithField("table", tableUUID)

	game, err := twentyone.NewGame(log, playerName, p.options)
	if err != nil {
		return nil, err
	}

	d := NewDealer(log, tableUUID, game, p.recorder)
	d.StartShift()

	p.lock.Lock()
	p.dealers[tableUUID] = d
	p.lock.Unlock()

	log.WithField("player", game.User().Name).Info("table opened")
	return d, nil
}

// Dealer returns the dealer running the table
func (p *PitBoss) Dealer(tableUUID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	d, found := p.dealers[tableUUID]
	if !found {
		return nil, ErrTableNotFound
	}

	return d, nil
}

// CloseTable ends the dealer's shift and forgets the table
func (p *PitBoss) CloseTable(tableUUID string) error {
	p.lock.Lock()
	d, found := p.dealers[tableUUID]
	delete(p.dealers, tableUUID)
	p.lock.Unlock()

	if !found {
		return ErrTableNotFound
	}

	d.EndShift()
	p.logger.WithField("table", tableUUID).Info("table closed")
	return nil
}

// Options returns the options every new table is dealt with
func (p *PitBoss) Options() twentyone.Options {
	return p.options
}

// Tables returns the number of open tables
func (p *PitBoss) Tables() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// Close closes every open table
func (p *PitBoss) Close() {
	p.lock.Lock()
	dealers := p.dealers
	p.dealers = make(map[string]*Dealer)
	p.lock.Unlock()

	for _, d := range dealers {
		d.EndShift()
	}
}
