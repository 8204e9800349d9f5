package room

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/playable"
	"twentyone-server/pkg/playable/twentyone"
)

// ErrTableClosed is returned when a message arrives after the dealer's shift ended
var ErrTableClosed = errors.New("table is closed")

const saveMatchTimeout = time.Second * 5

// Message actions understood by the dealer
const (
	MessageAction = "play"
	MessageState  = "state"
)

// TableState is what a client sees of a table
type TableState struct {
	UUID string                 `json:"uuid"`
	Game *twentyone.GameState   `json:"game"`
	Log  []*playable.LogMessage `json:"log"`
}

// Dealer owns a single table and serializes everything that touches its game
type Dealer struct {
	UUID string

	logger   logrus.FieldLogger
	game     *twentyone.Game
	recorder MatchRecorder

	clients map[*Client]bool
	lock    sync.RWMutex

	// only accessed from the run loop
	logMessages    []*playable.LogMessage
	lastRecordedID string

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(logger logrus.FieldLogger, tableUUID string, game *twentyone.Game, recorder MatchRecorder) *Dealer {
	return &Dealer{
		UUID:          tableUUID,
		logger:        logger,
		game:          game,
		recorder:      recorder,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop and publishes the opening deal
func (d *Dealer) StartShift() {
	go d.runLoop()
	_ = d.exec(d.stateChanged)
}

// EndShift stops the run loop and disconnects every client
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
		for _, client := range d.Clients() {
			client.requestClose(ErrTableClosed.Error())
		}
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn in the run loop and waits for it to finish
func (d *Dealer) exec(fn func()) error {
	done := make(chan bool)
	wrapped := func() {
		fn()
		close(done)
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrTableClosed
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrTableClosed
	}
}

// Do performs a message against the game
func (d *Dealer) Do(msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var actionErr error
	if err := d.exec(func() {
		res, actionErr = d.handle(msg)
	}); err != nil {
		return nil, err
	}

	return res, actionErr
}

// State returns the state of the table
func (d *Dealer) State() (*TableState, error) {
	var ts *TableState
	if err := d.exec(func() {
		ts = d.tableState()
	}); err != nil {
		return nil, err
	}

	return ts, nil
}

// AddClient adds a client and sends it the current state
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	select {
	case d.execInRunLoop <- func() {
		client.Send(&playable.Response{Key: "table", Value: d.UUID, Data: d.tableState()})
		d.sendClientState()
	}:
	case <-d.close:
		client.requestClose(ErrTableClosed.Error())
	}
}

// RemoveClient removes a client and returns how many remain
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) int {
	d.lock.Lock()
	delete(d.clients, client)
	remaining := len(d.clients)
	d.lock.Unlock()

	if remaining > 0 {
		select {
		case d.execInRunLoop <- d.sendClientState:
		case <-d.close:
		}
	}

	return remaining
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	res, err := d.Do(msg)
	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Info("could not perform action")
		c.Send(playable.ErrorResponse(msg.Context, err))
		return
	}

	if res != nil {
		res.Context = msg.Context
		c.Send(res)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handle(msg *playable.PayloadIn) (*playable.Response, error) {
	switch msg.Action {
	case MessageState:
		return &playable.Response{Key: "table", Value: d.UUID, Data: d.tableState(), Context: msg.Context}, nil
	case MessageAction, "":
		res, updateState, err := d.game.Action(msg)
		if err != nil {
			return nil, err
		}

		if updateState {
			d.stateChanged()
		}

		return res, nil
	}

	d.logger.WithField("msg", msg).Warn("unknown message")
	return nil, errors.New("unknown message")
}

// NOTE: must only be called from the run loop
func (d *Dealer) tableState() *TableState {
	log := make([]*playable.LogMessage, len(d.logMessages))
	copy(log, d.logMessages)

	return &TableState{
		UUID: d.UUID,
		Game: d.game.Snapshot(),
		Log:  log,
	}
}

// stateChanged collects new log messages, notifies clients, and records a finished match
// NOTE: must only be called from the run loop
func (d *Dealer) stateChanged() {
	messages := d.drainLogMessages()
	d.addLogMessages(messages)

	gameState, _ := d.game.GetState()
	d.broadcast(gameState)
	if len(messages) > 0 {
		d.broadcast(&playable.Response{Key: "log", Data: messages})
	}

	if details, isOver := d.game.GetEndOfGameDetails(); isOver && details.ID != d.lastRecordedID {
		if err := d.recordMatch(details); err != nil {
			d.logger.WithError(err).WithField("match", details.ID).Error("could not record match")
			return
		}

		d.lastRecordedID = details.ID
	}
}

// sendClientState tells every client who is watching
// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	clients := d.Clients()
	names := make([]string, len(clients))
	for i, client := range clients {
		names[i] = client.Name()
	}

	sort.Strings(names)
	d.broadcast(&playable.Response{Key: "clientState", Data: names})
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(res *playable.Response) {
	for _, client := range d.Clients() {
		if !client.Send(res) {
			d.logger.WithField("client", client.String()).Warn("client send buffer is full")
		}
	}
}

func (d *Dealer) recordMatch(details *playable.GameOverDetails) error {
	if d.recorder == nil {
		return nil
	}

	log, err := json.Marshal(details.Log)
	if err != nil {
		return err
	}

	playerName := d.game.User().Name
	m := &model.Match{
		ID:          details.ID,
		TableUUID:   d.UUID,
		PlayerName:  playerName,
		Winner:      details.Winner,
		UserScore:   details.Scores[playerName],
		DealerScore: details.Scores[twentyone.DealerName],
		Rounds:      details.Rounds,
		Outcomes:    details.Outcomes,
		Log:         log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveMatchTimeout)
	defer cancel()

	if err := d.recorder.SaveMatch(ctx, m); err != nil && !errors.Is(err, model.ErrDuplicateMatch) {
		return err
	}

	d.logger.WithField("match", details.ID).WithField("winner", details.Winner).Info("match recorded")
	return nil
}
