package telegram

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"twentyone-server/pkg/playable"
	"twentyone-server/pkg/playable/twentyone"
	"twentyone-server/pkg/room"
)

var errNoTable = errors.New("no match in progress, send /play to start one")

// Sender is the part of the Telegram API the handler needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler maps each chat to a table and turns chat commands and button presses into game actions
type Handler struct {
	sender  Sender
	pitBoss *room.PitBoss
	logger  logrus.FieldLogger

	lock   sync.Mutex
	tables map[int64]string
}

// NewHandler returns a new handler
func NewHandler(sender Sender, pitBoss *room.PitBoss, logger logrus.FieldLogger) *Handler {
	return &Handler{
		sender:  sender,
		pitBoss: pitBoss,
		logger:  logger,
		tables:  make(map[int64]string),
	}
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.WithError(err).WithField("chat", chatID).Error("could not send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat", chatID).Error("could not send message")
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.sender.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.WithError(err).Error("could not answer callback")
	}
}

// HandleMessage handles a chat command
func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)
	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start", "/help", "/rules":
		h.send(chatID, formatRules(h.pitBoss.Options()))
	case "/play":
		name := strings.Join(args, " ")
		if name == "" && msg.From != nil {
			name = msg.From.FirstName
		}

		h.handlePlay(chatID, name)
	case "/state":
		dealer, err := h.dealer(chatID)
		if err != nil {
			h.send(chatID, err.Error())
			return
		}

		h.sendState(chatID, dealer)
	case "/quit":
		if h.closeTable(chatID) {
			h.send(chatID, twentyone.GoodbyeMessage)
			return
		}

		h.send(chatID, errNoTable.Error())
	}
}

// HandleCallback handles a button press
func (h *Handler) HandleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	action, err := actionFromCallback(cb.Data)
	if err != nil {
		h.answerCallback(cb.ID, err.Error())
		return
	}

	dealer, err := h.dealer(chatID)
	if err != nil {
		h.answerCallback(cb.ID, err.Error())
		return
	}

	if _, err := dealer.Do(&playable.PayloadIn{
		Action:  room.MessageAction,
		Subject: strconv.Itoa(int(action)),
	}); err != nil {
		h.answerCallback(cb.ID, err.Error())
		return
	}

	h.answerCallback(cb.ID, "")

	if action == twentyone.ActionQuit {
		h.closeTable(chatID)
		h.send(chatID, twentyone.GoodbyeMessage)
		return
	}

	h.sendState(chatID, dealer)
}

// Close closes every table opened from Telegram
func (h *Handler) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	for chatID, tableUUID := range h.tables {
		_ = h.pitBoss.CloseTable(tableUUID)
		delete(h.tables, chatID)
	}
}

// handlePlay opens a new table for the chat and closes the one it replaces
// An invalid name leaves the current match alone.
func (h *Handler) handlePlay(chatID int64, name string) {
	dealer, err := h.pitBoss.OpenTable(name)
	if err != nil {
		var ue twentyone.UserError
		if errors.As(err, &ue) {
			h.send(chatID, err.Error())
			return
		}

		h.logger.WithError(err).WithField("chat", chatID).Error("could not open table")
		h.send(chatID, "could not start a match, please try again later")
		return
	}

	h.lock.Lock()
	previous, found := h.tables[chatID]
	h.tables[chatID] = dealer.UUID
	h.lock.Unlock()

	if found {
		_ = h.pitBoss.CloseTable(previous)
	}

	h.sendState(chatID, dealer)
}

func (h *Handler) sendState(chatID int64, dealer *room.Dealer) {
	ts, err := dealer.State()
	if err != nil {
		h.send(chatID, err.Error())
		return
	}

	text := formatGameState(ts.Game)
	if kb, ok := ActionKeyboard(ts.Game.Actions); ok {
		h.sendWithKeyboard(chatID, text, kb)
		return
	}

	h.send(chatID, text)
}

func (h *Handler) dealer(chatID int64) (*room.Dealer, error) {
	h.lock.Lock()
	tableUUID, found := h.tables[chatID]
	h.lock.Unlock()

	if !found {
		return nil, errNoTable
	}

	dealer, err := h.pitBoss.Dealer(tableUUID)
	if err != nil {
		return nil, errNoTable
	}

	return dealer, nil
}

// closeTable returns true if the chat had a table
func (h *Handler) closeTable(chatID int64) bool {
	h.lock.Lock()
	tableUUID, found := h.tables[chatID]
	delete(h.tables, chatID)
	h.lock.Unlock()

	if !found {
		return false
	}

	_ = h.pitBoss.CloseTable(tableUUID)
	return true
}
