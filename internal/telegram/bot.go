package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"twentyone-server/internal/config"
	"twentyone-server/pkg/room"
)

// updateTimeout is the long polling timeout in seconds
const updateTimeout = 60

// Bot polls Telegram for updates and hands them to the Handler
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  logrus.FieldLogger
}

// New connects to the Telegram API with the configured token
func New(cfg config.Config, pitBoss *room.PitBoss, logger logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	api.Debug = cfg.Telegram.Debug

	return &Bot{
		api:     api,
		handler: NewHandler(api, pitBoss, logger),
		logger:  logger,
	}, nil
}

// Run handles updates until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.logger.WithField("username", b.api.Self.UserName).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.handler.Close()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.CallbackQuery != nil {
				go b.handler.HandleCallback(update.CallbackQuery)
				continue
			}

			if update.Message != nil {
				go b.handler.HandleMessage(update.Message)
			}
		}
	}
}
