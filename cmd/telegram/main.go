package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"twentyone-server/internal/config"
	"twentyone-server/internal/telegram"
	"twentyone-server/pkg/db"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/room"
)

func main() {
	cfg := config.Instance()
	if err := cfg.ConfigureLogger(logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Fatal("could not configure logger")
	}

	if cfg.Telegram.Token == "" {
		logrus.Fatal("missing telegram token in configuration")
	}

	var recorder room.MatchRecorder
	if cfg.HistoryEnabled {
		dbh, err := db.Instance()
		if err != nil {
			logrus.WithError(err).Fatal("could not connect to database")
		}

		if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		recorder = model.NewMatchStore(dbh)
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), cfg.GameOptions(), recorder)
	defer pitBoss.Close()

	bot, err := telegram.New(cfg, pitBoss, logrus.StandardLogger())
	if err != nil {
		logrus.WithError(err).Fatal("could not create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("bot stopped")
	}
}
