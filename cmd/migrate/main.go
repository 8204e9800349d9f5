package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"twentyone-server/internal/config"
	"twentyone-server/pkg/db"
)

var wait = flag.Duration("wait", time.Second*10, "how long to wait for the database to accept connections")

func main() {
	flag.Parse()

	cfg := config.Instance()
	if err := cfg.ConfigureLogger(logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Fatal("could not configure logger")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *wait)
	defer cancel()

	dbh, err := db.WaitForOpen(ctx, cfg.PGDSN, time.Millisecond*500)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}
