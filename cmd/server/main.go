package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"twentyone-server/internal/config"
	"twentyone-server/internal/mux"
	"twentyone-server/pkg/db"
	"twentyone-server/pkg/model"
	"twentyone-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (defaults to server.addr)")

func main() {
	flag.Parse()

	cfg := config.Instance()
	if err := cfg.ConfigureLogger(logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Fatal("could not configure logger")
	}

	var recorder room.MatchRecorder
	var history mux.MatchHistory
	if cfg.HistoryEnabled {
		store, err := openMatchStore(cfg)
		if err != nil {
			logrus.WithError(err).Fatal("could not open match history")
		}

		recorder = store
		history = store
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), cfg.GameOptions(), recorder)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(cfg, c.Handler(mux.NewMux(Version, pitBoss, history))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logrus.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		pitBoss.Close()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).WithField("history", cfg.HistoryEnabled).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}

// openMatchStore connects to postgres and runs the migrations
func openMatchStore(cfg config.Config) (*model.MatchStore, error) {
	dbh, err := db.Instance()
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	return model.NewMatchStore(dbh), nil
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}
