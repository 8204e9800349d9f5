package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"twentyone-server/internal/config"
)

var scoreLimit = flag.Int("score-limit", 0, "rounds needed to win the match (defaults to scoreLimit)")

func main() {
	flag.Parse()

	cfg := config.Instance()

	// engine logs would interleave with the prompts
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	logger.SetOutput(os.Stderr)

	options := cfg.GameOptions()
	if *scoreLimit > 0 {
		options.ScoreLimit = *scoreLimit
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	c := newConsole(os.Stdin, os.Stdout, isTerminal, logger, options)
	if err := c.run(); err != nil && !errors.Is(err, io.EOF) {
		logger.WithError(err).Fatal("could not play")
	}
}
