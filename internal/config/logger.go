package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"twentyone-server/pkg/playable/twentyone"
)

// ConfigureLogger applies log.level and log.format to the logger
func (c Config) ConfigureLogger(logger *logrus.Logger) error {
	if lvl := c.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return err
		}

		logger.SetLevel(level)
	}

	if strings.ToLower(c.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return nil
}

// GameOptions returns the options new matches are dealt with
func (c Config) GameOptions() twentyone.Options {
	options := twentyone.DefaultOptions()
	if c.ScoreLimit != 0 {
		options.ScoreLimit = c.ScoreLimit
	}

	if c.DealerStandOn != 0 {
		options.DealerStandOn = c.DealerStandOn
	}

	return options
}
