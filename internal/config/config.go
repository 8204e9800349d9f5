package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"twentyone-server/internal/util"
)

// Config provides configuration for the Twenty-One server and its front ends
type Config struct {
	loaded         bool
	ScoreLimit     int    `yaml:"scoreLimit" envconfig:"score_limit"`
	DealerStandOn  int    `yaml:"dealerStandOn" envconfig:"dealer_stand_on"`
	HistoryEnabled bool   `yaml:"historyEnabled" envconfig:"history_enabled"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Telegram struct {
		Token string `yaml:"token"`
		Debug bool   `yaml:"debug"`
	} `yaml:"telegram"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.ScoreLimit = 5
	cfg.DealerStandOn = 17
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.Log.Level = "info"
	cfg.Server.Addr = ":5000"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values are read from a .env file, then the yaml config file, then TWENTYONE_* environment variables.
// Missing .env and config files are not an error.
func Load() error {
	envFile := util.Getenv("TWENTYONE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := DefaultConfig()

	configFile := util.Getenv("TWENTYONE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err := envconfig.Process("twentyone", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
