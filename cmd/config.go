package main

import (
	"econ-lab/internal"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// SETTINGS_FILE is a YAML settings file; empty uses the built-in settings
	SettingsFile   string `envconfig:"SETTINGS_FILE"`
	SecretsFile    string `envconfig:"SECRETS_FILE"`
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/snapshots"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
	// COLOURS enables colorized status lines
	Colours bool `envconfig:"COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.SecretsFile == "" {
		cfg.SecretsFile = internal.DefaultSecretsFile
	}
	return cfg, nil
}
