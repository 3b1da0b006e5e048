package internal

import (
	"econ-lab/errors"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// DefaultSecretsFile is looked up relative to the working directory,
// next to the project rather than inside it.
const DefaultSecretsFile = "../secrets.env"

const (
	EnvAdminPassword = "OTREE_ADMIN_PASSWORD"
	EnvRestKey       = "OTREE_REST_KEY"
)

type AuthLevel string

const (
	AuthLevelNone  AuthLevel = ""
	AuthLevelDemo  AuthLevel = "DEMO"
	AuthLevelStudy AuthLevel = "STUDY"
)

type Config struct {
	AdminPassword string `env:"OTREE_ADMIN_PASSWORD"`
	RestKey       string `env:"OTREE_REST_KEY"`
	AuthLevel     string `env:"OTREE_AUTH_LEVEL"`
	Production    bool   `env:"OTREE_PRODUCTION,default=false"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
}

// LoadSecretsFile exports the variables of a dotenv file into the process
// environment. Variables already set win over the file, and a missing file
// is not an error.
func LoadSecretsFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("secrets file %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the secrets file then the environment, and fails when a
// secret the current auth level depends on is absent.
func LoadConfig(secretsFile string) (Config, error) {
	if err := LoadSecretsFile(secretsFile); err != nil {
		return Config{}, err
	}
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	config.AuthLevel = strings.ToUpper(strings.TrimSpace(config.AuthLevel))
	if err := config.RequireSecrets(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// RequireSecrets checks that the signing key is always present and that an
// admin password exists whenever the admin pages are protected.
func (c Config) RequireSecrets() error {
	level, err := ParseAuthLevel(c.AuthLevel)
	if err != nil {
		return err
	}
	var errs []error
	if c.RestKey == "" {
		errs = append(errs, fmt.Errorf("%w: %s", errors.ErrMissingSecret, EnvRestKey))
	}
	if level != AuthLevelNone && c.AdminPassword == "" {
		errs = append(errs, fmt.Errorf("%w: %s (required with auth level %s)",
			errors.ErrMissingSecret, EnvAdminPassword, level))
	}
	return stderrors.Join(errs...)
}

func (c Config) Level() AuthLevel {
	level, _ := ParseAuthLevel(c.AuthLevel)
	return level
}

func ParseAuthLevel(s string) (AuthLevel, error) {
	switch level := AuthLevel(strings.ToUpper(strings.TrimSpace(s))); level {
	case AuthLevelNone, AuthLevelDemo, AuthLevelStudy:
		return level, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidAuthLevel, s)
	}
}
