// Package settings loads the configuration of the experiment server: the
// session configs with their defaults applied, rooms, declared extra
// fields, locale and currency, and the admin secrets. A loaded *Settings
// never changes; every accessor hands out copies.
package settings

import (
	"econ-lab/auth"
	"econ-lab/domain"
	"econ-lab/errors"
	"econ-lab/internal"
	"econ-lab/payoff"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type Options struct {
	// File is a YAML settings file. Empty means the built-in settings.
	File string
	// SecretsFile is a dotenv file read before the environment.
	SecretsFile string
	// Logger defaults to one at LOG_LEVEL.
	Logger *slog.Logger
}

type Settings struct {
	doc            Document
	sessionConfigs []domain.SessionConfig
	byName         map[string]int
	language       language.Tag
	currency       currency.Unit
	admin          *auth.Admin
	signer         *auth.Signer
	env            internal.Config
}

// Load reads the secrets and the settings document, applies the session
// defaults and validates the result.
func Load(opts Options) (*Settings, error) {
	config, err := internal.LoadConfig(opts.SecretsFile)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logs.GetLoggerFromString(config.LogLevel)
	}

	var doc Document
	if opts.File == "" {
		doc, err = ParseDocument(defaultDocument)
	} else {
		doc, err = ReadDocument(opts.File)
	}
	if err != nil {
		return nil, err
	}

	s, err := New(doc, config)
	if err != nil {
		return nil, err
	}
	for _, warning := range LintLanguage(doc) {
		log.Warn("Settings lint", "warning", warning)
	}
	log.Info("Settings loaded",
		"session_configs", len(s.sessionConfigs),
		"rooms", len(doc.Rooms),
		"language", s.language.String(),
		"currency", s.currency.String(),
		"auth_level", string(config.Level()),
		"production", config.Production)
	return s, nil
}

// New builds settings from an already decoded document and environment.
func New(doc Document, config internal.Config) (*Settings, error) {
	if err := config.RequireSecrets(); err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	if config.Production && config.AdminPassword != "" {
		if err := auth.ValidateProductionPassword(config.AdminPassword); err != nil {
			return nil, fmt.Errorf("%s: %w", internal.EnvAdminPassword, err)
		}
	}

	tag, _ := language.Parse(doc.LanguageCode)
	unit, _ := currency.ParseISO(doc.RealWorldCurrencyCode)

	admin, err := auth.NewAdmin(doc.AdminUsername, config.AdminPassword)
	if err != nil {
		return nil, err
	}
	signer, err := auth.NewSigner(config.RestKey)
	if err != nil {
		return nil, err
	}

	configs := lo.Map(doc.SessionConfigs, func(t domain.SessionTemplate, _ int) domain.SessionConfig {
		return domain.Merge(t, doc.SessionConfigDefaults)
	})
	byName := make(map[string]int, len(configs))
	for i, c := range configs {
		byName[c.Name] = i
	}

	return &Settings{
		doc:            cloneDocument(doc),
		sessionConfigs: configs,
		byName:         byName,
		language:       tag,
		currency:       unit,
		admin:          admin,
		signer:         signer,
		env:            config,
	}, nil
}

func (s *Settings) SessionConfigs() []domain.SessionConfig {
	return lo.Map(s.sessionConfigs, func(c domain.SessionConfig, _ int) domain.SessionConfig {
		return cloneConfig(c)
	})
}

func (s *Settings) SessionConfig(name string) (domain.SessionConfig, error) {
	i, ok := s.byName[name]
	if !ok {
		return domain.SessionConfig{}, fmt.Errorf("%w: %q", errors.ErrUnknownSessionConfig, name)
	}
	return cloneConfig(s.sessionConfigs[i]), nil
}

func (s *Settings) SessionConfigDefaults() domain.SessionDefaults {
	d := s.doc.SessionConfigDefaults
	d.Extra = lo.Assign(map[string]any{}, d.Extra)
	return d
}

func (s *Settings) ParticipantFields() domain.FieldSet {
	return slices.Clone(domain.FieldSet(s.doc.ParticipantFields))
}

func (s *Settings) SessionFields() domain.FieldSet {
	return slices.Clone(domain.FieldSet(s.doc.SessionFields))
}

func (s *Settings) LanguageCode() string { return s.doc.LanguageCode }
func (s *Settings) Language() language.Tag { return s.language }
func (s *Settings) RealWorldCurrencyCode() string { return s.doc.RealWorldCurrencyCode }
func (s *Settings) Currency() currency.Unit { return s.currency }
func (s *Settings) UsePoints() bool { return s.doc.UsePoints }
func (s *Settings) AdminUsername() string { return s.doc.AdminUsername }
func (s *Settings) DemoPageIntroHTML() string { return s.doc.DemoPageIntroHTML }
func (s *Settings) Admin() *auth.Admin { return s.admin }
func (s *Settings) Signer() *auth.Signer { return s.signer }
func (s *Settings) AuthLevel() internal.AuthLevel { return s.env.Level() }
func (s *Settings) Production() bool { return s.env.Production }

func (s *Settings) Rooms() []domain.Room {
	return slices.Clone(s.doc.Rooms)
}

func (s *Settings) Room(name string) (domain.Room, error) {
	room, ok := lo.Find(s.doc.Rooms, func(r domain.Room) bool { return r.Name == name })
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %q", errors.ErrUnknownRoom, name)
	}
	return room, nil
}

func (s *Settings) InstalledApps() []string {
	return slices.Clone(s.doc.InstalledApps)
}

// Document returns the declarative settings this value was built from.
// Secrets are not part of it.
func (s *Settings) Document() Document {
	return cloneDocument(s.doc)
}

// NewParticipant returns a participant holding the declared extra fields.
func (s *Settings) NewParticipant(code string) *domain.Participant {
	return domain.NewParticipant(code, s.ParticipantFields())
}

// NewSession returns a session of the named config holding the declared
// extra session fields.
func (s *Settings) NewSession(code, configName string) (*domain.Session, error) {
	cfg, err := s.SessionConfig(configName)
	if err != nil {
		return nil, err
	}
	return domain.NewSession(code, cfg, s.SessionFields()), nil
}

func cloneConfig(c domain.SessionConfig) domain.SessionConfig {
	c.AppSequence = slices.Clone(c.AppSequence)
	if c.Extra != nil {
		c.Extra = lo.Assign(map[string]any{}, c.Extra)
	}
	return c
}

func cloneDocument(d Document) Document {
	d.SessionConfigs = lo.Map(d.SessionConfigs, func(t domain.SessionTemplate, _ int) domain.SessionTemplate {
		t.AppSequence = slices.Clone(t.AppSequence)
		if t.RealWorldCurrencyPerPoint != nil {
			t.RealWorldCurrencyPerPoint = lo.ToPtr(*t.RealWorldCurrencyPerPoint)
		}
		if t.ParticipationFee != nil {
			t.ParticipationFee = lo.ToPtr(*t.ParticipationFee)
		}
		if t.Doc != nil {
			t.Doc = lo.ToPtr(*t.Doc)
		}
		if t.Extra != nil {
			t.Extra = lo.Assign(map[string]any{}, t.Extra)
		}
		return t
	})
	if d.SessionConfigDefaults.Extra != nil {
		d.SessionConfigDefaults.Extra = lo.Assign(map[string]any{}, d.SessionConfigDefaults.Extra)
	}
	d.ParticipantFields = slices.Clone(d.ParticipantFields)
	d.SessionFields = slices.Clone(d.SessionFields)
	d.Rooms = slices.Clone(d.Rooms)
	d.InstalledApps = slices.Clone(d.InstalledApps)
	return d
}

// Converter returns the payoff converter of the named session config.
func (s *Settings) Converter(configName string) (*payoff.Converter, error) {
	cfg, err := s.SessionConfig(configName)
	if err != nil {
		return nil, err
	}
	return payoff.NewConverter(s.doc.UsePoints, s.currency, s.language, cfg), nil
}
