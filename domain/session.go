// Package domain contains the configuration records of the experiment server:
// session templates, the defaults merged into them, rooms and the extra
// participant/session fields. Records are values; nothing here does I/O.
package domain

import (
	"slices"

	"github.com/samber/lo"
)

// Keys under which session config values are exposed to apps.
const (
	KeyName                      = "name"
	KeyDisplayName               = "display_name"
	KeyAppSequence               = "app_sequence"
	KeyNumDemoParticipants       = "num_demo_participants"
	KeyRealWorldCurrencyPerPoint = "real_world_currency_per_point"
	KeyParticipationFee          = "participation_fee"
	KeyDoc                       = "doc"
)

// SessionTemplate is one runnable variant of an experiment as declared in
// the settings document. Pointer fields are optional overrides of
// SessionDefaults; Extra holds any other key the apps read from the config.
type SessionTemplate struct {
	Name                      string         `yaml:"name" validate:"required,identifier"`
	DisplayName               string         `yaml:"display_name" validate:"required"`
	AppSequence               []string       `yaml:"app_sequence" validate:"required,min=1,dive,identifier"`
	NumDemoParticipants       int            `yaml:"num_demo_participants" validate:"gte=1"`
	RealWorldCurrencyPerPoint *float64       `yaml:"real_world_currency_per_point,omitempty" validate:"omitnil,gte=0"`
	ParticipationFee          *float64       `yaml:"participation_fee,omitempty" validate:"omitnil,gte=0"`
	Doc                       *string        `yaml:"doc,omitempty"`
	Extra                     map[string]any `yaml:",inline"`
}

// SessionDefaults is inherited by every template that does not set the
// same key itself.
type SessionDefaults struct {
	RealWorldCurrencyPerPoint float64        `yaml:"real_world_currency_per_point" validate:"gte=0"`
	ParticipationFee          float64        `yaml:"participation_fee" validate:"gte=0"`
	Doc                       string         `yaml:"doc"`
	Extra                     map[string]any `yaml:",inline"`
}

// SessionConfig is a template with its defaults applied.
type SessionConfig struct {
	Name                      string         `json:"name" yaml:"name"`
	DisplayName               string         `json:"display_name" yaml:"display_name"`
	AppSequence               []string       `json:"app_sequence" yaml:"app_sequence"`
	NumDemoParticipants       int            `json:"num_demo_participants" yaml:"num_demo_participants"`
	RealWorldCurrencyPerPoint float64        `json:"real_world_currency_per_point" yaml:"real_world_currency_per_point"`
	ParticipationFee          float64        `json:"participation_fee" yaml:"participation_fee"`
	Doc                       string         `json:"doc" yaml:"doc"`
	Extra                     map[string]any `json:"extra,omitempty" yaml:",inline"`
}

// Merge applies defaults to a template. Values set on the template win,
// extra keys are merged one by one. The result shares no slice or map
// with its inputs.
func Merge(t SessionTemplate, d SessionDefaults) SessionConfig {
	cfg := SessionConfig{
		Name:                      t.Name,
		DisplayName:               t.DisplayName,
		AppSequence:               slices.Clone(t.AppSequence),
		NumDemoParticipants:       t.NumDemoParticipants,
		RealWorldCurrencyPerPoint: d.RealWorldCurrencyPerPoint,
		ParticipationFee:          d.ParticipationFee,
		Doc:                       d.Doc,
	}
	if t.RealWorldCurrencyPerPoint != nil {
		cfg.RealWorldCurrencyPerPoint = *t.RealWorldCurrencyPerPoint
	}
	if t.ParticipationFee != nil {
		cfg.ParticipationFee = *t.ParticipationFee
	}
	if t.Doc != nil {
		cfg.Doc = *t.Doc
	}
	if len(d.Extra) > 0 || len(t.Extra) > 0 {
		cfg.Extra = lo.Assign(map[string]any{}, d.Extra, t.Extra)
	}
	return cfg
}

// Get returns a config value by its settings key, the way apps read
// session.config[key].
func (c SessionConfig) Get(key string) (any, bool) {
	switch key {
	case KeyName:
		return c.Name, true
	case KeyDisplayName:
		return c.DisplayName, true
	case KeyAppSequence:
		return slices.Clone(c.AppSequence), true
	case KeyNumDemoParticipants:
		return c.NumDemoParticipants, true
	case KeyRealWorldCurrencyPerPoint:
		return c.RealWorldCurrencyPerPoint, true
	case KeyParticipationFee:
		return c.ParticipationFee, true
	case KeyDoc:
		return c.Doc, true
	}
	v, ok := c.Extra[key]
	return v, ok
}

// Keys lists every key Get answers for, built-in keys first.
func (c SessionConfig) Keys() []string {
	keys := []string{
		KeyName, KeyDisplayName, KeyAppSequence, KeyNumDemoParticipants,
		KeyRealWorldCurrencyPerPoint, KeyParticipationFee, KeyDoc,
	}
	extra := lo.Keys(c.Extra)
	slices.Sort(extra)
	return append(keys, extra...)
}
