package settings

import (
	"bytes"
	_ "embed"
	"econ-lab/domain"
	"econ-lab/errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// Document is the declarative settings file as written by the experimenter.
type Document struct {
	SessionConfigs        []domain.SessionTemplate `yaml:"session_configs" validate:"required,min=1,dive"`
	SessionConfigDefaults domain.SessionDefaults   `yaml:"session_config_defaults"`
	ParticipantFields     []string                 `yaml:"participant_fields" validate:"dive,identifier"`
	SessionFields         []string                 `yaml:"session_fields" validate:"dive,identifier"`
	LanguageCode          string                   `yaml:"language_code" validate:"required"`
	RealWorldCurrencyCode string                   `yaml:"real_world_currency_code" validate:"required,len=3"`
	UsePoints             bool                     `yaml:"use_points"`
	Rooms                 []domain.Room            `yaml:"rooms" validate:"dive"`
	AdminUsername         string                   `yaml:"admin_username" validate:"required"`
	DemoPageIntroHTML     string                   `yaml:"demo_page_intro_html"`
	InstalledApps         []string                 `yaml:"installed_apps" validate:"required,min=1"`
}

// DefaultDocument returns the settings shipped with the binary.
func DefaultDocument() []byte {
	return bytes.Clone(defaultDocument)
}

// ReadDocument loads a YAML settings file.
func ReadDocument(path string) (Document, error) {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Document{}, fmt.Errorf("unsupported settings format: %s (only YAML supported)", ext)
	}
	// #nosec G304 -- the settings path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read settings: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a single YAML document. Unknown top-level keys are
// rejected; unknown keys inside a session config are kept as extra config.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{}, fmt.Errorf("%w: empty settings document", errors.ErrInvalidSettings)
		}
		// yaml.v3 reports KnownFields violations only as text inside a
		// *yaml.TypeError: "line N: field X not found in type T".
		if strings.Contains(err.Error(), "not found in type") {
			return Document{}, fmt.Errorf("%w: %v", errors.ErrUnknownSettingsField, err)
		}
		return Document{}, fmt.Errorf("%w: %v", errors.ErrInvalidSettings, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Document{}, fmt.Errorf("%w: multiple documents or trailing content", errors.ErrInvalidSettings)
	}
	return doc, nil
}

// Marshal renders the document back to YAML.
func (d Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
