package domain

import (
	"econ-lab/errors"
	"fmt"
	"maps"
)

// Participant carries the extra slots declared in the settings. Only
// declared names may be read or written; a slot that was never written
// reads as unset.
type Participant struct {
	Code   string
	fields FieldSet
	values map[string]any
}

func NewParticipant(code string, fields FieldSet) *Participant {
	return &Participant{
		Code:   code,
		fields: fields,
		values: make(map[string]any, len(fields)),
	}
}

func (p *Participant) Set(name string, value any) error {
	if !p.fields.Contains(name) {
		return fmt.Errorf("%w: participant.%s", errors.ErrUndeclaredField, name)
	}
	p.values[name] = value
	return nil
}

func (p *Participant) Get(name string) (any, bool, error) {
	if !p.fields.Contains(name) {
		return nil, false, fmt.Errorf("%w: participant.%s", errors.ErrUndeclaredField, name)
	}
	v, ok := p.values[name]
	return v, ok, nil
}

// Values returns a copy of the slots written so far.
func (p *Participant) Values() map[string]any {
	return maps.Clone(p.values)
}

// Session carries the extra slots declared for a running session.
type Session struct {
	Code   string
	Config SessionConfig
	fields FieldSet
	values map[string]any
}

func NewSession(code string, cfg SessionConfig, fields FieldSet) *Session {
	return &Session{
		Code:   code,
		Config: cfg,
		fields: fields,
		values: make(map[string]any, len(fields)),
	}
}

func (s *Session) Set(name string, value any) error {
	if !s.fields.Contains(name) {
		return fmt.Errorf("%w: session.%s", errors.ErrUndeclaredField, name)
	}
	s.values[name] = value
	return nil
}

func (s *Session) Get(name string) (any, bool, error) {
	if !s.fields.Contains(name) {
		return nil, false, fmt.Errorf("%w: session.%s", errors.ErrUndeclaredField, name)
	}
	v, ok := s.values[name]
	return v, ok, nil
}
