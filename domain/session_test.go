package domain

import (
	"econ-lab/errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMerge_UsesDefaultsWhenTemplateIsSilent(t *testing.T) {
	req := require.New(t)
	template := SessionTemplate{
		Name:                "trust",
		DisplayName:         "Trust Game",
		AppSequence:         []string{"trust"},
		NumDemoParticipants: 2,
	}
	defaults := SessionDefaults{RealWorldCurrencyPerPoint: 1.00, ParticipationFee: 0.00, Doc: ""}

	cfg := Merge(template, defaults)
	req.Equal(SessionConfig{
		Name:                      "trust",
		DisplayName:               "Trust Game",
		AppSequence:               []string{"trust"},
		NumDemoParticipants:       2,
		RealWorldCurrencyPerPoint: 1.00,
	}, cfg)
}

func TestMerge_TemplateOverridesWin(t *testing.T) {
	req := require.New(t)
	template := SessionTemplate{
		Name:                      "honesty",
		AppSequence:               []string{"honesty"},
		NumDemoParticipants:       1,
		RealWorldCurrencyPerPoint: lo.ToPtr(0.01),
		ParticipationFee:          lo.ToPtr(0.0),
		Doc:                       lo.ToPtr("Evans III et al."),
		Extra:                     map[string]any{"treatment": "neutral"},
	}
	defaults := SessionDefaults{
		RealWorldCurrencyPerPoint: 1,
		ParticipationFee:          5,
		Doc:                       "default doc",
		Extra:                     map[string]any{"treatment": "baseline", "rounds": 10},
	}

	cfg := Merge(template, defaults)
	req.Equal(0.01, cfg.RealWorldCurrencyPerPoint)
	req.Equal(0.0, cfg.ParticipationFee)
	req.Equal("Evans III et al.", cfg.Doc)
	req.Equal(map[string]any{"treatment": "neutral", "rounds": 10}, cfg.Extra)
}

func TestMerge_DoesNotShareStateWithInputs(t *testing.T) {
	req := require.New(t)
	template := SessionTemplate{Name: "trust", AppSequence: []string{"trust"}, Extra: map[string]any{"k": 1}}
	cfg := Merge(template, SessionDefaults{})

	template.AppSequence[0] = "changed"
	template.Extra["k"] = 2
	req.Equal([]string{"trust"}, cfg.AppSequence)
	req.Equal(1, cfg.Extra["k"])
}

func TestSessionConfig_Get(t *testing.T) {
	req := require.New(t)
	cfg := SessionConfig{
		Name:                "deception",
		DisplayName:         "Deception Game",
		AppSequence:         []string{"deception"},
		NumDemoParticipants: 2,
		ParticipationFee:    2.5,
		Extra:               map[string]any{"endowment": 100},
	}

	v, ok := cfg.Get(KeyParticipationFee)
	req.True(ok)
	req.Equal(2.5, v)

	v, ok = cfg.Get("endowment")
	req.True(ok)
	req.Equal(100, v)

	_, ok = cfg.Get("missing")
	req.False(ok)

	req.Equal([]string{
		KeyName, KeyDisplayName, KeyAppSequence, KeyNumDemoParticipants,
		KeyRealWorldCurrencyPerPoint, KeyParticipationFee, KeyDoc, "endowment",
	}, cfg.Keys())
}

func TestFieldSet(t *testing.T) {
	req := require.New(t)
	fields := FieldSet{"wealth", "feedback", "wealth", "payoff"}

	req.True(fields.Contains("feedback"))
	req.False(fields.Contains("human_check"))
	req.Equal([]string{"wealth"}, fields.Duplicates())
	req.Equal([]string{"payoff"}, fields.Reserved())
	req.True(IsReservedField("round_number"))
	req.False(IsReservedField("comprehension_check"))
}

func TestParticipant_SetAndGet(t *testing.T) {
	req := require.New(t)
	p := NewParticipant("abc", FieldSet{"wealth", "feedback"})

	_, ok, err := p.Get("wealth")
	req.NoError(err)
	req.False(ok)

	req.NoError(p.Set("wealth", 12.5))
	req.NoError(p.Set("feedback", "fine"))
	req.Equal(map[string]any{"wealth": 12.5, "feedback": "fine"}, p.Values())

	req.ErrorIs(p.Set("human_check", true), errors.ErrUndeclaredField)
	_, _, err = p.Get("human_check")
	req.ErrorIs(err, errors.ErrUndeclaredField)
}

func TestRoom_HasParticipantLabels(t *testing.T) {
	require.False(t, Room{Name: "live_demo"}.HasParticipantLabels())
	require.True(t, Room{Name: "lab", ParticipantLabelFile: "_rooms/lab.txt"}.HasParticipantLabels())
}
