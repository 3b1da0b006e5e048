package payoff

import (
	"econ-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestConverter_WithPoints(t *testing.T) {
	req := require.New(t)
	cfg := domain.SessionConfig{Name: "trust", RealWorldCurrencyPerPoint: 0.05, ParticipationFee: 3}
	c := NewConverter(true, currency.USD, language.English, cfg)

	req.Equal(1.5, c.ToRealWorld(30))
	req.Equal(4.5, c.PayoffPlusParticipationFee(30))
	req.Equal("30 points", c.FormatPayoff(30))
	req.Equal("1 point", c.FormatPayoff(1))
	req.Equal("USD 4.50", c.FormatMoney(c.PayoffPlusParticipationFee(30)))
}

func TestConverter_WithoutPoints(t *testing.T) {
	req := require.New(t)
	cfg := domain.SessionConfig{Name: "honesty", RealWorldCurrencyPerPoint: 0.05, ParticipationFee: 1}
	c := NewConverter(false, currency.USD, language.English, cfg)

	req.Equal(12.35, c.ToRealWorld(12.346))
	req.Equal(13.35, c.PayoffPlusParticipationFee(12.346))
	req.Equal("USD 12.35", c.FormatPayoff(12.346))
}

func TestConverter_RoundsToCurrencyMinorUnit(t *testing.T) {
	req := require.New(t)
	cfg := domain.SessionConfig{RealWorldCurrencyPerPoint: 1.4}
	c := NewConverter(true, currency.JPY, language.Japanese, cfg)

	req.Equal(14.0, c.ToRealWorld(10))
	req.Equal(1.0, c.ToRealWorld(1))
	req.Equal("JPY 14", c.FormatMoney(14))
}
