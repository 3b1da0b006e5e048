// Package payoff converts game payoffs to real-world money the way the
// session config says: points times real_world_currency_per_point, plus the
// participation fee, rounded to the currency's minor unit.
package payoff

import (
	"econ-lab/domain"
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Converter struct {
	usePoints bool
	perPoint  float64
	fee       float64
	unit      currency.Unit
	scale     int
	printer   *message.Printer
}

func NewConverter(usePoints bool, unit currency.Unit, tag language.Tag, cfg domain.SessionConfig) *Converter {
	scale, _ := currency.Standard.Rounding(unit)
	return &Converter{
		usePoints: usePoints,
		perPoint:  cfg.RealWorldCurrencyPerPoint,
		fee:       cfg.ParticipationFee,
		unit:      unit,
		scale:     scale,
		printer:   message.NewPrinter(tag),
	}
}

// ToRealWorld converts a payoff to money. Without points the payoff already
// is money and is only rounded.
func (c *Converter) ToRealWorld(payoff float64) float64 {
	if c.usePoints {
		payoff *= c.perPoint
	}
	return c.round(payoff)
}

// PayoffPlusParticipationFee is what the participant is paid in the end.
func (c *Converter) PayoffPlusParticipationFee(payoff float64) float64 {
	return c.round(c.ToRealWorld(payoff) + c.fee)
}

// FormatPayoff renders a payoff the way participants see it: whole points
// when points are used, money otherwise.
func (c *Converter) FormatPayoff(payoff float64) string {
	if !c.usePoints {
		return c.FormatMoney(payoff)
	}
	points := int64(math.Round(payoff))
	if points == 1 || points == -1 {
		return c.printer.Sprintf("%d point", points)
	}
	return c.printer.Sprintf("%d points", points)
}

func (c *Converter) FormatMoney(amount float64) string {
	format := fmt.Sprintf("%%.%df", c.scale)
	return c.unit.String() + " " + c.printer.Sprintf(format, c.round(amount))
}

func (c *Converter) round(v float64) float64 {
	pow := math.Pow10(c.scale)
	return math.Round(v*pow) / pow
}
