package model

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CalculationMode selects how the monthly hour target is derived.
type CalculationMode string

const (
	// ModeIncome derives the target from DesiredMonthlyIncome / HourlyRate.
	ModeIncome CalculationMode = "income"
	// ModeHours derives the target from working days × HoursPerDay.
	ModeHours CalculationMode = "hours"
)

// Language is a display locale selector.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
	LangZH Language = "zh"
)

// Currency is a display label only; no conversion is ever performed.
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyCNY Currency = "CNY"
)

// DefaultHoursPerDay is used when HoursPerDay is unset or unusable.
const DefaultHoursPerDay = 8

// Settings holds the user-editable earnings settings. Numeric fields keep the
// raw text the user typed, so "1500,5" and "1500.5" are both preserved as entered.
type Settings struct {
	HourlyRate           string          `json:"hourly_rate"`
	HoursPerDay          string          `json:"hours_per_day"`
	DesiredMonthlyIncome string          `json:"desired_monthly_income"`
	CalculationMode      CalculationMode `json:"calculation_mode"`
	IncludeWeekends      bool            `json:"include_weekends"`
	StartFromSunday      bool            `json:"start_from_sunday"`
	Language             Language        `json:"language"`
	Currency             Currency        `json:"currency"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		HoursPerDay:     "8",
		CalculationMode: ModeHours,
		Language:        LangRU,
		Currency:        CurrencyRUB,
	}
}

// Normalize replaces unknown enum values with their defaults.
func (s Settings) Normalize() Settings {
	switch s.CalculationMode {
	case ModeIncome, ModeHours:
	default:
		s.CalculationMode = ModeHours
	}
	switch s.Language {
	case LangRU, LangEN, LangZH:
	default:
		s.Language = LangRU
	}
	switch s.Currency {
	case CurrencyRUB, CurrencyUSD, CurrencyEUR, CurrencyCNY:
	default:
		s.Currency = CurrencyRUB
	}
	return s
}

// Rate returns the hourly rate, or 0 when it is not configured.
func (s Settings) Rate() float64 {
	v := ParseDecimal(s.HourlyRate)
	if v < 0 {
		return 0
	}
	return v
}

// DailyHours returns the per-day hour target, DefaultHoursPerDay when unset.
func (s Settings) DailyHours() float64 {
	v := ParseDecimal(s.HoursPerDay)
	if v <= 0 {
		return DefaultHoursPerDay
	}
	return v
}

// IncomeTarget returns the desired monthly income, or 0 when unset.
func (s Settings) IncomeTarget() float64 {
	v := ParseDecimal(s.DesiredMonthlyIncome)
	if v < 0 {
		return 0
	}
	return v
}

// Incomplete reports whether the rate or the raw hours-per-day value is
// missing, in which case projections are meaningless.
func (s Settings) Incomplete() bool {
	return s.Rate() == 0 || ParseDecimal(s.HoursPerDay) == 0
}

// ParseDecimal parses a user-entered number accepting either ',' or '.' as the
// fractional separator. Empty, malformed or non-finite input yields 0.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	v := d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
