// Package money renders decimal amounts as currency strings.
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Formatter is deterministic for a given amount and configuration.
type Formatter struct {
	unit     currency.Unit
	symbol   string
	scale    int32
	decimal  string
	group    string
	spaceSym bool
}

// NewFormatter resolves the currency from an ISO code, or from the locale's region when no code is set.
func NewFormatter(cfg config.CurrencyConfig) (*Formatter, error) {
	unit, err := resolveUnit(cfg)
	if err != nil {
		return nil, err
	}

	scale, _ := currency.Standard.Rounding(unit)

	symbol := strings.TrimSpace(cfg.Symbol)
	if symbol == "" {
		symbol = unit.String()
	}

	dec := cfg.DecimalSeparator
	if dec == "" {
		dec = "."
	}

	return &Formatter{
		unit:     unit,
		symbol:   symbol,
		scale:    int32(scale),
		decimal:  dec,
		group:    cfg.GroupSeparator,
		spaceSym: endsWithLetter(symbol),
	}, nil
}

func resolveUnit(cfg config.CurrencyConfig) (currency.Unit, error) {
	if code := strings.TrimSpace(cfg.Code); code != "" {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return currency.Unit{}, fmt.Errorf("parsing currency code %q: %w", code, err)
		}
		return unit, nil
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("parsing currency locale %q: %w", cfg.Locale, err)
	}
	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		return currency.Unit{}, fmt.Errorf("no currency known for locale %q", cfg.Locale)
	}
	return unit, nil
}

// Code returns the ISO 4217 code of the configured currency.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders amount rounded to the currency's minor units, e.g. "$1,234.50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(f.scale)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		fixed = fixed[1:]
		if strings.Trim(fixed, "0.") != "" {
			sign = "-"
		}
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.symbol)
	if f.spaceSym {
		b.WriteByte(' ')
	}
	b.WriteString(groupDigits(intPart, f.group))
	if fracPart != "" {
		b.WriteString(f.decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func endsWithLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}
