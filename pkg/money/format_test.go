package money

import (
	"testing"

	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T) *Formatter {
	t.Helper()
	f, err := NewFormatter(config.CurrencyConfig{Code: "USD", Symbol: "$", DecimalSeparator: ".", GroupSeparator: ","})
	require.NoError(t, err)
	return f
}

func TestFormatUSD(t *testing.T) {
	f := usd(t)
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"20", "$20.00"},
		{"9.999", "$10.00"},
		{"1234567.891", "$1,234,567.89"},
		{"100", "$100.00"},
		{"-5", "-$5.00"},
		{"-0.001", "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Format(decimal.RequireFromString(tt.in)), "format %s", tt.in)
	}
	assert.Equal(t, "USD", f.Code())
}

func TestFormatBRLSeparators(t *testing.T) {
	f, err := NewFormatter(config.CurrencyConfig{Code: "BRL", Symbol: "R$", DecimalSeparator: ",", GroupSeparator: "."})
	require.NoError(t, err)
	assert.Equal(t, "R$1.234,50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "BRL", f.Code())
}

func TestFormatUsesISOCodeWhenNoSymbol(t *testing.T) {
	f, err := NewFormatter(config.CurrencyConfig{Code: "EUR", DecimalSeparator: ","})
	require.NoError(t, err)
	assert.Equal(t, "EUR 1234,00", f.Format(decimal.NewFromInt(1234)))
}

func TestFormatZeroDecimalCurrency(t *testing.T) {
	f, err := NewFormatter(config.CurrencyConfig{Code: "JPY", Symbol: "¥", DecimalSeparator: ".", GroupSeparator: ","})
	require.NoError(t, err)
	assert.Equal(t, "¥1,500", f.Format(decimal.NewFromInt(1500)))
}

func TestNewFormatterFromLocale(t *testing.T) {
	f, err := NewFormatter(config.CurrencyConfig{Locale: "pt-BR", DecimalSeparator: ","})
	require.NoError(t, err)
	assert.Equal(t, "BRL", f.Code())

	f, err = NewFormatter(config.CurrencyConfig{Locale: "en-US", DecimalSeparator: "."})
	require.NoError(t, err)
	assert.Equal(t, "USD", f.Code())
}

func TestNewFormatterRejectsUnknownInputs(t *testing.T) {
	_, err := NewFormatter(config.CurrencyConfig{Code: "XYZQ"})
	require.Error(t, err)

	_, err = NewFormatter(config.CurrencyConfig{Locale: "!!not-a-locale"})
	require.Error(t, err)
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "123", groupDigits("123", ","))
	assert.Equal(t, "1,234", groupDigits("1234", ","))
	assert.Equal(t, "123,456", groupDigits("123456", ","))
	assert.Equal(t, "1234567", groupDigits("1234567", ""))
}
