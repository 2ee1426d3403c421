package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contabilidad-api/pkg/money"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$ 0,00"},
		{5, "$ 0,05"},
		{150, "$ 1,50"},
		{1234567, "$ 12.345,67"},
		{-1234567, "-$ 12.345,67"},
		{100000000, "$ 1.000.000,00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, money.FormatCents(c.cents), "centavos %d", c.cents)
	}
}

func TestFormatDecimalCents(t *testing.T) {
	// Redondea al centavo antes de formatear.
	assert.Equal(t, "$ 1,50", money.FormatDecimalCents(decimal.NewFromFloat(150.4)))
	assert.Equal(t, "$ 1,51", money.FormatDecimalCents(decimal.NewFromFloat(150.5)))
}
