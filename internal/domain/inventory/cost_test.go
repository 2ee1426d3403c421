package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contabilidad-api/internal/domain/inventory"
)

func TestWeightedAvgCost_PromedioPonderado(t *testing.T) {
	// 10 unidades a 100 centavos + 10 unidades a 200 centavos = promedio 150.
	got := inventory.WeightedAvgCost(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "esperaba 150, obtuve %s", got)
}

func TestWeightedAvgCost_StockCeroTomaCostoDeEntrada(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(1000), decimal.NewFromInt(5),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(5)))
}

func TestWeightedAvgCost_SumaCeroDevuelveCero(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.Zero, decimal.NewFromInt(100),
		decimal.Zero, decimal.NewFromInt(200),
	)
	assert.True(t, got.IsZero())
}

func TestWeightedAvgCost_CantidadesFraccionarias(t *testing.T) {
	// 2.5 kg a 400 + 2.5 kg a 600 = promedio 500.
	got := inventory.WeightedAvgCost(
		decimal.NewFromFloat(2.5), decimal.NewFromInt(400),
		decimal.NewFromFloat(2.5), decimal.NewFromInt(600),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "esperaba 500, obtuve %s", got)
}
