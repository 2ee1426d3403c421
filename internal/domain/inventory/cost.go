// Package inventory contiene servicios de dominio del inventario subsidiario.
package inventory

import "github.com/shopspring/decimal"

// WeightedAvgCost calcula el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Todos los costos en centavos por unidad.
func WeightedAvgCost(currentQty, currentCostCents, inQty, inCostCents decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCostCents).Add(inQty.Mul(inCostCents))
	return num.Div(sum)
}
