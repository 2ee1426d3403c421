package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es la existencia actual de un insumo en una ubicación.
// Es una caché derivada de los movimientos: siempre debe poder reconstruirse
// desde el historial completo (lo verifica el motor de conciliación).
type InventoryItem struct {
	CompanyID    string
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
	AvgCostCents decimal.Decimal // costo promedio ponderado por unidad, en centavos
	UpdatedAt    time.Time
}

// ValueCents devuelve el valor de la existencia (cantidad × costo promedio) en centavos.
func (i *InventoryItem) ValueCents() decimal.Decimal {
	return i.Quantity.Mul(i.AvgCostCents)
}

// Ingredient es un insumo del catálogo. Type enlaza con la cuenta de
// inventario correspondiente del plan contable (Account.InventoryType).
type Ingredient struct {
	ID        string
	CompanyID string
	Name      string
	Type      string // ej. "raw_material", "packaging"
	Unit      string // unidad de medida, ej. "kg", "und"
}

// Location es una ubicación física de inventario (bodega, cocina, punto de venta).
type Location struct {
	ID        string
	CompanyID string
	Name      string
}
