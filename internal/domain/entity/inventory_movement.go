package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. El historial de movimientos es la fuente
// de verdad; InventoryItem es una proyección derivada.
const (
	MovementTypePurchase    = "purchase"
	MovementTypeUsage       = "usage"
	MovementTypeWriteOff    = "write_off"
	MovementTypeTransferIn  = "transfer_in"
	MovementTypeTransferOut = "transfer_out"
)

// InventoryMovement es un registro de solo inserción: nunca se muta, solo se
// inserta o se elimina mediante reversión explícita.
// Quantity es positiva para entradas (purchase, transfer_in) y negativa para
// salidas (usage, write_off, transfer_out).
type InventoryMovement struct {
	ID             string // uuid
	CompanyID      string
	IngredientID   string
	LocationID     string
	Type           string
	Quantity       decimal.Decimal
	UnitCostCents  decimal.Decimal
	TotalCostCents decimal.Decimal
	Date           time.Time
	Reference      string // referencia de origen, ej. "Order #12"
	CreatedAt      time.Time
}
