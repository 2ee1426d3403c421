package repository

import (
	"context"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryMovementRepository define el puerto del historial de movimientos.
// El historial es de solo inserción: nunca se actualiza, solo se inserta o se
// elimina vía reversión explícita.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByItem(ctx context.Context, companyID, ingredientID, locationID string) ([]*entity.InventoryMovement, error)
	Delete(ctx context.Context, companyID, id string) error
	// QuantityTotals recalcula por agregación la cantidad neta de cada
	// (insumo, ubicación) desde el historial completo.
	QuantityTotals(ctx context.Context, companyID string) ([]ItemQuantity, error)
}

// ItemQuantity es la cantidad neta recalculada de un insumo en una ubicación.
type ItemQuantity struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
}

// InventoryItemRepository define el puerto de la proyección de existencias.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
type InventoryItemRepository interface {
	Get(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error)
	Upsert(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, companyID string) ([]*entity.InventoryItem, error)
}

// IngredientRepository define el puerto del catálogo de insumos.
type IngredientRepository interface {
	GetByID(ctx context.Context, companyID, id string) (*entity.Ingredient, error)
	List(ctx context.Context, companyID string) ([]*entity.Ingredient, error)
}
