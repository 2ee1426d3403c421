package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de la proyección de existencias sobre
// PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `company_id, ingredient_id, location_id, quantity, avg_cost_cents, updated_at`

// Get obtiene la existencia actual de un insumo en una ubicación. Sin fila,
// devuelve una existencia en cero.
func (r *InventoryItemRepo) Get(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 AND ingredient_id = $2 AND location_id = $3`
	return r.get(ctx, query, companyID, ingredientID, locationID)
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE)
// para la actualización del costo promedio dentro de la transacción.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 AND ingredient_id = $2 AND location_id = $3
		FOR UPDATE`
	return r.get(ctx, query, companyID, ingredientID, locationID)
}

func (r *InventoryItemRepo) get(ctx context.Context, query, companyID, ingredientID, locationID string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.q.QueryRow(ctx, query, companyID, ingredientID, locationID).Scan(
		&item.CompanyID, &item.IngredientID, &item.LocationID,
		&item.Quantity, &item.AvgCostCents, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{
				CompanyID:    companyID,
				IngredientID: ingredientID,
				LocationID:   locationID,
				Quantity:     decimal.Zero,
				AvgCostCents: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &item, nil
}

// Upsert inserta o actualiza la existencia (por insumo y ubicación).
func (r *InventoryItemRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (company_id, ingredient_id, location_id, quantity, avg_cost_cents, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (company_id, ingredient_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, avg_cost_cents = EXCLUDED.avg_cost_cents, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		item.CompanyID, item.IngredientID, item.LocationID, item.Quantity, item.AvgCostCents)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// List devuelve todas las existencias de la empresa.
func (r *InventoryItemRepo) List(ctx context.Context, companyID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 ORDER BY ingredient_id, location_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := rows.Scan(&item.CompanyID, &item.IngredientID, &item.LocationID,
			&item.Quantity, &item.AvgCostCents, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
