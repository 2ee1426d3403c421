package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El historial es de solo inserción; Delete existe únicamente para la
// reversión explícita del motor de conciliación.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_movements (id, company_id, ingredient_id, location_id, type, quantity, unit_cost_cents, total_cost_cents, date, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.IngredientID, movement.LocationID,
		movement.Type, movement.Quantity, movement.UnitCostCents, movement.TotalCostCents,
		movement.Date, movement.Reference, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByItem lista el historial de un insumo en una ubicación, del más antiguo
// al más reciente.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, companyID, ingredientID, locationID string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, company_id, ingredient_id, location_id, type, quantity, unit_cost_cents, total_cost_cents, date, reference, created_at
		FROM inventory_movements
		WHERE company_id = $1 AND ingredient_id = $2 AND location_id = $3
		ORDER BY date, created_at`
	rows, err := r.q.Query(ctx, query, companyID, ingredientID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.IngredientID, &m.LocationID, &m.Type,
			&m.Quantity, &m.UnitCostCents, &m.TotalCostCents, &m.Date, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un movimiento (reversión explícita).
func (r *InventoryMovementRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// QuantityTotals recalcula la cantidad neta de cada (insumo, ubicación) por
// agregación sobre el historial completo.
func (r *InventoryMovementRepo) QuantityTotals(ctx context.Context, companyID string) ([]repository.ItemQuantity, error) {
	query := `
		SELECT ingredient_id, location_id, SUM(quantity)
		FROM inventory_movements
		WHERE company_id = $1
		GROUP BY ingredient_id, location_id
		ORDER BY ingredient_id, location_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("quantity totals: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemQuantity
	for rows.Next() {
		var iq repository.ItemQuantity
		if err := rows.Scan(&iq.IngredientID, &iq.LocationID, &iq.Quantity); err != nil {
			return nil, fmt.Errorf("scan quantity total: %w", err)
		}
		list = append(list, iq)
	}
	return list, rows.Err()
}
