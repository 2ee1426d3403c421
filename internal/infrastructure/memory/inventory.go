package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)
var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// InventoryMovementRepo vista en memoria del historial de movimientos.
type InventoryMovementRepo struct {
	s *Store
}

// NewInventoryMovementRepository construye la vista de movimientos sobre el Store.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *InventoryMovementRepo) ListByItem(ctx context.Context, companyID, ingredientID, locationID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.IngredientID == ingredientID && m.LocationID == locationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InventoryMovementRepo) Delete(ctx context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.movements {
		if m.CompanyID == companyID && m.ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *InventoryMovementRepo) QuantityTotals(ctx context.Context, companyID string) ([]repository.ItemQuantity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(map[itemKey]decimal.Decimal)
	for _, m := range r.s.movements {
		if m.CompanyID != companyID {
			continue
		}
		k := itemKey{companyID, m.IngredientID, m.LocationID}
		totals[k] = totals[k].Add(m.Quantity)
	}
	var out []repository.ItemQuantity
	for k, qty := range totals {
		out = append(out, repository.ItemQuantity{
			IngredientID: k.ingredientID,
			LocationID:   k.locationID,
			Quantity:     qty,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IngredientID != out[j].IngredientID {
			return out[i].IngredientID < out[j].IngredientID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

// InventoryItemRepo vista en memoria de la proyección de existencias.
type InventoryItemRepo struct {
	s *Store
}

// NewInventoryItemRepository construye la vista de existencias sobre el Store.
func NewInventoryItemRepository(s *Store) *InventoryItemRepo {
	return &InventoryItemRepo{s: s}
}

func (r *InventoryItemRepo) Get(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getLocked(companyID, ingredientID, locationID), nil
}

// GetForUpdate en memoria no bloquea filas; es idéntico a Get.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, companyID, ingredientID, locationID string) (*entity.InventoryItem, error) {
	return r.Get(ctx, companyID, ingredientID, locationID)
}

func (r *InventoryItemRepo) getLocked(companyID, ingredientID, locationID string) *entity.InventoryItem {
	if item, ok := r.s.items[itemKey{companyID, ingredientID, locationID}]; ok {
		cp := *item
		return &cp
	}
	return &entity.InventoryItem{
		CompanyID:    companyID,
		IngredientID: ingredientID,
		LocationID:   locationID,
		Quantity:     decimal.Zero,
		AvgCostCents: decimal.Zero,
	}
}

func (r *InventoryItemRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	cp.UpdatedAt = time.Now()
	r.s.items[itemKey{item.CompanyID, item.IngredientID, item.LocationID}] = &cp
	return nil
}

func (r *InventoryItemRepo) List(ctx context.Context, companyID string) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryItem
	for k, item := range r.s.items {
		if k.companyID == companyID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IngredientID != out[j].IngredientID {
			return out[i].IngredientID < out[j].IngredientID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

// IngredientRepo vista en memoria del catálogo de insumos.
type IngredientRepo struct {
	s *Store
}

// NewIngredientRepository construye la vista del catálogo sobre el Store.
func NewIngredientRepository(s *Store) *IngredientRepo {
	return &IngredientRepo{s: s}
}

func (r *IngredientRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if ing, ok := r.s.ingredients[companyID+"/"+id]; ok {
		cp := *ing
		return &cp, nil
	}
	return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
}

func (r *IngredientRepo) List(ctx context.Context, companyID string) ([]*entity.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Ingredient
	for _, ing := range r.s.ingredients {
		if ing.CompanyID == companyID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
