package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del catálogo de insumos sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// GetByID obtiene un insumo por id.
func (r *IngredientRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Ingredient, error) {
	query := `SELECT id, company_id, name, type, unit FROM ingredients WHERE company_id = $1 AND id = $2`
	var ing entity.Ingredient
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&ing.ID, &ing.CompanyID, &ing.Name, &ing.Type, &ing.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &ing, nil
}

// List devuelve el catálogo de insumos de la empresa.
func (r *IngredientRepo) List(ctx context.Context, companyID string) ([]*entity.Ingredient, error) {
	query := `SELECT id, company_id, name, type, unit FROM ingredients WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.CompanyID, &ing.Name, &ing.Type, &ing.Unit); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}
