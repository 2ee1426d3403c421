package repository

import (
	"context"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// OrderRepository expone la proyección de órdenes que necesita el núcleo
// contable. El CRUD de órdenes vive en el módulo de dominio, fuera del núcleo.
type OrderRepository interface {
	GetByID(ctx context.Context, companyID string, id int64) (*entity.Order, error)
	List(ctx context.Context, companyID string) ([]*entity.Order, error)
}

// BookingRepository expone la proyección de reservas.
type BookingRepository interface {
	GetByID(ctx context.Context, companyID string, id int64) (*entity.Booking, error)
}
