package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.BookingRepository = (*BookingRepo)(nil)

// OrderRepo vista en memoria de la proyección de órdenes.
type OrderRepo struct {
	s *Store
}

// NewOrderRepository construye la vista de órdenes sobre el Store.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *OrderRepo) List(ctx context.Context, companyID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.CompanyID == companyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BookingRepo vista en memoria de la proyección de reservas.
type BookingRepo struct {
	s *Store
}

// NewBookingRepository construye la vista de reservas sobre el Store.
func NewBookingRepository(s *Store) *BookingRepo {
	return &BookingRepo{s: s}
}

func (r *BookingRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok || b.CompanyID != companyID {
		return nil, fmt.Errorf("reserva %d: %w", id, domain.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}
