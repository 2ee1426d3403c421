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

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.BookingRepository = (*BookingRepo)(nil)

// OrderRepo proyección de solo lectura de las órdenes para el núcleo contable.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene la proyección de una orden. nil, nil si no existe: el motor
// de conciliación distingue "orden inexistente" de un error de consulta.
func (r *OrderRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.Order, error) {
	query := `
		SELECT id, company_id, status, total_cents, paid_cents, is_gift, delivered_at
		FROM orders WHERE company_id = $1 AND id = $2`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&o.ID, &o.CompanyID, &o.Status, &o.TotalCents, &o.PaidCents, &o.IsGift, &o.DeliveredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// List devuelve todas las órdenes de la empresa.
func (r *OrderRepo) List(ctx context.Context, companyID string) ([]*entity.Order, error) {
	query := `
		SELECT id, company_id, status, total_cents, paid_cents, is_gift, delivered_at
		FROM orders WHERE company_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Status, &o.TotalCents,
			&o.PaidCents, &o.IsGift, &o.DeliveredAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// BookingRepo proyección de solo lectura de las reservas.
type BookingRepo struct {
	q Querier
}

// NewBookingRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

// GetByID obtiene la proyección de una reserva.
func (r *BookingRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.Booking, error) {
	query := `
		SELECT id, company_id, status, total_cents, advance_cents, commission_cents
		FROM bookings WHERE company_id = $1 AND id = $2`
	var b entity.Booking
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&b.ID, &b.CompanyID, &b.Status, &b.TotalCents, &b.AdvanceCents, &b.CommissionCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reserva %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}
