package entity

import "time"

// Estados de una orden de producción/venta.
const (
	OrderStatusInPrep    = "in_prep"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order es la proyección mínima de una orden que necesita el núcleo contable:
// estado, total, pagos recibidos y si es cortesía (gift). El CRUD completo de
// órdenes vive fuera del núcleo.
type Order struct {
	ID          int64
	CompanyID   string
	Status      string
	TotalCents  int64
	PaidCents   int64
	IsGift      bool
	DeliveredAt *time.Time
}

// ExpectedReceivableCents deriva el saldo esperado de cuentas por cobrar de la
// orden: total menos pagos para órdenes entregadas no cortesía; cero en
// cualquier otro estado.
func (o *Order) ExpectedReceivableCents() int64 {
	if o.Status != OrderStatusDelivered || o.IsGift {
		return 0
	}
	pending := o.TotalCents - o.PaidCents
	if pending < 0 {
		return 0
	}
	return pending
}
