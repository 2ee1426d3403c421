package entity

// Estados de una reserva (línea de negocio de viajes/servicios).
const (
	BookingStatusReserved  = "reserved"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking es la proyección de una reserva con anticipo. Al reservar se cobra
// un anticipo (pasivo: depósitos de clientes); al completar se reconoce el
// ingreso total y el remanente queda en cuentas por cobrar.
type Booking struct {
	ID              int64
	CompanyID       string
	Status          string
	TotalCents      int64
	AdvanceCents    int64
	CommissionCents int64
}
