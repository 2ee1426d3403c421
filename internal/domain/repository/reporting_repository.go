package repository

import (
	"context"
	"time"
)

// AccountTotal es el agregado de débitos y créditos de una cuenta en un rango.
// Incluye los metadatos de la cuenta para clasificar sin una segunda consulta.
type AccountTotal struct {
	AccountID     int64
	Code          string
	Name          string
	Type          string
	NormalBalance string
	IsCash        bool
	IsCOGS        bool
	DebitCents    int64
	CreditCents   int64
}

// SignedCents devuelve el total con signo según el saldo normal de la cuenta.
func (t AccountTotal) SignedCents() int64 {
	if t.NormalBalance == "credit" {
		return t.CreditCents - t.DebitCents
	}
	return t.DebitCents - t.CreditCents
}

// ReportingRepository define consultas de solo lectura para los estados
// financieros. Todas agregan a nivel de cuenta (O(cuentas), no O(asientos)).
type ReportingRepository interface {
	// AccountTotals agrega por cuenta las líneas de asientos fechados en [start, end].
	// Solo cuentas con movimiento en el rango.
	AccountTotals(ctx context.Context, companyID string, start, end time.Time) ([]AccountTotal, error)
	// AccountTotalsAsOf agrega por cuenta las líneas fechadas ≤ asOf, incluyendo
	// cuentas sin movimiento (totales en cero) para el balance general.
	AccountTotalsAsOf(ctx context.Context, companyID string, asOf time.Time) ([]AccountTotal, error)
	// CashFlowTotals suma débitos (entradas) y créditos (salidas) a cuentas de
	// caja en [start, end], excluyendo asientos donde todas las líneas tocan
	// cuentas de caja (movimientos caja-a-caja, que duplicarían).
	CashFlowTotals(ctx context.Context, companyID string, start, end time.Time) (inflowCents, outflowCents int64, err error)
}
