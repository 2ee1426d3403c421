package reports

import (
	"context"
	"fmt"
	"time"
)

// CashFlowReport es el flujo de caja de un rango de fechas: débitos a cuentas
// de caja como entradas, créditos como salidas.
type CashFlowReport struct {
	Start, End time.Time

	InflowCents  int64
	OutflowCents int64
	NetCents     int64
}

// CashFlow suma entradas y salidas de las cuentas de caja en [start, end].
// Los asientos donde todas las líneas tocan cuentas de caja (movimientos
// caja-a-caja, ej. consignar efectivo al banco) se excluyen: contarían la
// misma plata como entrada y salida a la vez.
func (uc *UseCase) CashFlow(ctx context.Context, companyID string, start, end time.Time) (*CashFlowReport, error) {
	inflow, outflow, err := uc.reportingRepo.CashFlowTotals(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("flujo de caja: %w", err)
	}
	return &CashFlowReport{
		Start:        start,
		End:          end,
		InflowCents:  inflow,
		OutflowCents: outflow,
		NetCents:     inflow - outflow,
	}, nil
}
