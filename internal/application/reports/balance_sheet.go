package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// BalanceSheetReport es el balance general a una fecha.
//
// NetIncomeCents es el resultado del período abierto (desde el último cierre
// anual), calculado en lectura desde el estado de resultados: es la pieza que
// cuadra activos contra pasivo + patrimonio mientras el período no se cierra.
// DifferenceCents debe ser exactamente cero; un valor distinto señala un
// defecto de integridad de datos, no un error del usuario.
type BalanceSheetReport struct {
	AsOf time.Time

	Assets      []AccountLine
	Liabilities []AccountLine
	Equity      []AccountLine

	TotalAssetsCents      int64
	TotalLiabilitiesCents int64
	TotalEquityCents      int64
	NetIncomeCents        int64
	DifferenceCents       int64
}

// BalanceSheet agrega las líneas fechadas ≤ asOf por cuenta de balance,
// incluyendo cuentas sin movimiento, e incorpora el resultado del período
// abierto como cuadre.
func (uc *UseCase) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*BalanceSheetReport, error) {
	totals, err := uc.reportingRepo.AccountTotalsAsOf(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("balance general: %w", err)
	}

	report := &BalanceSheetReport{AsOf: asOf}
	// El resultado del período abierto se deriva de las propias cuentas de
	// resultado: cada cierre previo las dejó en cero, así que su saldo
	// acumulado a la fecha es la actividad desde el último cierre.
	for _, t := range totals {
		balance := t.SignedCents()
		line := AccountLine{Code: t.Code, Name: t.Name, BalanceCents: balance}
		switch t.Type {
		case entity.AccountTypeAsset:
			report.Assets = append(report.Assets, line)
			report.TotalAssetsCents += balance
		case entity.AccountTypeLiability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilitiesCents += balance
		case entity.AccountTypeEquity:
			report.Equity = append(report.Equity, line)
			if t.NormalBalance == entity.NormalBalanceDebit {
				// Contra-patrimonio (retiros): resta del patrimonio.
				report.TotalEquityCents -= balance
			} else {
				report.TotalEquityCents += balance
			}
		case entity.AccountTypeRevenue:
			report.NetIncomeCents += balance
		case entity.AccountTypeExpense:
			report.NetIncomeCents -= balance
		}
	}

	report.DifferenceCents = report.TotalAssetsCents -
		(report.TotalLiabilitiesCents + report.TotalEquityCents + report.NetIncomeCents)
	return report, nil
}
