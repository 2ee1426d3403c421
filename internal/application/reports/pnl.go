// Package reports genera los estados financieros derivados del libro mayor:
// estado de resultados, balance general y flujo de caja. Lecturas puras y
// reproducibles, agregadas a nivel de cuenta.
package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// UseCase genera los tres reportes sobre el repositorio de agregación.
type UseCase struct {
	reportingRepo repository.ReportingRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reportingRepo repository.ReportingRepository) *UseCase {
	return &UseCase{reportingRepo: reportingRepo}
}

// AccountLine es el total de una cuenta dentro de un reporte.
type AccountLine struct {
	Code         string
	Name         string
	BalanceCents int64
}

// PnLReport es el estado de resultados de un rango de fechas.
// Los márgenes son porcentajes con dos decimales; 0.0 cuando no hay ingresos.
type PnLReport struct {
	Start, End time.Time

	Revenue          []AccountLine
	CostOfGoods      []AccountLine
	OperatingExpense []AccountLine
	OtherExpense     []AccountLine

	RevenueCents          int64
	COGSCents             int64
	GrossProfitCents      int64
	OperatingExpenseCents int64
	OperatingIncomeCents  int64
	OtherExpenseCents     int64
	NetIncomeCents        int64

	GrossMarginPct     float64
	OperatingMarginPct float64
	NetMarginPct       float64
}

// ProfitAndLoss agrega los totales con signo por cuenta en [start, end] y los
// clasifica por tipo y por el flag de COGS.
func (uc *UseCase) ProfitAndLoss(ctx context.Context, companyID string, start, end time.Time) (*PnLReport, error) {
	totals, err := uc.reportingRepo.AccountTotals(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("estado de resultados: %w", err)
	}

	report := &PnLReport{Start: start, End: end}
	otherCode := accounting.RefOtherAdjustments.Code()
	for _, t := range totals {
		balance := t.SignedCents()
		line := AccountLine{Code: t.Code, Name: t.Name, BalanceCents: balance}
		switch {
		case t.Type == entity.AccountTypeRevenue:
			report.Revenue = append(report.Revenue, line)
			report.RevenueCents += balance
		case t.Type == entity.AccountTypeExpense && t.IsCOGS:
			report.CostOfGoods = append(report.CostOfGoods, line)
			report.COGSCents += balance
		case t.Type == entity.AccountTypeExpense && t.Code == otherCode:
			report.OtherExpense = append(report.OtherExpense, line)
			report.OtherExpenseCents += balance
		case t.Type == entity.AccountTypeExpense:
			report.OperatingExpense = append(report.OperatingExpense, line)
			report.OperatingExpenseCents += balance
		}
	}

	report.GrossProfitCents = report.RevenueCents - report.COGSCents
	report.OperatingIncomeCents = report.GrossProfitCents - report.OperatingExpenseCents
	report.NetIncomeCents = report.OperatingIncomeCents - report.OtherExpenseCents

	report.GrossMarginPct = marginPct(report.GrossProfitCents, report.RevenueCents)
	report.OperatingMarginPct = marginPct(report.OperatingIncomeCents, report.RevenueCents)
	report.NetMarginPct = marginPct(report.NetIncomeCents, report.RevenueCents)
	return report, nil
}

// marginPct calcula un porcentaje con dos decimales; 0.0 si no hay ingresos.
// Único punto flotante del núcleo: los montos siguen siendo centavos enteros.
func marginPct(part, revenue int64) float64 {
	if revenue == 0 {
		return 0.0
	}
	return math.Round(float64(part)/float64(revenue)*100*100) / 100
}
