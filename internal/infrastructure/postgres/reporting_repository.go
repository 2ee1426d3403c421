package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de agregación para los estados financieros.
// Todo se agrega en SQL a nivel de cuenta; nunca se cargan asientos uno a uno.
type ReportingRepo struct {
	q Querier
}

// NewReportingRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportingRepository(q Querier) *ReportingRepo {
	return &ReportingRepo{q: q}
}

// AccountTotals agrega por cuenta las líneas de asientos fechados en [start, end].
// Solo devuelve cuentas con movimiento en el rango.
func (r *ReportingRepo) AccountTotals(ctx context.Context, companyID string, start, end time.Time) ([]repository.AccountTotal, error) {
	query := `
		SELECT a.id, a.code, a.name, a.type, a.normal_balance, a.is_cash, a.is_cogs,
		       COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		JOIN accounts a ON a.id = l.account_id
		WHERE e.company_id = $1 AND e.date >= $2 AND e.date <= $3
		GROUP BY a.id, a.code, a.name, a.type, a.normal_balance, a.is_cash, a.is_cogs
		ORDER BY a.code`
	return r.queryTotals(ctx, query, companyID, start, end)
}

// AccountTotalsAsOf agrega por cuenta las líneas fechadas ≤ asOf. Incluye
// cuentas sin movimiento (LEFT JOIN) para que el balance general liste el
// plan completo. El corte de fecha vive dentro del join línea-asiento: si
// estuviera en el LEFT JOIN exterior, una línea con asiento posterior al
// corte sobreviviría con e nulo y entraría a la suma.
func (r *ReportingRepo) AccountTotalsAsOf(ctx context.Context, companyID string, asOf time.Time) ([]repository.AccountTotal, error) {
	query := `
		SELECT a.id, a.code, a.name, a.type, a.normal_balance, a.is_cash, a.is_cogs,
		       COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM accounts a
		LEFT JOIN (journal_lines l
			JOIN journal_entries e ON e.id = l.entry_id AND e.date <= $2)
			ON l.account_id = a.id
		WHERE a.company_id = $1
		GROUP BY a.id, a.code, a.name, a.type, a.normal_balance, a.is_cash, a.is_cogs
		ORDER BY a.code`
	return r.queryTotals(ctx, query, companyID, asOf)
}

func (r *ReportingRepo) queryTotals(ctx context.Context, query string, args ...any) ([]repository.AccountTotal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("account totals: %w", err)
	}
	defer rows.Close()
	var list []repository.AccountTotal
	for rows.Next() {
		var t repository.AccountTotal
		if err := rows.Scan(&t.AccountID, &t.Code, &t.Name, &t.Type, &t.NormalBalance,
			&t.IsCash, &t.IsCOGS, &t.DebitCents, &t.CreditCents); err != nil {
			return nil, fmt.Errorf("scan account total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CashFlowTotals suma débitos (entradas) y créditos (salidas) a cuentas de
// caja en [start, end]. Excluye los asientos donde todas las líneas tocan
// cuentas de caja: un traslado caja→banco no es flujo hacia ni desde el
// negocio y contaría doble.
func (r *ReportingRepo) CashFlowTotals(ctx context.Context, companyID string, start, end time.Time) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		JOIN accounts a ON a.id = l.account_id
		WHERE e.company_id = $1 AND e.date >= $2 AND e.date <= $3
		  AND a.is_cash
		  AND EXISTS (
			SELECT 1 FROM journal_lines l2
			JOIN accounts a2 ON a2.id = l2.account_id
			WHERE l2.entry_id = e.id AND NOT a2.is_cash
		  )`
	var inflow, outflow int64
	if err := r.q.QueryRow(ctx, query, companyID, start, end).Scan(&inflow, &outflow); err != nil {
		return 0, 0, fmt.Errorf("cash flow totals: %w", err)
	}
	return inflow, outflow, nil
}
