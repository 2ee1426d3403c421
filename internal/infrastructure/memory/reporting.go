package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo agregaciones de reportes sobre el Store. Replica la misma
// semántica que las consultas SQL del adaptador PostgreSQL.
type ReportingRepo struct {
	s *Store
}

// NewReportingRepository construye la vista de reportes sobre el Store.
func NewReportingRepository(s *Store) *ReportingRepo {
	return &ReportingRepo{s: s}
}

func (r *ReportingRepo) accountByID(id int64) *entity.Account {
	for _, a := range r.s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func totalFromAccount(a *entity.Account) repository.AccountTotal {
	return repository.AccountTotal{
		AccountID:     a.ID,
		Code:          a.Code,
		Name:          a.Name,
		Type:          a.Type,
		NormalBalance: a.NormalBalance,
		IsCash:        a.IsCash,
		IsCOGS:        a.IsCOGS,
	}
}

// AccountTotals agrega por cuenta las líneas fechadas en [start, end];
// solo cuentas con movimiento.
func (r *ReportingRepo) AccountTotals(ctx context.Context, companyID string, start, end time.Time) ([]repository.AccountTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(map[int64]*repository.AccountTotal)
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		for _, l := range e.Lines {
			t, ok := totals[l.AccountID]
			if !ok {
				a := r.accountByID(l.AccountID)
				if a == nil {
					continue
				}
				at := totalFromAccount(a)
				t = &at
				totals[l.AccountID] = t
			}
			t.DebitCents += l.DebitCents
			t.CreditCents += l.CreditCents
		}
	}
	return sortedTotals(totals), nil
}

// AccountTotalsAsOf agrega por cuenta las líneas fechadas ≤ asOf, incluyendo
// cuentas sin movimiento.
func (r *ReportingRepo) AccountTotalsAsOf(ctx context.Context, companyID string, asOf time.Time) ([]repository.AccountTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := make(map[int64]*repository.AccountTotal)
	for _, a := range r.s.accounts {
		if a.CompanyID == companyID {
			at := totalFromAccount(a)
			totals[a.ID] = &at
		}
	}
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.Date.After(asOf) {
			continue
		}
		for _, l := range e.Lines {
			if t, ok := totals[l.AccountID]; ok {
				t.DebitCents += l.DebitCents
				t.CreditCents += l.CreditCents
			}
		}
	}
	return sortedTotals(totals), nil
}

func sortedTotals(totals map[int64]*repository.AccountTotal) []repository.AccountTotal {
	out := make([]repository.AccountTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CashFlowTotals suma débitos y créditos a cuentas de caja en [start, end],
// excluyendo asientos donde todas las líneas tocan cuentas de caja.
func (r *ReportingRepo) CashFlowTotals(ctx context.Context, companyID string, start, end time.Time) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	isCash := make(map[int64]bool)
	for _, a := range r.s.accounts {
		if a.CompanyID == companyID {
			isCash[a.ID] = a.IsCash
		}
	}
	var inflow, outflow int64
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		pureCash := true
		for _, l := range e.Lines {
			if !isCash[l.AccountID] {
				pureCash = false
				break
			}
		}
		if pureCash {
			continue
		}
		for _, l := range e.Lines {
			if isCash[l.AccountID] {
				inflow += l.DebitCents
				outflow += l.CreditCents
			}
		}
	}
	return inflow, outflow, nil
}
