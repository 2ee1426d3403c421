// Package accounts contiene el registro del plan de cuentas: siembra,
// búsqueda por código y saldos a una fecha.
package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Registry es el caso de uso del plan de cuentas. Lecturas puras; la única
// escritura es la siembra inicial y la edición de metadatos.
type Registry struct {
	accountRepo repository.AccountRepository
}

// NewRegistry construye el registro.
func NewRegistry(accountRepo repository.AccountRepository) *Registry {
	return &Registry{accountRepo: accountRepo}
}

// Seed siembra el plan de cuentas por defecto para una empresa nueva y
// verifica que todas las referencias tipadas resuelven (falla rápido en el
// arranque, no en runtime contra una cuenta fantasma).
func (r *Registry) Seed(ctx context.Context, companyID string) error {
	existing, err := r.accountRepo.List(ctx, companyID)
	if err != nil {
		return fmt.Errorf("listar plan de cuentas: %w", err)
	}
	if len(existing) > 0 {
		return accounting.VerifyChart(existing)
	}
	chart := accounting.DefaultChart(companyID)
	for _, account := range chart {
		if err := r.accountRepo.Create(ctx, account); err != nil {
			return fmt.Errorf("sembrar cuenta %s: %w", account.Code, err)
		}
	}
	return accounting.VerifyChart(chart)
}

// LookupByCode busca una cuenta por código exacto.
// Devuelve domain.ErrAccountNotFound si no existe.
func (r *Registry) LookupByCode(ctx context.Context, companyID, code string) (*entity.Account, error) {
	return r.accountRepo.GetByCode(ctx, companyID, code)
}

// Lookup resuelve una referencia tipada contra el plan de la empresa.
func (r *Registry) Lookup(ctx context.Context, companyID string, ref accounting.AccountRef) (*entity.Account, error) {
	return r.accountRepo.GetByCode(ctx, companyID, ref.Code())
}

// List devuelve todas las cuentas de la empresa.
func (r *Registry) List(ctx context.Context, companyID string) ([]*entity.Account, error) {
	return r.accountRepo.List(ctx, companyID)
}

// ListByPredicate filtra las cuentas con un predicado en memoria.
// El plan de cuentas es pequeño; no amerita consultas dedicadas.
func (r *Registry) ListByPredicate(
	ctx context.Context,
	companyID string,
	keep func(*entity.Account) bool,
) ([]*entity.Account, error) {
	all, err := r.accountRepo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var out []*entity.Account
	for _, a := range all {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// BalanceAsOf devuelve el saldo con signo de la cuenta sobre asientos
// fechados ≤ asOf, según su saldo normal. Derivado siempre por agregación:
// el núcleo no cachea saldos.
func (r *Registry) BalanceAsOf(ctx context.Context, account *entity.Account, asOf time.Time) (int64, error) {
	debit, credit, err := r.accountRepo.SumAsOf(ctx, account.ID, asOf)
	if err != nil {
		return 0, fmt.Errorf("saldo de %s al %s: %w", account.Code, asOf.Format("2006-01-02"), err)
	}
	return account.SignedBalance(debit, credit), nil
}
