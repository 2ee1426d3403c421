package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/money"
)

// GlobalBalanceCheck verifica por agregación agrupada que todo asiento cuadre
// (Σdébitos == Σcréditos). El cierre anual, un traslado puro, está exento.
type GlobalBalanceCheck struct {
	verification repository.VerificationRepository
}

// NewGlobalBalanceCheck construye la verificación de cuadre global.
func NewGlobalBalanceCheck(verification repository.VerificationRepository) *GlobalBalanceCheck {
	return &GlobalBalanceCheck{verification: verification}
}

func (c *GlobalBalanceCheck) Name() string { return "global_balance" }

func (c *GlobalBalanceCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	unbalanced, err := c.verification.UnbalancedEntries(ctx, companyID, []string{entity.EntryTypeYearEndClose})
	if err != nil {
		return nil, fmt.Errorf("asientos descuadrados: %w", err)
	}
	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, u := range unbalanced {
		report.Issues = append(report.Issues, Issue{
			Entity: fmt.Sprintf("asiento %q (%s)", u.Reference, u.EntryType),
			Message: fmt.Sprintf("débitos %s ≠ créditos %s (delta %s)",
				money.FormatCents(u.DebitCents), money.FormatCents(u.CreditCents),
				money.FormatCents(u.DebitCents-u.CreditCents)),
		})
	}
	return report, nil
}

// WithdrawalCheck audita la regla de clasificación de retiros: un asiento de
// retiro jamás debita el capital principal; debe ir a la contra-cuenta
// "Retiros del Propietario".
type WithdrawalCheck struct {
	verification repository.VerificationRepository
	accounts     repository.AccountRepository
}

// NewWithdrawalCheck construye la auditoría de retiros.
func NewWithdrawalCheck(
	verification repository.VerificationRepository,
	accounts repository.AccountRepository,
) *WithdrawalCheck {
	return &WithdrawalCheck{verification: verification, accounts: accounts}
}

func (c *WithdrawalCheck) Name() string { return "withdrawal_misclassification" }

func (c *WithdrawalCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	equity, err := c.accounts.GetByCode(ctx, companyID, accounting.RefOwnersEquity.Code())
	if err != nil {
		return nil, err
	}
	lines, err := c.verification.LinesDebiting(ctx, companyID, entity.EntryTypeWithdrawal, equity.ID)
	if err != nil {
		return nil, fmt.Errorf("retiros contra capital: %w", err)
	}
	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, l := range lines {
		report.Issues = append(report.Issues, Issue{
			Entity: fmt.Sprintf("asiento %q", l.Reference),
			Message: fmt.Sprintf("retiro de %s debita el capital principal en vez de Retiros del Propietario",
				money.FormatCents(l.DebitCents)),
		})
	}
	return report, nil
}

// DuplicateEntriesCheck agrupa asientos por su clave natural (referencia,
// tipo) y marca los grupos con más de uno.
type DuplicateEntriesCheck struct {
	verification repository.VerificationRepository
}

// NewDuplicateEntriesCheck construye la detección de asientos duplicados.
func NewDuplicateEntriesCheck(verification repository.VerificationRepository) *DuplicateEntriesCheck {
	return &DuplicateEntriesCheck{verification: verification}
}

func (c *DuplicateEntriesCheck) Name() string { return "duplicate_entries" }

func (c *DuplicateEntriesCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	groups, err := c.verification.DuplicateEntryGroups(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("asientos duplicados: %w", err)
	}
	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, g := range groups {
		report.Issues = append(report.Issues, Issue{
			Entity:  fmt.Sprintf("asiento %q (%s)", g.Reference, g.EntryType),
			Message: fmt.Sprintf("%d asientos comparten la clave natural; se conserva el de menor id", len(g.IDs)),
		})
	}
	return report, nil
}

// DuplicateMovementsCheck agrupa movimientos de inventario idénticos por
// (insumo, ubicación, tipo, cantidad, fecha, referencia).
type DuplicateMovementsCheck struct {
	verification repository.VerificationRepository
}

// NewDuplicateMovementsCheck construye la detección de movimientos duplicados.
func NewDuplicateMovementsCheck(verification repository.VerificationRepository) *DuplicateMovementsCheck {
	return &DuplicateMovementsCheck{verification: verification}
}

func (c *DuplicateMovementsCheck) Name() string { return "duplicate_movements" }

func (c *DuplicateMovementsCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	groups, err := c.verification.DuplicateMovementGroups(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("movimientos duplicados: %w", err)
	}
	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, g := range groups {
		report.Issues = append(report.Issues, Issue{
			Entity: fmt.Sprintf("insumo %s en %s", g.IngredientID, g.LocationID),
			Message: fmt.Sprintf("%d movimientos %s idénticos (cantidad %s, ref %q): %s",
				len(g.IDs), g.Type, g.Quantity, g.Reference, strings.Join(g.IDs, ", ")),
		})
	}
	return report, nil
}
