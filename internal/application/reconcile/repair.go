package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
	"github.com/jhoicas/Contabilidad-api/pkg/money"
)

// Repairer aplica las correcciones pareadas de cada verificación. Cada
// reparación es idempotente: correrla dos veces no produce cambios nuevos.
//
// Las reparaciones corren en secuencia, un tipo a la vez, para no componer
// correcciones sobre estado solapado. Orden: primero las neutras al estado de
// resultados (borrar duplicados exactos), luego la reconstrucción de la caché
// de cantidades y solo después, si queda desvío, el asiento de ajuste —
// fechado hoy, nunca retroactivo.
type Repairer struct {
	txRunner     ledger.TxRunner
	ledgerSvc    *ledger.Service
	verification repository.VerificationRepository
	accounts     repository.AccountRepository
	log          *logger.Logger
}

// NewRepairer construye el reparador.
func NewRepairer(
	txRunner ledger.TxRunner,
	ledgerSvc *ledger.Service,
	verification repository.VerificationRepository,
	accounts repository.AccountRepository,
	log *logger.Logger,
) *Repairer {
	return &Repairer{
		txRunner:     txRunner,
		ledgerSvc:    ledgerSvc,
		verification: verification,
		accounts:     accounts,
		log:          log,
	}
}

// Summary resume lo que cambió una corrida de reparaciones.
type Summary struct {
	DeletedEntries    int
	DeletedMovements  int
	RebuiltItems      int
	AdjustmentEntries int
	ReclassifiedLines int
}

// RepairAll corre todas las reparaciones en el orden seguro. Cualquier error
// aborta la secuencia; la reparación en curso ya quedó revertida por su
// transacción.
func (r *Repairer) RepairAll(ctx context.Context, companyID string) (*Summary, error) {
	s := &Summary{}
	var err error
	if s.DeletedEntries, err = r.RepairDuplicateEntries(ctx, companyID); err != nil {
		return s, fmt.Errorf("duplicados del libro: %w", err)
	}
	if s.DeletedMovements, err = r.RepairDuplicateMovements(ctx, companyID); err != nil {
		return s, fmt.Errorf("movimientos duplicados: %w", err)
	}
	if s.RebuiltItems, err = r.RepairInventoryQuantities(ctx, companyID); err != nil {
		return s, fmt.Errorf("cantidades de inventario: %w", err)
	}
	if s.AdjustmentEntries, err = r.RepairInventoryCost(ctx, companyID); err != nil {
		return s, fmt.Errorf("costo de inventario: %w", err)
	}
	if s.ReclassifiedLines, err = r.RepairWithdrawals(ctx, companyID); err != nil {
		return s, fmt.Errorf("retiros mal clasificados: %w", err)
	}
	return s, nil
}

// RepairDuplicateEntries borra los asientos duplicados por clave natural,
// conservando el de menor id de cada grupo. Neutro al estado de resultados.
func (r *Repairer) RepairDuplicateEntries(ctx context.Context, companyID string) (int, error) {
	groups, err := r.verification.DuplicateEntryGroups(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if len(groups) == 0 {
		return 0, nil
	}
	deleted := 0
	err = r.txRunner.Run(ctx, func(journal repository.JournalRepository, _ repository.AccountRepository) error {
		for _, g := range groups {
			for _, id := range g.IDs[1:] {
				if err := journal.Delete(ctx, companyID, id); err != nil {
					return err
				}
				deleted++
				r.log.Info().
					Str("reference", g.Reference).
					Str("entry_type", g.EntryType).
					Int64("deleted_id", id).
					Int64("kept_id", g.IDs[0]).
					Msg("asiento duplicado eliminado")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// RepairDuplicateMovements borra movimientos de inventario idénticos,
// conservando el más antiguo de cada grupo. La caché de cantidades se
// reconstruye en la reparación siguiente.
func (r *Repairer) RepairDuplicateMovements(ctx context.Context, companyID string) (int, error) {
	groups, err := r.verification.DuplicateMovementGroups(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if len(groups) == 0 {
		return 0, nil
	}
	deleted := 0
	err = r.txRunner.RunInventory(ctx, func(
		_ repository.JournalRepository,
		_ repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		_ repository.InventoryItemRepository,
	) error {
		for _, g := range groups {
			for _, id := range g.IDs[1:] {
				if err := movements.Delete(ctx, companyID, id); err != nil {
					return err
				}
				deleted++
				r.log.Info().
					Str("ingredient", g.IngredientID).
					Str("location", g.LocationID).
					Str("deleted_id", id).
					Str("kept_id", g.IDs[0]).
					Msg("movimiento duplicado eliminado")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// RepairInventoryQuantities reconstruye la caché de existencias desde el
// historial de movimientos, la fuente de verdad. Tras la reparación, una
// verificación de cantidades devuelve cero desvíos.
func (r *Repairer) RepairInventoryQuantities(ctx context.Context, companyID string) (int, error) {
	fixed := 0
	err := r.txRunner.RunInventory(ctx, func(
		_ repository.JournalRepository,
		_ repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error {
		recomputed, err := movements.QuantityTotals(ctx, companyID)
		if err != nil {
			return err
		}
		cached, err := items.List(ctx, companyID)
		if err != nil {
			return err
		}
		type key struct{ ingredient, location string }
		byKey := make(map[key]*entity.InventoryItem, len(cached))
		for _, item := range cached {
			byKey[key{item.IngredientID, item.LocationID}] = item
		}

		now := time.Now()
		seen := make(map[key]bool, len(recomputed))
		for _, rq := range recomputed {
			k := key{rq.IngredientID, rq.LocationID}
			seen[k] = true
			item := byKey[k]
			if item == nil {
				item = &entity.InventoryItem{
					CompanyID:    companyID,
					IngredientID: rq.IngredientID,
					LocationID:   rq.LocationID,
					AvgCostCents: decimal.Zero,
				}
			}
			if item.Quantity.Equal(rq.Quantity) {
				continue
			}
			r.log.Info().
				Str("ingredient", rq.IngredientID).
				Str("location", rq.LocationID).
				Str("before", item.Quantity.String()).
				Str("after", rq.Quantity.String()).
				Msg("cantidad de inventario reconstruida")
			item.Quantity = rq.Quantity
			item.UpdatedAt = now
			if err := items.Upsert(ctx, item); err != nil {
				return err
			}
			fixed++
		}
		// Existencias cacheadas sin movimientos: se llevan a cero.
		for _, item := range cached {
			k := key{item.IngredientID, item.LocationID}
			if seen[k] || item.Quantity.IsZero() {
				continue
			}
			r.log.Info().
				Str("ingredient", item.IngredientID).
				Str("location", item.LocationID).
				Str("before", item.Quantity.String()).
				Str("after", "0").
				Msg("cantidad sin respaldo llevada a cero")
			item.Quantity = decimal.Zero
			item.UpdatedAt = now
			if err := items.Upsert(ctx, item); err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return fixed, nil
}

// RepairInventoryCost postea un asiento de ajuste por el desvío que quede
// entre el valor subsidiario del inventario y su cuenta contable, enrutando
// la diferencia por merma (faltante) u otros ajustes (sobrante). El asiento
// se fecha hoy; el histórico no se toca.
func (r *Repairer) RepairInventoryCost(ctx context.Context, companyID string) (int, error) {
	values, err := r.verification.InventoryValueByType(ctx, companyID)
	if err != nil {
		return 0, err
	}
	valueByType := make(map[string]decimal.Decimal, len(values))
	for _, v := range values {
		valueByType[v.InventoryType] = v.ValueCents
	}

	posted := 0
	today := time.Now()
	for _, ref := range []accounting.AccountRef{accounting.RefInventoryRawMaterial, accounting.RefInventoryPackaging} {
		account, err := r.accounts.GetByCode(ctx, companyID, ref.Code())
		if err != nil {
			return posted, err
		}
		debit, credit, err := r.accounts.SumAsOf(ctx, account.ID, today)
		if err != nil {
			return posted, err
		}
		glBalance := account.SignedBalance(debit, credit)
		subsidiary := valueByType[account.InventoryType].Round(0).IntPart()
		delta := glBalance - subsidiary
		if delta <= costToleranceCents && delta >= -costToleranceCents {
			continue
		}

		in := accounting.EntryInput{
			Date:      today,
			EntryType: entity.EntryTypeReconciliation,
			Reference: fmt.Sprintf("Ajuste inventario %s %s", account.Code, today.Format("2006-01-02")),
			Description: fmt.Sprintf("Ajuste de conciliación de %s: contable %s, subsidiario %s",
				account.Name, money.FormatCents(glBalance), money.FormatCents(subsidiary)),
		}
		var lines []accounting.LineInput
		if delta > 0 {
			// El libro registra más inventario del que existe: se reconoce merma.
			lines = []accounting.LineInput{
				{Account: accounting.RefWasteExpense, Amount: accounting.Debit(delta), Description: "Faltante de inventario"},
				{AccountCode: account.Code, Amount: accounting.Credit(delta), Description: "Ajuste de conciliación"},
			}
		} else {
			lines = []accounting.LineInput{
				{AccountCode: account.Code, Amount: accounting.Debit(-delta), Description: "Ajuste de conciliación"},
				{Account: accounting.RefOtherAdjustments, Amount: accounting.Credit(-delta), Description: "Sobrante de inventario"},
			}
		}
		if _, err := r.ledgerSvc.Post(ctx, companyID, in, lines); err != nil {
			return posted, err
		}
		posted++
		r.log.Info().
			Str("account", account.Code).
			Str("delta", money.FormatCents(delta)).
			Msg("asiento de ajuste de inventario posteado")
	}
	return posted, nil
}

// RepairWithdrawals corrige la clase sistemática de retiros históricos que
// debitaron el capital principal: reapunta solo la cuenta de esas líneas a la
// contra-cuenta de retiros, preservando montos y por tanto el cuadre del
// asiento. Es la única edición en el lugar permitida, auditada con valores
// antes/después.
func (r *Repairer) RepairWithdrawals(ctx context.Context, companyID string) (int, error) {
	equity, err := r.accounts.GetByCode(ctx, companyID, accounting.RefOwnersEquity.Code())
	if err != nil {
		return 0, err
	}
	drawings, err := r.accounts.GetByCode(ctx, companyID, accounting.RefOwnersDrawings.Code())
	if err != nil {
		return 0, err
	}
	lines, err := r.verification.LinesDebiting(ctx, companyID, entity.EntryTypeWithdrawal, equity.ID)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}
	fixed := 0
	err = r.txRunner.Run(ctx, func(journal repository.JournalRepository, _ repository.AccountRepository) error {
		for _, l := range lines {
			if err := journal.UpdateLineAccount(ctx, l.LineID, drawings.ID); err != nil {
				return err
			}
			fixed++
			r.log.Info().
				Str("reference", l.Reference).
				Int64("line_id", l.LineID).
				Str("before_account", equity.Code).
				Str("after_account", drawings.Code).
				Str("amount", money.FormatCents(l.DebitCents)).
				Msg("retiro reclasificado a la contra-cuenta")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return fixed, nil
}
