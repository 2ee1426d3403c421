package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Encabezado y líneas de un asiento se escriben como una
// sola unidad.
func (r *TxRunner) Run(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	journalRepo := NewJournalRepository(tx)
	accountRepo := NewAccountRepository(tx)

	if err := fn(journalRepo, accountRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventory inicia una transacción con repos del libro y de inventario,
// para operaciones que postean el asiento y mueven existencias atómicamente
// (compra, merma, consumo por orden).
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	movementRepo repository.InventoryMovementRepository,
	itemRepo repository.InventoryItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	journalRepo := NewJournalRepository(tx)
	accountRepo := NewAccountRepository(tx)
	movementRepo := NewInventoryMovementRepository(tx)
	itemRepo := NewInventoryItemRepository(tx)

	if err := fn(journalRepo, accountRepo, movementRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
