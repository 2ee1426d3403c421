package ledger

import (
	"context"

	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción del almacén.
// Encabezado y líneas de un asiento se escriben como una unidad: todo o nada.
type TxRunner interface {
	// Run abre una transacción con los repositorios contables atados a ella.
	Run(ctx context.Context, fn func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
	) error) error

	// RunInventory abre una transacción que además incluye los repositorios de
	// inventario, para operaciones que postean asiento y movimiento juntos.
	RunInventory(ctx context.Context, fn func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error) error
}
