package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// JournalRepository define el puerto de persistencia del libro diario.
// Create y ReplaceLines deben ejecutarse dentro de una transacción
// (LedgerTxRunner) para que encabezado y líneas se escriban como una unidad.
type JournalRepository interface {
	// Create persiste el asiento con todas sus líneas y asigna IDs.
	Create(ctx context.Context, entry *entity.JournalEntry) error
	// GetByID carga el asiento con sus líneas ordenadas. nil, nil si no existe.
	GetByID(ctx context.Context, companyID string, id int64) (*entity.JournalEntry, error)
	// GetByReference busca por la clave natural (referencia, tipo). nil, nil si no existe.
	GetByReference(ctx context.Context, companyID, reference, entryType string) (*entity.JournalEntry, error)
	// UpdateHeader actualiza fecha, tipo, referencia y descripción del asiento.
	UpdateHeader(ctx context.Context, entry *entity.JournalEntry) error
	// ReplaceLines borra las líneas actuales e inserta las nuevas (delete-then-insert).
	ReplaceLines(ctx context.Context, entryID int64, lines []entity.JournalLine) error
	// Delete elimina el asiento y sus líneas.
	Delete(ctx context.Context, companyID string, id int64) error
	// UpdateLineAccount reapunta una línea a otra cuenta (corrección auditada del
	// motor de conciliación; preserva montos y por tanto el cuadre del asiento).
	UpdateLineAccount(ctx context.Context, lineID, accountID int64) error
	// ListByType lista los asientos de un tipo con sus líneas.
	ListByType(ctx context.Context, companyID, entryType string) ([]*entity.JournalEntry, error)
	// LastCloseDate devuelve la fecha del último cierre anual, o nil si nunca se cerró.
	LastCloseDate(ctx context.Context, companyID string) (*time.Time, error)
}
