package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

// JournalRepo implementación de JournalRepository sobre PostgreSQL (usable con pool o tx).
// Create y ReplaceLines deben correr dentro de una transacción del TxRunner.
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador del libro diario. Pasar pool o tx (Querier).
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

// Create persiste el encabezado y todas las líneas, asignando IDs.
func (r *JournalRepo) Create(ctx context.Context, entry *entity.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (company_id, date, entry_type, reference, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := r.q.QueryRow(ctx, query,
		entry.CompanyID, entry.Date, entry.EntryType, entry.Reference,
		entry.Description, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	return r.insertLines(ctx, entry.ID, entry.Lines)
}

func (r *JournalRepo) insertLines(ctx context.Context, entryID int64, lines []entity.JournalLine) error {
	query := `
		INSERT INTO journal_lines (entry_id, account_id, position, debit_cents, credit_cents, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range lines {
		lines[i].EntryID = entryID
		err := r.q.QueryRow(ctx, query,
			entryID, lines[i].AccountID, lines[i].Position,
			lines[i].DebitCents, lines[i].CreditCents, lines[i].Description,
		).Scan(&lines[i].ID)
		if err != nil {
			return fmt.Errorf("insert journal line %d: %w", lines[i].Position, err)
		}
	}
	return nil
}

const entryColumns = `id, company_id, date, entry_type, reference, description, created_at`

func scanEntry(row pgx.Row) (*entity.JournalEntry, error) {
	var e entity.JournalEntry
	err := row.Scan(&e.ID, &e.CompanyID, &e.Date, &e.EntryType,
		&e.Reference, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID carga el asiento con sus líneas ordenadas por posición. nil, nil si no existe.
func (r *JournalRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1 AND id = $2`
	entry, err := scanEntry(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	if err := r.loadLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetByReference busca por la clave natural (referencia, tipo). nil, nil si no
// existe. Si hay duplicados históricos devuelve el de menor id, consistente
// con la reparación que conserva ese mismo.
func (r *JournalRepo) GetByReference(ctx context.Context, companyID, reference, entryType string) (*entity.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND reference = $2 AND entry_type = $3
		ORDER BY id
		LIMIT 1`
	entry, err := scanEntry(r.q.QueryRow(ctx, query, companyID, reference, entryType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry by reference: %w", err)
	}
	if err := r.loadLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *JournalRepo) loadLines(ctx context.Context, entry *entity.JournalEntry) error {
	query := `
		SELECT id, entry_id, account_id, position, debit_cents, credit_cents, description
		FROM journal_lines WHERE entry_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, entry.ID)
	if err != nil {
		return fmt.Errorf("load journal lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.JournalLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.Position,
			&l.DebitCents, &l.CreditCents, &l.Description); err != nil {
			return fmt.Errorf("scan journal line: %w", err)
		}
		entry.Lines = append(entry.Lines, l)
	}
	return rows.Err()
}

// UpdateHeader actualiza fecha, tipo, referencia y descripción.
func (r *JournalRepo) UpdateHeader(ctx context.Context, entry *entity.JournalEntry) error {
	query := `
		UPDATE journal_entries SET date = $1, entry_type = $2, reference = $3, description = $4
		WHERE company_id = $5 AND id = $6`
	tag, err := r.q.Exec(ctx, query,
		entry.Date, entry.EntryType, entry.Reference, entry.Description,
		entry.CompanyID, entry.ID)
	if err != nil {
		return fmt.Errorf("update journal header: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines borra las líneas actuales e inserta las nuevas.
func (r *JournalRepo) ReplaceLines(ctx context.Context, entryID int64, lines []entity.JournalLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("delete journal lines: %w", err)
	}
	return r.insertLines(ctx, entryID, lines)
}

// Delete elimina el asiento; las líneas caen en cascada.
func (r *JournalRepo) Delete(ctx context.Context, companyID string, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM journal_entries WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineAccount reapunta una línea a otra cuenta preservando sus montos.
func (r *JournalRepo) UpdateLineAccount(ctx context.Context, lineID, accountID int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE journal_lines SET account_id = $1 WHERE id = $2`, accountID, lineID)
	if err != nil {
		return fmt.Errorf("update line account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByType lista los asientos de un tipo con sus líneas, ordenados por fecha.
func (r *JournalRepo) ListByType(ctx context.Context, companyID, entryType string) ([]*entity.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_type = $2
		ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, companyID, entryType)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		list = append(list, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, entry := range list {
		if err := r.loadLines(ctx, entry); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// LastCloseDate devuelve la fecha del cierre anual más reciente, o nil si
// la empresa nunca cerró.
func (r *JournalRepo) LastCloseDate(ctx context.Context, companyID string) (*time.Time, error) {
	query := `
		SELECT MAX(date) FROM journal_entries
		WHERE company_id = $1 AND entry_type = $2`
	var last *time.Time
	if err := r.q.QueryRow(ctx, query, companyID, entity.EntryTypeYearEndClose).Scan(&last); err != nil {
		return nil, fmt.Errorf("last close date: %w", err)
	}
	return last, nil
}
