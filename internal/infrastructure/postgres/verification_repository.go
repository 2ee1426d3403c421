package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

// VerificationRepo consultas agrupadas del motor de verificación. Todas son
// de solo lectura y agregan en SQL: cada chequeo cuesta una o dos consultas,
// no una por asiento.
type VerificationRepo struct {
	q Querier
}

// NewVerificationRepository construye el adaptador de verificación. Pasar pool o tx (Querier).
func NewVerificationRepository(q Querier) *VerificationRepo {
	return &VerificationRepo{q: q}
}

// UnbalancedEntries encuentra asientos cuyos débitos no igualan sus créditos,
// excluyendo los tipos exentos.
func (r *VerificationRepo) UnbalancedEntries(ctx context.Context, companyID string, exemptTypes []string) ([]repository.UnbalancedEntry, error) {
	query := `
		SELECT e.id, e.reference, e.entry_type,
		       COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_entries e
		LEFT JOIN journal_lines l ON l.entry_id = e.id
		WHERE e.company_id = $1 AND NOT (e.entry_type = ANY($2))
		GROUP BY e.id, e.reference, e.entry_type
		HAVING COALESCE(SUM(l.debit_cents), 0) <> COALESCE(SUM(l.credit_cents), 0)
		ORDER BY e.id`
	rows, err := r.q.Query(ctx, query, companyID, exemptTypes)
	if err != nil {
		return nil, fmt.Errorf("unbalanced entries: %w", err)
	}
	defer rows.Close()
	var list []repository.UnbalancedEntry
	for rows.Next() {
		var u repository.UnbalancedEntry
		if err := rows.Scan(&u.EntryID, &u.Reference, &u.EntryType, &u.DebitCents, &u.CreditCents); err != nil {
			return nil, fmt.Errorf("scan unbalanced entry: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// DuplicateEntryGroups agrupa asientos por la clave natural (referencia, tipo)
// y devuelve los grupos con más de uno, con los ids ascendentes (el primero
// es el que se conserva).
func (r *VerificationRepo) DuplicateEntryGroups(ctx context.Context, companyID string) ([]repository.DuplicateEntryGroup, error) {
	query := `
		SELECT reference, entry_type, array_agg(id ORDER BY id)
		FROM journal_entries
		WHERE company_id = $1
		GROUP BY reference, entry_type
		HAVING COUNT(*) > 1
		ORDER BY reference`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("duplicate entry groups: %w", err)
	}
	defer rows.Close()
	var list []repository.DuplicateEntryGroup
	for rows.Next() {
		var g repository.DuplicateEntryGroup
		if err := rows.Scan(&g.Reference, &g.EntryType, &g.IDs); err != nil {
			return nil, fmt.Errorf("scan duplicate group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// DuplicateMovementGroups agrupa movimientos de inventario idénticos por
// (insumo, ubicación, tipo, cantidad, fecha, referencia); ids ordenados por
// created_at, el más antiguo primero.
func (r *VerificationRepo) DuplicateMovementGroups(ctx context.Context, companyID string) ([]repository.DuplicateMovementGroup, error) {
	query := `
		SELECT ingredient_id, location_id, type, quantity, reference,
		       array_agg(id ORDER BY created_at, id)
		FROM inventory_movements
		WHERE company_id = $1
		GROUP BY ingredient_id, location_id, type, quantity, date, reference
		HAVING COUNT(*) > 1
		ORDER BY ingredient_id, location_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("duplicate movement groups: %w", err)
	}
	defer rows.Close()
	var list []repository.DuplicateMovementGroup
	for rows.Next() {
		var g repository.DuplicateMovementGroup
		if err := rows.Scan(&g.IngredientID, &g.LocationID, &g.Type, &g.Quantity, &g.Reference, &g.IDs); err != nil {
			return nil, fmt.Errorf("scan duplicate movement group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// LinesDebiting encuentra líneas de asientos del tipo dado que debitan la
// cuenta dada (auditoría de clasificación, ej. retiros contra el capital).
func (r *VerificationRepo) LinesDebiting(ctx context.Context, companyID, entryType string, accountID int64) ([]repository.MisclassifiedLine, error) {
	query := `
		SELECT l.id, e.id, e.reference, l.debit_cents
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.company_id = $1 AND e.entry_type = $2 AND l.account_id = $3 AND l.debit_cents > 0
		ORDER BY l.id`
	rows, err := r.q.Query(ctx, query, companyID, entryType, accountID)
	if err != nil {
		return nil, fmt.Errorf("lines debiting: %w", err)
	}
	defer rows.Close()
	var list []repository.MisclassifiedLine
	for rows.Next() {
		var m repository.MisclassifiedLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.Reference, &m.DebitCents); err != nil {
			return nil, fmt.Errorf("scan misclassified line: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// EntryTotalsAgainstAccount agrega débitos y créditos por asiento del tipo
// dado contra una cuenta concreta (consistencia WIP por orden).
func (r *VerificationRepo) EntryTotalsAgainstAccount(ctx context.Context, companyID, entryType string, accountID int64) ([]repository.EntryAccountTotal, error) {
	query := `
		SELECT e.id, e.reference,
		       COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.id
		WHERE e.company_id = $1 AND e.entry_type = $2 AND l.account_id = $3
		GROUP BY e.id, e.reference
		ORDER BY e.id`
	rows, err := r.q.Query(ctx, query, companyID, entryType, accountID)
	if err != nil {
		return nil, fmt.Errorf("entry totals against account: %w", err)
	}
	defer rows.Close()
	var list []repository.EntryAccountTotal
	for rows.Next() {
		var t repository.EntryAccountTotal
		if err := rows.Scan(&t.EntryID, &t.Reference, &t.DebitCents, &t.CreditCents); err != nil {
			return nil, fmt.Errorf("scan entry total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// BalancesByReference agrega el saldo (débitos − créditos) de una cuenta
// agrupado por referencia con el prefijo dado (cartera por orden).
func (r *VerificationRepo) BalancesByReference(ctx context.Context, companyID string, accountID int64, refPrefix string) ([]repository.ReferenceBalance, error) {
	query := `
		SELECT e.reference,
		       COALESCE(SUM(l.debit_cents), 0) - COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND e.reference LIKE $3 || '%'
		GROUP BY e.reference
		ORDER BY e.reference`
	rows, err := r.q.Query(ctx, query, companyID, accountID, refPrefix)
	if err != nil {
		return nil, fmt.Errorf("balances by reference: %w", err)
	}
	defer rows.Close()
	var list []repository.ReferenceBalance
	for rows.Next() {
		var b repository.ReferenceBalance
		if err := rows.Scan(&b.Reference, &b.BalanceCents); err != nil {
			return nil, fmt.Errorf("scan reference balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// InventoryValueByType suma cantidad × costo promedio de las existencias
// agrupado por el tipo del insumo.
func (r *VerificationRepo) InventoryValueByType(ctx context.Context, companyID string) ([]repository.InventoryTypeValue, error) {
	query := `
		SELECT ing.type, COALESCE(SUM(it.quantity * it.avg_cost_cents), 0)
		FROM inventory_items it
		JOIN ingredients ing ON ing.company_id = it.company_id AND ing.id = it.ingredient_id
		WHERE it.company_id = $1
		GROUP BY ing.type
		ORDER BY ing.type`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("inventory value by type: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryTypeValue
	for rows.Next() {
		var v repository.InventoryTypeValue
		if err := rows.Scan(&v.InventoryType, &v.ValueCents); err != nil {
			return nil, fmt.Errorf("scan inventory value: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
