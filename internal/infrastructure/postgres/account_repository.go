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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador del plan de cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, company_id, code, name, type, normal_balance, is_cash, is_cogs, inventory_type`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.CompanyID, &a.Code, &a.Name, &a.Type,
		&a.NormalBalance, &a.IsCash, &a.IsCOGS, &a.InventoryType)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByCode busca una cuenta por código exacto dentro de la empresa.
func (r *AccountRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2`
	account, err := scanAccount(r.q.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cuenta %s: %w", code, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("get account by code: %w", err)
	}
	return account, nil
}

// GetByID obtiene una cuenta por su id.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// List devuelve el plan de cuentas completo de la empresa, ordenado por código.
func (r *AccountRepo) List(ctx context.Context, companyID string) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY code`
	return r.list(ctx, query, companyID)
}

// ListByType devuelve las cuentas de un tipo contable.
func (r *AccountRepo) ListByType(ctx context.Context, companyID, accountType string) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND type = $2 ORDER BY code`
	return r.list(ctx, query, companyID, accountType)
}

func (r *AccountRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, account)
	}
	return list, rows.Err()
}

// Create inserta una cuenta y asigna su id.
func (r *AccountRepo) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (company_id, code, name, type, normal_balance, is_cash, is_cogs, inventory_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		account.CompanyID, account.Code, account.Name, account.Type,
		account.NormalBalance, account.IsCash, account.IsCOGS, account.InventoryType,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cuenta %s: %w", account.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// UpdateMetadata edita nombre y flags. Código y tipo quedan fijos.
func (r *AccountRepo) UpdateMetadata(ctx context.Context, account *entity.Account) error {
	query := `
		UPDATE accounts SET name = $1, is_cash = $2, is_cogs = $3, inventory_type = $4
		WHERE id = $5`
	tag, err := r.q.Exec(ctx, query,
		account.Name, account.IsCash, account.IsCOGS, account.InventoryType, account.ID)
	if err != nil {
		return fmt.Errorf("update account metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SumAsOf agrega débitos y créditos de la cuenta sobre asientos fechados ≤ asOf.
func (r *AccountRepo) SumAsOf(ctx context.Context, accountID int64, asOf time.Time) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_cents), 0), COALESCE(SUM(l.credit_cents), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1 AND e.date <= $2`
	var debit, credit int64
	if err := r.q.QueryRow(ctx, query, accountID, asOf).Scan(&debit, &credit); err != nil {
		return 0, 0, fmt.Errorf("sum account as of: %w", err)
	}
	return debit, credit, nil
}
