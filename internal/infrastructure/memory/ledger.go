package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)
var _ repository.JournalRepository = (*JournalRepo)(nil)

// AccountRepo vista en memoria del plan de cuentas.
type AccountRepo struct {
	s *Store
}

// NewAccountRepository construye la vista de cuentas sobre el Store.
func NewAccountRepository(s *Store) *AccountRepo {
	return &AccountRepo{s: s}
}

func (r *AccountRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts {
		if a.CompanyID == companyID && a.Code == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("cuenta %s: %w", code, domain.ErrAccountNotFound)
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepo) List(ctx context.Context, companyID string) ([]*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Account
	for _, a := range r.s.accounts {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *AccountRepo) ListByType(ctx context.Context, companyID, accountType string) ([]*entity.Account, error) {
	all, err := r.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var out []*entity.Account
	for _, a := range all {
		if a.Type == accountType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.CompanyID == account.CompanyID && a.Code == account.Code {
			return fmt.Errorf("cuenta %s: %w", account.Code, domain.ErrDuplicate)
		}
	}
	account.ID = r.s.nextAccountID
	r.s.nextAccountID++
	cp := *account
	r.s.accounts = append(r.s.accounts, &cp)
	return nil
}

func (r *AccountRepo) UpdateMetadata(ctx context.Context, account *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.ID == account.ID {
			a.Name = account.Name
			a.IsCash = account.IsCash
			a.IsCOGS = account.IsCOGS
			a.InventoryType = account.InventoryType
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *AccountRepo) SumAsOf(ctx context.Context, accountID int64, asOf time.Time) (int64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var debit, credit int64
	for _, e := range r.s.entries {
		if e.Date.After(asOf) {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				debit += l.DebitCents
				credit += l.CreditCents
			}
		}
	}
	return debit, credit, nil
}

// JournalRepo vista en memoria del libro diario.
type JournalRepo struct {
	s *Store
}

// NewJournalRepository construye la vista del libro sobre el Store.
func NewJournalRepository(s *Store) *JournalRepo {
	return &JournalRepo{s: s}
}

func copyEntry(e *entity.JournalEntry) *entity.JournalEntry {
	cp := *e
	cp.Lines = append([]entity.JournalLine(nil), e.Lines...)
	return &cp
}

func (r *JournalRepo) Create(ctx context.Context, entry *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = r.s.nextEntryID
	r.s.nextEntryID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	for i := range entry.Lines {
		entry.Lines[i].ID = r.s.nextLineID
		entry.Lines[i].EntryID = entry.ID
		r.s.nextLineID++
	}
	r.s.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (r *JournalRepo) GetByID(ctx context.Context, companyID string, id int64) (*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[id]
	if !ok || e.CompanyID != companyID {
		return nil, nil
	}
	return copyEntry(e), nil
}

func (r *JournalRepo) GetByReference(ctx context.Context, companyID, reference, entryType string) (*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *entity.JournalEntry
	for _, e := range r.s.entries {
		if e.CompanyID == companyID && e.Reference == reference && e.EntryType == entryType {
			if found == nil || e.ID < found.ID {
				found = e
			}
		}
	}
	if found == nil {
		return nil, nil
	}
	return copyEntry(found), nil
}

func (r *JournalRepo) UpdateHeader(ctx context.Context, entry *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[entry.ID]
	if !ok || e.CompanyID != entry.CompanyID {
		return domain.ErrNotFound
	}
	e.Date = entry.Date
	e.EntryType = entry.EntryType
	e.Reference = entry.Reference
	e.Description = entry.Description
	return nil
}

func (r *JournalRepo) ReplaceLines(ctx context.Context, entryID int64, lines []entity.JournalLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Lines = nil
	for i := range lines {
		lines[i].ID = r.s.nextLineID
		lines[i].EntryID = entryID
		r.s.nextLineID++
		e.Lines = append(e.Lines, lines[i])
	}
	return nil
}

func (r *JournalRepo) Delete(ctx context.Context, companyID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.entries, id)
	return nil
}

func (r *JournalRepo) UpdateLineAccount(ctx context.Context, lineID, accountID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		for i := range e.Lines {
			if e.Lines[i].ID == lineID {
				e.Lines[i].AccountID = accountID
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *JournalRepo) ListByType(ctx context.Context, companyID, entryType string) ([]*entity.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.JournalEntry
	for _, e := range r.s.entries {
		if e.CompanyID == companyID && e.EntryType == entryType {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *JournalRepo) LastCloseDate(ctx context.Context, companyID string) (*time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var last *time.Time
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.EntryType != entity.EntryTypeYearEndClose {
			continue
		}
		if last == nil || e.Date.After(*last) {
			d := e.Date
			last = &d
		}
	}
	return last, nil
}
