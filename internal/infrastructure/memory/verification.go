package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

// VerificationRepo consultas agrupadas del motor de verificación sobre el
// Store. Misma semántica que el adaptador PostgreSQL.
type VerificationRepo struct {
	s *Store
}

// NewVerificationRepository construye la vista de verificación sobre el Store.
func NewVerificationRepository(s *Store) *VerificationRepo {
	return &VerificationRepo{s: s}
}

func (r *VerificationRepo) UnbalancedEntries(ctx context.Context, companyID string, exemptTypes []string) ([]repository.UnbalancedEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	exempt := make(map[string]bool, len(exemptTypes))
	for _, t := range exemptTypes {
		exempt[t] = true
	}
	var out []repository.UnbalancedEntry
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || exempt[e.EntryType] {
			continue
		}
		debit, credit := e.TotalDebitCents(), e.TotalCreditCents()
		if debit != credit {
			out = append(out, repository.UnbalancedEntry{
				EntryID:     e.ID,
				Reference:   e.Reference,
				EntryType:   e.EntryType,
				DebitCents:  debit,
				CreditCents: credit,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

func (r *VerificationRepo) DuplicateEntryGroups(ctx context.Context, companyID string) ([]repository.DuplicateEntryGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type key struct{ reference, entryType string }
	groups := make(map[key][]int64)
	for _, e := range r.s.entries {
		if e.CompanyID == companyID {
			k := key{e.Reference, e.EntryType}
			groups[k] = append(groups[k], e.ID)
		}
	}
	var out []repository.DuplicateEntryGroup
	for k, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, repository.DuplicateEntryGroup{
			Reference: k.reference,
			EntryType: k.entryType,
			IDs:       ids,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

func (r *VerificationRepo) DuplicateMovementGroups(ctx context.Context, companyID string) ([]repository.DuplicateMovementGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type key struct {
		ingredientID, locationID, movType, quantity, date, reference string
	}
	type member struct {
		id      string
		created int64
	}
	groups := make(map[key][]member)
	meta := make(map[key]repository.DuplicateMovementGroup)
	for _, m := range r.s.movements {
		if m.CompanyID != companyID {
			continue
		}
		k := key{m.IngredientID, m.LocationID, m.Type, m.Quantity.String(), m.Date.Format("2006-01-02"), m.Reference}
		groups[k] = append(groups[k], member{id: m.ID, created: m.CreatedAt.UnixNano()})
		meta[k] = repository.DuplicateMovementGroup{
			IngredientID: m.IngredientID,
			LocationID:   m.LocationID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Reference:    m.Reference,
		}
	}
	var out []repository.DuplicateMovementGroup
	for k, members := range groups {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool {
			if members[i].created != members[j].created {
				return members[i].created < members[j].created
			}
			return members[i].id < members[j].id
		})
		g := meta[k]
		for _, m := range members {
			g.IDs = append(g.IDs, m.id)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IngredientID != out[j].IngredientID {
			return out[i].IngredientID < out[j].IngredientID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

func (r *VerificationRepo) LinesDebiting(ctx context.Context, companyID, entryType string, accountID int64) ([]repository.MisclassifiedLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.MisclassifiedLine
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.EntryType != entryType {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID && l.DebitCents > 0 {
				out = append(out, repository.MisclassifiedLine{
					LineID:     l.ID,
					EntryID:    e.ID,
					Reference:  e.Reference,
					DebitCents: l.DebitCents,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

func (r *VerificationRepo) EntryTotalsAgainstAccount(ctx context.Context, companyID, entryType string, accountID int64) ([]repository.EntryAccountTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.EntryAccountTotal
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || e.EntryType != entryType {
			continue
		}
		var t repository.EntryAccountTotal
		touched := false
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				touched = true
				t.DebitCents += l.DebitCents
				t.CreditCents += l.CreditCents
			}
		}
		if touched {
			t.EntryID = e.ID
			t.Reference = e.Reference
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

func (r *VerificationRepo) BalancesByReference(ctx context.Context, companyID string, accountID int64, refPrefix string) ([]repository.ReferenceBalance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	balances := make(map[string]int64)
	for _, e := range r.s.entries {
		if e.CompanyID != companyID || len(e.Reference) < len(refPrefix) || e.Reference[:len(refPrefix)] != refPrefix {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				balances[e.Reference] += l.DebitCents - l.CreditCents
			}
		}
	}
	var out []repository.ReferenceBalance
	for ref, cents := range balances {
		out = append(out, repository.ReferenceBalance{Reference: ref, BalanceCents: cents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

func (r *VerificationRepo) InventoryValueByType(ctx context.Context, companyID string) ([]repository.InventoryTypeValue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	values := make(map[string]decimal.Decimal)
	for k, item := range r.s.items {
		if k.companyID != companyID {
			continue
		}
		ing, ok := r.s.ingredients[companyID+"/"+k.ingredientID]
		if !ok {
			continue
		}
		values[ing.Type] = values[ing.Type].Add(item.ValueCents())
	}
	var out []repository.InventoryTypeValue
	for t, v := range values {
		out = append(out, repository.InventoryTypeValue{InventoryType: t, ValueCents: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InventoryType < out[j].InventoryType })
	return out, nil
}
