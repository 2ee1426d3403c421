package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/accounts"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/memory"
)

const testCompany = "empresa-1"

func TestRegistry_Seed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))

	require.NoError(t, registry.Seed(ctx, testCompany))

	chart, err := registry.List(ctx, testCompany)
	require.NoError(t, err)
	assert.Len(t, chart, 17)

	// Sembrar de nuevo es idempotente: verifica el plan existente sin duplicar.
	require.NoError(t, registry.Seed(ctx, testCompany))
	chart, err = registry.List(ctx, testCompany)
	require.NoError(t, err)
	assert.Len(t, chart, 17)
}

func TestRegistry_SeedPorEmpresa(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))

	require.NoError(t, registry.Seed(ctx, "empresa-1"))
	require.NoError(t, registry.Seed(ctx, "empresa-2"))

	// Cada empresa tiene su propio plan; los códigos se repiten entre empresas.
	a1, err := registry.LookupByCode(ctx, "empresa-1", "1000")
	require.NoError(t, err)
	a2, err := registry.LookupByCode(ctx, "empresa-2", "1000")
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)
}

func TestRegistry_LookupInexistente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	require.NoError(t, registry.Seed(ctx, testCompany))

	_, err := registry.LookupByCode(ctx, testCompany, "9999")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRegistry_ListByPredicate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	require.NoError(t, registry.Seed(ctx, testCompany))

	cashAccounts, err := registry.ListByPredicate(ctx, testCompany, func(a *entity.Account) bool {
		return a.IsCash
	})
	require.NoError(t, err)
	require.Len(t, cashAccounts, 2) // Caja y Bancos
}

func TestRegistry_BalanceAsOf(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	require.NoError(t, registry.Seed(ctx, testCompany))

	svc := ledger.NewService(
		memory.NewTxRunner(store),
		memory.NewJournalRepository(store),
		memory.NewAccountRepository(store),
	)
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Post(ctx, testCompany, accounting.EntryInput{
		Date: date, EntryType: entity.EntryTypeInvestment, Reference: "Aporte #1",
	}, []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(100000)},
		{Account: accounting.RefOwnersEquity, Amount: accounting.Credit(100000)},
	})
	require.NoError(t, err)

	cash, err := registry.Lookup(ctx, testCompany, accounting.RefCash)
	require.NoError(t, err)

	// El saldo siempre se deriva por agregación a la fecha.
	balance, err := registry.BalanceAsOf(ctx, cash, date)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance)

	balance, err = registry.BalanceAsOf(ctx, cash, date.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, balance, "antes del asiento no hay saldo")
}
