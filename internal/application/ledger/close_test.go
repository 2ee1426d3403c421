package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/accounts"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/reports"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/memory"
)

// newCloserFixture arma el cierre anual sobre el almacén en memoria.
func newCloserFixture(t *testing.T) (context.Context, *memory.Store, *ledger.Service, *ledger.Closer) {
	t.Helper()
	ctx, store, svc := newLedgerFixture(t)
	closer := ledger.NewCloser(svc, memory.NewJournalRepository(store), memory.NewReportingRepository(store))
	return ctx, store, svc, closer
}

// postYearActivity registra la actividad de un año: aporte, compra, venta y retiro.
// Resultado del período: ingresos 50000 - costo 20000 = 30000; retiros 10000.
func postYearActivity(t *testing.T, ctx context.Context, svc *ledger.Service, year int) {
	t.Helper()
	date := func(month time.Month) time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}
	suffix := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")

	_, err := svc.Post(ctx, testCompany, accounting.EntryInput{
		Date: date(1), EntryType: entity.EntryTypeInvestment, Reference: "Aporte #" + suffix,
	}, []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(100000)},
		{Account: accounting.RefOwnersEquity, Amount: accounting.Credit(100000)},
	})
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany, accounting.EntryInput{
		Date: date(2), EntryType: entity.EntryTypePurchase, Reference: "Compra #" + suffix,
	}, []accounting.LineInput{
		{Account: accounting.RefInventoryRawMaterial, Amount: accounting.Debit(30000)},
		{Account: accounting.RefCash, Amount: accounting.Credit(30000)},
	})
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany, accounting.EntryInput{
		Date: date(6), EntryType: entity.EntryTypeSale, Reference: "Venta #" + suffix,
	}, []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(50000)},
		{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(50000)},
		{Account: accounting.RefCOGS, Amount: accounting.Debit(20000)},
		{Account: accounting.RefInventoryRawMaterial, Amount: accounting.Credit(20000)},
	})
	require.NoError(t, err)

	_, err = svc.Post(ctx, testCompany, accounting.EntryInput{
		Date: date(11), EntryType: entity.EntryTypeWithdrawal, Reference: "Retiro #" + suffix,
	}, []accounting.LineInput{
		{Account: accounting.RefOwnersDrawings, Amount: accounting.Debit(10000)},
		{Account: accounting.RefCash, Amount: accounting.Credit(10000)},
	})
	require.NoError(t, err)
}

func TestCloser_CierreAnual(t *testing.T) {
	ctx, store, svc, closer := newCloserFixture(t)
	postYearActivity(t, ctx, svc, 2025)

	closeDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	entry, err := closer.CloseYear(ctx, testCompany, closeDate)
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, entity.EntryTypeYearEndClose, entry.EntryType)
	assert.Equal(t, "Cierre anual 2025-12-31", entry.Reference)
	assert.Equal(t, entry.TotalDebitCents(), entry.TotalCreditCents(), "el cierre es un traslado puro")

	// La línea de cuadre lleva el resultado neto de retiros a utilidades
	// retenidas: 30000 de resultado - 10000 de retiros = 20000 al crédito.
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	retained, err := registry.Lookup(ctx, testCompany, accounting.RefRetainedEarnings)
	require.NoError(t, err)

	var plug int64
	for _, l := range entry.Lines {
		if l.AccountID == retained.ID {
			plug += l.CreditCents - l.DebitCents
		}
	}
	assert.Equal(t, int64(20000), plug)

	// Tras el cierre, las cuentas de resultado y los retiros quedan en cero.
	after := closeDate.AddDate(0, 0, 1)
	for _, ref := range []accounting.AccountRef{
		accounting.RefSalesRevenue, accounting.RefCOGS, accounting.RefOwnersDrawings,
	} {
		account, err := registry.Lookup(ctx, testCompany, ref)
		require.NoError(t, err)
		balance, err := registry.BalanceAsOf(ctx, account, after)
		require.NoError(t, err)
		assert.Zero(t, balance, "cuenta %s debe quedar en cero tras el cierre", account.Code)
	}

	// El balance general posterior cuadra sin resultado del período abierto.
	reportsUC := reports.NewUseCase(memory.NewReportingRepository(store))
	bs, err := reportsUC.BalanceSheet(ctx, testCompany, after)
	require.NoError(t, err)
	assert.Zero(t, bs.NetIncomeCents)
	assert.Zero(t, bs.DifferenceCents)
}

func TestCloser_SegundoCierreMismaFecha(t *testing.T) {
	ctx, _, svc, closer := newCloserFixture(t)
	postYearActivity(t, ctx, svc, 2025)

	closeDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	_, err := closer.CloseYear(ctx, testCompany, closeDate)
	require.NoError(t, err)

	_, err = closer.CloseYear(ctx, testCompany, closeDate)
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestCloser_FechaNoPosteriorAlUltimoCierre(t *testing.T) {
	ctx, _, svc, closer := newCloserFixture(t)
	postYearActivity(t, ctx, svc, 2025)

	_, err := closer.CloseYear(ctx, testCompany, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = closer.CloseYear(ctx, testCompany, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCloser_SinActividadQueCerrar(t *testing.T) {
	ctx, _, _, closer := newCloserFixture(t)

	_, err := closer.CloseYear(ctx, testCompany, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCloser_SegundoPeriodoCierraSoloSuActividad(t *testing.T) {
	ctx, store, svc, closer := newCloserFixture(t)

	postYearActivity(t, ctx, svc, 2025)
	_, err := closer.CloseYear(ctx, testCompany, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	postYearActivity(t, ctx, svc, 2026)
	entry, err := closer.CloseYear(ctx, testCompany, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Como el cierre anterior dejó las cuentas de resultado en cero, el segundo
	// cierre traslada exactamente la actividad de 2026: otro plug de 20000.
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	retained, err := registry.Lookup(ctx, testCompany, accounting.RefRetainedEarnings)
	require.NoError(t, err)
	var plug int64
	for _, l := range entry.Lines {
		if l.AccountID == retained.ID {
			plug += l.CreditCents - l.DebitCents
		}
	}
	assert.Equal(t, int64(20000), plug)

	// Utilidades retenidas acumulan los dos períodos.
	balance, err := registry.BalanceAsOf(ctx, retained, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(40000), balance)
}
