package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/postgres"
)

// testPool abre un pool contra la base de pruebas. Sin TEST_DATABASE_URL el
// test se omite: estas consultas solo se pueden verificar contra PostgreSQL
// real (el adaptador en memoria no ejecuta SQL).
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definida; se omite el test de integración")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedAccount(t *testing.T, ctx context.Context, repo *postgres.AccountRepo, companyID, code, name, accType string, isCash bool) *entity.Account {
	t.Helper()
	account := &entity.Account{
		CompanyID:     companyID,
		Code:          code,
		Name:          name,
		Type:          accType,
		NormalBalance: entity.NormalBalanceFor(accType),
		IsCash:        isCash,
	}
	require.NoError(t, repo.Create(ctx, account))
	return account
}

func TestAccountTotalsAsOf_ExcluyeAsientosPosteriores(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	companyID := "test-" + uuid.New().String()

	accountRepo := postgres.NewAccountRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM journal_entries WHERE company_id = $1`, companyID)
		_, _ = pool.Exec(ctx, `DELETE FROM accounts WHERE company_id = $1`, companyID)
	})

	caja := seedAccount(t, ctx, accountRepo, companyID, "1000", "Caja", entity.AccountTypeAsset, true)
	ventas := seedAccount(t, ctx, accountRepo, companyID, "4000", "Ventas", entity.AccountTypeRevenue, false)
	seedAccount(t, ctx, accountRepo, companyID, "1100", "Cuentas por cobrar", entity.AccountTypeAsset, false)

	post := func(date time.Time, reference string, cents int64) {
		t.Helper()
		require.NoError(t, journalRepo.Create(ctx, &entity.JournalEntry{
			CompanyID: companyID,
			Date:      date,
			EntryType: entity.EntryTypeSale,
			Reference: reference,
			Lines: []entity.JournalLine{
				{AccountID: caja.ID, Position: 0, DebitCents: cents},
				{AccountID: ventas.ID, Position: 1, CreditCents: cents},
			},
		}))
	}
	post(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "Venta #1", 100)
	post(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "Venta #2", 50)

	reportingRepo := postgres.NewReportingRepository(pool)
	totals, err := reportingRepo.AccountTotalsAsOf(ctx, companyID, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	byCode := make(map[string]repository.AccountTotal)
	for _, tot := range totals {
		byCode[tot.Code] = tot
	}

	// Solo el asiento de enero entra al corte; la venta de junio queda fuera.
	assert.Equal(t, int64(100), byCode["1000"].DebitCents)
	assert.Equal(t, int64(0), byCode["1000"].CreditCents)
	assert.Equal(t, int64(100), byCode["4000"].CreditCents)

	// Las cuentas sin movimiento también se listan, con totales en cero.
	receivable, ok := byCode["1100"]
	require.True(t, ok, "cuentas por cobrar debe listarse aunque no tenga líneas")
	assert.Equal(t, int64(0), receivable.DebitCents)
	assert.Equal(t, int64(0), receivable.CreditCents)
}
