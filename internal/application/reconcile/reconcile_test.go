package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/accounts"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/reconcile"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

const testCompany = "empresa-1"

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	registry *accounts.Registry
	svc      *ledger.Service
	repairer *reconcile.Repairer
	log      *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	require.NoError(t, registry.Seed(ctx, testCompany))

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	svc := ledger.NewService(
		memory.NewTxRunner(store),
		memory.NewJournalRepository(store),
		memory.NewAccountRepository(store),
	)
	repairer := reconcile.NewRepairer(
		memory.NewTxRunner(store),
		svc,
		memory.NewVerificationRepository(store),
		memory.NewAccountRepository(store),
		log,
	)
	return &fixture{ctx: ctx, store: store, registry: registry, svc: svc, repairer: repairer, log: log}
}

// rawEntry escribe un asiento directamente en el repositorio, saltándose la
// validación y la idempotencia del servicio: así se reproducen los estados
// corruptos históricos que el motor debe detectar.
func (f *fixture) rawEntry(t *testing.T, entryType, reference string, date time.Time, lines ...entity.JournalLine) *entity.JournalEntry {
	t.Helper()
	entry := &entity.JournalEntry{
		CompanyID: testCompany,
		Date:      date,
		EntryType: entryType,
		Reference: reference,
		CreatedAt: time.Now(),
		Lines:     lines,
	}
	for i := range entry.Lines {
		entry.Lines[i].Position = i
	}
	require.NoError(t, memory.NewJournalRepository(f.store).Create(f.ctx, entry))
	return entry
}

func (f *fixture) line(t *testing.T, code string, debit, credit int64) entity.JournalLine {
	t.Helper()
	account, err := f.registry.LookupByCode(f.ctx, testCompany, code)
	require.NoError(t, err)
	return entity.JournalLine{AccountID: account.ID, DebitCents: debit, CreditCents: credit}
}

var checkDate = time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────
// Cuadre global
// ──────────────────────────────────────────────

func TestGlobalBalanceCheck(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewGlobalBalanceCheck(memory.NewVerificationRepository(f.store))

	f.rawEntry(t, entity.EntryTypeSale, "Venta #1", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 10000),
	)
	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	// Un asiento descuadrado (solo reproducible por escritura directa) se detecta.
	f.rawEntry(t, entity.EntryTypeSale, "Venta #2", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 9000),
	)
	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Entity, "Venta #2")
}

func TestGlobalBalanceCheck_CierreAnualExento(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewGlobalBalanceCheck(memory.NewVerificationRepository(f.store))

	// El traslado del cierre no cuadra visto como asiento aislado en algunos
	// históricos; el tipo year_end_close está exento del chequeo.
	f.rawEntry(t, entity.EntryTypeYearEndClose, "Cierre anual 2024-12-31", checkDate,
		f.line(t, "4000", 30000, 0),
		f.line(t, "3200", 0, 20000),
	)
	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())
}

// ──────────────────────────────────────────────
// Asientos duplicados
// ──────────────────────────────────────────────

func TestDuplicateEntries_DeteccionYReparacion(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewDuplicateEntriesCheck(memory.NewVerificationRepository(f.store))

	first := f.rawEntry(t, entity.EntryTypeSale, "Venta #1", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 10000),
	)
	second := f.rawEntry(t, entity.EntryTypeSale, "Venta #1", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 10000),
	)
	require.Less(t, first.ID, second.ID)

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)

	deleted, err := f.repairer.RepairDuplicateEntries(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Se conserva el de menor id; la idempotencia del servicio resuelve al mismo.
	journal := memory.NewJournalRepository(f.store)
	kept, err := journal.GetByReference(f.ctx, testCompany, "Venta #1", entity.EntryTypeSale)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, first.ID, kept.ID)
	gone, err := journal.GetByID(f.ctx, testCompany, second.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	// Repetir la reparación no borra nada más.
	deleted, err = f.repairer.RepairDuplicateEntries(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

// ──────────────────────────────────────────────
// Inventario: cantidades y movimientos duplicados
// ──────────────────────────────────────────────

func (f *fixture) rawMovement(t *testing.T, id string, qty int64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, memory.NewInventoryMovementRepository(f.store).Create(f.ctx, &entity.InventoryMovement{
		ID:             id,
		CompanyID:      testCompany,
		IngredientID:   "ing-harina",
		LocationID:     "bodega",
		Type:           entity.MovementTypePurchase,
		Quantity:       decimal.NewFromInt(qty),
		UnitCostCents:  decimal.NewFromInt(500),
		TotalCostCents: decimal.NewFromInt(qty * 500),
		Date:           checkDate,
		Reference:      "Compra #1",
		CreatedAt:      createdAt,
	}))
}

func (f *fixture) cacheItem(t *testing.T, ingredientID string, qty, avgCost int64) {
	t.Helper()
	require.NoError(t, memory.NewInventoryItemRepository(f.store).Upsert(f.ctx, &entity.InventoryItem{
		CompanyID:    testCompany,
		IngredientID: ingredientID,
		LocationID:   "bodega",
		Quantity:     decimal.NewFromInt(qty),
		AvgCostCents: decimal.NewFromInt(avgCost),
		UpdatedAt:    time.Now(),
	}))
}

func TestInventoryQuantity_DeteccionYReparacion(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewInventoryQuantityCheck(
		memory.NewInventoryMovementRepository(f.store),
		memory.NewInventoryItemRepository(f.store),
	)

	// El historial dice 10; la caché dice 8. Además hay una existencia cacheada
	// sin ningún movimiento que la respalde.
	f.rawMovement(t, "mov-1", 10, time.Now())
	f.cacheItem(t, "ing-harina", 8, 500)
	f.cacheItem(t, "ing-fantasma", 5, 100)

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Len(t, report.Issues, 2)

	fixed, err := f.repairer.RepairInventoryQuantities(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 2, fixed)

	items := memory.NewInventoryItemRepository(f.store)
	harina, err := items.Get(f.ctx, testCompany, "ing-harina", "bodega")
	require.NoError(t, err)
	assert.True(t, harina.Quantity.Equal(decimal.NewFromInt(10)), "reconstruida desde los movimientos")
	fantasma, err := items.Get(f.ctx, testCompany, "ing-fantasma", "bodega")
	require.NoError(t, err)
	assert.True(t, fantasma.Quantity.IsZero(), "sin respaldo se lleva a cero")

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())
}

func TestDuplicateMovements_DeteccionYReparacion(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewDuplicateMovementsCheck(memory.NewVerificationRepository(f.store))

	// Dos movimientos idénticos por clave natural; el más antiguo se conserva.
	older := time.Now().Add(-time.Hour)
	f.rawMovement(t, "mov-a", 10, older)
	f.rawMovement(t, "mov-b", 10, time.Now())

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)

	deleted, err := f.repairer.RepairDuplicateMovements(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	movs, err := memory.NewInventoryMovementRepository(f.store).ListByItem(f.ctx, testCompany, "ing-harina", "bodega")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "mov-a", movs[0].ID)

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())
}

// ──────────────────────────────────────────────
// Inventario: costo contra el libro mayor
// ──────────────────────────────────────────────

func TestInventoryCost_FaltanteGeneraMerma(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewInventoryCostCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
	)

	// El libro registra 10000 de inventario; el subsidiario vale 8000.
	f.store.PutIngredient(&entity.Ingredient{
		ID: "ing-harina", CompanyID: testCompany, Name: "Harina", Type: "raw_material", Unit: "kg",
	})
	f.rawEntry(t, entity.EntryTypePurchase, "Compra #1", checkDate,
		f.line(t, "1200", 10000, 0),
		f.line(t, "1000", 0, 10000),
	)
	f.rawMovement(t, "mov-1", 10, time.Now())
	f.cacheItem(t, "ing-harina", 10, 800)

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)

	posted, err := f.repairer.RepairInventoryCost(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, posted)

	// El ajuste va Dr merma / Cr inventario por el delta de 2000, fechado hoy.
	adjustments, err := memory.NewJournalRepository(f.store).ListByType(f.ctx, testCompany, entity.EntryTypeReconciliation)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, int64(2000), adjustments[0].TotalDebitCents())
	assert.Contains(t, adjustments[0].Reference, "Ajuste inventario 1200")

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	// Reparar de nuevo no postea otro ajuste.
	posted, err = f.repairer.RepairInventoryCost(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Zero(t, posted)
}

func TestInventoryCost_SobranteVaAOtrosAjustes(t *testing.T) {
	f := newFixture(t)

	// El subsidiario vale 12000; el libro solo registra 10000.
	f.store.PutIngredient(&entity.Ingredient{
		ID: "ing-harina", CompanyID: testCompany, Name: "Harina", Type: "raw_material", Unit: "kg",
	})
	f.rawEntry(t, entity.EntryTypePurchase, "Compra #1", checkDate,
		f.line(t, "1200", 10000, 0),
		f.line(t, "1000", 0, 10000),
	)
	f.rawMovement(t, "mov-1", 10, time.Now())
	f.cacheItem(t, "ing-harina", 10, 1200)

	posted, err := f.repairer.RepairInventoryCost(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, posted)

	adjustments, err := memory.NewJournalRepository(f.store).ListByType(f.ctx, testCompany, entity.EntryTypeReconciliation)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)

	// Dr inventario / Cr otros ajustes por 2000.
	other, err := f.registry.LookupByCode(f.ctx, testCompany, "6900")
	require.NoError(t, err)
	var credited int64
	for _, l := range adjustments[0].Lines {
		if l.AccountID == other.ID {
			credited += l.CreditCents
		}
	}
	assert.Equal(t, int64(2000), credited)
}

func TestInventoryCost_DentroDeTolerancia(t *testing.T) {
	f := newFixture(t)

	// Delta de 50 centavos: ruido de redondeo del costo promedio, no se ajusta.
	f.store.PutIngredient(&entity.Ingredient{
		ID: "ing-harina", CompanyID: testCompany, Name: "Harina", Type: "raw_material", Unit: "kg",
	})
	f.rawEntry(t, entity.EntryTypePurchase, "Compra #1", checkDate,
		f.line(t, "1200", 10050, 0),
		f.line(t, "1000", 0, 10050),
	)
	f.rawMovement(t, "mov-1", 10, time.Now())
	f.cacheItem(t, "ing-harina", 10, 1000)

	check := reconcile.NewInventoryCostCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
	)
	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	posted, err := f.repairer.RepairInventoryCost(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Zero(t, posted)
}

// ──────────────────────────────────────────────
// Retiros mal clasificados
// ──────────────────────────────────────────────

func TestWithdrawals_DeteccionYReparacion(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewWithdrawalCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
	)

	// Clase histórica: el retiro debitó el capital principal (3000) en vez de
	// la contra-cuenta de retiros (3100).
	bad := f.rawEntry(t, entity.EntryTypeWithdrawal, "Retiro #1", checkDate,
		f.line(t, "3000", 50000, 0),
		f.line(t, "1000", 0, 50000),
	)

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Entity, "Retiro #1")

	fixed, err := f.repairer.RepairWithdrawals(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	// Solo cambió la cuenta de la línea: montos y cuadre intactos.
	repaired, err := memory.NewJournalRepository(f.store).GetByID(f.ctx, testCompany, bad.ID)
	require.NoError(t, err)
	require.NotNil(t, repaired)
	assert.Equal(t, repaired.TotalDebitCents(), repaired.TotalCreditCents())

	drawings, err := f.registry.LookupByCode(f.ctx, testCompany, "3100")
	require.NoError(t, err)
	equity, err := f.registry.LookupByCode(f.ctx, testCompany, "3000")
	require.NoError(t, err)
	var toDrawings, toEquity int64
	for _, l := range repaired.Lines {
		switch l.AccountID {
		case drawings.ID:
			toDrawings += l.DebitCents
		case equity.ID:
			toEquity += l.DebitCents
		}
	}
	assert.Equal(t, int64(50000), toDrawings)
	assert.Zero(t, toEquity)

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())
}

// ──────────────────────────────────────────────
// Órdenes: WIP y cartera
// ──────────────────────────────────────────────

func TestWIPConsistencyCheck(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewWIPConsistencyCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
		memory.NewOrderRepository(f.store),
	)

	// Orden 7: entrada y entrega por el mismo monto contra WIP.
	f.rawEntry(t, entity.EntryTypeOrderPrep, "Order #7 in prep", checkDate,
		f.line(t, "1300", 5000, 0),
		f.line(t, "1200", 0, 5000),
	)
	f.rawEntry(t, entity.EntryTypeOrderDelivered, "Order #7 delivered", checkDate,
		f.line(t, "5000", 5000, 0),
		f.line(t, "1300", 0, 5000),
	)
	f.store.PutOrder(&entity.Order{ID: 7, CompanyID: testCompany, Status: entity.OrderStatusDelivered})

	// Orden 8: sigue legítimamente en preparación, sin entrega.
	f.rawEntry(t, entity.EntryTypeOrderPrep, "Order #8 in prep", checkDate,
		f.line(t, "1300", 4000, 0),
		f.line(t, "1200", 0, 4000),
	)
	f.store.PutOrder(&entity.Order{ID: 8, CompanyID: testCompany, Status: entity.OrderStatusInPrep})

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	// Orden 9: marcada entregada pero su WIP nunca salió.
	f.rawEntry(t, entity.EntryTypeOrderPrep, "Order #9 in prep", checkDate,
		f.line(t, "1300", 6000, 0),
		f.line(t, "1200", 0, 6000),
	)
	f.store.PutOrder(&entity.Order{ID: 9, CompanyID: testCompany, Status: entity.OrderStatusDelivered})

	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Entity, "orden 9")
}

func TestOrderReceivablesCheck(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewOrderReceivablesCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
		memory.NewOrderRepository(f.store),
	)

	// Orden 9: entregada, total 50000, pagó 20000 → por cobrar 30000.
	f.store.PutOrder(&entity.Order{
		ID: 9, CompanyID: testCompany, Status: entity.OrderStatusDelivered,
		TotalCents: 50000, PaidCents: 20000,
	})
	f.rawEntry(t, entity.EntryTypeOrderDelivered, "Order #9 delivered", checkDate,
		f.line(t, "1100", 30000, 0),
		f.line(t, "1000", 20000, 0),
		f.line(t, "4000", 0, 50000),
	)

	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	assert.True(t, report.Ok())

	// El saldo contable diverge si la orden registra más pagos que el libro.
	f.store.PutOrder(&entity.Order{
		ID: 9, CompanyID: testCompany, Status: entity.OrderStatusDelivered,
		TotalCents: 50000, PaidCents: 50000,
	})
	report, err = check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Entity, "orden 9")
}

func TestOrderReceivablesCheck_OrdenInexistente(t *testing.T) {
	f := newFixture(t)
	check := reconcile.NewOrderReceivablesCheck(
		memory.NewVerificationRepository(f.store),
		memory.NewAccountRepository(f.store),
		memory.NewOrderRepository(f.store),
	)

	// Cartera contra una orden que el dominio no conoce.
	f.rawEntry(t, entity.EntryTypeOrderDelivered, "Order #99 delivered", checkDate,
		f.line(t, "1100", 1000, 0),
		f.line(t, "4000", 0, 1000),
	)
	report, err := check.Run(f.ctx, testCompany)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Message, "inexistente")
}

// ──────────────────────────────────────────────
// Motor
// ──────────────────────────────────────────────

func newEngine(f *fixture) *reconcile.Engine {
	verification := memory.NewVerificationRepository(f.store)
	accountRepo := memory.NewAccountRepository(f.store)
	orderRepo := memory.NewOrderRepository(f.store)
	return reconcile.NewEngine(f.log, 0,
		reconcile.NewGlobalBalanceCheck(verification),
		reconcile.NewInventoryQuantityCheck(
			memory.NewInventoryMovementRepository(f.store),
			memory.NewInventoryItemRepository(f.store),
		),
		reconcile.NewInventoryCostCheck(verification, accountRepo),
		reconcile.NewWithdrawalCheck(verification, accountRepo),
		reconcile.NewDuplicateEntriesCheck(verification),
		reconcile.NewDuplicateMovementsCheck(verification),
		reconcile.NewWIPConsistencyCheck(verification, accountRepo, orderRepo),
		reconcile.NewOrderReceivablesCheck(verification, accountRepo, orderRepo),
	)
}

func TestEngine_RunAll(t *testing.T) {
	f := newFixture(t)
	results := newEngine(f).RunAll(f.ctx, testCompany)

	want := []string{
		"global_balance", "inventory_quantity", "inventory_cost",
		"withdrawal_misclassification", "duplicate_entries",
		"duplicate_movements", "wip_orders", "order_receivables",
	}
	require.Len(t, results, len(want))
	for _, name := range want {
		res, ok := results[name]
		require.True(t, ok, "falta la verificación %s", name)
		require.NoError(t, res.Err)
		assert.True(t, res.Report.Ok(), "verificación %s limpia en un libro vacío", name)
	}
}

func TestRepairAll_LibroLimpio(t *testing.T) {
	f := newFixture(t)
	summary, err := f.repairer.RepairAll(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, &reconcile.Summary{}, summary)
}

func TestRepairAll_SecuenciaCompleta(t *testing.T) {
	f := newFixture(t)

	// Un libro con las tres clases de drift a la vez: asiento duplicado,
	// movimiento duplicado y caché de cantidades desactualizada.
	f.rawEntry(t, entity.EntryTypeSale, "Venta #1", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 10000),
	)
	f.rawEntry(t, entity.EntryTypeSale, "Venta #1", checkDate,
		f.line(t, "1000", 10000, 0),
		f.line(t, "4000", 0, 10000),
	)
	f.store.PutIngredient(&entity.Ingredient{
		ID: "ing-harina", CompanyID: testCompany, Name: "Harina", Type: "raw_material", Unit: "kg",
	})
	f.rawMovement(t, "mov-a", 10, time.Now().Add(-time.Hour))
	f.rawMovement(t, "mov-b", 10, time.Now())
	f.cacheItem(t, "ing-harina", 20, 500)

	summary, err := f.repairer.RepairAll(f.ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DeletedEntries)
	assert.Equal(t, 1, summary.DeletedMovements)
	// La caché se reconstruye después de borrar el movimiento duplicado: 10, no 20.
	assert.Equal(t, 1, summary.RebuiltItems)

	item, err := memory.NewInventoryItemRepository(f.store).Get(f.ctx, testCompany, "ing-harina", "bodega")
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))

	// Tras reparar, todas las verificaciones quedan en orden.
	for name, res := range newEngine(f).RunAll(f.ctx, testCompany) {
		require.NoError(t, res.Err, name)
		assert.True(t, res.Report.Ok(), "verificación %s tras reparar", name)
	}
}
