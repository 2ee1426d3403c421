package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/accounts"
	"github.com/jhoicas/Contabilidad-api/internal/application/inventory"
	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/memory"
)

const (
	testCompany = "empresa-1"
	bodega      = "bodega"
	cocina      = "cocina"
	harinaID    = "ing-harina"
	empaqueID   = "ing-empaque"
)

// newInventoryFixture arma el caso de uso de inventario con el catálogo y el
// plan de cuentas sembrados en memoria.
func newInventoryFixture(t *testing.T) (context.Context, *memory.Store, *inventory.UseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	registry := accounts.NewRegistry(memory.NewAccountRepository(store))
	require.NoError(t, registry.Seed(ctx, testCompany))

	store.PutIngredient(&entity.Ingredient{
		ID: harinaID, CompanyID: testCompany, Name: "Harina de trigo", Type: "raw_material", Unit: "kg",
	})
	store.PutIngredient(&entity.Ingredient{
		ID: empaqueID, CompanyID: testCompany, Name: "Caja grande", Type: "packaging", Unit: "und",
	})

	svc := ledger.NewService(
		memory.NewTxRunner(store),
		memory.NewJournalRepository(store),
		memory.NewAccountRepository(store),
	)
	uc := inventory.NewUseCase(memory.NewTxRunner(store), svc, memory.NewIngredientRepository(store))
	return ctx, store, uc
}

func movDate() time.Time {
	return time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
}

func purchaseInput(qty, unitCost int64, reference string) inventory.PurchaseInput {
	return inventory.PurchaseInput{
		IngredientID:  harinaID,
		LocationID:    bodega,
		Quantity:      decimal.NewFromInt(qty),
		UnitCostCents: decimal.NewFromInt(unitCost),
		Date:          movDate(),
		PaidFrom:      accounting.RefCash,
		Reference:     reference,
	}
}

func TestRegisterPurchase(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)

	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	// Existencias: cantidad y costo promedio.
	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)), "cantidad %s", item.Quantity)
	assert.True(t, item.AvgCostCents.Equal(decimal.NewFromInt(500)), "costo promedio %s", item.AvgCostCents)

	// Historial: un movimiento de compra.
	movs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].Type)
	assert.Equal(t, "Compra #1", movs[0].Reference)

	// Libro mayor: asiento Dr inventario / Cr caja por 10 × 500.
	entry, err := memory.NewJournalRepository(store).GetByReference(ctx, testCompany, "Compra #1", entity.EntryTypePurchase)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(5000), entry.TotalDebitCents())
}

func TestRegisterPurchase_CostoPromedioPonderado(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)

	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 700, "Compra #2")))

	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, item.AvgCostCents.Equal(decimal.NewFromInt(600)), "costo promedio %s", item.AvgCostCents)
}

func TestRegisterPurchase_ReintentoNoDuplicaSubsidiario(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)

	// Un reintento con la misma referencia debe ser inocuo de punta a punta:
	// ni asiento, ni movimiento, ni cantidad duplicados.
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)), "cantidad %s", item.Quantity)

	movs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	entries, err := memory.NewJournalRepository(store).ListByType(ctx, testCompany, entity.EntryTypePurchase)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegisterPurchase_CantidadInvalida(t *testing.T) {
	ctx, _, uc := newInventoryFixture(t)
	in := purchaseInput(0, 500, "Compra #0")
	assert.ErrorIs(t, uc.RegisterPurchase(ctx, testCompany, in), domain.ErrInvalidInput)
}

func TestRegisterPurchase_InsumoDesconocido(t *testing.T) {
	ctx, _, uc := newInventoryFixture(t)
	in := purchaseInput(10, 500, "Compra #1")
	in.IngredientID = "ing-fantasma"
	assert.ErrorIs(t, uc.RegisterPurchase(ctx, testCompany, in), domain.ErrNotFound)
}

func TestRegisterWriteOff(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	require.NoError(t, uc.RegisterWriteOff(ctx, testCompany, inventory.WriteOffInput{
		IngredientID: harinaID,
		LocationID:   bodega,
		Quantity:     decimal.NewFromInt(4),
		Date:         movDate(),
		Reference:    "Baja #1",
		Reason:       "vencida",
	}))

	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))

	// El asiento de merma sale al costo promedio vigente: 4 × 500.
	entry, err := memory.NewJournalRepository(store).GetByReference(ctx, testCompany, "Baja #1", entity.EntryTypeWriteOff)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(2000), entry.TotalDebitCents())
}

func TestRegisterWriteOff_ReintentoNoDuplicaSubsidiario(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	baja := inventory.WriteOffInput{
		IngredientID: harinaID,
		LocationID:   bodega,
		Quantity:     decimal.NewFromInt(4),
		Date:         movDate(),
		Reference:    "Baja #1",
		Reason:       "vencida",
	}
	require.NoError(t, uc.RegisterWriteOff(ctx, testCompany, baja))
	require.NoError(t, uc.RegisterWriteOff(ctx, testCompany, baja))

	// La baja se descuenta una sola vez.
	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)), "cantidad %s", item.Quantity)

	movs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.Len(t, movs, 2) // compra + una sola baja
}

func TestRegisterWriteOff_StockInsuficiente(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	err := uc.RegisterWriteOff(ctx, testCompany, inventory.WriteOffInput{
		IngredientID: harinaID,
		LocationID:   bodega,
		Quantity:     decimal.NewFromInt(11),
		Date:         movDate(),
		Reference:    "Baja #2",
		Reason:       "derrame",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La cantidad no cambió y no hay asiento de merma.
	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestConsumeForOrder(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, inventory.PurchaseInput{
		IngredientID:  empaqueID,
		LocationID:    bodega,
		Quantity:      decimal.NewFromInt(20),
		UnitCostCents: decimal.NewFromInt(100),
		Date:          movDate(),
		PaidFrom:      accounting.RefCash,
		Reference:     "Compra #2",
	}))

	require.NoError(t, uc.ConsumeForOrder(ctx, testCompany, 7, movDate(), []inventory.Consumption{
		{IngredientID: harinaID, LocationID: bodega, Quantity: decimal.NewFromInt(4)},
		{IngredientID: empaqueID, LocationID: bodega, Quantity: decimal.NewFromInt(2)},
	}))

	// Existencias descontadas.
	items := memory.NewInventoryItemRepository(store)
	harina, err := items.Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, harina.Quantity.Equal(decimal.NewFromInt(6)))
	empaque, err := items.Get(ctx, testCompany, empaqueID, bodega)
	require.NoError(t, err)
	assert.True(t, empaque.Quantity.Equal(decimal.NewFromInt(18)))

	// Los movimientos de consumo se correlacionan con la orden.
	movs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeUsage, movs[1].Type)
	assert.Equal(t, "Order #7", movs[1].Reference)

	// Asiento de entrada a producción: Dr WIP 2200 (4×500 + 2×100).
	entry, err := memory.NewJournalRepository(store).GetByReference(ctx, testCompany, "Order #7 in prep", entity.EntryTypeOrderPrep)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(2200), entry.TotalDebitCents())
	require.GreaterOrEqual(t, len(entry.Lines), 3)
}

func TestConsumeForOrder_ReintentoNoDuplicaConsumo(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	consumos := []inventory.Consumption{
		{IngredientID: harinaID, LocationID: bodega, Quantity: decimal.NewFromInt(4)},
	}
	require.NoError(t, uc.ConsumeForOrder(ctx, testCompany, 7, movDate(), consumos))
	require.NoError(t, uc.ConsumeForOrder(ctx, testCompany, 7, movDate(), consumos))

	// El asiento de preparación ya existía: el reintento no vuelve a descontar.
	item, err := memory.NewInventoryItemRepository(store).Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)), "cantidad %s", item.Quantity)

	movs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.Len(t, movs, 2) // compra + un solo consumo
}

func TestConsumeForOrder_StockInsuficiente(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(3, 500, "Compra #1")))

	err := uc.ConsumeForOrder(ctx, testCompany, 8, movDate(), []inventory.Consumption{
		{IngredientID: harinaID, LocationID: bodega, Quantity: decimal.NewFromInt(5)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	entry, err := memory.NewJournalRepository(store).GetByReference(ctx, testCompany, "Order #8 in prep", entity.EntryTypeOrderPrep)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTransferBetweenLocations(t *testing.T) {
	ctx, store, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(10, 500, "Compra #1")))

	require.NoError(t, uc.TransferBetweenLocations(ctx, testCompany, inventory.TransferInput{
		IngredientID:   harinaID,
		FromLocationID: bodega,
		ToLocationID:   cocina,
		Quantity:       decimal.NewFromInt(4),
		Date:           movDate(),
		Reference:      "Traslado #1",
	}))

	items := memory.NewInventoryItemRepository(store)
	origin, err := items.Get(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	assert.True(t, origin.Quantity.Equal(decimal.NewFromInt(6)))
	dest, err := items.Get(ctx, testCompany, harinaID, cocina)
	require.NoError(t, err)
	assert.True(t, dest.Quantity.Equal(decimal.NewFromInt(4)))
	// El costo promedio viaja con la cantidad.
	assert.True(t, dest.AvgCostCents.Equal(decimal.NewFromInt(500)))

	// Un traslado no toca el libro mayor: la cuenta de inventario no cambia.
	entries, err := memory.NewJournalRepository(store).ListByType(ctx, testCompany, entity.EntryTypeTransfer)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Pero deja los dos movimientos espejo en el historial.
	outMovs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, bodega)
	require.NoError(t, err)
	require.Len(t, outMovs, 2)
	assert.Equal(t, entity.MovementTypeTransferOut, outMovs[1].Type)
	inMovs, err := memory.NewInventoryMovementRepository(store).ListByItem(ctx, testCompany, harinaID, cocina)
	require.NoError(t, err)
	require.Len(t, inMovs, 1)
	assert.Equal(t, entity.MovementTypeTransferIn, inMovs[0].Type)
}

func TestTransferBetweenLocations_MismaUbicacion(t *testing.T) {
	ctx, _, uc := newInventoryFixture(t)
	err := uc.TransferBetweenLocations(ctx, testCompany, inventory.TransferInput{
		IngredientID:   harinaID,
		FromLocationID: bodega,
		ToLocationID:   bodega,
		Quantity:       decimal.NewFromInt(1),
		Date:           movDate(),
		Reference:      "Traslado #2",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferBetweenLocations_StockInsuficiente(t *testing.T) {
	ctx, _, uc := newInventoryFixture(t)
	require.NoError(t, uc.RegisterPurchase(ctx, testCompany, purchaseInput(2, 500, "Compra #1")))

	err := uc.TransferBetweenLocations(ctx, testCompany, inventory.TransferInput{
		IngredientID:   harinaID,
		FromLocationID: bodega,
		ToLocationID:   cocina,
		Quantity:       decimal.NewFromInt(3),
		Date:           movDate(),
		Reference:      "Traslado #3",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
