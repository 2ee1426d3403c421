package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/money"
)

// costToleranceCents es la tolerancia entre el valor del inventario subsidiario
// y el saldo de su cuenta contable: los redondeos del costo promedio acumulan
// diferencias de centavos que no ameritan corrección.
const costToleranceCents = 100

// InventoryQuantityCheck recalcula la cantidad de cada (insumo, ubicación)
// desde el historial completo de movimientos y la compara contra la caché.
type InventoryQuantityCheck struct {
	movements repository.InventoryMovementRepository
	items     repository.InventoryItemRepository
}

// NewInventoryQuantityCheck construye la verificación de cantidades.
func NewInventoryQuantityCheck(
	movements repository.InventoryMovementRepository,
	items repository.InventoryItemRepository,
) *InventoryQuantityCheck {
	return &InventoryQuantityCheck{movements: movements, items: items}
}

func (c *InventoryQuantityCheck) Name() string { return "inventory_quantity" }

// Run compara cantidad recalculada contra cantidad cacheada. Los movimientos
// son la fuente de verdad; la caché debe poder reproducirse siempre.
func (c *InventoryQuantityCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	recomputed, err := c.movements.QuantityTotals(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("recalcular cantidades: %w", err)
	}
	cached, err := c.items.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar existencias: %w", err)
	}

	type key struct{ ingredient, location string }
	cachedQty := make(map[key]decimal.Decimal, len(cached))
	for _, item := range cached {
		cachedQty[key{item.IngredientID, item.LocationID}] = item.Quantity
	}

	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	seen := make(map[key]bool, len(recomputed))
	for _, r := range recomputed {
		k := key{r.IngredientID, r.LocationID}
		seen[k] = true
		have := cachedQty[k]
		if !have.Equal(r.Quantity) {
			report.Issues = append(report.Issues, Issue{
				Entity: fmt.Sprintf("insumo %s en %s", r.IngredientID, r.LocationID),
				Message: fmt.Sprintf("cantidad cacheada %s difiere de la recalculada %s (delta %s)",
					have, r.Quantity, have.Sub(r.Quantity)),
			})
		}
	}
	// Existencias cacheadas sin ningún movimiento que las respalde.
	for _, item := range cached {
		k := key{item.IngredientID, item.LocationID}
		if !seen[k] && !item.Quantity.IsZero() {
			report.Issues = append(report.Issues, Issue{
				Entity:  fmt.Sprintf("insumo %s en %s", item.IngredientID, item.LocationID),
				Message: fmt.Sprintf("cantidad cacheada %s sin movimientos que la respalden", item.Quantity),
			})
		}
	}
	return report, nil
}

// InventoryCostCheck compara el valor del inventario (Σ cantidad × costo
// promedio) por tipo de insumo contra el saldo de su cuenta contable.
type InventoryCostCheck struct {
	verification repository.VerificationRepository
	accounts     repository.AccountRepository
}

// NewInventoryCostCheck construye la verificación de valor de inventario.
func NewInventoryCostCheck(
	verification repository.VerificationRepository,
	accounts repository.AccountRepository,
) *InventoryCostCheck {
	return &InventoryCostCheck{verification: verification, accounts: accounts}
}

func (c *InventoryCostCheck) Name() string { return "inventory_cost" }

// Run compara por tipo con tolerancia de 100 centavos.
func (c *InventoryCostCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	values, err := c.verification.InventoryValueByType(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("valor del inventario: %w", err)
	}
	valueByType := make(map[string]decimal.Decimal, len(values))
	for _, v := range values {
		valueByType[v.InventoryType] = v.ValueCents
	}

	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	now := time.Now()
	for _, ref := range []accounting.AccountRef{accounting.RefInventoryRawMaterial, accounting.RefInventoryPackaging} {
		account, err := c.accounts.GetByCode(ctx, companyID, ref.Code())
		if err != nil {
			return nil, err
		}
		debit, credit, err := c.accounts.SumAsOf(ctx, account.ID, now)
		if err != nil {
			return nil, err
		}
		glBalance := account.SignedBalance(debit, credit)
		subsidiary := valueByType[account.InventoryType].Round(0).IntPart()

		if delta := glBalance - subsidiary; delta > costToleranceCents || delta < -costToleranceCents {
			report.Issues = append(report.Issues, Issue{
				Entity: fmt.Sprintf("cuenta %s (%s)", account.Code, account.Name),
				Message: fmt.Sprintf("saldo contable %s difiere del valor subsidiario %s (delta %s)",
					money.FormatCents(glBalance), money.FormatCents(subsidiary), money.FormatCents(delta)),
			})
		}
	}
	return report, nil
}
