// Package inventory registra movimientos del inventario subsidiario junto con
// su asiento contable, en una sola transacción: caché de existencias, historial
// de movimientos y libro mayor nunca divergen por una escritura parcial.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/posting"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	domInventory "github.com/jhoicas/Contabilidad-api/internal/domain/inventory"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// UseCase registra compras, consumos, bajas y traslados de inventario.
type UseCase struct {
	txRunner       ledger.TxRunner
	ledgerSvc      *ledger.Service
	ingredientRepo repository.IngredientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, ledgerSvc *ledger.Service, ingredientRepo repository.IngredientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ledgerSvc: ledgerSvc, ingredientRepo: ingredientRepo}
}

// PurchaseInput es una compra de insumos.
type PurchaseInput struct {
	IngredientID  string
	LocationID    string
	Quantity      decimal.Decimal
	UnitCostCents decimal.Decimal
	Date          time.Time
	PaidFrom      accounting.AccountRef // RefCash, RefBank o RefAccountsPayable
	Reference     string
}

// RegisterPurchase registra una compra: bloquea la fila de existencias
// (SELECT FOR UPDATE), recalcula el costo promedio ponderado, inserta el
// movimiento y postea el asiento. Commit o Rollback como unidad.
func (uc *UseCase) RegisterPurchase(ctx context.Context, companyID string, in PurchaseInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCostCents.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	ingredient, err := uc.ingredientRepo.GetByID(ctx, companyID, in.IngredientID)
	if err != nil {
		return err
	}

	totalCost := in.Quantity.Mul(in.UnitCostCents)
	entryIn, lines, err := posting.Purchase(posting.PurchaseEvent{
		Date:           in.Date,
		IngredientType: ingredient.Type,
		AmountCents:    totalCost.Round(0).IntPart(),
		PaidFrom:       in.PaidFrom,
		Reference:      in.Reference,
		Description:    fmt.Sprintf("Compra de %s %s de %s", in.Quantity, ingredient.Unit, ingredient.Name),
	})
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error {
		// Reintento con la misma clave natural: el asiento ya quedó registrado
		// junto con su movimiento y su caché; no repetir ninguno de los tres.
		// El chequeo va antes de tocar el subsidiario, no solo dentro de
		// PostInTx, para que un reintento no duplique existencias.
		existing, err := journal.GetByReference(ctx, companyID, in.Reference, entryIn.EntryType)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		item, err := items.GetForUpdate(ctx, companyID, in.IngredientID, in.LocationID)
		if err != nil {
			return err
		}
		item.AvgCostCents = domInventory.WeightedAvgCost(item.Quantity, item.AvgCostCents, in.Quantity, in.UnitCostCents)
		item.Quantity = item.Quantity.Add(in.Quantity)
		item.UpdatedAt = now
		if err := items.Upsert(ctx, item); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			IngredientID:   in.IngredientID,
			LocationID:     in.LocationID,
			Type:           entity.MovementTypePurchase,
			Quantity:       in.Quantity,
			UnitCostCents:  in.UnitCostCents,
			TotalCostCents: totalCost,
			Date:           in.Date,
			Reference:      in.Reference,
			CreatedAt:      now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		_, err = uc.ledgerSvc.PostInTx(ctx, journal, accounts, companyID, entryIn, lines)
		return err
	})
}

// WriteOffInput es una baja de inventario (merma, daño, vencimiento).
type WriteOffInput struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
	Date         time.Time
	Reference    string
	Reason       string
}

// RegisterWriteOff da de baja existencias al costo promedio vigente y postea
// el asiento de merma.
func (uc *UseCase) RegisterWriteOff(ctx context.Context, companyID string, in WriteOffInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	ingredient, err := uc.ingredientRepo.GetByID(ctx, companyID, in.IngredientID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error {
		// Igual que en la compra: un reintento con la misma clave natural no
		// debe volver a descontar existencias ni duplicar el movimiento.
		existing, err := journal.GetByReference(ctx, companyID, in.Reference, entity.EntryTypeWriteOff)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		item, err := items.GetForUpdate(ctx, companyID, in.IngredientID, in.LocationID)
		if err != nil {
			return err
		}
		if item.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		cost := in.Quantity.Mul(item.AvgCostCents)

		item.Quantity = item.Quantity.Sub(in.Quantity)
		item.UpdatedAt = now
		if err := items.Upsert(ctx, item); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			IngredientID:   in.IngredientID,
			LocationID:     in.LocationID,
			Type:           entity.MovementTypeWriteOff,
			Quantity:       in.Quantity.Neg(),
			UnitCostCents:  item.AvgCostCents,
			TotalCostCents: cost.Neg(),
			Date:           in.Date,
			Reference:      in.Reference,
			CreatedAt:      now,
		}
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}

		entryIn, lines, err := posting.WriteOff(posting.WriteOffEvent{
			Date:           in.Date,
			IngredientType: ingredient.Type,
			CostCents:      cost.Round(0).IntPart(),
			Reference:      in.Reference,
			Description:    fmt.Sprintf("Baja de %s %s de %s: %s", in.Quantity, ingredient.Unit, ingredient.Name, in.Reason),
		})
		if err != nil {
			return err
		}
		_, err = uc.ledgerSvc.PostInTx(ctx, journal, accounts, companyID, entryIn, lines)
		return err
	})
}

// Consumption es el consumo de un insumo para una orden.
type Consumption struct {
	IngredientID string
	LocationID   string
	Quantity     decimal.Decimal
}

// ConsumeForOrder descuenta los insumos de una orden y postea el asiento de
// entrada a producción (inventario → WIP) con referencia "Order #<id> in prep".
func (uc *UseCase) ConsumeForOrder(ctx context.Context, companyID string, orderID int64, date time.Time, consumptions []Consumption) error {
	if len(consumptions) == 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error {
		// Si el asiento de preparación ya existe, la orden ya consumió sus
		// insumos: reintento, no hay nada que descontar.
		existing, err := journal.GetByReference(ctx, companyID, posting.OrderPrepRef(orderID), entity.EntryTypeOrderPrep)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		// Agrupado por tipo de insumo para las líneas del asiento.
		costByType := make(map[string]int64)
		var typeOrder []string
		for _, c := range consumptions {
			if !c.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			ingredient, err := uc.ingredientRepo.GetByID(ctx, companyID, c.IngredientID)
			if err != nil {
				return err
			}
			item, err := items.GetForUpdate(ctx, companyID, c.IngredientID, c.LocationID)
			if err != nil {
				return err
			}
			if item.Quantity.LessThan(c.Quantity) {
				return fmt.Errorf("insumo %s en %s: %w", ingredient.Name, c.LocationID, domain.ErrInsufficientStock)
			}
			cost := c.Quantity.Mul(item.AvgCostCents)

			item.Quantity = item.Quantity.Sub(c.Quantity)
			item.UpdatedAt = now
			if err := items.Upsert(ctx, item); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:             uuid.New().String(),
				CompanyID:      companyID,
				IngredientID:   c.IngredientID,
				LocationID:     c.LocationID,
				Type:           entity.MovementTypeUsage,
				Quantity:       c.Quantity.Neg(),
				UnitCostCents:  item.AvgCostCents,
				TotalCostCents: cost.Neg(),
				Date:           date,
				Reference:      posting.OrderRef(orderID),
				CreatedAt:      now,
			}
			if err := movements.Create(ctx, mov); err != nil {
				return err
			}
			if _, seen := costByType[ingredient.Type]; !seen {
				typeOrder = append(typeOrder, ingredient.Type)
			}
			costByType[ingredient.Type] += cost.Round(0).IntPart()
		}

		ev := posting.OrderPrepEvent{OrderID: orderID, Date: date}
		for _, t := range typeOrder {
			ev.Consumptions = append(ev.Consumptions, posting.Consumption{
				IngredientType: t,
				CostCents:      costByType[t],
			})
		}
		entryIn, lines, err := posting.OrderPrep(ev)
		if err != nil {
			return err
		}
		_, err = uc.ledgerSvc.PostInTx(ctx, journal, accounts, companyID, entryIn, lines)
		return err
	})
}

// TransferInput traslada existencias entre ubicaciones al costo promedio
// vigente. No genera asiento: la cuenta de inventario no cambia.
type TransferInput struct {
	IngredientID   string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	Date           time.Time
	Reference      string
}

// TransferBetweenLocations mueve cantidad de una ubicación a otra, dejando un
// movimiento de salida y uno de entrada en la misma transacción.
func (uc *UseCase) TransferBetweenLocations(ctx context.Context, companyID string, in TransferInput) error {
	if in.FromLocationID == in.ToLocationID || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		_ repository.JournalRepository,
		_ repository.AccountRepository,
		movements repository.InventoryMovementRepository,
		items repository.InventoryItemRepository,
	) error {
		origin, err := items.GetForUpdate(ctx, companyID, in.IngredientID, in.FromLocationID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		dest, err := items.GetForUpdate(ctx, companyID, in.IngredientID, in.ToLocationID)
		if err != nil {
			return err
		}

		cost := origin.AvgCostCents
		origin.Quantity = origin.Quantity.Sub(in.Quantity)
		origin.UpdatedAt = now
		dest.AvgCostCents = domInventory.WeightedAvgCost(dest.Quantity, dest.AvgCostCents, in.Quantity, cost)
		dest.Quantity = dest.Quantity.Add(in.Quantity)
		dest.UpdatedAt = now
		if err := items.Upsert(ctx, origin); err != nil {
			return err
		}
		if err := items.Upsert(ctx, dest); err != nil {
			return err
		}

		out := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			IngredientID:   in.IngredientID,
			LocationID:     in.FromLocationID,
			Type:           entity.MovementTypeTransferOut,
			Quantity:       in.Quantity.Neg(),
			UnitCostCents:  cost,
			TotalCostCents: in.Quantity.Mul(cost).Neg(),
			Date:           in.Date,
			Reference:      in.Reference,
			CreatedAt:      now,
		}
		if err := movements.Create(ctx, out); err != nil {
			return err
		}
		inMov := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			IngredientID:   in.IngredientID,
			LocationID:     in.ToLocationID,
			Type:           entity.MovementTypeTransferIn,
			Quantity:       in.Quantity,
			UnitCostCents:  cost,
			TotalCostCents: in.Quantity.Mul(cost),
			Date:           in.Date,
			Reference:      in.Reference,
			CreatedAt:      now,
		}
		return movements.Create(ctx, inMov)
	})
}
