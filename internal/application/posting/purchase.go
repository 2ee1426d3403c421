package posting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// PurchaseEvent es una compra de insumos pagada desde caja, banco o a crédito.
type PurchaseEvent struct {
	Date           time.Time
	IngredientType string
	AmountCents    int64
	PaidFrom       accounting.AccountRef // RefCash, RefBank o RefAccountsPayable
	Reference      string
	Description    string
}

// Purchase produce el asiento de una compra: débito a la cuenta de inventario
// del tipo de insumo, crédito a la cuenta pagadora.
func Purchase(ev PurchaseEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.AmountCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: monto de compra %d", domain.ErrInvalidInput, ev.AmountCents)
	}
	switch ev.PaidFrom {
	case accounting.RefCash, accounting.RefBank, accounting.RefAccountsPayable:
	default:
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: una compra se paga desde caja, banco o cuentas por pagar", domain.ErrInvalidInput)
	}
	invRef, err := accounting.InventoryRefForType(ev.IngredientType)
	if err != nil {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypePurchase,
		Reference:   ev.Reference,
		Description: ev.Description,
	}
	lines := []accounting.LineInput{
		{Account: invRef, Amount: accounting.Debit(ev.AmountCents), Description: "Compra de insumos"},
		{Account: ev.PaidFrom, Amount: accounting.Credit(ev.AmountCents), Description: "Pago de compra"},
	}
	return in, lines, nil
}

// WriteOffEvent es una baja de inventario (merma, vencimiento, daño).
type WriteOffEvent struct {
	Date           time.Time
	IngredientType string
	CostCents      int64
	Reference      string
	Description    string
}

// WriteOff produce el asiento de una baja: débito a merma y desperdicio,
// crédito a la cuenta de inventario del tipo.
func WriteOff(ev WriteOffEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.CostCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: costo de baja %d", domain.ErrInvalidInput, ev.CostCents)
	}
	invRef, err := accounting.InventoryRefForType(ev.IngredientType)
	if err != nil {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeWriteOff,
		Reference:   ev.Reference,
		Description: ev.Description,
	}
	lines := []accounting.LineInput{
		{Account: accounting.RefWasteExpense, Amount: accounting.Debit(ev.CostCents), Description: "Baja de inventario"},
		{Account: invRef, Amount: accounting.Credit(ev.CostCents), Description: "Salida de inventario"},
	}
	return in, lines, nil
}
