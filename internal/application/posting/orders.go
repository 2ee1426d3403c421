package posting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// Consumption es el costo de insumos de un tipo consumidos por una orden.
type Consumption struct {
	IngredientType string
	CostCents      int64
}

// OrderPrepEvent marca el inicio de producción de una orden: los insumos
// consumidos pasan de inventario a producción en proceso (WIP).
type OrderPrepEvent struct {
	OrderID      int64
	Date         time.Time
	Consumptions []Consumption
}

// OrderPrep produce el asiento de entrada a producción: débito a WIP por el
// costo total, crédito a cada cuenta de inventario consumida.
func OrderPrep(ev OrderPrepEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if len(ev.Consumptions) == 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: la orden %d no consume insumos", domain.ErrInvalidInput, ev.OrderID)
	}
	var total int64
	lines := make([]accounting.LineInput, 0, len(ev.Consumptions)+1)
	for _, c := range ev.Consumptions {
		if c.CostCents <= 0 {
			return accounting.EntryInput{}, nil, fmt.Errorf("%w: consumo con costo %d", domain.ErrInvalidInput, c.CostCents)
		}
		invRef, err := accounting.InventoryRefForType(c.IngredientType)
		if err != nil {
			return accounting.EntryInput{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		total += c.CostCents
		lines = append(lines, accounting.LineInput{
			Account:     invRef,
			Amount:      accounting.Credit(c.CostCents),
			Description: "Consumo de insumos",
		})
	}
	// La línea de WIP va primero para que el asiento se lea Dr → Cr.
	lines = append([]accounting.LineInput{{
		Account:     accounting.RefWorkInProgress,
		Amount:      accounting.Debit(total),
		Description: "Entrada a producción",
	}}, lines...)

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeOrderPrep,
		Reference:   OrderPrepRef(ev.OrderID),
		Description: fmt.Sprintf("Inicio de producción de la orden %d", ev.OrderID),
	}
	return in, lines, nil
}

// OrderDeliveredEvent marca la entrega de una orden: el costo pasa de WIP a
// costo de ventas y se reconoce el ingreso neto de cortesías.
type OrderDeliveredEvent struct {
	OrderID    int64
	Date       time.Time
	CostCents  int64 // costo acumulado en WIP
	PriceCents int64 // precio de venta
	GiftCents  int64 // porción cortesía que no genera ingreso
	CashSale   bool  // true: contraentrega en efectivo; false: por cobrar
}

// OrderDelivered produce el asiento de entrega, multilínea:
// Dr COGS / Cr WIP por el costo, y Dr caja-o-por-cobrar / Cr ingresos por el
// precio neto de cortesía. Si la orden es cortesía total no hay líneas de
// ingreso (el costo igual se reconoce).
func OrderDelivered(ev OrderDeliveredEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.CostCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: costo de entrega %d", domain.ErrInvalidInput, ev.CostCents)
	}
	if ev.GiftCents < 0 || ev.GiftCents > ev.PriceCents {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: cortesía %d fuera del precio %d", domain.ErrInvalidInput, ev.GiftCents, ev.PriceCents)
	}

	lines := []accounting.LineInput{
		{Account: accounting.RefCOGS, Amount: accounting.Debit(ev.CostCents), Description: "Costo de la orden entregada"},
		{Account: accounting.RefWorkInProgress, Amount: accounting.Credit(ev.CostCents), Description: "Salida de producción"},
	}
	if net := ev.PriceCents - ev.GiftCents; net > 0 {
		receivable := accounting.RefAccountsReceivable
		if ev.CashSale {
			receivable = accounting.RefCash
		}
		lines = append(lines,
			accounting.LineInput{Account: receivable, Amount: accounting.Debit(net), Description: "Venta de la orden"},
			accounting.LineInput{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(net), Description: "Ingreso por venta"},
		)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeOrderDelivered,
		Reference:   OrderDeliveredRef(ev.OrderID),
		Description: fmt.Sprintf("Entrega de la orden %d", ev.OrderID),
	}
	return in, lines, nil
}

// CounterSaleEvent es una venta de mostrador sin orden: sale directo de
// inventario contra efectivo.
type CounterSaleEvent struct {
	Date           time.Time
	IngredientType string
	CostCents      int64
	PriceCents     int64
	Reference      string
}

// CounterSale produce el asiento de una venta directa: Dr caja / Cr ingresos
// por el precio, Dr COGS / Cr inventario por el costo.
func CounterSale(ev CounterSaleEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.PriceCents <= 0 || ev.CostCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: venta con precio %d y costo %d", domain.ErrInvalidInput, ev.PriceCents, ev.CostCents)
	}
	invRef, err := accounting.InventoryRefForType(ev.IngredientType)
	if err != nil {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeSale,
		Reference:   ev.Reference,
		Description: "Venta de mostrador",
	}
	lines := []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(ev.PriceCents), Description: "Cobro en efectivo"},
		{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(ev.PriceCents), Description: "Ingreso por venta"},
		{Account: accounting.RefCOGS, Amount: accounting.Debit(ev.CostCents), Description: "Costo de venta"},
		{Account: invRef, Amount: accounting.Credit(ev.CostCents), Description: "Salida de inventario"},
	}
	return in, lines, nil
}
