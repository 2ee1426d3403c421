package posting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// BookingAdvanceEvent es el anticipo cobrado al crear una reserva.
type BookingAdvanceEvent struct {
	BookingID    int64
	Date         time.Time
	AdvanceCents int64
}

// BookingAdvance produce el asiento del anticipo: débito a caja, crédito al
// pasivo de depósitos de clientes. El ingreso no se reconoce todavía.
func BookingAdvance(ev BookingAdvanceEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.AdvanceCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: anticipo %d", domain.ErrInvalidInput, ev.AdvanceCents)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeBookingAdvance,
		Reference:   BookingAdvanceRef(ev.BookingID),
		Description: fmt.Sprintf("Anticipo de la reserva %d", ev.BookingID),
	}
	lines := []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(ev.AdvanceCents), Description: "Anticipo recibido"},
		{Account: accounting.RefCustomerDeposits, Amount: accounting.Credit(ev.AdvanceCents), Description: "Depósito de cliente"},
	}
	return in, lines, nil
}

// BookingCompletedEvent es la prestación del servicio reservado: se reconoce
// el ingreso total, se consume el anticipo y el remanente queda por cobrar.
type BookingCompletedEvent struct {
	BookingID    int64
	Date         time.Time
	TotalCents   int64
	AdvanceCents int64
}

// BookingCompleted produce el asiento de cierre de la reserva: débito al
// depósito por el anticipo, débito a cuentas por cobrar por el remanente,
// crédito a ingresos por servicios por el total.
func BookingCompleted(ev BookingCompletedEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.TotalCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: total de reserva %d", domain.ErrInvalidInput, ev.TotalCents)
	}
	if ev.AdvanceCents < 0 || ev.AdvanceCents > ev.TotalCents {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: anticipo %d fuera del total %d", domain.ErrInvalidInput, ev.AdvanceCents, ev.TotalCents)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeBookingClosed,
		Reference:   BookingCompletedRef(ev.BookingID),
		Description: fmt.Sprintf("Cierre de la reserva %d", ev.BookingID),
	}
	var lines []accounting.LineInput
	if ev.AdvanceCents > 0 {
		lines = append(lines, accounting.LineInput{
			Account:     accounting.RefCustomerDeposits,
			Amount:      accounting.Debit(ev.AdvanceCents),
			Description: "Aplicación del anticipo",
		})
	}
	if pending := ev.TotalCents - ev.AdvanceCents; pending > 0 {
		lines = append(lines, accounting.LineInput{
			Account:     accounting.RefAccountsReceivable,
			Amount:      accounting.Debit(pending),
			Description: "Saldo por cobrar de la reserva",
		})
	}
	lines = append(lines, accounting.LineInput{
		Account:     accounting.RefServiceRevenue,
		Amount:      accounting.Credit(ev.TotalCents),
		Description: "Ingreso por servicio",
	})
	return in, lines, nil
}
