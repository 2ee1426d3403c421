package posting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// InvestmentEvent es un aporte de capital del propietario.
type InvestmentEvent struct {
	Date        time.Time
	AmountCents int64
	ToAccount   accounting.AccountRef // RefCash o RefBank
	Reference   string
	Description string
}

// Investment produce el asiento de un aporte: débito a caja o banco, crédito
// al capital del propietario.
func Investment(ev InvestmentEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.AmountCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: monto de aporte %d", domain.ErrInvalidInput, ev.AmountCents)
	}
	if ev.ToAccount != accounting.RefCash && ev.ToAccount != accounting.RefBank {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: un aporte entra a caja o banco", domain.ErrInvalidInput)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeInvestment,
		Reference:   ev.Reference,
		Description: ev.Description,
	}
	lines := []accounting.LineInput{
		{Account: ev.ToAccount, Amount: accounting.Debit(ev.AmountCents), Description: "Aporte de capital"},
		{Account: accounting.RefOwnersEquity, Amount: accounting.Credit(ev.AmountCents), Description: "Capital del propietario"},
	}
	return in, lines, nil
}

// WithdrawalEvent es un retiro del propietario.
type WithdrawalEvent struct {
	Date        time.Time
	AmountCents int64
	FromAccount accounting.AccountRef // RefCash o RefBank
	Reference   string
	Description string
}

// Withdrawal produce el asiento de un retiro: débito a la contra-cuenta
// "Retiros del Propietario", nunca al capital principal (el motor de
// verificación audita esa regla de forma independiente).
func Withdrawal(ev WithdrawalEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.AmountCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: monto de retiro %d", domain.ErrInvalidInput, ev.AmountCents)
	}
	if ev.FromAccount != accounting.RefCash && ev.FromAccount != accounting.RefBank {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: un retiro sale de caja o banco", domain.ErrInvalidInput)
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeWithdrawal,
		Reference:   ev.Reference,
		Description: ev.Description,
	}
	lines := []accounting.LineInput{
		{Account: accounting.RefOwnersDrawings, Amount: accounting.Debit(ev.AmountCents), Description: "Retiro del propietario"},
		{Account: ev.FromAccount, Amount: accounting.Credit(ev.AmountCents), Description: "Salida de fondos"},
	}
	return in, lines, nil
}
