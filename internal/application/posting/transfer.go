package posting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// TransferEvent mueve fondos entre dos cuentas de balance (activo o pasivo),
// ej. de caja a banco o un abono a cuentas por pagar.
type TransferEvent struct {
	Date        time.Time
	From        *entity.Account
	To          *entity.Account
	AmountCents int64
	Reference   string
	Description string
}

// Transfer produce el asiento de una transferencia: débito al destino,
// crédito al origen. Rechaza transferencias a la misma cuenta y cuentas que
// no sean de activo o pasivo.
func Transfer(ev TransferEvent) (accounting.EntryInput, []accounting.LineInput, error) {
	if ev.From == nil || ev.To == nil {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: faltan cuentas de la transferencia", domain.ErrInvalidInput)
	}
	if ev.AmountCents <= 0 {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: monto de transferencia %d", domain.ErrInvalidInput, ev.AmountCents)
	}
	if ev.From.Code == ev.To.Code {
		return accounting.EntryInput{}, nil, fmt.Errorf("%w: transferencia a la misma cuenta %s", domain.ErrInvalidInput, ev.From.Code)
	}
	for _, a := range []*entity.Account{ev.From, ev.To} {
		if a.Type != entity.AccountTypeAsset && a.Type != entity.AccountTypeLiability {
			return accounting.EntryInput{}, nil, fmt.Errorf(
				"%w: la cuenta %s (%s) no admite transferencias", domain.ErrInvalidInput, a.Code, a.Type)
		}
	}

	in := accounting.EntryInput{
		Date:        ev.Date,
		EntryType:   entity.EntryTypeTransfer,
		Reference:   ev.Reference,
		Description: ev.Description,
	}
	lines := []accounting.LineInput{
		{AccountCode: ev.To.Code, Amount: accounting.Debit(ev.AmountCents), Description: fmt.Sprintf("Transferencia desde %s", ev.From.Name)},
		{AccountCode: ev.From.Code, Amount: accounting.Credit(ev.AmountCents), Description: fmt.Sprintf("Transferencia hacia %s", ev.To.Name)},
	}
	return in, lines, nil
}
