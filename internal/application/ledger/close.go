package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/posting"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Closer ejecuta el cierre anual: traslada ingresos, gastos y retiros del
// período abierto a utilidades retenidas con una sola línea de cuadre.
type Closer struct {
	svc           *Service
	journalRepo   repository.JournalRepository
	reportingRepo repository.ReportingRepository
}

// NewCloser construye el caso de uso de cierre.
func NewCloser(svc *Service, journalRepo repository.JournalRepository, reportingRepo repository.ReportingRepository) *Closer {
	return &Closer{svc: svc, journalRepo: journalRepo, reportingRepo: reportingRepo}
}

// CloseYear cierra el período abierto a la fecha dada.
//
// Como cada cierre previo dejó en cero las cuentas de resultado, el saldo
// acumulado a la fecha de cierre de cada cuenta de ingreso/gasto/retiros es
// exactamente la actividad del período abierto; no hace falta acotar el rango.
// Un segundo cierre para la misma fecha devuelve ErrAlreadyClosed sin tocar
// el libro.
func (c *Closer) CloseYear(ctx context.Context, companyID string, closeDate time.Time) (*entity.JournalEntry, error) {
	reference := posting.YearEndCloseRef(closeDate)

	existing, err := c.journalRepo.GetByReference(ctx, companyID, reference, entity.EntryTypeYearEndClose)
	if err != nil {
		return nil, fmt.Errorf("buscar cierre existente: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("cierre al %s: %w", closeDate.Format("2006-01-02"), domain.ErrAlreadyClosed)
	}
	lastClose, err := c.journalRepo.LastCloseDate(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("última fecha de cierre: %w", err)
	}
	if lastClose != nil && !closeDate.After(*lastClose) {
		return nil, fmt.Errorf("la fecha de cierre %s no es posterior al último cierre %s: %w",
			closeDate.Format("2006-01-02"), lastClose.Format("2006-01-02"), domain.ErrConflict)
	}

	totals, err := c.reportingRepo.AccountTotalsAsOf(ctx, companyID, closeDate)
	if err != nil {
		return nil, fmt.Errorf("saldos al cierre: %w", err)
	}

	var lines []accounting.LineInput
	var netIncome, drawings int64
	for _, t := range totals {
		balance := t.SignedCents()
		if balance == 0 {
			continue
		}
		switch {
		case t.Type == entity.AccountTypeRevenue:
			netIncome += balance
			lines = append(lines, closeLine(t, balance, true))
		case t.Type == entity.AccountTypeExpense:
			netIncome -= balance
			lines = append(lines, closeLine(t, balance, false))
		case t.Code == accounting.RefOwnersDrawings.Code():
			drawings += balance
			lines = append(lines, closeLine(t, balance, false))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no hay resultados ni retiros que cerrar al %s",
			domain.ErrInvalidInput, closeDate.Format("2006-01-02"))
	}

	// Línea de cuadre contra utilidades retenidas.
	if plug := netIncome - drawings; plug > 0 {
		lines = append(lines, accounting.LineInput{
			Account:     accounting.RefRetainedEarnings,
			Amount:      accounting.Credit(plug),
			Description: "Resultado del período",
		})
	} else if plug < 0 {
		lines = append(lines, accounting.LineInput{
			Account:     accounting.RefRetainedEarnings,
			Amount:      accounting.Debit(-plug),
			Description: "Resultado del período",
		})
	}

	in := accounting.EntryInput{
		Date:        closeDate,
		EntryType:   entity.EntryTypeYearEndClose,
		Reference:   reference,
		Description: fmt.Sprintf("Cierre anual al %s", closeDate.Format("2006-01-02")),
	}
	return c.svc.Post(ctx, companyID, in, lines)
}

// closeLine construye la línea que lleva a cero el saldo de una cuenta de
// resultado. creditNormal indica si la cuenta incrementa al crédito (ingresos):
// para cerrarla se hace el movimiento contrario a su saldo normal.
func closeLine(t repository.AccountTotal, balance int64, creditNormal bool) accounting.LineInput {
	debit := creditNormal == (balance > 0)
	cents := balance
	if cents < 0 {
		cents = -cents
		debit = !debit
	}
	amount := accounting.Credit(cents)
	if debit {
		amount = accounting.Debit(cents)
	}
	return accounting.LineInput{
		AccountCode: t.Code,
		Amount:      amount,
		Description: fmt.Sprintf("Cierre de %s", t.Name),
	}
}
