package accounting

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
)

// Side de una línea: débito o crédito.
type Side int

const (
	SideDebit Side = iota
	SideCredit
)

// LineAmount es un monto etiquetado: exactamente un lado, representado
// estructuralmente y no por convención de dos campos.
type LineAmount struct {
	side  Side
	cents int64
}

// Debit construye un monto al débito.
func Debit(cents int64) LineAmount { return LineAmount{side: SideDebit, cents: cents} }

// Credit construye un monto al crédito.
func Credit(cents int64) LineAmount { return LineAmount{side: SideCredit, cents: cents} }

// Cents devuelve el monto en centavos (siempre ≥ 0 si la línea es válida).
func (a LineAmount) Cents() int64 { return a.cents }

// Side devuelve el lado del monto.
func (a LineAmount) Side() Side { return a.side }

// DebitCents devuelve el monto si el lado es débito, cero en caso contrario.
func (a LineAmount) DebitCents() int64 {
	if a.side == SideDebit {
		return a.cents
	}
	return 0
}

// CreditCents devuelve el monto si el lado es crédito, cero en caso contrario.
func (a LineAmount) CreditCents() int64 {
	if a.side == SideCredit {
		return a.cents
	}
	return 0
}

// LineInput es una línea de asiento propuesta por una regla de negocio,
// referenciando la cuenta de forma tipada. AccountCode permite apuntar a una
// cuenta sin referencia tipada (transferencias entre cuentas arbitrarias).
type LineInput struct {
	Account     AccountRef
	AccountCode string
	Amount      LineAmount
	Description string
}

// Code devuelve el código de cuenta destino: el explícito si se dio, si no el
// de la referencia tipada.
func (l LineInput) Code() string {
	if l.AccountCode != "" {
		return l.AccountCode
	}
	return l.Account.Code()
}

// EntryInput son los metadatos de un asiento propuesto.
type EntryInput struct {
	Date        time.Time
	EntryType   string
	Reference   string
	Description string
}

// ValidateLines aplica los invariantes de partida doble sobre un conjunto de
// líneas propuesto:
//  1. cada línea tiene monto positivo (un solo lado, por construcción),
//  2. Σdébitos == Σcréditos,
//  3. el total es > 0.
//
// Devuelve *domain.ValidationError con el detalle por línea si falla.
func ValidateLines(reference string, lines []LineInput) error {
	var issues []domain.LineIssue

	if len(lines) < 2 {
		issues = append(issues, domain.LineIssue{
			Position: -1,
			Message:  "un asiento necesita al menos dos líneas",
		})
	}

	var totalDebit, totalCredit int64
	for i, l := range lines {
		if l.Amount.Cents() <= 0 {
			issues = append(issues, domain.LineIssue{
				Position: i,
				Message:  fmt.Sprintf("monto inválido %d: debe ser positivo", l.Amount.Cents()),
			})
			continue
		}
		totalDebit += l.Amount.DebitCents()
		totalCredit += l.Amount.CreditCents()
	}

	if totalDebit != totalCredit {
		issues = append(issues, domain.LineIssue{
			Position: -1,
			Message:  fmt.Sprintf("descuadre: débitos %d ≠ créditos %d", totalDebit, totalCredit),
		})
	} else if totalDebit == 0 {
		issues = append(issues, domain.LineIssue{
			Position: -1,
			Message:  "asiento en cero: el total debe ser mayor que cero",
		})
	}

	if len(issues) > 0 {
		return &domain.ValidationError{Reference: reference, Issues: issues}
	}
	return nil
}
