package entity

import "time"

// Tipos de asiento del núcleo. Las empresas pueden registrar tipos adicionales
// al construir el servicio de libro mayor.
const (
	EntryTypePurchase       = "purchase"
	EntryTypeSale           = "sale"
	EntryTypeTransfer       = "transfer"
	EntryTypeInvestment     = "investment"
	EntryTypeWithdrawal     = "withdrawal"
	EntryTypeWriteOff       = "write_off"
	EntryTypeYearEndClose   = "year_end_close"
	EntryTypeReconciliation = "reconciliation_adjustment"
	EntryTypeOrderPrep      = "order_prep"
	EntryTypeOrderDelivered = "order_delivered"
	EntryTypeBookingAdvance = "booking_advance"
	EntryTypeBookingClosed  = "booking_completed"
)

// CoreEntryTypes devuelve el conjunto base de tipos de asiento permitidos.
func CoreEntryTypes() []string {
	return []string{
		EntryTypePurchase, EntryTypeSale, EntryTypeTransfer,
		EntryTypeInvestment, EntryTypeWithdrawal, EntryTypeWriteOff,
		EntryTypeYearEndClose, EntryTypeReconciliation,
		EntryTypeOrderPrep, EntryTypeOrderDelivered,
		EntryTypeBookingAdvance, EntryTypeBookingClosed,
	}
}

// JournalEntry es una transacción financiera atómica: fecha, tipo, referencia
// de correlación (clave de idempotencia) y líneas ordenadas.
// Invariante: Σdébitos == Σcréditos y el total es > 0.
// Inmutable tras su creación salvo por el motor de conciliación.
type JournalEntry struct {
	ID          int64
	CompanyID   string
	Date        time.Time
	EntryType   string
	Reference   string
	Description string
	CreatedAt   time.Time
	Lines       []JournalLine
}

// TotalDebitCents suma los débitos de todas las líneas.
func (e *JournalEntry) TotalDebitCents() int64 {
	var total int64
	for _, l := range e.Lines {
		total += l.DebitCents
	}
	return total
}

// TotalCreditCents suma los créditos de todas las líneas.
func (e *JournalEntry) TotalCreditCents() int64 {
	var total int64
	for _, l := range e.Lines {
		total += l.CreditCents
	}
	return total
}

// JournalLine es un débito o crédito a una sola cuenta dentro de un asiento.
// Exactamente uno de DebitCents/CreditCents debe ser distinto de cero.
type JournalLine struct {
	ID          int64
	EntryID     int64
	AccountID   int64
	Position    int
	DebitCents  int64
	CreditCents int64
	Description string
}
