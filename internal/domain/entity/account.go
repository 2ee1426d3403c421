package entity

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeRevenue   = "revenue"
	AccountTypeExpense   = "expense"
)

// Saldo normal de una cuenta: el lado que la incrementa.
const (
	NormalBalanceDebit  = "debit"
	NormalBalanceCredit = "credit"
)

// Account es una cuenta del plan contable de una empresa.
// El código es único por empresa; las reglas de asiento la referencian por código.
// Una vez referenciada por líneas solo se editan sus metadatos (nombre, flags).
type Account struct {
	ID            int64
	CompanyID     string
	Code          string
	Name          string
	Type          string
	NormalBalance string
	IsCash        bool   // participa en el flujo de caja
	IsCOGS        bool   // gasto de costo de ventas (COGS)
	InventoryType string // vacío salvo cuentas de inventario por tipo de insumo
}

// NormalBalanceFor devuelve el saldo normal según el tipo de cuenta.
func NormalBalanceFor(accountType string) string {
	switch accountType {
	case AccountTypeAsset, AccountTypeExpense:
		return NormalBalanceDebit
	default:
		return NormalBalanceCredit
	}
}

// SignedBalance convierte sumas de débitos y créditos en saldo con signo
// según el saldo normal de la cuenta.
func (a *Account) SignedBalance(debitCents, creditCents int64) int64 {
	if a.NormalBalance == NormalBalanceCredit {
		return creditCents - debitCents
	}
	return debitCents - creditCents
}
