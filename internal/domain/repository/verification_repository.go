package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// UnbalancedEntry es un asiento cuyo total de débitos no iguala al de créditos.
type UnbalancedEntry struct {
	EntryID     int64
	Reference   string
	EntryType   string
	DebitCents  int64
	CreditCents int64
}

// DuplicateEntryGroup agrupa asientos que comparten la clave natural
// (referencia, tipo). IDs viene ordenado ascendente: el primero se conserva.
type DuplicateEntryGroup struct {
	Reference string
	EntryType string
	IDs       []int64
}

// DuplicateMovementGroup agrupa movimientos de inventario idénticos por
// (insumo, ubicación, tipo, cantidad, fecha, referencia).
type DuplicateMovementGroup struct {
	IngredientID string
	LocationID   string
	Type         string
	Quantity     decimal.Decimal
	Reference    string
	IDs          []string // uuid, ordenados por created_at ascendente
}

// MisclassifiedLine es una línea que viola una regla de clasificación, ej.
// un retiro que debita el capital principal en vez de la contra-cuenta.
type MisclassifiedLine struct {
	LineID     int64
	EntryID    int64
	Reference  string
	DebitCents int64
}

// EntryAccountTotal es el total de débitos/créditos de un asiento contra una
// cuenta concreta (usado por el chequeo de consistencia WIP).
type EntryAccountTotal struct {
	EntryID     int64
	Reference   string
	DebitCents  int64
	CreditCents int64
}

// ReferenceBalance es el saldo de una cuenta agrupado por referencia de
// asiento (usado para cuentas por cobrar por orden).
type ReferenceBalance struct {
	Reference    string
	BalanceCents int64 // débitos - créditos
}

// InventoryTypeValue es el valor contable del inventario de un tipo de insumo.
type InventoryTypeValue struct {
	InventoryType string
	ValueCents    decimal.Decimal
}

// VerificationRepository define las consultas agrupadas del motor de
// verificación. Todas son de solo lectura; las reparaciones pasan por los
// repositorios transaccionales.
type VerificationRepository interface {
	// UnbalancedEntries encuentra asientos descuadrados vía agregación agrupada,
	// excluyendo los tipos exentos (cierre anual).
	UnbalancedEntries(ctx context.Context, companyID string, exemptTypes []string) ([]UnbalancedEntry, error)
	// DuplicateEntryGroups agrupa por (referencia, tipo) y devuelve grupos con más de un asiento.
	DuplicateEntryGroups(ctx context.Context, companyID string) ([]DuplicateEntryGroup, error)
	// DuplicateMovementGroups agrupa movimientos idénticos por su clave natural.
	DuplicateMovementGroups(ctx context.Context, companyID string) ([]DuplicateMovementGroup, error)
	// LinesDebiting encuentra líneas de asientos del tipo dado que debitan la cuenta dada.
	LinesDebiting(ctx context.Context, companyID, entryType string, accountID int64) ([]MisclassifiedLine, error)
	// EntryTotalsAgainstAccount agrega débitos/créditos por asiento del tipo dado contra una cuenta.
	EntryTotalsAgainstAccount(ctx context.Context, companyID, entryType string, accountID int64) ([]EntryAccountTotal, error)
	// BalancesByReference agrega el saldo de una cuenta agrupado por referencia
	// de asiento cuya referencia empieza con el prefijo dado.
	BalancesByReference(ctx context.Context, companyID string, accountID int64, refPrefix string) ([]ReferenceBalance, error)
	// InventoryValueByType suma cantidad × costo promedio de la proyección de
	// existencias agrupada por tipo de insumo.
	InventoryValueByType(ctx context.Context, companyID string) ([]InventoryTypeValue, error)
}
