// Package accounting contiene el vocabulario contable del dominio: referencias
// tipadas al plan de cuentas, el plan por defecto y la validación del
// invariante de partida doble.
package accounting

import (
	"fmt"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// AccountRef es una referencia tipada a una cuenta del plan contable.
// Las reglas de asiento usan estas constantes en vez de códigos sueltos:
// un código mal escrito falla en el arranque contra el plan sembrado,
// no en runtime contra una cuenta fantasma.
type AccountRef int

const (
	RefCash AccountRef = iota
	RefBank
	RefAccountsReceivable
	RefInventoryRawMaterial
	RefInventoryPackaging
	RefWorkInProgress
	RefAccountsPayable
	RefCustomerDeposits
	RefOwnersEquity
	RefOwnersDrawings
	RefRetainedEarnings
	RefSalesRevenue
	RefServiceRevenue
	RefCOGS
	RefWasteExpense
	RefOperatingExpense
	RefOtherAdjustments
)

// refCodes es el único lugar donde una referencia se traduce a código.
var refCodes = map[AccountRef]string{
	RefCash:                 "1000",
	RefBank:                 "1010",
	RefAccountsReceivable:   "1100",
	RefInventoryRawMaterial: "1200",
	RefInventoryPackaging:   "1210",
	RefWorkInProgress:       "1300",
	RefAccountsPayable:      "2000",
	RefCustomerDeposits:     "2100",
	RefOwnersEquity:         "3000",
	RefOwnersDrawings:       "3100",
	RefRetainedEarnings:     "3200",
	RefSalesRevenue:         "4000",
	RefServiceRevenue:       "4100",
	RefCOGS:                 "5000",
	RefWasteExpense:         "5100",
	RefOperatingExpense:     "6000",
	RefOtherAdjustments:     "6900",
}

// Code devuelve el código de la cuenta referenciada.
func (r AccountRef) Code() string {
	return refCodes[r]
}

// AllRefs devuelve todas las referencias conocidas, para validarlas contra el
// plan sembrado en el arranque.
func AllRefs() []AccountRef {
	refs := make([]AccountRef, 0, len(refCodes))
	for r := range refCodes {
		refs = append(refs, r)
	}
	return refs
}

// InventoryRefForType devuelve la cuenta de inventario que corresponde a un
// tipo de insumo.
func InventoryRefForType(ingredientType string) (AccountRef, error) {
	switch ingredientType {
	case "raw_material":
		return RefInventoryRawMaterial, nil
	case "packaging":
		return RefInventoryPackaging, nil
	default:
		return 0, fmt.Errorf("tipo de insumo %q sin cuenta de inventario asociada", ingredientType)
	}
}

// VerifyChart comprueba que cada referencia tipada resuelve a una cuenta del
// plan dado. Se llama en el arranque con el plan sembrado de la empresa.
func VerifyChart(accounts []*entity.Account) error {
	byCode := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = true
	}
	for ref, code := range refCodes {
		if !byCode[code] {
			return fmt.Errorf("plan de cuentas incompleto: falta la cuenta %s (ref %d)", code, ref)
		}
	}
	return nil
}
