package accounting

import "github.com/jhoicas/Contabilidad-api/internal/domain/entity"

// DefaultChart devuelve el plan de cuentas por defecto para una empresa nueva.
// Se siembra una vez; después solo se editan metadatos o se agregan cuentas.
func DefaultChart(companyID string) []*entity.Account {
	mk := func(code, name, accType string, opts ...func(*entity.Account)) *entity.Account {
		a := &entity.Account{
			CompanyID:     companyID,
			Code:          code,
			Name:          name,
			Type:          accType,
			NormalBalance: entity.NormalBalanceFor(accType),
		}
		for _, opt := range opts {
			opt(a)
		}
		return a
	}
	cash := func(a *entity.Account) { a.IsCash = true }
	cogs := func(a *entity.Account) { a.IsCOGS = true }
	inv := func(t string) func(*entity.Account) {
		return func(a *entity.Account) { a.InventoryType = t }
	}
	// Retiros del propietario: contra-patrimonio, saldo normal débito.
	contra := func(a *entity.Account) { a.NormalBalance = entity.NormalBalanceDebit }

	return []*entity.Account{
		mk("1000", "Caja", entity.AccountTypeAsset, cash),
		mk("1010", "Bancos", entity.AccountTypeAsset, cash),
		mk("1100", "Cuentas por Cobrar", entity.AccountTypeAsset),
		mk("1200", "Inventario Materia Prima", entity.AccountTypeAsset, inv("raw_material")),
		mk("1210", "Inventario Empaques", entity.AccountTypeAsset, inv("packaging")),
		mk("1300", "Producción en Proceso", entity.AccountTypeAsset),
		mk("2000", "Cuentas por Pagar", entity.AccountTypeLiability),
		mk("2100", "Depósitos de Clientes", entity.AccountTypeLiability),
		mk("3000", "Capital del Propietario", entity.AccountTypeEquity),
		mk("3100", "Retiros del Propietario", entity.AccountTypeEquity, contra),
		mk("3200", "Utilidades Retenidas", entity.AccountTypeEquity),
		mk("4000", "Ingresos por Ventas", entity.AccountTypeRevenue),
		mk("4100", "Ingresos por Servicios", entity.AccountTypeRevenue),
		mk("5000", "Costo de Ventas", entity.AccountTypeExpense, cogs),
		mk("5100", "Merma y Desperdicio", entity.AccountTypeExpense),
		mk("6000", "Gastos Operativos", entity.AccountTypeExpense),
		mk("6900", "Otros Ajustes", entity.AccountTypeExpense),
	}
}
