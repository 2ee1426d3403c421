package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/posting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Contabilidad-api/pkg/money"
)

// WIPConsistencyCheck verifica que toda orden con asiento de entrada a
// producción tenga su asiento de entrega con igual monto contra WIP, o que la
// orden genuinamente siga en preparación.
type WIPConsistencyCheck struct {
	verification repository.VerificationRepository
	accounts     repository.AccountRepository
	orders       repository.OrderRepository
}

// NewWIPConsistencyCheck construye la verificación de producción en proceso.
func NewWIPConsistencyCheck(
	verification repository.VerificationRepository,
	accounts repository.AccountRepository,
	orders repository.OrderRepository,
) *WIPConsistencyCheck {
	return &WIPConsistencyCheck{verification: verification, accounts: accounts, orders: orders}
}

func (c *WIPConsistencyCheck) Name() string { return "wip_orders" }

func (c *WIPConsistencyCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	wip, err := c.accounts.GetByCode(ctx, companyID, accounting.RefWorkInProgress.Code())
	if err != nil {
		return nil, err
	}
	preps, err := c.verification.EntryTotalsAgainstAccount(ctx, companyID, entity.EntryTypeOrderPrep, wip.ID)
	if err != nil {
		return nil, fmt.Errorf("entradas a producción: %w", err)
	}
	deliveries, err := c.verification.EntryTotalsAgainstAccount(ctx, companyID, entity.EntryTypeOrderDelivered, wip.ID)
	if err != nil {
		return nil, fmt.Errorf("entregas: %w", err)
	}

	deliveredByOrder := make(map[int64]int64, len(deliveries))
	for _, d := range deliveries {
		if orderID, ok := posting.ParseOrderID(d.Reference); ok {
			deliveredByOrder[orderID] += d.CreditCents
		}
	}

	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, p := range preps {
		orderID, ok := posting.ParseOrderID(p.Reference)
		if !ok {
			report.Issues = append(report.Issues, Issue{
				Entity:  fmt.Sprintf("asiento %q", p.Reference),
				Message: "referencia de entrada a producción fuera de convención",
			})
			continue
		}
		delivered := deliveredByOrder[orderID]
		if delivered == p.DebitCents {
			continue
		}
		order, err := c.orders.GetByID(ctx, companyID, orderID)
		if err != nil {
			return nil, err
		}
		if delivered == 0 && order != nil && order.Status == entity.OrderStatusInPrep {
			// Sigue legítimamente en preparación.
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Entity: fmt.Sprintf("orden %d", orderID),
			Message: fmt.Sprintf("entrada a producción por %s sin entrega equivalente (entregado %s)",
				money.FormatCents(p.DebitCents), money.FormatCents(delivered)),
		})
	}
	return report, nil
}

// OrderReceivablesCheck deriva el saldo por cobrar esperado de cada orden
// desde su estado y pagos, y lo compara con el saldo contable por orden
// (agrupando las líneas de cuentas por cobrar por referencia "Order #<id>").
type OrderReceivablesCheck struct {
	verification repository.VerificationRepository
	accounts     repository.AccountRepository
	orders       repository.OrderRepository
}

// NewOrderReceivablesCheck construye la verificación de cartera por orden.
func NewOrderReceivablesCheck(
	verification repository.VerificationRepository,
	accounts repository.AccountRepository,
	orders repository.OrderRepository,
) *OrderReceivablesCheck {
	return &OrderReceivablesCheck{verification: verification, accounts: accounts, orders: orders}
}

func (c *OrderReceivablesCheck) Name() string { return "order_receivables" }

func (c *OrderReceivablesCheck) Run(ctx context.Context, companyID string) (*Report, error) {
	receivable, err := c.accounts.GetByCode(ctx, companyID, accounting.RefAccountsReceivable.Code())
	if err != nil {
		return nil, err
	}
	balances, err := c.verification.BalancesByReference(ctx, companyID, receivable.ID, "Order #")
	if err != nil {
		return nil, fmt.Errorf("cartera por orden: %w", err)
	}
	glByOrder := make(map[int64]int64, len(balances))
	for _, b := range balances {
		if orderID, ok := posting.ParseOrderID(b.Reference); ok {
			glByOrder[orderID] += b.BalanceCents
		}
	}

	orders, err := c.orders.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}

	report := &Report{Check: c.Name(), CheckedAt: time.Now()}
	for _, order := range orders {
		expected := order.ExpectedReceivableCents()
		got := glByOrder[order.ID]
		delete(glByOrder, order.ID)
		if expected != got {
			report.Issues = append(report.Issues, Issue{
				Entity: fmt.Sprintf("orden %d", order.ID),
				Message: fmt.Sprintf("saldo por cobrar contable %s difiere del esperado %s (delta %s)",
					money.FormatCents(got), money.FormatCents(expected), money.FormatCents(got-expected)),
			})
		}
	}
	// Saldos contables de órdenes que no existen en el dominio.
	for orderID, got := range glByOrder {
		if got != 0 {
			report.Issues = append(report.Issues, Issue{
				Entity:  fmt.Sprintf("orden %d", orderID),
				Message: fmt.Sprintf("saldo por cobrar %s de una orden inexistente", money.FormatCents(got)),
			})
		}
	}
	return report, nil
}
