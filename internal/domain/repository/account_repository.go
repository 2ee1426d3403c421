package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia del plan de cuentas.
// Lecturas puras; las cuentas se siembran una vez y rara vez se agregan.
type AccountRepository interface {
	// GetByCode busca por código exacto. Devuelve domain.ErrAccountNotFound si no existe.
	GetByCode(ctx context.Context, companyID, code string) (*entity.Account, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	List(ctx context.Context, companyID string) ([]*entity.Account, error)
	ListByType(ctx context.Context, companyID, accountType string) ([]*entity.Account, error)
	Create(ctx context.Context, account *entity.Account) error
	// UpdateMetadata edita nombre y flags; el código y el tipo no cambian una vez referenciada.
	UpdateMetadata(ctx context.Context, account *entity.Account) error
	// SumAsOf devuelve Σdébitos y Σcréditos de la cuenta sobre asientos con fecha ≤ asOf.
	SumAsOf(ctx context.Context, accountID int64, asOf time.Time) (debitCents, creditCents int64, err error)
}
