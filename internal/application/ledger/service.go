// Package ledger implementa el núcleo del libro mayor: registro atómico de
// asientos balanceados, idempotencia por clave natural y el cierre anual.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Service es el caso de uso central del libro mayor.
//
// Todas las escrituras pasan por el TxRunner: el asiento y sus líneas se
// persisten como una unidad o no se persiste nada. El servicio no cachea
// saldos; siempre se derivan por agregación en lectura.
type Service struct {
	txRunner     TxRunner
	journalRepo  repository.JournalRepository
	accountRepo  repository.AccountRepository
	allowedTypes map[string]bool
}

// NewService construye el servicio. extraTypes registra tipos de asiento
// adicionales de la empresa (extensiones del conjunto base).
func NewService(
	txRunner TxRunner,
	journalRepo repository.JournalRepository,
	accountRepo repository.AccountRepository,
	extraTypes ...string,
) *Service {
	allowed := make(map[string]bool)
	for _, t := range entity.CoreEntryTypes() {
		allowed[t] = true
	}
	for _, t := range extraTypes {
		allowed[t] = true
	}
	return &Service{
		txRunner:     txRunner,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		allowedTypes: allowed,
	}
}

// Post valida y persiste un asiento con sus líneas de forma atómica.
//
// Idempotente sobre la clave natural (referencia, tipo): si ya existe un
// asiento con esa clave se devuelve el existente sin duplicar ni fallar.
// Ante cualquier problema de validación no se escribe nada.
func (s *Service) Post(
	ctx context.Context,
	companyID string,
	in accounting.EntryInput,
	lines []accounting.LineInput,
) (*entity.JournalEntry, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := accounting.ValidateLines(in.Reference, lines); err != nil {
		return nil, err
	}

	// Camino rápido de idempotencia: si la clave natural ya existe no hace
	// falta abrir transacción.
	existing, err := s.journalRepo.GetByReference(ctx, companyID, in.Reference, in.EntryType)
	if err != nil {
		return nil, fmt.Errorf("buscar asiento existente: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	var created *entity.JournalEntry
	err = s.txRunner.Run(ctx, func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
	) error {
		// Rechequeo dentro de la transacción: otro intento pudo persistir la
		// clave entre el camino rápido y el Begin. El índice de la clave
		// natural no es único (existen duplicados históricos), así que dos
		// transacciones estrictamente concurrentes todavía pueden cruzarse;
		// ese residuo lo detecta y recoge la reparación de duplicados.
		existing, err := journal.GetByReference(ctx, companyID, in.Reference, in.EntryType)
		if err != nil {
			return fmt.Errorf("buscar asiento existente: %w", err)
		}
		if existing != nil {
			created = existing
			return nil
		}
		entry, err := s.buildEntry(ctx, accounts, companyID, in, lines)
		if err != nil {
			return err
		}
		if err := journal.Create(ctx, entry); err != nil {
			return fmt.Errorf("persistir asiento %q: %w", in.Reference, err)
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PostInTx postea un asiento usando repositorios ya atados a la transacción
// del llamador, para operaciones que escriben asiento y movimiento de
// inventario como una sola unidad. Misma validación e idempotencia que Post.
func (s *Service) PostInTx(
	ctx context.Context,
	journal repository.JournalRepository,
	accounts repository.AccountRepository,
	companyID string,
	in accounting.EntryInput,
	lines []accounting.LineInput,
) (*entity.JournalEntry, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := accounting.ValidateLines(in.Reference, lines); err != nil {
		return nil, err
	}
	existing, err := journal.GetByReference(ctx, companyID, in.Reference, in.EntryType)
	if err != nil {
		return nil, fmt.Errorf("buscar asiento existente: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	entry, err := s.buildEntry(ctx, accounts, companyID, in, lines)
	if err != nil {
		return nil, err
	}
	if err := journal.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("persistir asiento %q: %w", in.Reference, err)
	}
	return entry, nil
}

// Update reemplaza metadatos y líneas de un asiento bajo el mismo invariante
// de cuadre (delete-then-insert, en una transacción).
func (s *Service) Update(
	ctx context.Context,
	companyID string,
	entryID int64,
	in accounting.EntryInput,
	lines []accounting.LineInput,
) (*entity.JournalEntry, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	if err := accounting.ValidateLines(in.Reference, lines); err != nil {
		return nil, err
	}

	var updated *entity.JournalEntry
	err := s.txRunner.Run(ctx, func(
		journal repository.JournalRepository,
		accounts repository.AccountRepository,
	) error {
		current, err := journal.GetByID(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		entry, err := s.buildEntry(ctx, accounts, companyID, in, lines)
		if err != nil {
			return err
		}
		entry.ID = current.ID
		entry.CreatedAt = current.CreatedAt
		for i := range entry.Lines {
			entry.Lines[i].EntryID = current.ID
		}
		if err := journal.UpdateHeader(ctx, entry); err != nil {
			return fmt.Errorf("actualizar asiento %d: %w", entryID, err)
		}
		if err := journal.ReplaceLines(ctx, current.ID, entry.Lines); err != nil {
			return fmt.Errorf("reemplazar líneas del asiento %d: %w", entryID, err)
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina el asiento y sus líneas atómicamente. El núcleo no conoce el
// estado subsidiario: revertir inventario es responsabilidad del llamador.
func (s *Service) Delete(ctx context.Context, companyID string, entryID int64) error {
	return s.txRunner.Run(ctx, func(
		journal repository.JournalRepository,
		_ repository.AccountRepository,
	) error {
		current, err := journal.GetByID(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		return journal.Delete(ctx, companyID, entryID)
	})
}

// validateInput valida los metadatos del asiento antes de tocar el almacén.
func (s *Service) validateInput(in accounting.EntryInput) error {
	var issues []domain.LineIssue
	if in.Date.IsZero() {
		issues = append(issues, domain.LineIssue{Position: -1, Message: "falta la fecha del asiento"})
	}
	if in.Reference == "" {
		issues = append(issues, domain.LineIssue{Position: -1, Message: "falta la referencia del asiento"})
	}
	if !s.allowedTypes[in.EntryType] {
		issues = append(issues, domain.LineIssue{
			Position: -1,
			Message:  fmt.Sprintf("tipo de asiento %q no permitido", in.EntryType),
		})
	}
	if len(issues) > 0 {
		return &domain.ValidationError{Reference: in.Reference, Issues: issues}
	}
	return nil
}

// buildEntry resuelve las referencias de cuenta contra el plan de la empresa
// y arma la entidad lista para persistir. Una referencia que no resuelve
// aborta el asiento completo.
func (s *Service) buildEntry(
	ctx context.Context,
	accounts repository.AccountRepository,
	companyID string,
	in accounting.EntryInput,
	lines []accounting.LineInput,
) (*entity.JournalEntry, error) {
	entry := &entity.JournalEntry{
		CompanyID:   companyID,
		Date:        in.Date,
		EntryType:   in.EntryType,
		Reference:   in.Reference,
		Description: in.Description,
		CreatedAt:   time.Now(),
		Lines:       make([]entity.JournalLine, 0, len(lines)),
	}
	for i, l := range lines {
		code := l.Code()
		account, err := accounts.GetByCode(ctx, companyID, code)
		if err != nil {
			return nil, fmt.Errorf("línea %d: cuenta %s: %w", i+1, code, err)
		}
		entry.Lines = append(entry.Lines, entity.JournalLine{
			AccountID:   account.ID,
			Position:    i,
			DebitCents:  l.Amount.DebitCents(),
			CreditCents: l.Amount.CreditCents(),
			Description: l.Description,
		})
	}
	return entry, nil
}
