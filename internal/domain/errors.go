package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrAccountNotFound   = errors.New("cuenta contable no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrAlreadyClosed     = errors.New("el período ya fue cerrado en esa fecha")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// LineIssue describe el problema de una línea concreta dentro de un asiento rechazado.
// Position -1 indica un problema del asiento completo (ej. descuadre débito/crédito).
type LineIssue struct {
	Position int
	Message  string
}

// ValidationError agrupa los problemas encontrados al validar un asiento antes de escribir.
// El asiento se rechaza completo; ninguna línea se persiste.
type ValidationError struct {
	Reference string
	Issues    []LineIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("asiento %q inválido", e.Reference)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Position >= 0 {
			parts = append(parts, fmt.Sprintf("línea %d: %s", issue.Position+1, issue.Message))
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("asiento %q inválido: %s", e.Reference, strings.Join(parts, "; "))
}

// Is permite detectar errores de validación con errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
