package accounting_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/accounting"
)

func TestLineAmount_UnSoloLado(t *testing.T) {
	// Un monto al débito no aporta nada al crédito, y viceversa.
	d := accounting.Debit(5000)
	assert.Equal(t, int64(5000), d.DebitCents())
	assert.Equal(t, int64(0), d.CreditCents())
	assert.Equal(t, accounting.SideDebit, d.Side())

	c := accounting.Credit(5000)
	assert.Equal(t, int64(0), c.DebitCents())
	assert.Equal(t, int64(5000), c.CreditCents())
	assert.Equal(t, accounting.SideCredit, c.Side())
}

func TestLineInput_CodigoExplicitoGana(t *testing.T) {
	l := accounting.LineInput{Account: accounting.RefCash, AccountCode: "1010"}
	assert.Equal(t, "1010", l.Code(), "el código explícito tiene prioridad sobre la referencia tipada")

	l = accounting.LineInput{Account: accounting.RefCash}
	assert.Equal(t, "1000", l.Code())
}

func TestValidateLines_AsientoCuadrado(t *testing.T) {
	lines := []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(10000)},
		{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(10000)},
	}
	assert.NoError(t, accounting.ValidateLines("Venta #1", lines))
}

func TestValidateLines_Descuadre(t *testing.T) {
	lines := []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(10000)},
		{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(9000)},
	}
	err := accounting.ValidateLines("Venta #2", lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Venta #2", vErr.Reference)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, -1, vErr.Issues[0].Position, "el descuadre es un problema del asiento completo")
}

func TestValidateLines_MenosDeDosLineas(t *testing.T) {
	err := accounting.ValidateLines("Solo #1", []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(100)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateLines_MontoNoPositivo(t *testing.T) {
	lines := []accounting.LineInput{
		{Account: accounting.RefCash, Amount: accounting.Debit(0)},
		{Account: accounting.RefSalesRevenue, Amount: accounting.Credit(0)},
	}
	err := accounting.ValidateLines("Cero #1", lines)
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	// Cada línea inválida se reporta en su posición.
	positions := make([]int, 0, len(vErr.Issues))
	for _, issue := range vErr.Issues {
		positions = append(positions, issue.Position)
	}
	assert.Contains(t, positions, 0)
	assert.Contains(t, positions, 1)
}

func TestValidateLines_TotalCeroSinLineasInvalidas(t *testing.T) {
	// Cuadra (0 == 0) pero no mueve nada: también se rechaza.
	err := accounting.ValidateLines("Vacío #1", []accounting.LineInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
