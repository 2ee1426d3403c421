// Package money formatea montos en centavos para mensajes al usuario.
// El núcleo contable opera solo con centavos enteros; aquí se convierte a
// moneda legible (es-CO) para los reportes de verificación.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatCents devuelve el monto con separador de miles y dos decimales,
// ej. 1234567 → "$ 12.345,67".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return printer.Sprintf("%s$ %v,%02d", sign, number.Decimal(cents/100), cents%100)
}

// FormatDecimalCents formatea un monto decimal en centavos redondeado al centavo.
func FormatDecimalCents(cents decimal.Decimal) string {
	return FormatCents(cents.Round(0).IntPart())
}
