// Package posting contiene las reglas de asiento: funciones puras que
// traducen eventos de negocio en conjuntos de líneas balanceados.
// Ninguna regla escribe; el servicio de libro mayor las postea con
// idempotencia sobre (referencia, tipo).
package posting

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Convención de referencias: "<Entidad> #<id> <evento>". Es un contrato de
// integración (clave de idempotencia y de correlación cruzada); el formato se
// preserva exactamente.

// OrderRef devuelve la referencia base de una orden: "Order #<id>".
func OrderRef(orderID int64) string {
	return fmt.Sprintf("Order #%d", orderID)
}

// OrderPrepRef referencia del asiento de entrada a producción.
func OrderPrepRef(orderID int64) string {
	return fmt.Sprintf("Order #%d in prep", orderID)
}

// OrderDeliveredRef referencia del asiento de entrega.
func OrderDeliveredRef(orderID int64) string {
	return fmt.Sprintf("Order #%d delivered", orderID)
}

// BookingAdvanceRef referencia del anticipo de una reserva.
func BookingAdvanceRef(bookingID int64) string {
	return fmt.Sprintf("Booking #%d advance", bookingID)
}

// BookingCompletedRef referencia del cierre de una reserva.
func BookingCompletedRef(bookingID int64) string {
	return fmt.Sprintf("Booking #%d completed", bookingID)
}

// YearEndCloseRef referencia del cierre anual a una fecha.
func YearEndCloseRef(closeDate time.Time) string {
	return fmt.Sprintf("Cierre anual %s", closeDate.Format("2006-01-02"))
}

// ParseOrderID extrae el id de orden de una referencia "Order #<id> ...".
// Devuelve false si la referencia no sigue la convención.
func ParseOrderID(reference string) (int64, bool) {
	rest, ok := strings.CutPrefix(reference, "Order #")
	if !ok {
		return 0, false
	}
	digits := rest
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		digits = rest[:i]
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
