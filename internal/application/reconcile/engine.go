// Package reconcile implementa el motor de verificación y reparación: cruza
// el libro mayor contra los registros subsidiarios (inventario, órdenes),
// detecta desvíos y postea o aplica correcciones idempotentes.
package reconcile

import (
	"context"
	"time"

	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

// DefaultTimeout acota la corrida completa de verificaciones.
const DefaultTimeout = 30 * time.Second

// Issue es un desvío encontrado por una verificación. Encontrar desvíos es un
// resultado normal de verificar, no un error del motor.
type Issue struct {
	Entity  string // identificador legible: asiento, insumo, orden
	Message string // detalle con montos en formato de moneda
}

// Report es el resultado de una verificación que pudo ejecutarse.
type Report struct {
	Check     string
	Issues    []Issue
	CheckedAt time.Time
}

// Ok indica que la verificación no encontró desvíos.
func (r *Report) Ok() bool { return len(r.Issues) == 0 }

// Result es la salida de una verificación: reporte o error de ejecución.
type Result struct {
	Report *Report
	Err    error
}

// Check es una verificación independiente del motor.
type Check interface {
	Name() string
	Run(ctx context.Context, companyID string) (*Report, error)
}

// Engine ejecuta las verificaciones concurrentemente, acotadas por un
// timeout. La falla de una verificación nunca bloquea a las demás.
type Engine struct {
	checks  []Check
	timeout time.Duration
	log     *logger.Logger
}

// NewEngine construye el motor. timeout ≤ 0 usa DefaultTimeout.
func NewEngine(log *logger.Logger, timeout time.Duration, checks ...Check) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{checks: checks, timeout: timeout, log: log}
}

// RunAll lanza todas las verificaciones en paralelo y recoge los resultados
// en un mapa nombre → resultado.
func (e *Engine) RunAll(ctx context.Context, companyID string) map[string]Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type named struct {
		name   string
		result Result
	}
	ch := make(chan named, len(e.checks))
	for _, check := range e.checks {
		go func(c Check) {
			report, err := c.Run(ctx, companyID)
			ch <- named{name: c.Name(), result: Result{Report: report, Err: err}}
		}(check)
	}

	results := make(map[string]Result, len(e.checks))
	for range e.checks {
		n := <-ch
		results[n.name] = n.result
		switch {
		case n.result.Err != nil:
			e.log.Error().Err(n.result.Err).Str("check", n.name).Msg("verificación falló")
		case !n.result.Report.Ok():
			e.log.Warn().Str("check", n.name).Int("issues", len(n.result.Report.Issues)).Msg("desvíos encontrados")
		default:
			e.log.Debug().Str("check", n.name).Msg("verificación en orden")
		}
	}
	return results
}
