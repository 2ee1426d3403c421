// seed_chart siembra el plan de cuentas por defecto para una empresa y
// verifica que toda referencia tipada resuelve contra el plan sembrado.
//
// Uso: go run ./cmd/seed_chart -company <id>
// Idempotente: si la empresa ya tiene cuentas, solo verifica el plan existente.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Contabilidad-api/internal/application/accounts"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contabilidad-api/pkg/config"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "id de la empresa a sembrar")
	flag.Parse()
	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "falta -company")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	registry := accounts.NewRegistry(postgres.NewAccountRepository(pool))
	if err := registry.Seed(ctx, *companyID); err != nil {
		log.Fatal().Err(err).Str("company", *companyID).Msg("sembrar plan de cuentas")
	}

	chart, err := registry.List(ctx, *companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("listar plan de cuentas")
	}
	log.Info().Str("company", *companyID).Int("accounts", len(chart)).Msg("plan de cuentas listo")
	for _, a := range chart {
		fmt.Printf("%s  %-30s %s\n", a.Code, a.Name, a.Type)
	}
}
