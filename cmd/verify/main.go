// verify corre el motor de verificación contable contra una empresa y,
// opcionalmente, aplica las reparaciones idempotentes.
//
// Uso: go run ./cmd/verify -company <id> [-repair]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/jhoicas/Contabilidad-api/internal/application/ledger"
	"github.com/jhoicas/Contabilidad-api/internal/application/reconcile"
	"github.com/jhoicas/Contabilidad-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contabilidad-api/pkg/config"
	"github.com/jhoicas/Contabilidad-api/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "id de la empresa a verificar")
	repair := flag.Bool("repair", false, "aplicar reparaciones tras verificar")
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

	accountRepo := postgres.NewAccountRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	verificationRepo := postgres.NewVerificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := reconcile.NewEngine(log, cfg.Verify.Timeout,
		reconcile.NewGlobalBalanceCheck(verificationRepo),
		reconcile.NewInventoryQuantityCheck(movementRepo, itemRepo),
		reconcile.NewInventoryCostCheck(verificationRepo, accountRepo),
		reconcile.NewWithdrawalCheck(verificationRepo, accountRepo),
		reconcile.NewDuplicateEntriesCheck(verificationRepo),
		reconcile.NewDuplicateMovementsCheck(verificationRepo),
		reconcile.NewWIPConsistencyCheck(verificationRepo, accountRepo, orderRepo),
		reconcile.NewOrderReceivablesCheck(verificationRepo, accountRepo, orderRepo),
	)

	results := engine.RunAll(ctx, *companyID)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := false
	drift := false
	for _, name := range names {
		res := results[name]
		switch {
		case res.Err != nil:
			failed = true
			fmt.Printf("✗ %s: error: %v\n", name, res.Err)
		case res.Report.Ok():
			fmt.Printf("✓ %s\n", name)
		default:
			drift = true
			fmt.Printf("! %s: %d desvíos\n", name, len(res.Report.Issues))
			for _, issue := range res.Report.Issues {
				fmt.Printf("    %s: %s\n", issue.Entity, issue.Message)
			}
		}
	}

	if *repair || cfg.Verify.Repair {
		ledgerSvc := ledger.NewService(txRunner, journalRepo, accountRepo)
		repairer := reconcile.NewRepairer(txRunner, ledgerSvc, verificationRepo, accountRepo, log)
		summary, err := repairer.RepairAll(ctx, *companyID)
		if err != nil {
			log.Fatal().Err(err).Msg("reparación falló")
		}
		fmt.Printf("reparado: %d asientos duplicados, %d movimientos duplicados, %d existencias, %d ajustes, %d líneas reclasificadas\n",
			summary.DeletedEntries, summary.DeletedMovements,
			summary.RebuiltItems, summary.AdjustmentEntries, summary.ReclassifiedLines)
	}

	if failed {
		os.Exit(1)
	}
	if drift && !*repair && !cfg.Verify.Repair {
		os.Exit(3)
	}
}
