// sheetctl opera el inventario desde la terminal con los mismos casos de uso que la API.
//
// Uso: sheetctl list --category Tools
//
//	sheetctl add --name Hammer --category Tools --quantity 5 --price 12.5 --status "In Stock"
//	sheetctl update 1000 --quantity 8
//	sheetctl delete 1000
//	sheetctl seed --file inventario.csv --encoding latin1
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	infrapdf "github.com/jhoicas/Inventario-sheets/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/store"
	"github.com/jhoicas/Inventario-sheets/pkg/config"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	storeDriver string
	sheetName   string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sheetctl",
		Short:        "Inventario sobre hoja de cálculo: ver, agregar, editar y eliminar ítems",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "driver de almacén (sheets|postgres|sqlite|memory); por defecto STORE_DRIVER")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "nombre de la hoja; por defecto SHEET_NAME")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs de depuración en stderr")

	rootCmd.AddCommand(
		listCommand(),
		addCommand(),
		updateCommand(),
		deleteCommand(),
		reportCommand(),
		seedCommand(),
		hashPasswordCommand(),
		versionCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// env casos de uso construidos a partir de la configuración y los flags globales.
type env struct {
	uc     *appinventory.InventoryUseCase
	syncer *appinventory.ReplaceAllSyncer
	close  func()
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(config.WithStoreDriver(storeDriver), config.WithSheetName(sheetName))
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})

	sheetStore, closeFn, err := store.Open(ctx, cfg, log.Component("store"))
	if err != nil {
		return nil, err
	}
	invLog := log.Component("inventory")
	loader := appinventory.NewCachedLoader(sheetStore, cfg.Store.SheetName, cfg.Store.CacheTTL, invLog)
	syncer := appinventory.NewReplaceAllSyncer(sheetStore, cfg.Store.SheetName, invLog)
	return &env{
		uc:     appinventory.NewInventoryUseCase(loader, syncer, infrapdf.NewMarotoReportGenerator(), invLog),
		syncer: syncer,
		close:  closeFn,
	}, nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetctl %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
		},
	}
}
