package main

import (
	"context"
	"os"

	"solar-proposal/internal/store"

	"github.com/spf13/cobra"
)

var (
	dbDriver string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:   "solarcalc",
	Short: "Financial simulation for commercial solar proposals",
	Long: `solarcalc runs the solar proposal engine from the command line.
It reads a scenario YAML (monthly bills, settings, pricing), prints revenue, cost,
investment and financing figures, and can export the 20-year projection as CSV.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "sqlite", "project store driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "project store DSN (default data/projects.db, or DATABASE_URL for postgres)")
}

// openStore opens the project store selected by the persistent flags.
func openStore(ctx context.Context) (store.Store, error) {
	dsn := dbPath
	if dsn == "" && dbDriver == "sqlite" {
		dsn = "data/projects.db"
	}
	return store.Open(ctx, dbDriver, dsn)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
