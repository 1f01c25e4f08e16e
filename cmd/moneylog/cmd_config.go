package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneylog/internal/config"
)

var (
	cfgBackend   string
	cfgDBPath    string
	cfgExportDir string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the configuration file",
	Long: `Writes the configuration file read by every other command. The store
itself is not touched; make sure the chosen backend is usable before
querying.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&cfgBackend, "backend", config.BackendSQLite, "record store backend: sqlite or memory")
	configCmd.Flags().StringVar(&cfgDBPath, "db-path", "./data/moneylog.db", "database file for the sqlite backend")
	configCmd.Flags().StringVar(&cfgExportDir, "export-dir", ".", "directory for json/csv exports")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Config{
		Backend:    cfgBackend,
		SQLitePath: cfgDBPath,
		ExportDir:  cfgExportDir,
	}
	path := config.Path()
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", path)
	return nil
}
