package main

import (
	"context"

	"github.com/spf13/cobra"

	"moneylog/internal/cli"
	"moneylog/internal/importer"
	"moneylog/internal/log"
)

var massCmd = &cobra.Command{
	Use:   "mass <file>",
	Short: "Bulk-import entries from a .csv or .json file",
	Long: `Imports entries from a file. CSV rows are "amount,tags,timestamp"
with tags separated by spaces or semicolons; rows with a different
field count are skipped. JSON files hold an array of records in the
export format, so a previous export can be re-imported as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: runMass,
}

func runMass(cmd *cobra.Command, args []string) error {
	entries, err := importer.Load(args[0])
	if err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(logger)
	if err != nil {
		return err
	}
	store, err := cli.OpenStore(cfg)
	if err != nil {
		cli.Fatal(logger.WithComponent(log.ComponentStorage), "failed to open record store", err)
	}
	defer store.Close()

	if err := importer.Run(context.Background(), store, entries, cmd.OutOrStdout()); err != nil {
		cli.Fatal(logger.WithComponent(log.ComponentImporter), "import failed", err)
	}
	return nil
}
