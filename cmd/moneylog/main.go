// moneylog is a personal ledger CLI: add entries, query them with a
// compact time-range and condition language, aggregate, export, and
// edit interactively.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moneylog/internal/cli"
	"moneylog/internal/log"
)

var (
	verbose bool
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "moneylog",
	Short: "Personal ledger with a query-driven report engine",
	Long: `moneylog records income and outlay entries and answers queries over
them: pick a time range, an optional amount condition, a direction and
tags, then print, count, sum, average, export, update or delete the
matching entries.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.LoadEnvFile()
		logger = cli.SetupLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(addCmd, queryCmd, massCmd, configCmd)
}

func main() {
	// A keyboard interrupt, also mid-prompt, is a normal way to leave:
	// the pending action is abandoned with no partial mutation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		if logger != nil {
			logger.Info("interrupted, exiting")
		}
		os.Exit(0)
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
