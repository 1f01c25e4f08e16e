package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moneylog/internal/cli"
	"moneylog/internal/core"
	"moneylog/internal/log"
)

var (
	addTags   string
	addWhen   string
	addIncome bool
)

var addCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record one ledger entry",
	Long: `Records one entry. The amount is stored negated unless --income is
given, so outlays need no explicit sign.

  moneylog add 12.50 --tags "food lunch"
  moneylog add 1500 --income --when "2024-05-01 09:00"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTags, "tags", "t", "daily", "space separated tags")
	addCmd.Flags().StringVarP(&addWhen, "when", "w", "", "date and time, e.g. \"2024-05-15 10:30\" (default now)")
	addCmd.Flags().BoolVarP(&addIncome, "income", "i", false, "record as income instead of outlay")
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := core.ParseAmount(args[0])
	if err != nil {
		return err
	}
	if !addIncome {
		amount = amount.Neg()
	}
	tags, err := core.ParseTags(addTags)
	if err != nil {
		return err
	}
	occurredAt := time.Now().UnixMilli()
	if addWhen != "" {
		if occurredAt, err = core.ParseTimestamp(addWhen); err != nil {
			return err
		}
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

	entry := core.Entry{Amount: amount, Tags: tags, OccurredAt: occurredAt}
	inserted, err := store.Insert(context.Background(), entry)
	if err != nil {
		cli.Fatal(logger.WithComponent(log.ComponentStorage), "failed to insert entry", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", inserted.Format())
	return nil
}
