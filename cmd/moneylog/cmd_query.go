package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moneylog/internal/cli"
	"moneylog/internal/core"
	"moneylog/internal/log"
	"moneylog/internal/query"
	"moneylog/internal/report"
)

var (
	queryTimeMode   string
	queryTimeString string
	queryCondition  string
	queryMoneyType  string
	queryTags       string
	querySortMode   string
	querySequel     string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query entries and apply a report action",
	Long: `Queries the ledger and applies one action to the result set.

Time range: --time-mode day|month|year|range with --time-string.
A leading '-' means "until the end of the unit", '=' means "until now":

  --time-mode month --time-string =0     current month until now
  --time-mode day   --time-string -5     the whole day five days ago
  --time-mode year  --time-string =2     two years ago until now
  --time-mode range --time-string "2024-04-01 2024-04-30"

Amount condition: --condition "> 100", --condition "0 - 100" or an
exact value; under --money-type outlay the condition refers to the
spent amount, sign handling is automatic.

Action: --sequel print|size|total|average|json|csv|update|remove.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryTimeMode, "time-mode", "month", "time mode: day, month, year or range")
	queryCmd.Flags().StringVar(&queryTimeString, "time-string", "=0", "time pattern for the selected mode")
	queryCmd.Flags().StringVarP(&queryCondition, "condition", "c", "", "amount condition, e.g. \"> 100\" or \"0 - 100\"")
	queryCmd.Flags().StringVar(&queryMoneyType, "money-type", "all", "direction filter: all, income or outlay")
	queryCmd.Flags().StringVarP(&queryTags, "tags", "t", "", "space separated tags, any match")
	queryCmd.Flags().StringVar(&querySortMode, "sort-mode", "raw", "raw, money, money_reverse, date or date_reverse")
	queryCmd.Flags().StringVarP(&querySequel, "sequel", "s", "print", "action: print, size, total, average, json, csv, update or remove")
}

func runQuery(cmd *cobra.Command, args []string) error {
	mode, err := query.ParseTimeMode(queryTimeMode)
	if err != nil {
		return err
	}
	interval, err := query.Resolver{}.Resolve(mode, queryTimeString)
	if err != nil {
		return err
	}
	direction, err := core.ParseDirection(queryMoneyType)
	if err != nil {
		return err
	}
	var cond *query.Condition
	if queryCondition != "" {
		c, err := query.ParseCondition(queryCondition)
		if err != nil {
			return err
		}
		cond = &c
	}
	var tags []string
	if strings.TrimSpace(queryTags) != "" {
		if tags, err = core.ParseTags(queryTags); err != nil {
			return err
		}
	}
	sortMode, err := query.ParseSortMode(querySortMode)
	if err != nil {
		return err
	}
	action, err := report.ParseAction(querySequel)
	if err != nil {
		return err
	}

	predicate := query.BuildPredicate(interval, direction, cond, tags)
	sortSpec := sortMode.Build(direction)

	cfg, err := cli.LoadConfig(logger)
	if err != nil {
		return err
	}
	store, err := cli.OpenStore(cfg)
	if err != nil {
		cli.Fatal(logger.WithComponent(log.ComponentStorage), "failed to open record store", err)
	}
	defer store.Close()

	ctx := context.Background()
	entries, err := store.Find(ctx, predicate, sortSpec)
	if err != nil {
		cli.Fatal(logger.WithComponent(log.ComponentStorage), "query failed", err)
	}

	collection := report.Collection{Entries: entries}
	env := report.Env{
		Out:       cmd.OutOrStdout(),
		Prompt:    report.NewPrompter(os.Stdin, cmd.OutOrStdout()),
		Store:     store,
		ExportDir: cfg.ExportDir,
	}
	if err := collection.Run(ctx, action, env); err != nil {
		if errors.Is(err, report.ErrEmptySet) {
			return err
		}
		cli.Fatal(logger.WithComponent(log.ComponentReport), "report action failed", err)
	}
	return nil
}
