// Package report turns a query result set into one of the terminal
// actions: print, count, sum, average, file export, or an interactive
// single-entry update or delete against the record store.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneylog/internal/core"
	"moneylog/internal/storage"
)

// Action is the terminal action applied to a result set. The string
// values are the CLI flag values.
type Action string

const (
	ActionPrint      Action = "print"
	ActionCount      Action = "size"
	ActionSum        Action = "total"
	ActionAverage    Action = "average"
	ActionExportJSON Action = "json"
	ActionExportCSV  Action = "csv"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "remove"
)

// ErrEmptySet reports an aggregation that is undefined on an empty
// result set.
var ErrEmptySet = errors.New("empty result set")

// ParseAction validates a sequel flag value.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionPrint:
		return ActionPrint, nil
	case ActionCount:
		return ActionCount, nil
	case ActionSum:
		return ActionSum, nil
	case ActionAverage:
		return ActionAverage, nil
	case ActionExportJSON:
		return ActionExportJSON, nil
	case ActionExportCSV:
		return ActionExportCSV, nil
	case ActionUpdate:
		return ActionUpdate, nil
	case ActionDelete:
		return ActionDelete, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Env carries the collaborators an action may need: terminal output,
// interactive input, the record store for mutations, and the export
// target directory.
type Env struct {
	Out       io.Writer
	Prompt    *Prompter
	Store     storage.Store
	ExportDir string
}

// Collection is the ordered, already-filtered, already-sorted result
// set of a query. Entries are transient views; the store remains the
// durable owner.
type Collection struct {
	Entries []core.Entry
}

// Run dispatches the action. Store round-trip failures propagate as
// errors; everything interactive recovers locally by aborting the
// action.
func (c Collection) Run(ctx context.Context, action Action, env Env) error {
	switch action {
	case ActionPrint:
		c.show(env.Out, false)
		return nil
	case ActionCount:
		fmt.Fprintf(env.Out, "%d entries\n", len(c.Entries))
		return nil
	case ActionSum:
		fmt.Fprintf(env.Out, "total: %s\n", c.sum().StringFixed(2))
		return nil
	case ActionAverage:
		return c.average(env.Out)
	case ActionExportJSON:
		return c.exportJSON(env)
	case ActionExportCSV:
		return c.exportCSV(env)
	case ActionUpdate:
		return c.updateOne(ctx, env)
	case ActionDelete:
		return c.deleteOne(ctx, env)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (c Collection) show(out io.Writer, indexed bool) {
	for i, e := range c.Entries {
		if indexed {
			fmt.Fprintf(out, "%d. --- %s\n", i+1, e.Format())
		} else {
			fmt.Fprintln(out, e.Format())
		}
	}
}

func (c Collection) sum() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// average prints the daily average over the spanned calendar days:
// sum / (floor(latest - midnight of the earliest entry's day) in days + 1).
func (c Collection) average(out io.Writer) error {
	if len(c.Entries) == 0 {
		return ErrEmptySet
	}
	earliest, latest := c.Entries[0], c.Entries[0]
	for _, e := range c.Entries[1:] {
		if e.OccurredAt < earliest.OccurredAt {
			earliest = e
		}
		if e.OccurredAt > latest.OccurredAt {
			latest = e
		}
	}
	first := earliest.Time()
	dayStart := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	days := (latest.OccurredAt-dayStart.UnixMilli())/(24*time.Hour).Milliseconds() + 1

	avg := c.sum().Div(decimal.NewFromInt(days))
	fmt.Fprintf(out, "daily average over %d days: %s\n", days, avg.StringFixed(2))
	return nil
}

// selectEntry presents the indexed result set and reads a 1-based
// selection. Out-of-range or non-numeric input yields nil.
func (c Collection) selectEntry(env Env) *core.Entry {
	c.show(env.Out, true)
	lines, ok := env.Prompt.Lines("entry number: ")
	if !ok {
		return nil
	}
	idx, err := strconv.Atoi(lines[0])
	if err != nil || idx < 1 || idx > len(c.Entries) {
		return nil
	}
	return &c.Entries[idx-1]
}

func (c Collection) deleteOne(ctx context.Context, env Env) error {
	fmt.Fprintln(env.Out, "delete one entry")
	entry := c.selectEntry(env)
	if entry == nil {
		fmt.Fprintln(env.Out, "not a valid entry number, delete cancelled")
		return nil
	}
	fmt.Fprintf(env.Out, "about to permanently delete:\n%s\n", entry.Format())
	if !env.Prompt.Confirm("confirm delete?") {
		return nil
	}
	deleted, err := env.Store.DeleteByID(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if deleted {
		fmt.Fprintln(env.Out, "deleted")
	} else {
		fmt.Fprintln(env.Out, "delete failed")
	}
	return nil
}

func (c Collection) updateOne(ctx context.Context, env Env) error {
	fmt.Fprintln(env.Out, "update one entry")
	entry := c.selectEntry(env)
	if entry == nil {
		fmt.Fprintln(env.Out, "not a valid entry number, update cancelled")
		return nil
	}
	fmt.Fprintf(env.Out, "updating:\n%s\nenter new values, leave blank to keep\n", entry.Format())

	lines, ok := env.Prompt.Lines("amount: ", "tags (space separated): ", "date and time: ")
	if !ok {
		fmt.Fprintln(env.Out, "entry unchanged")
		return nil
	}
	input := core.EntryInput{Amount: lines[0], Tags: lines[1], When: lines[2]}
	updated, ok := input.Merge(entry)
	if !ok || updated.Equal(*entry) {
		fmt.Fprintln(env.Out, "entry unchanged")
		return nil
	}

	fmt.Fprintf(env.Out, "entry will become:\n%s\n", updated.Format())
	if !env.Prompt.Confirm("confirm update?") {
		return nil
	}
	result, err := env.Store.UpdateByID(ctx, entry.ID, *updated)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if result == nil {
		fmt.Fprintln(env.Out, "update failed")
		return nil
	}
	fmt.Fprintf(env.Out, "updated:\n%s\n", result.Format())
	return nil
}
