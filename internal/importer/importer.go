// Package importer loads ledger entries in bulk from CSV or JSON
// files and feeds them to the record store one insert at a time.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"moneylog/internal/core"
	"moneylog/internal/storage"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Load reads entries from path, dispatching on the file extension.
func Load(path string) ([]core.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(string(data))
	case ".json":
		return parseJSON(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// parseCSV expects one record per line: amount, delimited tag list,
// timestamp text. Lines with a different comma-split arity are
// silently skipped (that is also how rows corrupted by embedded commas
// manifest); a malformed field on a well-formed line is an error.
func parseCSV(content string) ([]core.Entry, error) {
	var entries []core.Entry
	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			continue
		}
		input := core.EntryInput{Amount: fields[0], Tags: fields[1], When: fields[2]}
		entry, ok := input.Merge(nil)
		if !ok {
			return nil, fmt.Errorf("line %d: malformed record %q", i+1, line)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

type jsonRecord struct {
	Amount     json.Number `json:"amount"`
	Tags       []string    `json:"tags"`
	OccurredAt string      `json:"occurred_at"`
}

// parseJSON expects an array of records in the export format.
func parseJSON(data []byte) ([]core.Entry, error) {
	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode import file: %w", err)
	}
	entries := make([]core.Entry, 0, len(records))
	for i, r := range records {
		input := core.EntryInput{
			Amount: r.Amount.String(),
			Tags:   strings.Join(r.Tags, " "),
			When:   r.OccurredAt,
		}
		entry, ok := input.Merge(nil)
		if !ok {
			return nil, fmt.Errorf("record %d: malformed entry", i+1)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Run inserts the entries one by one, reporting per-record success or
// failure. Store-level errors are fatal for the invocation and
// propagate to the caller.
func Run(ctx context.Context, store storage.Store, entries []core.Entry, out io.Writer) error {
	for _, e := range entries {
		inserted, err := store.Insert(ctx, e)
		if err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
		fmt.Fprintf(out, "imported: %s\n", inserted.Format())
	}
	fmt.Fprintf(out, "imported %d entries; records not matching the format were skipped\n", len(entries))
	return nil
}
