package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"moneylog/internal/core"
)

// exportRecord is the plain on-disk shape of one entry. The timestamp
// is rendered human-readable at second precision; re-importing
// truncates milliseconds, which is the format's documented loss.
type exportRecord struct {
	Amount     json.Number `json:"amount"`
	Tags       []string    `json:"tags"`
	OccurredAt string      `json:"occurred_at"`
}

func toRecord(e core.Entry) exportRecord {
	return exportRecord{
		Amount:     json.Number(e.Amount.String()),
		Tags:       e.Tags,
		OccurredAt: core.FormatTimestamp(e.OccurredAt),
	}
}

// exportJSON writes the result set, order preserved, as a
// pretty-printed JSON array.
func (c Collection) exportJSON(env Env) error {
	records := make([]exportRecord, len(c.Entries))
	for i, e := range c.Entries {
		records[i] = toRecord(e)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return c.writeExport(env, "moneylogs.json", append(data, '\n'))
}

// exportCSV writes one line per entry: amount, semicolon-joined tags,
// timestamp. No header and no quoting; tags must not contain commas.
func (c Collection) exportCSV(env Env) error {
	var b strings.Builder
	for _, e := range c.Entries {
		r := toRecord(e)
		fmt.Fprintf(&b, "%s,%s,%s\n", r.Amount, strings.Join(r.Tags, ";"), r.OccurredAt)
	}
	return c.writeExport(env, "moneylogs.csv", []byte(b.String()))
}

func (c Collection) writeExport(env Env, name string, data []byte) error {
	path := filepath.Join(env.ExportDir, name)
	// os.WriteFile surfaces a close failure too, so a short write is
	// never reported as success.
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Fprintf(env.Out, "exported %d entries to %s\n", len(c.Entries), path)
	return nil
}
