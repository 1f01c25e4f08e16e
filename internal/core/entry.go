// Package core holds the ledger domain: entries, directions and the
// parsing rules for the three entry fields (amount, tags, timestamp).
package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies entries by the sign of their amount.
type Direction string

const (
	All    Direction = "all"
	Income Direction = "income"
	Outlay Direction = "outlay"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyTags        = errors.New("empty tag set")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDirection = errors.New("invalid direction")
)

// ParseDirection validates a direction flag value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case All:
		return All, nil
	case Income:
		return Income, nil
	case Outlay:
		return Outlay, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Entry is one recorded transaction. The amount sign encodes direction:
// negative is outlay, non-negative is income. ID is empty until the
// store has persisted the entry.
type Entry struct {
	ID         string
	Amount     decimal.Decimal
	Tags       []string
	OccurredAt int64 // epoch milliseconds
}

func (e Entry) Validate() error {
	if len(e.Tags) == 0 {
		return ErrEmptyTags
	}
	return nil
}

// Equal reports whether two entries carry the same data, ignoring ID.
func (e Entry) Equal(other Entry) bool {
	return e.Amount.Equal(other.Amount) &&
		slices.Equal(e.Tags, other.Tags) &&
		e.OccurredAt == other.OccurredAt
}

// Time returns the occurrence instant in local time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.OccurredAt)
}

// Format renders the entry for terminal output, e.g.
// "outlay 12.50  2024-05-15 10:30:00  tags: <food lunch>".
func (e Entry) Format() string {
	kind := "income"
	amount := e.Amount
	if e.Amount.IsNegative() {
		kind = "outlay"
		amount = amount.Neg()
	}
	return fmt.Sprintf("%s %s  %s  tags: <%s>",
		kind, amount.StringFixed(2), FormatTimestamp(e.OccurredAt), strings.Join(e.Tags, " "))
}

// ParseAmount parses a signed decimal amount and rounds it half-up to
// cents. Both dot and comma decimal separators are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(2), nil
}

// ParseTags splits a whitespace- or semicolon-delimited tag list into a
// normalized set: trimmed, deduplicated, sorted. Empty fragments are
// dropped; an empty result is an error because persisted entries always
// carry at least one tag.
func ParseTags(s string) ([]string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})
	seen := map[string]struct{}{}
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tags = append(tags, f)
	}
	if len(tags) == 0 {
		return nil, ErrEmptyTags
	}
	slices.Sort(tags)
	return tags, nil
}

// HasAnyTag reports whether the entry carries at least one of the given
// tags. An empty filter matches everything.
func (e Entry) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if slices.Contains(e.Tags, t) {
			return true
		}
	}
	return false
}
