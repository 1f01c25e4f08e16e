package query

import (
	"fmt"
	"slices"
	"strings"

	"moneylog/internal/core"
)

// SortKey selects the field a result set is ordered by.
type SortKey int

const (
	SortNone SortKey = iota
	SortByAmount
	SortByTime
)

// SortSpec is a storage-level sort order: a key plus sense. The zero
// value means the store's natural order.
type SortSpec struct {
	Key  SortKey
	Desc bool
}

// SortMode is the user-facing sort selector.
type SortMode string

const (
	SortRaw          SortMode = "raw"
	SortMoney        SortMode = "money"
	SortMoneyReverse SortMode = "money_reverse"
	SortDate         SortMode = "date"
	SortDateReverse  SortMode = "date_reverse"
)

// ParseSortMode validates a sort-mode flag value.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortRaw:
		return SortRaw, nil
	case SortMoney:
		return SortMoney, nil
	case SortMoneyReverse:
		return SortMoneyReverse, nil
	case SortDate:
		return SortDate, nil
	case SortDateReverse:
		return SortDateReverse, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Build derives the storage-level sort order. The money mode maps to
// descending stored order for every direction: largest income first,
// and since outlays are stored negated, smallest spend first under
// outlay. money_reverse is the mirror. Date modes are likewise
// direction-independent.
func (m SortMode) Build(direction core.Direction) SortSpec {
	switch m {
	case SortMoney, SortMoneyReverse:
		return SortSpec{Key: SortByAmount, Desc: m == SortMoney}
	case SortDate, SortDateReverse:
		return SortSpec{Key: SortByTime, Desc: m == SortDateReverse}
	default:
		return SortSpec{}
	}
}

// Apply stable-sorts entries in place.
func (s SortSpec) Apply(entries []core.Entry) {
	switch s.Key {
	case SortByAmount:
		slices.SortStableFunc(entries, func(a, b core.Entry) int {
			c := a.Amount.Cmp(b.Amount)
			if s.Desc {
				return -c
			}
			return c
		})
	case SortByTime:
		slices.SortStableFunc(entries, func(a, b core.Entry) int {
			c := 0
			switch {
			case a.OccurredAt < b.OccurredAt:
				c = -1
			case a.OccurredAt > b.OccurredAt:
				c = 1
			}
			if s.Desc {
				return -c
			}
			return c
		})
	}
}

// Predicate is the composed query filter handed to the record store.
type Predicate struct {
	Interval  TimeInterval
	Direction core.Direction
	Amount    *AmountPredicate
	Tags      []string // OR-matched; empty means no tag filter
}

// BuildPredicate composes the interval, direction filter, optional
// amount condition and tag filter into one predicate. The condition is
// direction-adjusted here, at construction time.
func BuildPredicate(interval TimeInterval, direction core.Direction, cond *Condition, tags []string) Predicate {
	p := Predicate{Interval: interval, Direction: direction, Tags: tags}
	if cond != nil {
		ap := cond.Build(direction)
		p.Amount = &ap
	}
	return p
}

// Match evaluates the predicate against an entry. This is the
// reference semantics; SQL-backed stores translate the same predicate
// into a WHERE clause.
func (p Predicate) Match(e core.Entry) bool {
	if e.OccurredAt < p.Interval.Begin || e.OccurredAt > p.Interval.End {
		return false
	}
	switch p.Direction {
	case core.Income:
		if e.Amount.IsNegative() {
			return false
		}
	case core.Outlay:
		if !e.Amount.IsNegative() {
			return false
		}
	}
	if p.Amount != nil && !p.Amount.Match(e.Amount) {
		return false
	}
	return e.HasAnyTag(p.Tags)
}
