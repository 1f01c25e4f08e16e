// Package query turns the user-facing query language (time-range
// expressions, amount conditions, direction and tag filters, sort
// modes) into normalized predicates that the record store executes.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeMode selects how a time-range pattern is interpreted.
type TimeMode string

const (
	ModeDay   TimeMode = "day"
	ModeMonth TimeMode = "month"
	ModeYear  TimeMode = "year"
	ModeRange TimeMode = "range"
)

var (
	ErrInvalidExpression = errors.New("invalid time expression")
	ErrInvertedRange     = errors.New("time range cannot be inverted")
	ErrUnsupportedMarker = errors.New("range mode takes a literal pattern only")
)

// ParseTimeMode validates a time-mode flag value.
func ParseTimeMode(s string) (TimeMode, error) {
	switch TimeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDay:
		return ModeDay, nil
	case ModeMonth:
		return ModeMonth, nil
	case ModeYear:
		return ModeYear, nil
	case ModeRange:
		return ModeRange, nil
	}
	return "", fmt.Errorf("%w: unknown time mode %q", ErrInvalidExpression, s)
}

// TimeInterval is a closed interval of epoch-millisecond timestamps.
type TimeInterval struct {
	Begin int64
	End   int64
}

// rangeKind is derived from the pattern's leading relativity marker.
type rangeKind int

const (
	literal     rangeKind = iota // explicit calendar values, no marker
	includeNow                   // '=': end is the current instant
	contextUnit                  // '-': end is the natural end of the unit
)

// Resolver resolves (mode, pattern) pairs into concrete intervals.
// Now is injectable for tests; the zero value uses the wall clock.
type Resolver struct {
	Now func() time.Time
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve parses a pattern under the given mode and returns the
// concrete [begin, end] interval.
//
// A leading '-' marks the end as the natural end of the unit (end of
// day/month/year); a leading '=' marks it as the current instant. The
// scalar modes (day, month, year) take one integer "n units before
// now" and require a marker. Range mode takes 2, 4 or 6 integers
// (d1 d2 / m1 d1 m2 d2 / y1 m1 d1 y2 m2 d2) and no marker.
func (r Resolver) Resolve(mode TimeMode, pattern string) (TimeInterval, error) {
	kind, tokens, err := tokenize(pattern)
	if err != nil {
		return TimeInterval{}, err
	}

	now := r.now()
	var begin, end time.Time
	switch mode {
	case ModeDay, ModeMonth, ModeYear:
		if kind == literal {
			return TimeInterval{}, fmt.Errorf("%w: mode %s needs a '-' or '=' marker", ErrInvalidExpression, mode)
		}
		if len(tokens) != 1 {
			return TimeInterval{}, fmt.Errorf("%w: mode %s takes exactly one integer, got %d", ErrInvalidExpression, mode, len(tokens))
		}
		switch mode {
		case ModeDay:
			begin, end = resolveDay(now, tokens[0], kind)
		case ModeMonth:
			begin, end = resolveMonth(now, tokens[0], kind)
		default:
			begin, end = resolveYear(now, tokens[0], kind)
		}
	case ModeRange:
		if kind != literal {
			return TimeInterval{}, ErrUnsupportedMarker
		}
		begin, end, err = resolveRange(now, tokens)
		if err != nil {
			return TimeInterval{}, err
		}
	default:
		return TimeInterval{}, fmt.Errorf("%w: unknown time mode %q", ErrInvalidExpression, mode)
	}

	if begin.After(end) {
		return TimeInterval{}, ErrInvertedRange
	}
	return TimeInterval{Begin: begin.UnixMilli(), End: end.UnixMilli()}, nil
}

// tokenize strips the relativity marker and splits the remainder into
// integers on whitespace, hyphen, slash, and the CJK unit markers
// (年月日), which are separators, not semantics.
func tokenize(pattern string) (rangeKind, []int, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return literal, nil, fmt.Errorf("%w: empty pattern", ErrInvalidExpression)
	}
	kind := literal
	switch pattern[0] {
	case '-':
		kind = contextUnit
		pattern = pattern[1:]
	case '=':
		kind = includeNow
		pattern = pattern[1:]
	}
	fields := strings.FieldsFunc(pattern, func(c rune) bool {
		switch c {
		case ' ', '\t', '-', '/', '年', '月', '日':
			return true
		}
		return false
	})
	if len(fields) == 0 {
		return kind, nil, fmt.Errorf("%w: %q", ErrInvalidExpression, pattern)
	}
	tokens := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return kind, nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidExpression, f)
		}
		tokens[i] = v
	}
	return kind, tokens, nil
}

func resolveDay(now time.Time, n int, kind rangeKind) (time.Time, time.Time) {
	day := now.AddDate(0, 0, -n)
	begin := startOfDay(day)
	if kind == contextUnit {
		return begin, endOfDay(day)
	}
	return begin, now
}

func resolveMonth(now time.Time, n int, kind rangeKind) (time.Time, time.Time) {
	// Month arithmetic with year borrow: count months since year zero.
	total := now.Year()*12 + int(now.Month()) - 1 - n
	year, month := total/12, time.Month(total%12+1)
	begin := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	if kind == contextUnit {
		// Last calendar day of the target month, via first-of-next minus 1ms.
		end := time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location()).Add(-time.Millisecond)
		return begin, end
	}
	return begin, now
}

func resolveYear(now time.Time, n int, kind rangeKind) (time.Time, time.Time) {
	year := now.Year() - n
	begin := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	if kind == contextUnit {
		return begin, time.Date(year, time.December, 31, 23, 59, 59, 999e6, now.Location())
	}
	return begin, now
}

func resolveRange(now time.Time, p []int) (time.Time, time.Time, error) {
	var begin, end time.Time
	var okB, okE bool
	switch len(p) {
	case 6:
		begin, okB = calendarDate(p[0], p[1], p[2], now.Location())
		end, okE = calendarDate(p[3], p[4], p[5], now.Location())
	case 4:
		begin, okB = calendarDate(now.Year(), p[0], p[1], now.Location())
		end, okE = calendarDate(now.Year(), p[2], p[3], now.Location())
	case 2:
		begin, okB = calendarDate(now.Year(), int(now.Month()), p[0], now.Location())
		end, okE = calendarDate(now.Year(), int(now.Month()), p[1], now.Location())
	default:
		return begin, end, fmt.Errorf("%w: range pattern takes 2, 4 or 6 integers, got %d", ErrInvalidExpression, len(p))
	}
	if !okB || !okE {
		return begin, end, fmt.Errorf("%w: no such calendar date", ErrInvalidExpression)
	}
	return begin, endOfDay(end), nil
}

// calendarDate builds a midnight instant, rejecting values that
// time.Date would silently normalize (month 13, Feb 30, ...).
func calendarDate(y, m, d int, loc *time.Location) (time.Time, bool) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999e6, t.Location())
}
