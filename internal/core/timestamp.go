package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the human-readable form used by exports and entry
// rendering. Second precision: re-importing an exported file truncates
// milliseconds, which is the documented precision loss of the format.
const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders an epoch-millisecond timestamp in local time.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format(timestampLayout)
}

// ParseTimestamp parses a date-time text into epoch milliseconds. The
// text is split on dots, colons, hyphens, slashes, 'T' and whitespace
// into 3 to 6 integer fields: year month day [hour [minute [second]]].
// Accepts both "2024-05-15 10:30" and "2024/05/15T10:30:00".
func ParseTimestamp(s string) (int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '.', ':', '-', '/', 'T', ' ', '\t':
			return true
		}
		return false
	})
	if len(fields) < 3 || len(fields) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	vals := [6]int{}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
		}
		vals[i] = v
	}
	if vals[3] > 23 || vals[4] > 59 || vals[5] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	t := time.Date(vals[0], time.Month(vals[1]), vals[2], vals[3], vals[4], vals[5], 0, time.Local)
	if t.Year() != vals[0] || int(t.Month()) != vals[1] || t.Day() != vals[2] {
		// time.Date normalizes out-of-range values; reject instead.
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t.UnixMilli(), nil
}
