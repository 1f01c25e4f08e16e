package core

import "github.com/shopspring/decimal"

// Option models a field value that may be absent after parsing.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// EntryInput holds the three raw field lines describing an entry:
// amount, tag list and timestamp text. It is produced by interactive
// prompts and by the bulk importers.
type EntryInput struct {
	Amount string
	Tags   string
	When   string
}

// Merge parses the input into an Entry. Each field that fails to parse
// (including a blank line) falls back to the corresponding field of
// prior; when prior is nil a malformed field yields no entry. The prior
// entry's ID is always carried over.
func (in EntryInput) Merge(prior *Entry) (*Entry, bool) {
	amount := parseOpt(in.Amount, ParseAmount)
	tags := parseOpt(in.Tags, ParseTags)
	when := parseOpt(in.When, ParseTimestamp)

	var entry Entry
	if prior != nil {
		entry = *prior
	}
	var ok bool
	if entry.Amount, ok = resolve(amount, prior, func(e *Entry) decimal.Decimal { return e.Amount }); !ok {
		return nil, false
	}
	if entry.Tags, ok = resolve(tags, prior, func(e *Entry) []string { return e.Tags }); !ok {
		return nil, false
	}
	if entry.OccurredAt, ok = resolve(when, prior, func(e *Entry) int64 { return e.OccurredAt }); !ok {
		return nil, false
	}
	return &entry, true
}

func parseOpt[T any](raw string, parse func(string) (T, error)) Option[T] {
	v, err := parse(raw)
	if err != nil {
		return None[T]()
	}
	return Some(v)
}

func resolve[T any](opt Option[T], prior *Entry, field func(*Entry) T) (T, bool) {
	if v, ok := opt.Get(); ok {
		return v, true
	}
	if prior != nil {
		return field(prior), true
	}
	var zero T
	return zero, false
}
