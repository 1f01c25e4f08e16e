package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"moneylog/internal/core"
)

// ErrInvalidCondition reports a condition text matching none of the
// three accepted forms.
var ErrInvalidCondition = errors.New("invalid condition")

// CompareOp is a comparison operator of an amount condition.
type CompareOp string

const (
	OpGT CompareOp = ">"
	OpGE CompareOp = ">="
	OpLT CompareOp = "<"
	OpLE CompareOp = "<="
)

// PredicateKind discriminates the closed set of amount predicates.
type PredicateKind int

const (
	KindEquals PredicateKind = iota
	KindRange
	KindCompare
)

// AmountPredicate is a normalized, storage-ready amount filter. It is
// produced by Condition.Build and already direction-adjusted; callers
// never negate it again.
type AmountPredicate struct {
	Kind PredicateKind

	Value decimal.Decimal // equals / compare operand
	Low   decimal.Decimal // range lower bound, inclusive
	High  decimal.Decimal // range upper bound, inclusive
	Op    CompareOp

	// NegativeOnly additionally bounds the stored amount below zero.
	// Set when an outlay comparison flips to '>' / '>=', which would
	// otherwise admit income records.
	NegativeOnly bool
}

// Match evaluates the predicate against a stored amount.
func (p AmountPredicate) Match(amount decimal.Decimal) bool {
	if p.NegativeOnly && !amount.IsNegative() {
		return false
	}
	switch p.Kind {
	case KindEquals:
		return amount.Equal(p.Value)
	case KindRange:
		return amount.GreaterThanOrEqual(p.Low) && amount.LessThanOrEqual(p.High)
	case KindCompare:
		switch p.Op {
		case OpGT:
			return amount.GreaterThan(p.Value)
		case OpGE:
			return amount.GreaterThanOrEqual(p.Value)
		case OpLT:
			return amount.LessThan(p.Value)
		case OpLE:
			return amount.LessThanOrEqual(p.Value)
		}
	}
	return false
}

// Condition is a parsed but not yet direction-adjusted amount
// condition.
type Condition struct {
	kind PredicateKind
	val  decimal.Decimal
	low  decimal.Decimal
	high decimal.Decimal
	op   CompareOp
}

const num = `-?[0-9]+(?:\.[0-9]+)?`

// The three accepted forms, tried in order; first match wins.
var (
	rangeRe   = regexp.MustCompile(`^(` + num + `)\s*-\s*(` + num + `)$`)
	numberRe  = regexp.MustCompile(`^` + num + `$`)
	compareRe = regexp.MustCompile(`^(<=|>=|<|>)\s*(` + num + `)$`)
)

// ParseCondition parses one of "<num> - <num>", "<num>" or
// "<op> <num>". Numbers may be negative and fractional.
func ParseCondition(text string) (Condition, error) {
	s := strings.TrimSpace(text)
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		return Condition{
			kind: KindRange,
			low:  decimal.RequireFromString(m[1]),
			high: decimal.RequireFromString(m[2]),
		}, nil
	}
	if numberRe.MatchString(s) {
		return Condition{kind: KindEquals, val: decimal.RequireFromString(s)}, nil
	}
	if m := compareRe.FindStringSubmatch(s); m != nil {
		return Condition{
			kind: KindCompare,
			op:   CompareOp(m[1]),
			val:  decimal.RequireFromString(m[2]),
		}, nil
	}
	return Condition{}, fmt.Errorf("%w: %q", ErrInvalidCondition, text)
}

// Build normalizes the condition into a predicate over stored amounts.
//
// Outlay amounts are stored negated, so for direction outlay the
// predicate is mirrored: a range [low, high] becomes [-high, -low], an
// equality v becomes -v, and a comparison swaps its operator with the
// reverse and negates its operand. When the swapped operator is '>' or
// '>=' the predicate is additionally bounded to strictly negative
// amounts. Any other direction uses the condition as written.
func (c Condition) Build(direction core.Direction) AmountPredicate {
	switch c.kind {
	case KindRange:
		if direction != core.Outlay {
			return AmountPredicate{Kind: KindRange, Low: c.low, High: c.high}
		}
		return AmountPredicate{Kind: KindRange, Low: c.high.Neg(), High: c.low.Neg()}
	case KindEquals:
		if direction != core.Outlay {
			return AmountPredicate{Kind: KindEquals, Value: c.val}
		}
		return AmountPredicate{Kind: KindEquals, Value: c.val.Neg()}
	default:
		if direction != core.Outlay {
			return AmountPredicate{Kind: KindCompare, Op: c.op, Value: c.val}
		}
		flipped := map[CompareOp]CompareOp{OpGT: OpLT, OpGE: OpLE, OpLT: OpGT, OpLE: OpGE}[c.op]
		p := AmountPredicate{Kind: KindCompare, Op: flipped, Value: c.val.Neg()}
		if flipped == OpGT || flipped == OpGE {
			p.NegativeOnly = true
		}
		return p
	}
}
