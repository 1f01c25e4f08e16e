package query

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"moneylog/internal/core"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseCondition(t *testing.T) {
	cases := []struct {
		in   string
		kind PredicateKind
		ok   bool
	}{
		{"0 - 100", KindRange, true},
		{"-100 - -50", KindRange, true},
		{"3.5-10.25", KindRange, true},
		{"100", KindEquals, true},
		{"-12.34", KindEquals, true},
		{"5", KindEquals, true},
		{"> 100", KindCompare, true},
		{">=0.5", KindCompare, true},
		{"<= -3", KindCompare, true},
		{"< 42", KindCompare, true},
		{"", KindEquals, false},
		{"abc", KindEquals, false},
		{"=> 5", KindEquals, false},
		{"> ", KindEquals, false},
		{"1 - 2 - 3", KindEquals, false},
	}
	for _, tc := range cases {
		c, err := ParseCondition(tc.in)
		if !tc.ok {
			if !errors.Is(err, ErrInvalidCondition) {
				t.Fatalf("%q: error = %v, want ErrInvalidCondition", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if c.kind != tc.kind {
			t.Fatalf("%q: kind = %v, want %v", tc.in, c.kind, tc.kind)
		}
	}
}

func TestBuildMirrorsOutlay(t *testing.T) {
	t.Run("range mirrors bounds", func(t *testing.T) {
		c, err := ParseCondition("0 - 100")
		if err != nil {
			t.Fatal(err)
		}
		p := c.Build(core.Outlay)
		if p.Kind != KindRange || !p.Low.Equal(dec("-100")) || !p.High.Equal(dec("0")) {
			t.Fatalf("got [%s, %s], want [-100, 0]", p.Low, p.High)
		}
		for _, tc := range []struct {
			amount string
			want   bool
		}{
			{"-100", true}, {"0", true}, {"-50.5", true}, {"-100.01", false}, {"1", false},
		} {
			if got := p.Match(dec(tc.amount)); got != tc.want {
				t.Fatalf("Match(%s) = %v, want %v", tc.amount, got, tc.want)
			}
		}
	})

	t.Run("greater-than flips to less-than", func(t *testing.T) {
		c, err := ParseCondition("> 100")
		if err != nil {
			t.Fatal(err)
		}
		p := c.Build(core.Outlay)
		if p.Op != OpLT || !p.Value.Equal(dec("-100")) || p.NegativeOnly {
			t.Fatalf("got op=%s value=%s negOnly=%v, want < -100 without guard", p.Op, p.Value, p.NegativeOnly)
		}
		if !p.Match(dec("-150")) {
			t.Fatal("stored -150 must match outlay > 100")
		}
		if p.Match(dec("-50")) {
			t.Fatal("stored -50 must not match outlay > 100")
		}
	})

	t.Run("less-than flips and gains negative guard", func(t *testing.T) {
		c, err := ParseCondition("< 100")
		if err != nil {
			t.Fatal(err)
		}
		p := c.Build(core.Outlay)
		if p.Op != OpGT || !p.Value.Equal(dec("-100")) || !p.NegativeOnly {
			t.Fatalf("got op=%s value=%s negOnly=%v, want > -100 with guard", p.Op, p.Value, p.NegativeOnly)
		}
		if !p.Match(dec("-50")) {
			t.Fatal("stored -50 must match outlay < 100")
		}
		if p.Match(dec("50")) {
			t.Fatal("guard must exclude income records")
		}
		if p.Match(dec("-150")) {
			t.Fatal("stored -150 must not match outlay < 100")
		}
	})

	t.Run("equality negates", func(t *testing.T) {
		c, err := ParseCondition("12.34")
		if err != nil {
			t.Fatal(err)
		}
		p := c.Build(core.Outlay)
		if p.Kind != KindEquals || !p.Value.Equal(dec("-12.34")) {
			t.Fatalf("got %s, want -12.34", p.Value)
		}
	})

	t.Run("non-outlay stays as written", func(t *testing.T) {
		c, err := ParseCondition(">= 10")
		if err != nil {
			t.Fatal(err)
		}
		for _, dir := range []core.Direction{core.All, core.Income} {
			p := c.Build(dir)
			if p.Op != OpGE || !p.Value.Equal(dec("10")) || p.NegativeOnly {
				t.Fatalf("direction %s: predicate was adjusted: %+v", dir, p)
			}
		}
	})
}
