package core

import (
	"slices"
	"testing"
	"time"
)

func TestEntryInputMerge(t *testing.T) {
	at := time.Date(2024, time.May, 15, 10, 30, 0, 0, time.Local).UnixMilli()
	prior := &Entry{ID: "abc", Amount: dec("-10"), Tags: []string{"food"}, OccurredAt: at}

	t.Run("all fields replaced", func(t *testing.T) {
		in := EntryInput{Amount: "-20", Tags: "rent home", When: "2024-06-01 08:00"}
		got, ok := in.Merge(prior)
		if !ok {
			t.Fatal("expected a merged entry")
		}
		if got.ID != "abc" {
			t.Fatalf("ID = %q, want prior ID carried over", got.ID)
		}
		if !got.Amount.Equal(dec("-20")) || !slices.Equal(got.Tags, []string{"home", "rent"}) {
			t.Fatalf("unexpected merge result: %+v", got)
		}
	})

	t.Run("blank fields keep prior values", func(t *testing.T) {
		got, ok := EntryInput{}.Merge(prior)
		if !ok {
			t.Fatal("expected a merged entry")
		}
		if !got.Equal(*prior) {
			t.Fatalf("blank input changed the entry: %+v", got)
		}
	})

	t.Run("malformed field falls back to prior", func(t *testing.T) {
		in := EntryInput{Amount: "not-a-number", Tags: "rent", When: ""}
		got, ok := in.Merge(prior)
		if !ok {
			t.Fatal("expected a merged entry")
		}
		if !got.Amount.Equal(prior.Amount) || !slices.Equal(got.Tags, []string{"rent"}) {
			t.Fatalf("unexpected merge result: %+v", got)
		}
	})

	t.Run("no prior and malformed field yields nothing", func(t *testing.T) {
		in := EntryInput{Amount: "12", Tags: "", When: "2024-06-01 08:00"}
		if _, ok := in.Merge(nil); ok {
			t.Fatal("expected no entry without a fallback")
		}
	})

	t.Run("no prior with complete input", func(t *testing.T) {
		in := EntryInput{Amount: "12", Tags: "a b", When: "2024-06-01 08:00"}
		got, ok := in.Merge(nil)
		if !ok || got.ID != "" {
			t.Fatalf("got (%+v, %v), want fresh entry", got, ok)
		}
	})
}
