package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneylog/internal/core"
	"moneylog/internal/query"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustInsert(t *testing.T, s *SQLiteStore, amount string, tags []string, day int) core.Entry {
	t.Helper()
	e := core.Entry{
		Amount:     dec(amount),
		Tags:       tags,
		OccurredAt: time.Date(2024, time.May, day, 12, 0, 0, 0, time.Local).UnixMilli(),
	}
	inserted, err := s.Insert(context.Background(), e)
	if err != nil {
		t.Fatal(err)
	}
	return inserted
}

func everything() query.Predicate {
	return query.Predicate{Interval: query.TimeInterval{Begin: 0, End: 1 << 62}, Direction: core.All}
}

func TestSQLiteInsertAndFind(t *testing.T) {
	s := openTestStore(t)
	mustInsert(t, s, "-12.50", []string{"food", "lunch"}, 1)
	mustInsert(t, s, "1500", []string{"salary"}, 2)

	found, err := s.Find(context.Background(), everything(), query.SortSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d entries, want 2", len(found))
	}
	// Natural order is insertion order; tags come back sorted.
	if found[0].Amount.String() != "-12.5" || found[0].Tags[0] != "food" || found[0].Tags[1] != "lunch" {
		t.Fatalf("first entry = %+v", found[0])
	}
	if found[1].ID == "" || found[1].ID == found[0].ID {
		t.Fatal("entries must have distinct non-empty IDs")
	}
}

func TestSQLitePredicateTranslation(t *testing.T) {
	s := openTestStore(t)
	mustInsert(t, s, "-10", []string{"food"}, 1)
	mustInsert(t, s, "-50", []string{"rent"}, 2)
	mustInsert(t, s, "-5", []string{"food"}, 3)
	mustInsert(t, s, "100", []string{"salary"}, 4)

	ctx := context.Background()

	t.Run("direction filter", func(t *testing.T) {
		p := everything()
		p.Direction = core.Income
		found, err := s.Find(ctx, p, query.SortSpec{})
		if err != nil {
			t.Fatal(err)
		}
		if len(found) != 1 || found[0].Amount.String() != "100" {
			t.Fatalf("income filter = %+v", found)
		}
	})

	t.Run("outlay condition with sort", func(t *testing.T) {
		cond, err := query.ParseCondition("> 7")
		if err != nil {
			t.Fatal(err)
		}
		p := query.BuildPredicate(everything().Interval, core.Outlay, &cond, nil)
		found, err := s.Find(ctx, p, query.SortMoney.Build(core.Outlay))
		if err != nil {
			t.Fatal(err)
		}
		// Outlays above 7: stored -10 and -50, smallest spend first.
		if len(found) != 2 || found[0].Amount.String() != "-10" || found[1].Amount.String() != "-50" {
			t.Fatalf("outlay condition = %+v", found)
		}
	})

	t.Run("equality on cents", func(t *testing.T) {
		cond, err := query.ParseCondition("-50")
		if err != nil {
			t.Fatal(err)
		}
		p := query.BuildPredicate(everything().Interval, core.All, &cond, nil)
		found, err := s.Find(ctx, p, query.SortSpec{})
		if err != nil {
			t.Fatal(err)
		}
		if len(found) != 1 || found[0].Amount.String() != "-50" {
			t.Fatalf("equality = %+v", found)
		}
	})

	t.Run("tag filter", func(t *testing.T) {
		p := everything()
		p.Tags = []string{"food", "salary"}
		found, err := s.Find(ctx, p, query.SortSpec{})
		if err != nil {
			t.Fatal(err)
		}
		if len(found) != 3 {
			t.Fatalf("tag filter found %d entries, want 3", len(found))
		}
	})

	t.Run("time interval", func(t *testing.T) {
		p := everything()
		p.Interval = query.TimeInterval{
			Begin: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.Local).UnixMilli(),
			End:   time.Date(2024, time.May, 3, 23, 59, 59, 999e6, time.Local).UnixMilli(),
		}
		found, err := s.Find(ctx, p, query.SortSpec{})
		if err != nil {
			t.Fatal(err)
		}
		if len(found) != 2 {
			t.Fatalf("interval found %d entries, want 2", len(found))
		}
	})
}

func TestSQLiteUpdateAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	inserted := mustInsert(t, s, "-10", []string{"a"}, 1)

	replacement := inserted
	replacement.Amount = dec("-20")
	replacement.Tags = []string{"b", "c"}
	updated, err := s.UpdateByID(ctx, inserted.ID, replacement)
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil || !updated.Amount.Equal(dec("-20")) {
		t.Fatalf("updated = %+v", updated)
	}

	found, err := s.Find(ctx, everything(), query.SortSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || len(found[0].Tags) != 2 || found[0].Tags[0] != "b" {
		t.Fatalf("state after update = %+v", found)
	}

	if none, err := s.UpdateByID(ctx, "missing", replacement); err != nil || none != nil {
		t.Fatalf("update missing = (%+v, %v), want (nil, nil)", none, err)
	}

	deleted, err := s.DeleteByID(ctx, inserted.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}
	if deleted, err = s.DeleteByID(ctx, inserted.ID); err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}
