package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"moneylog/internal/core"
	"moneylog/internal/query"
)

// SQLiteStore persists entries in a local SQLite database. Amounts are
// stored as integer cents; tags live in a side table and are
// OR-matched via EXISTS.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, e core.Entry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	e.ID = uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Entry{}, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	const insertEntry = `INSERT INTO entries (id, amount_cents, occurred_at) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertEntry, e.ID, centsOf(e.Amount), e.OccurredAt); err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	if err := insertTags(ctx, tx, e.ID, e.Tags); err != nil {
		return core.Entry{}, err
	}
	if err := tx.Commit(); err != nil {
		return core.Entry{}, fmt.Errorf("commit insert: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) Find(ctx context.Context, p query.Predicate, sort query.SortSpec) ([]core.Entry, error) {
	where, args := buildWhere(p)
	q := `SELECT id, amount_cents, occurred_at FROM entries e ` + where + orderBy(sort)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var e core.Entry
		var cents int64
		if err := rows.Scan(&e.ID, &cents, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Amount = fromCents(cents)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	for i := range entries {
		tags, err := s.loadTags(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}
	return entries, nil
}

func (s *SQLiteStore) UpdateByID(ctx context.Context, id string, e core.Entry) (*core.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	const updateEntry = `UPDATE entries SET amount_cents = ?, occurred_at = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, updateEntry, centsOf(e.Amount), e.OccurredAt, id)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear tags: %w", err)
	}
	if err := insertTags(ctx, tx, id, e.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	e.ID = id
	return &e, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete tags: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return affected != 0, nil
}

func (s *SQLiteStore) loadTags(ctx context.Context, entryID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag`, entryID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func insertTags(ctx context.Context, tx *sql.Tx, entryID string, tags []string) error {
	const insertTag = `INSERT INTO entry_tags (entry_id, tag) VALUES (?, ?)`
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, insertTag, entryID, tag); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	return nil
}

// buildWhere translates a predicate into a WHERE clause over the
// entries table, mirroring query.Predicate.Match.
func buildWhere(p query.Predicate) (string, []any) {
	conds := []string{"occurred_at BETWEEN ? AND ?"}
	args := []any{p.Interval.Begin, p.Interval.End}

	switch p.Direction {
	case core.Income:
		conds = append(conds, "amount_cents >= 0")
	case core.Outlay:
		conds = append(conds, "amount_cents < 0")
	}

	if a := p.Amount; a != nil {
		if a.NegativeOnly {
			conds = append(conds, "amount_cents < 0")
		}
		switch a.Kind {
		case query.KindEquals:
			cents := a.Value.Mul(decimal.NewFromInt(100))
			if cents.IsInteger() {
				conds = append(conds, "amount_cents = ?")
				args = append(args, cents.IntPart())
			} else {
				// Stored amounts are whole cents; a sub-cent equality
				// can never match.
				conds = append(conds, "0")
			}
		case query.KindRange:
			conds = append(conds, "amount_cents >= ?", "amount_cents <= ?")
			args = append(args, centsArg(a.Low), centsArg(a.High))
		case query.KindCompare:
			conds = append(conds, fmt.Sprintf("amount_cents %s ?", a.Op))
			args = append(args, centsArg(a.Value))
		}
	}

	if len(p.Tags) != 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(p.Tags)), ",")
		conds = append(conds,
			"EXISTS (SELECT 1 FROM entry_tags t WHERE t.entry_id = e.id AND t.tag IN ("+placeholders+"))")
		for _, tag := range p.Tags {
			args = append(args, tag)
		}
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort query.SortSpec) string {
	dir := " ASC"
	if sort.Desc {
		dir = " DESC"
	}
	switch sort.Key {
	case query.SortByAmount:
		return " ORDER BY amount_cents" + dir + ", rowid ASC"
	case query.SortByTime:
		return " ORDER BY occurred_at" + dir + ", rowid ASC"
	default:
		// Natural order is insertion order.
		return " ORDER BY rowid ASC"
	}
}

func centsOf(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// centsArg passes a possibly fractional cent bound; SQLite compares
// the INTEGER column against a REAL parameter numerically.
func centsArg(d decimal.Decimal) any {
	cents := d.Mul(decimal.NewFromInt(100))
	if cents.IsInteger() {
		return cents.IntPart()
	}
	return cents.InexactFloat64()
}
