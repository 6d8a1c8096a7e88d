/*
Package sqlite provides a SQLite-backed usage.Store.

The usage_records table is append-only: the store issues no UPDATE or DELETE
against it. Amounts are kept as decimal strings so they round-trip exactly.

USAGE:

	store, err := sqlite.New("./data/usage.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Use ":memory:" for a throwaway database. The schema is migrated on New.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/shopspring/decimal"
)

// Store implements usage.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ usage.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and migrates the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		recorded_at TEXT NOT NULL,
		expected_pension TEXT NOT NULL,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		gross_salary TEXT NOT NULL,
		included_sick_leave INTEGER NOT NULL,
		account_balance TEXT NOT NULL,
		sub_account_balance TEXT NOT NULL,
		nominal_pension INTEGER NOT NULL,
		real_pension INTEGER NOT NULL,
		postal_code TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_usage_recorded_at
		ON usage_records(recorded_at);
	CREATE INDEX IF NOT EXISTS idx_usage_gender_age
		ON usage_records(gender, age);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores rec. Duplicate IDs are rejected by the unique constraint.
func (s *Store) Append(ctx context.Context, rec usage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO usage_records (
			id, recorded_at, expected_pension, age, gender, gross_salary,
			included_sick_leave, account_balance, sub_account_balance,
			nominal_pension, real_pension, postal_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var postal sql.NullString
	if rec.PostalCode != "" {
		postal = sql.NullString{String: rec.PostalCode, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.ExpectedPension.String(),
		rec.Age,
		string(rec.Gender),
		rec.GrossSalary.String(),
		rec.IncludedSickLeave,
		rec.AccountBalance.String(),
		rec.SubAccountBalance.String(),
		rec.NominalPension,
		rec.RealPension,
		postal,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns every record in insertion order.
func (s *Store) List(ctx context.Context) ([]usage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at, expected_pension, age, gender, gross_salary,
			included_sick_leave, account_balance, sub_account_balance,
			nominal_pension, real_pension, postal_code
		FROM usage_records
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []usage.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM usage_records").Scan(&n)
	return n, err
}

func scanRecord(rows *sql.Rows) (usage.Record, error) {
	var (
		rec                                  usage.Record
		recordedAt, expected, gender, salary string
		account, subAccount                  string
		postal                               sql.NullString
	)
	if err := rows.Scan(
		&rec.ID, &recordedAt, &expected, &rec.Age, &gender, &salary,
		&rec.IncludedSickLeave, &account, &subAccount,
		&rec.NominalPension, &rec.RealPension, &postal,
	); err != nil {
		return usage.Record{}, err
	}

	var err error
	if rec.Timestamp, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
		return usage.Record{}, fmt.Errorf("record %s: bad timestamp: %w", rec.ID, err)
	}
	rec.Gender = domain.Gender(gender)
	rec.PostalCode = postal.String

	amounts := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&rec.ExpectedPension, expected},
		{&rec.GrossSalary, salary},
		{&rec.AccountBalance, account},
		{&rec.SubAccountBalance, subAccount},
	}
	for _, a := range amounts {
		if *a.dst, err = decimal.NewFromString(a.src); err != nil {
			return usage.Record{}, fmt.Errorf("record %s: bad amount %q: %w", rec.ID, a.src, err)
		}
	}
	return rec, nil
}
