package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"budget/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository mirrors saved ledgers into a SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Name identifies the mirror in logs and save reports.
func (r *SQLiteRepository) Name() string {
	return "sqlite"
}

// Mirror writes the rows of snap inside one transaction. Without appendMode
// the table is emptied first, matching a truncating file save.
func (r *SQLiteRepository) Mirror(ctx context.Context, snap core.Snapshot, appendMode bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if !appendMode {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_entries`); err != nil {
			return fmt.Errorf("clear ledger entries: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ledger_entries (kind, amount, label, entry_date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	records := snap.Records()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Kind.String(), rec.Amount.String(), rec.Label, rec.Date); err != nil {
			return fmt.Errorf("insert %s entry: %w", rec.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger mirrored to SQLite",
		"rows", len(records),
		"append", appendMode)

	return nil
}

// ListEntries returns the mirrored rows in insertion order.
func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, amount, label, entry_date FROM ledger_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var kind, amount, label, date string
		if err := rows.Scan(&kind, &amount, &label, &date); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		k, err := core.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		out = append(out, core.Record{Kind: k, Entry: core.Entry{Amount: a, Label: label, Date: date}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return out, nil
}
