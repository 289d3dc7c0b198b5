// Package rankdb mirrors the master rankings dataset into a local
// sqlite database for ad-hoc querying.
package rankdb

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS rankings (
	date TEXT NOT NULL,
	format TEXT NOT NULL,
	category TEXT NOT NULL,
	rank TEXT NOT NULL,
	player TEXT NOT NULL,
	rating TEXT NOT NULL,
	PRIMARY KEY (date, format, category, rank, player, rating)
);
CREATE INDEX IF NOT EXISTS rankings_by_pair
	ON rankings (format, category, date);
`

type Row struct {
	Date     string
	Format   string
	Category string
	Rank     string
	Player   string
	Rating   string
}

type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return Store{}, err
	}
	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Put inserts rows, silently skipping tuples already present so the
// mirror stays idempotent across exports.
func (s Store) Put(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO rankings
			(date, format, category, rank, player, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.Date, r.Format, r.Category, r.Rank, r.Player, r.Rating,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rankings`).Scan(&n)
	return n, err
}

type PairSummary struct {
	Format   string
	Category string
	Rows     int64
	Latest   string
}

func (s Store) Summary(ctx context.Context) ([]PairSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT format, category, COUNT(*), MAX(date)
		FROM rankings
		GROUP BY format, category
		ORDER BY format, category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PairSummary
	for rows.Next() {
		var p PairSummary
		if err := rows.Scan(&p.Format, &p.Category, &p.Rows, &p.Latest); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
