package marketdata

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresCreditFeed reads counterparty credit data from a Postgres table:
//
//	CREATE TABLE counterparty_credit (
//	    name         text PRIMARY KEY,
//	    spread_bp    double precision NOT NULL,
//	    recovery_pct double precision NOT NULL
//	);
type PostgresCreditFeed struct {
	db *sql.DB
}

// OpenPostgres connects to the reference database and verifies the
// connection.
func OpenPostgres(dsn string) (*PostgresCreditFeed, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("marketdata: ping postgres: %w", err)
	}
	return &PostgresCreditFeed{db: db}, nil
}

func (f *PostgresCreditFeed) Counterparty(name string) (Counterparty, error) {
	row := f.db.QueryRow(
		`SELECT name, spread_bp, recovery_pct FROM counterparty_credit WHERE name = $1`, name)

	var cp Counterparty
	if err := row.Scan(&cp.Name, &cp.SpreadBP, &cp.RecoveryPct); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Counterparty{}, ErrUnknownCounterparty
		}
		return Counterparty{}, fmt.Errorf("marketdata: query counterparty %q: %w", name, err)
	}
	return cp, nil
}

func (f *PostgresCreditFeed) List() ([]Counterparty, error) {
	rows, err := f.db.Query(
		`SELECT name, spread_bp, recovery_pct FROM counterparty_credit ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("marketdata: list counterparties: %w", err)
	}
	defer rows.Close()

	var out []Counterparty
	for rows.Next() {
		var cp Counterparty
		if err := rows.Scan(&cp.Name, &cp.SpreadBP, &cp.RecoveryPct); err != nil {
			return nil, fmt.Errorf("marketdata: scan counterparty: %w", err)
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketdata: list counterparties: %w", err)
	}
	return out, nil
}

// Close releases the database connection pool.
func (f *PostgresCreditFeed) Close() error {
	return f.db.Close()
}
