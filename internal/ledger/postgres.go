package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists transfer records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed record store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert appends a transfer record and returns it with the assigned id.
func (s *PostgresStore) Insert(ctx context.Context, r Record) (Record, error) {
	row := s.db.QueryRow(ctx, `INSERT INTO transfers (source_wallet_id, destination_wallet_id, amount, description, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		r.SourceWalletID, r.DestinationWalletID, r.Amount.String(), r.Description, r.Timestamp.UTC())
	if err := row.Scan(&r.ID); err != nil {
		return Record{}, fmt.Errorf("insert transfer record: %w", err)
	}
	return r, nil
}

// ListByWallet returns records where the wallet is source or destination,
// most recent first, ties broken by id ascending.
func (s *PostgresStore) ListByWallet(ctx context.Context, walletID int64) ([]Record, error) {
	rows, err := s.db.Query(ctx, `SELECT id, source_wallet_id, destination_wallet_id, amount::text, description, created_at
        FROM transfers WHERE source_wallet_id = $1 OR destination_wallet_id = $1
        ORDER BY created_at DESC, id ASC`, walletID)
	if err != nil {
		return nil, fmt.Errorf("list transfer records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var amount string
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.SourceWalletID, &r.DestinationWalletID, &amount, &r.Description, &createdAt); err != nil {
			return nil, err
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		r.Amount = amt
		r.Timestamp = createdAt.UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}
