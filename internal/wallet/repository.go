package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Filter narrows List results. Zero-value fields apply no restriction.
type Filter struct {
	Currency     Currency
	UserDocument string
}

// Repository persists wallet records.
type Repository interface {
	Create(ctx context.Context, w Wallet) (Wallet, error)
	Get(ctx context.Context, id int64) (Wallet, bool, error)
	List(ctx context.Context, f Filter) ([]Wallet, error)
	Update(ctx context.Context, w Wallet) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record and returns it with the assigned id.
func (r *PostgresRepository) Create(ctx context.Context, w Wallet) (Wallet, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO wallets (balance, currency, user_document, user_name, version, created_at)
        VALUES ($1, $2, $3, $4, 1, $5) RETURNING id`,
		w.Balance.String(), string(w.Currency), w.UserDocument, w.UserName, w.CreatedAt.UTC())
	if err := row.Scan(&w.ID); err != nil {
		return Wallet{}, fmt.Errorf("insert wallet: %w", err)
	}
	w.Version = 1
	return w, nil
}

// Get fetches a wallet by identifier. Absence is reported via the bool, not an error.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Wallet, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT id, balance::text, currency, user_document, user_name, version, created_at
        FROM wallets WHERE id = $1`, id)
	w, err := scanWallet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Wallet{}, false, nil
	}
	if err != nil {
		return Wallet{}, false, err
	}
	return w, true, nil
}

// List returns wallets matching the filter as an exact-match conjunction.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Wallet, error) {
	query := `SELECT id, balance::text, currency, user_document, user_name, version, created_at FROM wallets`
	args := []any{}
	clause := " WHERE"
	if f.Currency != "" {
		args = append(args, string(f.Currency))
		query += fmt.Sprintf("%s currency = $%d", clause, len(args))
		clause = " AND"
	}
	if f.UserDocument != "" {
		args = append(args, f.UserDocument)
		query += fmt.Sprintf("%s user_document = $%d", clause, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// Update persists the full state of an existing wallet, bumping its version.
func (r *PostgresRepository) Update(ctx context.Context, w Wallet) error {
	tag, err := r.db.Exec(ctx, `UPDATE wallets SET balance = $2, currency = $3, user_document = $4,
        user_name = $5, version = version + 1 WHERE id = $1`,
		w.ID, w.Balance.String(), string(w.Currency), w.UserDocument, w.UserName)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var w Wallet
	var balance string
	var currency string
	var createdAt time.Time
	if err := row.Scan(&w.ID, &balance, &currency, &w.UserDocument, &w.UserName, &w.Version, &createdAt); err != nil {
		return Wallet{}, err
	}
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return Wallet{}, fmt.Errorf("parse balance: %w", err)
	}
	w.Balance = bal
	w.Currency = Currency(currency)
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
