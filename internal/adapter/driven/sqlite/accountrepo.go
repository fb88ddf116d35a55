package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*AccountRepo)(nil)

// AccountRepo is the SQLite implementation of the AccountStore port interface.
type AccountRepo struct {
	db *DB
}

// NewAccountRepo creates a new AccountRepo backed by the given DB.
func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Insert appends a new account row and returns the persisted record with its
// assigned id. A unique-constraint violation on visitor_id maps to
// driven.ErrDeviceAlreadyRegistered.
func (r *AccountRepo) Insert(ctx context.Context, username, passwordHash, visitorID string) (model.Account, error) {
	const query = `INSERT INTO accounts (username, password_hash, visitor_id, created_at) VALUES (?, ?, ?, ?)`

	createdAt := time.Now().UTC()

	result, err := r.db.Writer.ExecContext(ctx, query, username, passwordHash, visitorID, createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.Account{}, fmt.Errorf("insert account for visitor %s: %w", visitorID, driven.ErrDeviceAlreadyRegistered)
		}
		return model.Account{}, fmt.Errorf("insert account for visitor %s: %w", visitorID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("read inserted account id: %w", err)
	}

	return model.Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		VisitorID:    visitorID,
		CreatedAt:    createdAt,
	}, nil
}

// CountByVisitorID returns the number of accounts registered for the visitor
// id, 0 if none.
func (r *AccountRepo) CountByVisitorID(ctx context.Context, visitorID string) (int, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE visitor_id = ?`

	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, visitorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts for visitor %s: %w", visitorID, err)
	}

	return count, nil
}

// ListAll returns every account in insertion order. The password hash is
// never selected; listings must not carry password material.
func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	const query = `SELECT id, username, visitor_id, created_at FROM accounts ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		var createdAt string

		if err := rows.Scan(&account.ID, &account.Username, &account.VisitorID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}

		account.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for account %d: %w", account.ID, err)
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
