package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

const moneyColumns = `id, amount, owed_from_id, owed_from_name, owed_to_id, owed_to_name,
	note, item_id, idempotency_key, paid, created_at, created_by_id`

func scanMoneyEntry(row interface{ Scan(...interface{}) error }) (*models.MoneyEntry, error) {
	entry := &models.MoneyEntry{}
	var note, itemID, key sql.NullString
	if err := row.Scan(&entry.ID, &entry.Amount, &entry.OwedFromID, &entry.OwedFromName,
		&entry.OwedToID, &entry.OwedToName, &note, &itemID, &key,
		&entry.Paid, &entry.CreatedAt, &entry.CreatedByID); err != nil {
		return nil, err
	}
	entry.Note = note.String
	entry.ItemID = itemID.String
	entry.IdempotencyKey = key.String
	return entry, nil
}

// CreateMoneyEntry persists a new money entry. Entries carrying an
// idempotency key are created at most once: a second insert with the same
// key is a no-op that returns created=false (the pattern that makes
// settlement retries safe).
func (s *SQLiteStore) CreateMoneyEntry(ctx context.Context, entry *models.MoneyEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO money_entries (id, amount, owed_from_id, owed_from_name, owed_to_id,
		 owed_to_name, note, item_id, idempotency_key, paid, created_at, created_by_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING`,
		entry.ID, entry.Amount, entry.OwedFromID, entry.OwedFromName, entry.OwedToID,
		entry.OwedToName, nullable(entry.Note), nullable(entry.ItemID),
		nullable(entry.IdempotencyKey), entry.Paid, entry.CreatedAt, entry.CreatedByID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert money entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	return n > 0, nil
}

// GetMoneyEntry retrieves a money entry by ID.
func (s *SQLiteStore) GetMoneyEntry(ctx context.Context, entryID string) (*models.MoneyEntry, error) {
	entry, err := scanMoneyEntry(s.db.QueryRowContext(ctx,
		"SELECT "+moneyColumns+" FROM money_entries WHERE id = ?", entryID))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get money entry: %w", err)
	}
	return entry, nil
}

// UpdateMoneyEntry updates the editable fields of an entry.
func (s *SQLiteStore) UpdateMoneyEntry(ctx context.Context, entry *models.MoneyEntry) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE money_entries SET amount = ?, note = ?, paid = ? WHERE id = ?",
		entry.Amount, nullable(entry.Note), entry.Paid, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update money entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteMoneyEntry removes a money entry by ID.
func (s *SQLiteStore) DeleteMoneyEntry(ctx context.Context, entryID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM money_entries WHERE id = ?", entryID)
	if err != nil {
		return fmt.Errorf("failed to delete money entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListMoneyEntriesForUser returns entries where the user is on either side
// of the debt, newest first.
func (s *SQLiteStore) ListMoneyEntriesForUser(ctx context.Context, userID string) ([]*models.MoneyEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+moneyColumns+` FROM money_entries
		 WHERE owed_from_id = ? OR owed_to_id = ?
		 ORDER BY created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list money entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.MoneyEntry
	for rows.Next() {
		entry, err := scanMoneyEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan money entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate money entries: %w", err)
	}
	return entries, nil
}
