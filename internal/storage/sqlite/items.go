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

const itemColumns = `id, name, description, price, min_price, max_price, priority,
	image_url, created_by_id, public, matches_list, created_at, updated_at`

// itemColumnsQualified disambiguates joins against tables that share
// column names with items.
const itemColumnsQualified = `items.id, items.name, items.description, items.price,
	items.min_price, items.max_price, items.priority, items.image_url,
	items.created_by_id, items.public, items.matches_list, items.created_at, items.updated_at`

func scanItem(row interface{ Scan(...interface{}) error }) (*models.Item, error) {
	item := &models.Item{}
	var description, image sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &description, &item.Price,
		&item.MinPrice, &item.MaxPrice, &item.Priority, &image,
		&item.CreatedByID, &item.Public, &item.MatchesList,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Description = description.String
	item.ImageURL = image.String
	return item, nil
}

// CreateItem persists a new item and its contributor list in one
// transaction.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, name, description, price, min_price, max_price, priority,
		 image_url, created_by_id, public, matches_list, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, nullable(item.Description), item.Price, item.MinPrice,
		item.MaxPrice, item.Priority, nullable(item.ImageURL), item.CreatedByID,
		item.Public, item.MatchesList, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	for i := range item.Contributors {
		c := &item.Contributors[i]
		c.Normalize()
		if err := insertContributor(ctx, tx, item.ID, *c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertContributor(ctx context.Context, tx *sql.Tx, itemID string, c models.Contributor) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO contributors (item_id, user_id, getting, number_getting, contributing, contribute_amount)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(item_id, user_id) DO UPDATE SET
		 getting = excluded.getting, number_getting = excluded.number_getting,
		 contributing = excluded.contributing, contribute_amount = excluded.contribute_amount`,
		itemID, c.UserID, c.Getting, c.NumberGetting, c.Contributing, c.ContributeAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contributor: %w", err)
	}
	return nil
}

// GetItem retrieves an item and its contributors by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", itemID))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if err := s.loadContributors(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *SQLiteStore) loadContributors(ctx context.Context, item *models.Item) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, getting, number_getting, contributing, contribute_amount
		 FROM contributors WHERE item_id = ? ORDER BY user_id`,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get contributors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Contributor
		if err := rows.Scan(&c.UserID, &c.Getting, &c.NumberGetting,
			&c.Contributing, &c.ContributeAmount); err != nil {
			return fmt.Errorf("failed to scan contributor: %w", err)
		}
		item.Contributors = append(item.Contributors, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate contributors: %w", err)
	}
	return nil
}

// UpdateItem updates the item's own fields. Contributor changes go through
// UpsertContributor/RemoveContributor.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, min_price = ?,
		 max_price = ?, priority = ?, image_url = ?, public = ?, matches_list = ?,
		 updated_at = ? WHERE id = ?`,
		item.Name, nullable(item.Description), item.Price, item.MinPrice,
		item.MaxPrice, item.Priority, nullable(item.ImageURL), item.Public,
		item.MatchesList, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item; contributors and proposals cascade.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListItemsByOwner returns a user's own items, most wanted first.
func (s *SQLiteStore) ListItemsByOwner(ctx context.Context, ownerID string) ([]*models.Item, error) {
	return s.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE created_by_id = ? ORDER BY priority DESC, name",
		ownerID)
}

// ListItemsGottenBy returns items on which the user has an active getting
// pledge.
func (s *SQLiteStore) ListItemsGottenBy(ctx context.Context, userID string) ([]*models.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumnsQualified+` FROM items
		 JOIN contributors c ON c.item_id = items.id
		 WHERE c.user_id = ? AND c.getting = 1
		 ORDER BY items.created_at`,
		userID)
}

func (s *SQLiteStore) queryItems(ctx context.Context, query string, args ...interface{}) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	for _, item := range items {
		if err := s.loadContributors(ctx, item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// UpsertContributor records or updates one user's pledge on an item.
func (s *SQLiteStore) UpsertContributor(ctx context.Context, itemID string, c models.Contributor) error {
	c.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM items WHERE id = ?", itemID).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}

	if err := insertContributor(ctx, tx, itemID, c); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveContributor retracts a user's pledge. Removing a pledge that does
// not exist is a no-op.
func (s *SQLiteStore) RemoveContributor(ctx context.Context, itemID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM contributors WHERE item_id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}
	return nil
}
