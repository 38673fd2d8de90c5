package service

import (
	"context"
	"log/slog"

	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// ItemService manages wishlist items and the gifting intent other users
// record on them.
type ItemService struct {
	store storage.Store
	bus   *events.Bus
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store, bus *events.Bus) *ItemService {
	return &ItemService{store: store, bus: bus}
}

// Create adds an item to the acting user's wishlist.
func (s *ItemService) Create(ctx context.Context, actorID string, item *models.Item) (*models.Item, error) {
	if item.Name == "" {
		return nil, validationf("item name required")
	}
	item.CreatedByID = actorID
	item.Contributors = nil // intent is recorded separately, never at creation

	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("CreateItem failed", "user_id", actorID, "error", err)
		return nil, err
	}

	s.bus.Publish(events.TopicItemUpdated, item.ID)
	return item, nil
}

// Get returns an item visible to the acting user. The owner never sees the
// contributor list (it would spoil their gifts); other users only see the
// item at all when it is public or on their own radar.
func (s *ItemService) Get(ctx context.Context, actorID, itemID string) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.CreatedByID == actorID {
		item.Contributors = nil
		return item, nil
	}
	if !item.Public {
		return nil, ErrForbidden
	}
	return item, nil
}

// ListOwn returns the acting user's items, contributors stripped.
func (s *ItemService) ListOwn(ctx context.Context, actorID string) ([]*models.Item, error) {
	items, err := s.store.ListItemsByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Contributors = nil
	}
	return items, nil
}

// ListFor returns another user's visible items, contributor lists intact so
// the viewer can coordinate with other gifters.
func (s *ItemService) ListFor(ctx context.Context, actorID, ownerID string) ([]*models.Item, error) {
	if actorID == ownerID {
		return s.ListOwn(ctx, actorID)
	}

	items, err := s.store.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	visible := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if item.Public {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// Update modifies an item. Only the owner may edit the item's own fields.
func (s *ItemService) Update(ctx context.Context, actorID, itemID string, item *models.Item) (*models.Item, error) {
	existing, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existing.CreatedByID != actorID {
		return nil, ErrForbidden
	}
	if item.Name == "" {
		return nil, validationf("item name required")
	}

	item.ID = existing.ID
	item.CreatedByID = existing.CreatedByID
	item.CreatedAt = existing.CreatedAt
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicItemUpdated, item.ID)
	return item, nil
}

// Delete removes an item. Only the owner may delete it.
func (s *ItemService) Delete(ctx context.Context, actorID, itemID string) error {
	existing, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.CreatedByID != actorID {
		return ErrForbidden
	}

	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicItemDeleted, itemID)
	return nil
}

// SetIntent records the acting user's pledge on someone else's item.
// Retracting both flags removes the record entirely.
func (s *ItemService) SetIntent(ctx context.Context, actorID, itemID string, c models.Contributor) error {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.CreatedByID == actorID {
		return validationf("cannot record gifting intent on your own item")
	}

	c.UserID = actorID
	c.Normalize()
	if c.Getting && c.NumberGetting <= 0 {
		c.NumberGetting = 1
	}
	if c.Contributing && c.ContributeAmount <= 0 {
		return validationf("contribute amount must be positive")
	}

	if !c.Active() {
		return s.ClearIntent(ctx, actorID, itemID)
	}

	if err := s.store.UpsertContributor(ctx, itemID, c); err != nil {
		slog.Error("SetIntent failed", "user_id", actorID, "item_id", itemID, "error", err)
		return err
	}

	s.bus.Publish(events.TopicItemUpdated, itemID)
	return nil
}

// ClearIntent retracts the acting user's pledge on an item.
func (s *ItemService) ClearIntent(ctx context.Context, actorID, itemID string) error {
	if err := s.store.RemoveContributor(ctx, itemID, actorID); err != nil {
		return err
	}
	s.bus.Publish(events.TopicItemUpdated, itemID)
	return nil
}
