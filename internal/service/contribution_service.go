package service

import (
	"context"

	"github.com/giftcircle/giftcircle/internal/contrib"
	"github.com/giftcircle/giftcircle/internal/directory"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// ContributionService builds the per-recipient view of everything a user
// is getting or going in on.
type ContributionService struct {
	store storage.Store
	dir   *directory.Directory
}

// NewContributionService creates a new ContributionService.
func NewContributionService(store storage.Store, dir *directory.Directory) *ContributionService {
	return &ContributionService{store: store, dir: dir}
}

// Groups fetches the user's getting items and accepted-proposal items and
// groups them by gift recipient. The result is rebuilt from storage on
// every call; it is a view, not an entity.
func (s *ContributionService) Groups(ctx context.Context, userID string) ([]contrib.RecipientGroup, error) {
	getting, err := s.store.ListItemsGottenBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	proposalItems, err := s.store.ListAcceptedProposalItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return contrib.Group(deref(getting), deref(proposalItems), s.dir.ResolveName), nil
}

func deref(items []*models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out
}
