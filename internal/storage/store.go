// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/giftcircle/giftcircle/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations for all GiftCircle entities.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// ...) without changing the service layer.
type Store interface {
	// Users.
	//
	// GetUserByEmail returns (nil, nil) when no user has the email; the
	// authenticator uses the absence as a signal, not an error.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	// Items. Create/Get/Update carry the contributor list with the item.
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, itemID string) error
	ListItemsByOwner(ctx context.Context, ownerID string) ([]*models.Item, error)

	// ListItemsGottenBy returns items on which the user has an active
	// getting pledge.
	ListItemsGottenBy(ctx context.Context, userID string) ([]*models.Item, error)

	// UpsertContributor records or updates one user's pledge on an item;
	// RemoveContributor retracts it.
	UpsertContributor(ctx context.Context, itemID string, c models.Contributor) error
	RemoveContributor(ctx context.Context, itemID, userID string) error

	// Proposals. Participants travel with the proposal.
	CreateProposal(ctx context.Context, proposal *models.Proposal) error
	GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error)
	UpdateProposal(ctx context.Context, proposal *models.Proposal) error
	DeleteProposal(ctx context.Context, proposalID string) error
	ListProposalsForUser(ctx context.Context, userID string) ([]*models.Proposal, error)

	// ListAcceptedProposalItems returns the target items of proposals in
	// which the user's own response is accepted.
	ListAcceptedProposalItems(ctx context.Context, userID string) ([]*models.Item, error)

	// Money entries. CreateMoneyEntry reports whether a row was actually
	// written: an entry whose idempotency key already exists is not
	// duplicated and returns created=false.
	CreateMoneyEntry(ctx context.Context, entry *models.MoneyEntry) (created bool, err error)
	GetMoneyEntry(ctx context.Context, entryID string) (*models.MoneyEntry, error)
	UpdateMoneyEntry(ctx context.Context, entry *models.MoneyEntry) error
	DeleteMoneyEntry(ctx context.Context, entryID string) error
	ListMoneyEntriesForUser(ctx context.Context, userID string) ([]*models.MoneyEntry, error)

	// Questions.
	CreateQuestion(ctx context.Context, q *models.Question) error
	GetQuestion(ctx context.Context, questionID string) (*models.Question, error)
	UpdateQuestion(ctx context.Context, q *models.Question) error
	ListQuestionsForUser(ctx context.Context, userID string) ([]*models.Question, error)

	// Close releases any resources held by the store.
	Close() error
}
