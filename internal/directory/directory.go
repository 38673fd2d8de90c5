// Package directory caches the user list in memory for synchronous
// name/image lookups. Lookups never fail: unknown IDs resolve to the zero
// Entry.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/models"
)

// UserLister is the slice of the store the directory needs.
type UserLister interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Entry is the public part of a user record.
type Entry struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Directory is a process-wide userId -> Entry cache. Safe for concurrent
// use; Refresh swaps the whole map at once.
type Directory struct {
	users UserLister

	mu   sync.RWMutex
	byID map[string]Entry
}

// New creates an empty directory backed by the given store.
// Call Refresh to warm it.
func New(users UserLister) *Directory {
	return &Directory{
		users: users,
		byID:  make(map[string]Entry),
	}
}

// Refresh reloads the cache from the store.
func (d *Directory) Refresh(ctx context.Context) error {
	users, err := d.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh user directory: %w", err)
	}

	byID := make(map[string]Entry, len(users))
	for _, u := range users {
		byID[u.ID] = Entry{Name: u.Username, ImageURL: u.ImageURL}
	}

	d.mu.Lock()
	d.byID = byID
	d.mu.Unlock()
	return nil
}

// Resolve returns the entry for a user ID, or the zero Entry when the ID
// is unknown. It never fails.
func (d *Directory) Resolve(userID string) Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID[userID]
}

// ResolveName returns just the username, "" when unknown.
func (d *Directory) ResolveName(userID string) string {
	return d.Resolve(userID).Name
}

// User is one row of the directory listing.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// List returns every known user, sorted by name then ID.
func (d *Directory) List() []User {
	d.mu.RLock()
	users := make([]User, 0, len(d.byID))
	for id, e := range d.byID {
		users = append(users, User{ID: id, Name: e.Name, ImageURL: e.ImageURL})
	}
	d.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users
}

// Watch refreshes the directory whenever a user record changes.
func (d *Directory) Watch(bus *events.Bus) {
	bus.Subscribe(events.TopicUserUpdated, func(id string) {
		if err := d.Refresh(context.Background()); err != nil {
			slog.Warn("Directory refresh failed", "user_id", id, "error", err)
		}
	})
}
