// Package contrib builds the per-recipient contribution grouping: the view
// of everything the current user is getting or going in on, organized by
// who the gift is for.
package contrib

import (
	"sort"

	"github.com/giftcircle/giftcircle/internal/models"
)

// Kind tags where a grouped entry came from.
type Kind string

const (
	// KindGetting: the user pledged to get the item themselves.
	KindGetting Kind = "getting"
	// KindProposal: the item comes from an accepted group-purchase proposal.
	KindProposal Kind = "proposal"
)

// Entry is one item in a recipient group, tagged with its origin.
type Entry struct {
	Kind Kind        `json:"kind"`
	Item models.Item `json:"item"`
}

// RecipientGroup is all entries gifted to one user.
type RecipientGroup struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Entries  []Entry `json:"entries"`
}

// NameResolver maps a user ID to a display username.
// It must return "" for unknown IDs rather than failing.
type NameResolver func(userID string) string

// Group transforms the user's getting-items and accepted-proposal items
// into recipient groups:
//
//   - entries are bucketed by the item's CreatedByID (the gift recipient),
//     getting items first, then proposal items, in input order
//   - within a bucket, entries are stable-sorted by item name ascending
//   - buckets are sorted by resolved recipient username ascending
//
// Items without a CreatedByID are dropped. Inputs are never mutated and the
// result is deterministic for a fixed input. Group never fails; missing
// names simply sort as the empty string.
func Group(getting, proposals []models.Item, resolve NameResolver) []RecipientGroup {
	buckets := make(map[string][]Entry)
	var order []string // recipient IDs in first-seen order

	add := func(kind Kind, items []models.Item) {
		for _, item := range items {
			if item.CreatedByID == "" {
				continue
			}
			if _, seen := buckets[item.CreatedByID]; !seen {
				order = append(order, item.CreatedByID)
			}
			buckets[item.CreatedByID] = append(buckets[item.CreatedByID], Entry{Kind: kind, Item: item})
		}
	}
	add(KindGetting, getting)
	add(KindProposal, proposals)

	groups := make([]RecipientGroup, 0, len(order))
	for _, userID := range order {
		entries := buckets[userID]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Item.Name < entries[j].Item.Name
		})
		groups = append(groups, RecipientGroup{
			UserID:   userID,
			Username: resolve(userID),
			Entries:  entries,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Username < groups[j].Username
	})

	return groups
}
