package models

// Item represents a wishlist entry.
// It is owned by its creator; other users record gifting intent on it
// through the Contributors list.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Description is optional free-form text.
	Description string `json:"description,omitempty"`

	// Price is the expected price. When the exact price is unknown the
	// creator may give a range via MinPrice/MaxPrice instead.
	Price float64 `json:"price,omitempty"`

	// MinPrice and MaxPrice bound the price when Price is not exact.
	MinPrice float64 `json:"minPrice,omitempty"`
	MaxPrice float64 `json:"maxPrice,omitempty"`

	// Priority orders items within a list (higher = more wanted).
	Priority int `json:"priority,omitempty"`

	// ImageURL is an optional picture reference for the item.
	ImageURL string `json:"imageUrl,omitempty"`

	// CreatedByID is the user who owns this item. In the contribution
	// grouping view this identifies the gift recipient.
	CreatedByID string `json:"createdById"`

	// Public controls whether users outside the owner's circle can see
	// the item. MatchesList marks items mirrored from a matched list.
	Public      bool `json:"public"`
	MatchesList bool `json:"matchesList,omitempty"`

	// Contributors records other users' gifting intent on this item.
	// The owner does not see these.
	Contributors []Contributor `json:"contributors,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Contributor is one user's pledge on an item: either getting it outright,
// contributing money toward it, or both.
//
// NumberGetting is meaningful only while Getting is set, ContributeAmount
// only while Contributing is set. Normalize zeroes the scoped fields so the
// invariant cannot drift through partial updates.
type Contributor struct {
	// UserID identifies the pledging user.
	UserID string `json:"userId"`

	// Getting marks a pledge to personally acquire the item.
	// NumberGetting is how many the user is getting (usually 1).
	Getting       bool `json:"getting"`
	NumberGetting int  `json:"numberGetting,omitempty"`

	// Contributing marks a pledge to put money toward the item without
	// being the sole buyer. ContributeAmount is the pledged amount.
	Contributing     bool    `json:"contributing"`
	ContributeAmount float64 `json:"contributeAmount,omitempty"`
}

// Normalize zeroes flag-scoped fields whose flag is unset.
func (c *Contributor) Normalize() {
	if !c.Getting {
		c.NumberGetting = 0
	}
	if !c.Contributing {
		c.ContributeAmount = 0
	}
}

// Active reports whether the contributor still records any intent.
// A record with both flags cleared is retracted and should be removed.
func (c *Contributor) Active() bool {
	return c.Getting || c.Contributing
}
