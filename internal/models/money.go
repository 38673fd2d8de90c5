package models

// MoneyEntry represents a directed debt between two users, optionally
// linked to a wishlist item. Entries are created by hand ("you owe me for
// the cake") or synthesized from an accepted proposal's settlement.
type MoneyEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// Amount is the owed amount.
	Amount float64 `json:"amount"`

	// OwedFromID/OwedToID direct the debt: OwedFrom owes OwedTo.
	// The names are denormalized at creation time so the record stays
	// readable even if a user later renames.
	OwedFromID   string `json:"owedFromId"`
	OwedFromName string `json:"owedFromName"`
	OwedToID     string `json:"owedToId"`
	OwedToName   string `json:"owedToName"`

	// Note is free-form context for the debt.
	Note string `json:"note,omitempty"`

	// ItemID optionally links the debt to the gift it paid for.
	ItemID string `json:"itemId,omitempty"`

	// IdempotencyKey dedupes entries synthesized from proposals: creating
	// an entry whose key already exists is a no-op. Hand-created entries
	// have no key.
	IdempotencyKey string `json:"-"`

	// Paid marks the debt as settled.
	Paid bool `json:"paid"`

	// CreatedAt and CreatedByID record who recorded the debt and when.
	CreatedAt   int64  `json:"createdAt"`
	CreatedByID string `json:"createdById"`
}
