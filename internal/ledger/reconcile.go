// Package ledger plans the money entries that settle an accepted
// group-purchase proposal: who owes the buyer what.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/giftcircle/giftcircle/internal/models"
)

// AutoNote is stamped on every entry synthesized from a proposal.
const AutoNote = "Created automatically from proposal."

var (
	// ErrNoBuyer: no participant has IsBuying set; nothing can be settled.
	ErrNoBuyer = errors.New("proposal has no buying participant")

	// ErrManyBuyers: more than one participant claims to be buying.
	ErrManyBuyers = errors.New("proposal has more than one buying participant")

	// ErrUnknownBuyer: the buyer's user record could not be resolved.
	ErrUnknownBuyer = errors.New("buyer could not be resolved")
)

// Resolver maps a user ID to a display username, "" when unknown.
type Resolver func(userID string) string

// Plan is the set of entries to persist for one settlement run, plus the
// count of participants skipped because their user record did not resolve.
type Plan struct {
	Entries []models.MoneyEntry
	Skipped int
}

// Key derives the idempotency key for a synthesized entry. The key is
// stable across settlement runs of the same proposal, so persisting the
// same plan twice creates nothing new.
func Key(proposalID, fromID, toID string) string {
	sum := sha256.Sum256([]byte(proposalID + "|" + fromID + "|" + toID))
	return hex.EncodeToString(sum[:])
}

// Build computes the settlement plan for a proposal from the point of view
// of currentUserID.
//
// When the current user is the buyer, the plan holds one entry per other
// participant with a positive requested amount, each owed to the buyer.
// Participants whose user record does not resolve are skipped, not fatal.
//
// When the current user is not the buyer, the plan holds at most one entry:
// the current user's own requested amount owed to the buyer, omitted when
// the amount is not positive.
//
// A missing or ambiguous buyer, an unresolvable buyer, or a current user
// who is not a participant are hard errors; no plan is produced.
func Build(p *models.Proposal, currentUserID string, resolve Resolver) (*Plan, error) {
	buyer := p.Buyer()
	if buyer == nil {
		for i := range p.Participants {
			if p.Participants[i].IsBuying {
				return nil, ErrManyBuyers
			}
		}
		return nil, ErrNoBuyer
	}

	buyerName := resolve(buyer.UserID)
	if buyerName == "" {
		return nil, ErrUnknownBuyer
	}

	if p.Participant(currentUserID) == nil {
		return nil, models.ErrNotParticipant
	}

	plan := &Plan{Entries: []models.MoneyEntry{}}

	entry := func(from *models.Participant, fromName string) models.MoneyEntry {
		return models.MoneyEntry{
			Amount:         from.AmountRequested,
			OwedFromID:     from.UserID,
			OwedFromName:   fromName,
			OwedToID:       buyer.UserID,
			OwedToName:     buyerName,
			Note:           AutoNote,
			ItemID:         p.ItemID,
			IdempotencyKey: Key(p.ID, from.UserID, buyer.UserID),
			CreatedByID:    currentUserID,
		}
	}

	if currentUserID == buyer.UserID {
		for i := range p.Participants {
			pt := &p.Participants[i]
			if pt.UserID == buyer.UserID || pt.AmountRequested <= 0 {
				continue
			}
			name := resolve(pt.UserID)
			if name == "" {
				plan.Skipped++
				continue
			}
			plan.Entries = append(plan.Entries, entry(pt, name))
		}
		return plan, nil
	}

	me := p.Participant(currentUserID)
	if me.AmountRequested > 0 {
		name := resolve(currentUserID)
		plan.Entries = append(plan.Entries, entry(me, name))
	}
	return plan, nil
}
