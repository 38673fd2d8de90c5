package models

import "errors"

// ParticipantState is the single-valued accept/decline state of a proposal
// participant. Modeling this as one enum (rather than accepted/rejected
// booleans) makes the both-set case unrepresentable.
type ParticipantState string

const (
	ParticipantPending  ParticipantState = "pending"
	ParticipantAccepted ParticipantState = "accepted"
	ParticipantRejected ParticipantState = "rejected"
)

// ProposalStatus is the aggregate status of a proposal.
type ProposalStatus string

const (
	// ProposalPending: at least one participant has not responded, and
	// responses so far are mixed or absent.
	ProposalPending ProposalStatus = "pending"
	// ProposalAccepted: every participant accepted.
	ProposalAccepted ProposalStatus = "accepted"
	// ProposalDeclined: every participant rejected.
	ProposalDeclined ProposalStatus = "declined"
	// ProposalRejected: the creator cancelled the proposal.
	ProposalRejected ProposalStatus = "rejected"
)

var (
	// ErrNotParticipant is returned when a user tries to act on a
	// participant slot that is not theirs.
	ErrNotParticipant = errors.New("user is not a participant of this proposal")

	// ErrInvalidTransition is returned for a disallowed state change.
	ErrInvalidTransition = errors.New("invalid participant state transition")
)

// Proposal represents a group-purchase coordination unit tied to one item.
type Proposal struct {
	// ID is the unique identifier for the proposal (UUID format).
	ID string `json:"id"`

	// ItemID is the wishlist item the group intends to buy.
	ItemID string `json:"itemId"`

	// CreatorID is the user who opened the proposal. Only the creator may
	// edit the participant list or cancel the proposal.
	CreatorID string `json:"creatorId"`

	// Status is derived from participant responses; see Recalculate.
	Status ProposalStatus `json:"status"`

	// Participants is the ordered list of users invited to go in on the
	// item, including the creator.
	Participants []Participant `json:"participants"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Participant is one user's slot within a proposal.
type Participant struct {
	// UserID identifies the participant.
	UserID string `json:"userId"`

	// AmountRequested is the share this participant is asked to put in.
	AmountRequested float64 `json:"amountRequested"`

	// State is the participant's response. Every participant starts
	// pending; accepted and rejected may flip either way (a participant
	// can change their mind until the purchase happens).
	State ParticipantState `json:"state"`

	// IsBuying marks the participant who fronts the purchase. Orthogonal
	// to State; settlement requires exactly one buyer.
	IsBuying bool `json:"isBuying"`
}

// Participant returns the slot for the given user, or nil.
func (p *Proposal) Participant(userID string) *Participant {
	for i := range p.Participants {
		if p.Participants[i].UserID == userID {
			return &p.Participants[i]
		}
	}
	return nil
}

// Respond records actorID's response on their own participant slot.
// Permitted transitions: pending -> accepted, pending -> rejected, and
// accepted <-> rejected in both directions. A transition back to pending is
// not allowed. Responding with the current state is a no-op.
//
// Only the participant themself may respond; anyone else gets
// ErrNotParticipant regardless of whether the target slot exists.
func (p *Proposal) Respond(actorID string, state ParticipantState) error {
	if state != ParticipantAccepted && state != ParticipantRejected {
		return ErrInvalidTransition
	}
	pt := p.Participant(actorID)
	if pt == nil {
		return ErrNotParticipant
	}
	pt.State = state
	p.Recalculate()
	return nil
}

// Recalculate derives the aggregate status from participant states.
// A creator-cancelled (rejected) proposal keeps that status permanently.
func (p *Proposal) Recalculate() {
	if p.Status == ProposalRejected {
		return
	}
	accepted, rejected := 0, 0
	for _, pt := range p.Participants {
		switch pt.State {
		case ParticipantAccepted:
			accepted++
		case ParticipantRejected:
			rejected++
		}
	}
	switch {
	case len(p.Participants) > 0 && accepted == len(p.Participants):
		p.Status = ProposalAccepted
	case len(p.Participants) > 0 && rejected == len(p.Participants):
		p.Status = ProposalDeclined
	default:
		p.Status = ProposalPending
	}
}

// Buyer returns the single buying participant, or nil when there is no
// buyer or more than one.
func (p *Proposal) Buyer() *Participant {
	var buyer *Participant
	for i := range p.Participants {
		if p.Participants[i].IsBuying {
			if buyer != nil {
				return nil
			}
			buyer = &p.Participants[i]
		}
	}
	return buyer
}
