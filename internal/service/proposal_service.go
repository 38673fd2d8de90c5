package service

import (
	"context"
	"log/slog"

	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/metrics"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// ProposalService manages group-purchase proposals and participant
// responses.
type ProposalService struct {
	store storage.Store
	bus   *events.Bus
}

// NewProposalService creates a new ProposalService with the given storage
// backend.
func NewProposalService(store storage.Store, bus *events.Bus) *ProposalService {
	return &ProposalService{store: store, bus: bus}
}

// Create opens a proposal on an item. The creator is added as a
// participant automatically if the given list omits them; every
// participant starts pending.
func (s *ProposalService) Create(ctx context.Context, actorID string, proposal *models.Proposal) (*models.Proposal, error) {
	if proposal.ItemID == "" {
		return nil, validationf("item required")
	}
	if len(proposal.Participants) == 0 {
		return nil, validationf("at least one participant required")
	}

	item, err := s.store.GetItem(ctx, proposal.ItemID)
	if err != nil {
		return nil, err
	}
	if item.CreatedByID == actorID {
		return nil, validationf("cannot propose going in on your own item")
	}

	proposal.CreatorID = actorID
	proposal.Status = models.ProposalPending
	for i := range proposal.Participants {
		proposal.Participants[i].State = models.ParticipantPending
		if proposal.Participants[i].AmountRequested < 0 {
			return nil, validationf("amounts must not be negative")
		}
	}
	if proposal.Participant(actorID) == nil {
		proposal.Participants = append([]models.Participant{{UserID: actorID, State: models.ParticipantPending}}, proposal.Participants...)
	}

	if err := s.store.CreateProposal(ctx, proposal); err != nil {
		slog.Error("CreateProposal failed", "user_id", actorID, "error", err)
		return nil, err
	}

	s.bus.Publish(events.TopicProposalUpdated, proposal.ID)
	return proposal, nil
}

// Get returns a proposal the acting user is involved in.
func (s *ProposalService) Get(ctx context.Context, actorID, proposalID string) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.CreatorID != actorID && proposal.Participant(actorID) == nil {
		return nil, ErrForbidden
	}
	return proposal, nil
}

// List returns proposals the acting user created or participates in.
func (s *ProposalService) List(ctx context.Context, actorID string) ([]*models.Proposal, error) {
	return s.store.ListProposalsForUser(ctx, actorID)
}

// Respond records the acting user's accept/decline on their own slot.
// The permission check runs before any write: a user who is not the
// participant gets ErrForbidden and nothing changes.
func (s *ProposalService) Respond(ctx context.Context, actorID, proposalID string, state models.ParticipantState) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	before := proposal.Status
	if err := proposal.Respond(actorID, state); err != nil {
		if err == models.ErrNotParticipant {
			return nil, ErrForbidden
		}
		return nil, err
	}

	if err := s.store.UpdateProposal(ctx, proposal); err != nil {
		slog.Error("Respond failed", "user_id", actorID, "proposal_id", proposalID, "error", err)
		return nil, err
	}

	if before != proposal.Status &&
		(proposal.Status == models.ProposalAccepted || proposal.Status == models.ProposalDeclined) {
		metrics.ProposalsResolved.WithLabelValues(string(proposal.Status)).Inc()
		slog.Info("Proposal resolved", "proposal_id", proposal.ID, "status", proposal.Status)
	}

	s.bus.Publish(events.TopicProposalUpdated, proposal.ID)
	return proposal, nil
}

// Update lets the creator edit the participant list and amounts of a
// pending proposal. Existing responses are preserved for participants who
// stay on the list.
func (s *ProposalService) Update(ctx context.Context, actorID, proposalID string, participants []models.Participant) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.CreatorID != actorID {
		return nil, ErrForbidden
	}
	if proposal.Status != models.ProposalPending {
		return nil, validationf("only pending proposals can be edited")
	}
	if len(participants) == 0 {
		return nil, validationf("at least one participant required")
	}

	for i := range participants {
		if participants[i].AmountRequested < 0 {
			return nil, validationf("amounts must not be negative")
		}
		if prev := proposal.Participant(participants[i].UserID); prev != nil {
			participants[i].State = prev.State
		} else {
			participants[i].State = models.ParticipantPending
		}
	}

	proposal.Participants = participants
	proposal.Recalculate()
	if err := s.store.UpdateProposal(ctx, proposal); err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicProposalUpdated, proposal.ID)
	return proposal, nil
}

// Cancel marks a proposal rejected. Only the creator may cancel.
func (s *ProposalService) Cancel(ctx context.Context, actorID, proposalID string) (*models.Proposal, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.CreatorID != actorID {
		return nil, ErrForbidden
	}

	proposal.Status = models.ProposalRejected
	if err := s.store.UpdateProposal(ctx, proposal); err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicProposalUpdated, proposal.ID)
	return proposal, nil
}

// Delete removes a proposal. Only the creator may delete.
func (s *ProposalService) Delete(ctx context.Context, actorID, proposalID string) error {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.CreatorID != actorID {
		return ErrForbidden
	}

	if err := s.store.DeleteProposal(ctx, proposalID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicProposalDeleted, proposalID)
	return nil
}
