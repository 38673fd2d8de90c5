package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/giftcircle/giftcircle/internal/directory"
	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/ledger"
	"github.com/giftcircle/giftcircle/internal/metrics"
	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// MoneyService manages the money ledger: hand-created debts and the
// entries synthesized when an accepted proposal is settled.
type MoneyService struct {
	store storage.Store
	dir   *directory.Directory
	bus   *events.Bus
}

// NewMoneyService creates a new MoneyService.
func NewMoneyService(store storage.Store, dir *directory.Directory, bus *events.Bus) *MoneyService {
	return &MoneyService{store: store, dir: dir, bus: bus}
}

// Create records a hand-entered debt. The acting user must be on one side
// of it. Names are denormalized from the directory at creation time.
func (s *MoneyService) Create(ctx context.Context, actorID string, entry *models.MoneyEntry) (*models.MoneyEntry, error) {
	if entry.Amount <= 0 {
		return nil, validationf("amount must be positive")
	}
	if entry.OwedFromID == "" || entry.OwedToID == "" {
		return nil, validationf("both sides of the debt are required")
	}
	if entry.OwedFromID == entry.OwedToID {
		return nil, validationf("a debt needs two different users")
	}
	if actorID != entry.OwedFromID && actorID != entry.OwedToID {
		return nil, ErrForbidden
	}

	entry.OwedFromName = s.dir.ResolveName(entry.OwedFromID)
	entry.OwedToName = s.dir.ResolveName(entry.OwedToID)
	entry.CreatedByID = actorID
	entry.IdempotencyKey = "" // only settlement entries carry keys

	if _, err := s.store.CreateMoneyEntry(ctx, entry); err != nil {
		slog.Error("CreateMoneyEntry failed", "user_id", actorID, "error", err)
		return nil, err
	}

	s.bus.Publish(events.TopicMoneyUpdated, entry.ID)
	return entry, nil
}

// List returns entries where the acting user is on either side.
func (s *MoneyService) List(ctx context.Context, actorID string) ([]*models.MoneyEntry, error) {
	return s.store.ListMoneyEntriesForUser(ctx, actorID)
}

// Update edits an entry's amount, note, or paid flag. Either side of the
// debt may edit.
func (s *MoneyService) Update(ctx context.Context, actorID, entryID string, amount float64, note string, paid bool) (*models.MoneyEntry, error) {
	entry, err := s.store.GetMoneyEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if actorID != entry.OwedFromID && actorID != entry.OwedToID {
		return nil, ErrForbidden
	}
	if amount <= 0 {
		return nil, validationf("amount must be positive")
	}

	entry.Amount = amount
	entry.Note = note
	entry.Paid = paid
	if err := s.store.UpdateMoneyEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.bus.Publish(events.TopicMoneyUpdated, entry.ID)
	return entry, nil
}

// Delete removes an entry. Either side of the debt may delete.
func (s *MoneyService) Delete(ctx context.Context, actorID, entryID string) error {
	entry, err := s.store.GetMoneyEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if actorID != entry.OwedFromID && actorID != entry.OwedToID {
		return ErrForbidden
	}

	if err := s.store.DeleteMoneyEntry(ctx, entryID); err != nil {
		return err
	}

	s.bus.Publish(events.TopicMoneyUpdated, entryID)
	return nil
}

// SettleResult reports the outcome of one settlement run.
type SettleResult struct {
	// Created is the number of entries written this run.
	Created int `json:"created"`
	// Existing is the number of planned entries that were already in the
	// ledger from an earlier run (dedup by idempotency key).
	Existing int `json:"existing"`
	// Skipped is the number of participants dropped because their user
	// record did not resolve.
	Skipped int `json:"skipped"`
	// Failed is the number of entries that could not be written.
	Failed int `json:"failed"`
}

// SettleProposal synthesizes money entries for an accepted proposal from
// the acting user's point of view (see the ledger package for the buyer
// and non-buyer cases).
//
// Persistence is per-entry: one failed write does not roll back the
// others, it is logged and counted. Thanks to the idempotency key a
// repeated settlement run creates nothing new and reports the overlap in
// Existing instead. A run where no participant owes anything fails with
// ErrNothingToSettle.
func (s *MoneyService) SettleProposal(ctx context.Context, actorID, proposalID string) (*SettleResult, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.ProposalAccepted {
		return nil, validationf("only accepted proposals can be settled")
	}

	plan, err := ledger.Build(proposal, actorID, s.dir.ResolveName)
	if err != nil {
		if err == models.ErrNotParticipant {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if len(plan.Entries) == 0 {
		return nil, ErrNothingToSettle
	}

	result := &SettleResult{Skipped: plan.Skipped}
	for i := range plan.Entries {
		entry := plan.Entries[i]
		created, err := s.store.CreateMoneyEntry(ctx, &entry)
		switch {
		case err != nil:
			slog.Error("Settlement entry failed",
				"proposal_id", proposalID,
				"owed_from", entry.OwedFromID,
				"owed_to", entry.OwedToID,
				"error", err,
			)
			result.Failed++
		case created:
			result.Created++
		default:
			result.Existing++
		}
	}

	if result.Created == 0 && result.Existing == 0 {
		if result.Failed > 0 {
			return nil, fmt.Errorf("no settlement entries could be created")
		}
		return nil, ErrNothingToSettle
	}

	metrics.LedgerEntriesCreated.Add(float64(result.Created))
	if result.Created > 0 {
		s.bus.Publish(events.TopicMoneyUpdated, "")
	}
	slog.Info("Proposal settled",
		"proposal_id", proposalID,
		"user_id", actorID,
		"created", result.Created,
		"existing", result.Existing,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}
