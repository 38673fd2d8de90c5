package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "giftcircle-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, email, username string) *models.User {
	t.Helper()
	user := models.NewUser(email, username, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and timestamps", func(t *testing.T) {
		user := mustCreateUser(t, store, "alice@example.com", "alice")
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})

	t.Run("GetUserByID returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Item round trip with contributors", func(t *testing.T) {
		owner := mustCreateUser(t, store, "bob@example.com", "bob")
		helper := mustCreateUser(t, store, "carol@example.com", "carol")

		item := &models.Item{
			Name:        "Espresso machine",
			Description: "The fancy one",
			Price:       250,
			Priority:    3,
			CreatedByID: owner.ID,
			Public:      true,
			Contributors: []models.Contributor{
				{UserID: helper.ID, Contributing: true, ContributeAmount: 50},
			},
		}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		if item.ID == "" {
			t.Fatal("Expected item ID to be generated")
		}

		got, err := store.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.Name != item.Name || got.Price != item.Price || got.CreatedByID != owner.ID {
			t.Errorf("Item mismatch: got %+v", got)
		}
		if len(got.Contributors) != 1 {
			t.Fatalf("Expected 1 contributor, got %d", len(got.Contributors))
		}
		if got.Contributors[0].ContributeAmount != 50 {
			t.Errorf("Contributor amount mismatch: got %f", got.Contributors[0].ContributeAmount)
		}
	})

	t.Run("UpsertContributor on missing item returns ErrNotFound", func(t *testing.T) {
		err := store.UpsertContributor(ctx, "nonexistent-item", models.Contributor{UserID: "u", Getting: true})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveContributor is a no-op when absent", func(t *testing.T) {
		if err := store.RemoveContributor(ctx, "nonexistent-item", "nobody"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("ListItemsGottenBy filters on the getting flag", func(t *testing.T) {
		owner := mustCreateUser(t, store, "dave@example.com", "dave")
		gifter := mustCreateUser(t, store, "erin@example.com", "erin")

		getting := &models.Item{Name: "Book", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, getting); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		contributingOnly := &models.Item{Name: "Bike", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, contributingOnly); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		if err := store.UpsertContributor(ctx, getting.ID, models.Contributor{
			UserID: gifter.ID, Getting: true, NumberGetting: 1,
		}); err != nil {
			t.Fatalf("UpsertContributor failed: %v", err)
		}
		if err := store.UpsertContributor(ctx, contributingOnly.ID, models.Contributor{
			UserID: gifter.ID, Contributing: true, ContributeAmount: 20,
		}); err != nil {
			t.Fatalf("UpsertContributor failed: %v", err)
		}

		items, err := store.ListItemsGottenBy(ctx, gifter.ID)
		if err != nil {
			t.Fatalf("ListItemsGottenBy failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != getting.ID {
			t.Errorf("Expected only the getting item, got %d items", len(items))
		}
	})

	t.Run("Proposal round trip preserves participant order", func(t *testing.T) {
		owner := mustCreateUser(t, store, "frank@example.com", "frank")
		a := mustCreateUser(t, store, "grace@example.com", "grace")
		b := mustCreateUser(t, store, "heidi@example.com", "heidi")

		item := &models.Item{Name: "Tent", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		proposal := &models.Proposal{
			ItemID:    item.ID,
			CreatorID: a.ID,
			Participants: []models.Participant{
				{UserID: a.ID, AmountRequested: 40, IsBuying: true},
				{UserID: b.ID, AmountRequested: 40},
			},
		}
		if err := store.CreateProposal(ctx, proposal); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		got, err := store.GetProposal(ctx, proposal.ID)
		if err != nil {
			t.Fatalf("GetProposal failed: %v", err)
		}
		if got.Status != models.ProposalPending {
			t.Errorf("Expected pending status, got %s", got.Status)
		}
		if len(got.Participants) != 2 {
			t.Fatalf("Expected 2 participants, got %d", len(got.Participants))
		}
		if got.Participants[0].UserID != a.ID || got.Participants[1].UserID != b.ID {
			t.Error("Participant order not preserved")
		}
		if got.Participants[0].State != models.ParticipantPending {
			t.Errorf("Expected pending participant, got %s", got.Participants[0].State)
		}
		if !got.Participants[0].IsBuying || got.Participants[1].IsBuying {
			t.Error("IsBuying flags not preserved")
		}
	})

	t.Run("UpdateProposal replaces the participant list", func(t *testing.T) {
		owner := mustCreateUser(t, store, "ivan@example.com", "ivan")
		a := mustCreateUser(t, store, "judy@example.com", "judy")
		b := mustCreateUser(t, store, "karl@example.com", "karl")

		item := &models.Item{Name: "Grill", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		proposal := &models.Proposal{
			ItemID:       item.ID,
			CreatorID:    a.ID,
			Participants: []models.Participant{{UserID: a.ID}},
		}
		if err := store.CreateProposal(ctx, proposal); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		proposal.Participants = []models.Participant{
			{UserID: a.ID, State: models.ParticipantAccepted},
			{UserID: b.ID, State: models.ParticipantPending},
		}
		if err := store.UpdateProposal(ctx, proposal); err != nil {
			t.Fatalf("UpdateProposal failed: %v", err)
		}

		got, err := store.GetProposal(ctx, proposal.ID)
		if err != nil {
			t.Fatalf("GetProposal failed: %v", err)
		}
		if len(got.Participants) != 2 {
			t.Fatalf("Expected 2 participants after update, got %d", len(got.Participants))
		}
		if got.Participants[0].State != models.ParticipantAccepted {
			t.Errorf("Expected accepted state to survive, got %s", got.Participants[0].State)
		}
	})

	t.Run("ListAcceptedProposalItems requires own acceptance", func(t *testing.T) {
		owner := mustCreateUser(t, store, "lena@example.com", "lena")
		accepted := mustCreateUser(t, store, "mike@example.com", "mike")
		pending := mustCreateUser(t, store, "nina@example.com", "nina")

		item := &models.Item{Name: "Console", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		proposal := &models.Proposal{
			ItemID:    item.ID,
			CreatorID: accepted.ID,
			Participants: []models.Participant{
				{UserID: accepted.ID, State: models.ParticipantAccepted},
				{UserID: pending.ID, State: models.ParticipantPending},
			},
		}
		if err := store.CreateProposal(ctx, proposal); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		items, err := store.ListAcceptedProposalItems(ctx, accepted.ID)
		if err != nil {
			t.Fatalf("ListAcceptedProposalItems failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != item.ID {
			t.Errorf("Expected the proposal item for the accepted user, got %d items", len(items))
		}

		items, err = store.ListAcceptedProposalItems(ctx, pending.ID)
		if err != nil {
			t.Fatalf("ListAcceptedProposalItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Expected no items for the pending user, got %d", len(items))
		}
	})

	t.Run("CreateMoneyEntry dedupes by idempotency key", func(t *testing.T) {
		first := &models.MoneyEntry{
			Amount:         25,
			OwedFromID:     "u1",
			OwedFromName:   "alice",
			OwedToID:       "u2",
			OwedToName:     "bob",
			IdempotencyKey: "key-1",
			CreatedByID:    "u1",
		}
		created, err := store.CreateMoneyEntry(ctx, first)
		if err != nil {
			t.Fatalf("CreateMoneyEntry failed: %v", err)
		}
		if !created {
			t.Error("Expected first insert to create a row")
		}

		dup := &models.MoneyEntry{
			Amount:         25,
			OwedFromID:     "u1",
			OwedFromName:   "alice",
			OwedToID:       "u2",
			OwedToName:     "bob",
			IdempotencyKey: "key-1",
			CreatedByID:    "u1",
		}
		created, err = store.CreateMoneyEntry(ctx, dup)
		if err != nil {
			t.Fatalf("CreateMoneyEntry failed on duplicate key: %v", err)
		}
		if created {
			t.Error("Expected duplicate key insert to be a no-op")
		}

		entries, err := store.ListMoneyEntriesForUser(ctx, "u1")
		if err != nil {
			t.Fatalf("ListMoneyEntriesForUser failed: %v", err)
		}
		withKey := 0
		for _, e := range entries {
			if e.IdempotencyKey == "key-1" {
				withKey++
			}
		}
		if withKey != 1 {
			t.Errorf("Expected exactly one entry with the key, got %d", withKey)
		}
	})

	t.Run("Hand entries without a key never collide", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			entry := &models.MoneyEntry{
				Amount:       10,
				OwedFromID:   "u3",
				OwedFromName: "carol",
				OwedToID:     "u4",
				OwedToName:   "dave",
				CreatedByID:  "u3",
			}
			created, err := store.CreateMoneyEntry(ctx, entry)
			if err != nil {
				t.Fatalf("CreateMoneyEntry failed: %v", err)
			}
			if !created {
				t.Error("Expected keyless insert to always create a row")
			}
		}

		entries, err := store.ListMoneyEntriesForUser(ctx, "u3")
		if err != nil {
			t.Fatalf("ListMoneyEntriesForUser failed: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("Question round trip and answer", func(t *testing.T) {
		asker := mustCreateUser(t, store, "olaf@example.com", "olaf")
		asked := mustCreateUser(t, store, "pam@example.com", "pam")

		q := &models.Question{AskedByID: asker.ID, AskedOfID: asked.ID, Text: "What size?"}
		if err := store.CreateQuestion(ctx, q); err != nil {
			t.Fatalf("CreateQuestion failed: %v", err)
		}
		if q.ID == "" {
			t.Fatal("Expected question ID to be generated")
		}

		q.Answer = "Medium"
		q.AnsweredAt = q.CreatedAt + 1
		if err := store.UpdateQuestion(ctx, q); err != nil {
			t.Fatalf("UpdateQuestion failed: %v", err)
		}

		got, err := store.GetQuestion(ctx, q.ID)
		if err != nil {
			t.Fatalf("GetQuestion failed: %v", err)
		}
		if got.Answer != "Medium" || got.AnsweredAt == 0 {
			t.Errorf("Answer not persisted: %+v", got)
		}

		questions, err := store.ListQuestionsForUser(ctx, asked.ID)
		if err != nil {
			t.Fatalf("ListQuestionsForUser failed: %v", err)
		}
		if len(questions) != 1 {
			t.Errorf("Expected 1 question for the asked user, got %d", len(questions))
		}
	})

	t.Run("DeleteItem cascades contributors and proposals", func(t *testing.T) {
		owner := mustCreateUser(t, store, "quinn@example.com", "quinn")
		gifter := mustCreateUser(t, store, "rosa@example.com", "rosa")

		item := &models.Item{Name: "Lamp", CreatedByID: owner.ID}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		if err := store.UpsertContributor(ctx, item.ID, models.Contributor{
			UserID: gifter.ID, Getting: true, NumberGetting: 1,
		}); err != nil {
			t.Fatalf("UpsertContributor failed: %v", err)
		}
		proposal := &models.Proposal{
			ItemID:       item.ID,
			CreatorID:    gifter.ID,
			Participants: []models.Participant{{UserID: gifter.ID}},
		}
		if err := store.CreateProposal(ctx, proposal); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		if err := store.DeleteItem(ctx, item.ID); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		if _, err := store.GetProposal(ctx, proposal.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected proposal to cascade away, got %v", err)
		}
		items, err := store.ListItemsGottenBy(ctx, gifter.ID)
		if err != nil {
			t.Fatalf("ListItemsGottenBy failed: %v", err)
		}
		for _, it := range items {
			if it.ID == item.ID {
				t.Error("Expected contributor rows to cascade away")
			}
		}
	})
}
