package models

import (
	"errors"
	"testing"
)

func twoPersonProposal() *Proposal {
	return &Proposal{
		ID:        "prop-1",
		CreatorID: "alice",
		Status:    ProposalPending,
		Participants: []Participant{
			{UserID: "alice", State: ParticipantPending, IsBuying: true},
			{UserID: "bob", State: ParticipantPending},
		},
	}
}

func TestRespondTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      ParticipantState
		to        ParticipantState
		wantErr   error
		wantState ParticipantState
	}{
		{name: "pending to accepted", from: ParticipantPending, to: ParticipantAccepted, wantState: ParticipantAccepted},
		{name: "pending to rejected", from: ParticipantPending, to: ParticipantRejected, wantState: ParticipantRejected},
		{name: "accepted to rejected", from: ParticipantAccepted, to: ParticipantRejected, wantState: ParticipantRejected},
		{name: "rejected back to accepted", from: ParticipantRejected, to: ParticipantAccepted, wantState: ParticipantAccepted},
		{name: "cannot reset to pending", from: ParticipantAccepted, to: ParticipantPending, wantErr: ErrInvalidTransition, wantState: ParticipantAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoPersonProposal()
			p.Participants[1].State = tt.from

			err := p.Respond("bob", tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Respond error = %v, want %v", err, tt.wantErr)
			}
			if got := p.Participant("bob").State; got != tt.wantState {
				t.Errorf("state = %s, want %s", got, tt.wantState)
			}
		})
	}
}

func TestRespondOnlyByParticipant(t *testing.T) {
	p := twoPersonProposal()

	err := p.Respond("mallory", ParticipantAccepted)
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	// No participant state may have changed.
	for _, pt := range p.Participants {
		if pt.State != ParticipantPending {
			t.Errorf("participant %s state changed to %s", pt.UserID, pt.State)
		}
	}
}

func TestRecalculateStatus(t *testing.T) {
	p := twoPersonProposal()

	if err := p.Respond("alice", ParticipantAccepted); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if p.Status != ProposalPending {
		t.Errorf("status = %s after one accept, want pending", p.Status)
	}

	if err := p.Respond("bob", ParticipantAccepted); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if p.Status != ProposalAccepted {
		t.Errorf("status = %s after all accepts, want accepted", p.Status)
	}

	// Bob changes his mind: the proposal drops back to pending.
	if err := p.Respond("bob", ParticipantRejected); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if p.Status != ProposalPending {
		t.Errorf("status = %s after mixed responses, want pending", p.Status)
	}

	if err := p.Respond("alice", ParticipantRejected); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if p.Status != ProposalDeclined {
		t.Errorf("status = %s after all rejects, want declined", p.Status)
	}
}

func TestRecalculateKeepsCreatorCancellation(t *testing.T) {
	p := twoPersonProposal()
	p.Status = ProposalRejected

	p.Recalculate()
	if p.Status != ProposalRejected {
		t.Errorf("cancelled proposal status changed to %s", p.Status)
	}
}

func TestBuyer(t *testing.T) {
	p := twoPersonProposal()
	if b := p.Buyer(); b == nil || b.UserID != "alice" {
		t.Errorf("Buyer() = %+v, want alice", b)
	}

	p.Participants[1].IsBuying = true
	if b := p.Buyer(); b != nil {
		t.Errorf("Buyer() = %+v with two buyers, want nil", b)
	}

	p.Participants[0].IsBuying = false
	p.Participants[1].IsBuying = false
	if b := p.Buyer(); b != nil {
		t.Errorf("Buyer() = %+v with no buyer, want nil", b)
	}
}

func TestContributorNormalize(t *testing.T) {
	c := Contributor{Getting: false, NumberGetting: 2, Contributing: true, ContributeAmount: 25}
	c.Normalize()
	if c.NumberGetting != 0 {
		t.Errorf("NumberGetting = %d after Normalize with Getting=false, want 0", c.NumberGetting)
	}
	if c.ContributeAmount != 25 {
		t.Errorf("ContributeAmount = %v, want 25", c.ContributeAmount)
	}

	c.Contributing = false
	c.Normalize()
	if c.ContributeAmount != 0 {
		t.Errorf("ContributeAmount = %v after Normalize with Contributing=false, want 0", c.ContributeAmount)
	}
	if c.Active() {
		t.Error("contributor with both flags cleared must be inactive")
	}
}
