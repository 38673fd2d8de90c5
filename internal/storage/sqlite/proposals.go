package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// CreateProposal persists a proposal and its participants in one
// transaction. Every participant starts in their given state (normally
// pending); the aggregate status is recalculated before insert.
func (s *SQLiteStore) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if proposal.CreatedAt == 0 {
		proposal.CreatedAt = now
	}
	proposal.UpdatedAt = now
	if proposal.Status == "" {
		proposal.Status = models.ProposalPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO proposals (id, item_id, creator_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		proposal.ID, proposal.ItemID, proposal.CreatorID, proposal.Status,
		proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}

	if err := insertParticipants(ctx, tx, proposal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, proposal *models.Proposal) error {
	for i := range proposal.Participants {
		pt := &proposal.Participants[i]
		if pt.State == "" {
			pt.State = models.ParticipantPending
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO participants (proposal_id, user_id, amount_requested, state, is_buying, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			proposal.ID, pt.UserID, pt.AmountRequested, pt.State, pt.IsBuying, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// GetProposal retrieves a proposal with its ordered participant list.
func (s *SQLiteStore) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	proposal := &models.Proposal{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, creator_id, status, created_at, updated_at
		 FROM proposals WHERE id = ?`,
		proposalID,
	).Scan(&proposal.ID, &proposal.ItemID, &proposal.CreatorID, &proposal.Status,
		&proposal.CreatedAt, &proposal.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if err := s.loadParticipants(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, proposal *models.Proposal) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, amount_requested, state, is_buying
		 FROM participants WHERE proposal_id = ? ORDER BY position`,
		proposal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pt models.Participant
		if err := rows.Scan(&pt.UserID, &pt.AmountRequested, &pt.State, &pt.IsBuying); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		proposal.Participants = append(proposal.Participants, pt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// UpdateProposal replaces the proposal's status and participant list.
func (s *SQLiteStore) UpdateProposal(ctx context.Context, proposal *models.Proposal) error {
	proposal.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE proposals SET status = ?, updated_at = ? WHERE id = ?",
		proposal.Status, proposal.UpdatedAt, proposal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM participants WHERE proposal_id = ?", proposal.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, proposal); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteProposal removes a proposal; participants cascade.
func (s *SQLiteStore) DeleteProposal(ctx context.Context, proposalID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM proposals WHERE id = ?", proposalID)
	if err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListProposalsForUser returns proposals the user created or participates
// in, newest first.
func (s *SQLiteStore) ListProposalsForUser(ctx context.Context, userID string) ([]*models.Proposal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT p.id, p.item_id, p.creator_id, p.status, p.created_at, p.updated_at
		 FROM proposals p
		 LEFT JOIN participants pt ON pt.proposal_id = p.id
		 WHERE p.creator_id = ? OR pt.user_id = ?
		 ORDER BY p.created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		proposal := &models.Proposal{}
		if err := rows.Scan(&proposal.ID, &proposal.ItemID, &proposal.CreatorID,
			&proposal.Status, &proposal.CreatedAt, &proposal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate proposals: %w", err)
	}

	for _, proposal := range proposals {
		if err := s.loadParticipants(ctx, proposal); err != nil {
			return nil, err
		}
	}
	return proposals, nil
}

// ListAcceptedProposalItems returns the target items of proposals in which
// the user's own response is accepted.
func (s *SQLiteStore) ListAcceptedProposalItems(ctx context.Context, userID string) ([]*models.Item, error) {
	return s.queryItems(ctx,
		`SELECT `+itemColumnsQualified+` FROM items
		 JOIN proposals p ON p.item_id = items.id
		 JOIN participants pt ON pt.proposal_id = p.id
		 WHERE pt.user_id = ? AND pt.state = ?
		 ORDER BY p.created_at`,
		userID, models.ParticipantAccepted)
}
