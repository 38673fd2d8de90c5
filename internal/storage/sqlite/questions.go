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

const questionColumns = "id, asked_by_id, asked_of_id, text, answer, answered_at, created_at"

func scanQuestion(row interface{ Scan(...interface{}) error }) (*models.Question, error) {
	q := &models.Question{}
	var answer sql.NullString
	if err := row.Scan(&q.ID, &q.AskedByID, &q.AskedOfID, &q.Text,
		&answer, &q.AnsweredAt, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.Answer = answer.String
	return q, nil
}

// CreateQuestion persists a new question, assigning ID and timestamp.
func (s *SQLiteStore) CreateQuestion(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id, asked_by_id, asked_of_id, text, answer, answered_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.AskedByID, q.AskedOfID, q.Text, nullable(q.Answer), q.AnsweredAt, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// GetQuestion retrieves a question by ID.
func (s *SQLiteStore) GetQuestion(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE id = ?", questionID))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// UpdateQuestion stores the answer fields of a question.
func (s *SQLiteStore) UpdateQuestion(ctx context.Context, q *models.Question) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE questions SET answer = ?, answered_at = ? WHERE id = ?",
		nullable(q.Answer), q.AnsweredAt, q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListQuestionsForUser returns questions asked of or by the user, newest
// first.
func (s *SQLiteStore) ListQuestionsForUser(ctx context.Context, userID string) ([]*models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE asked_of_id = ? OR asked_by_id = ?
		 ORDER BY created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}
