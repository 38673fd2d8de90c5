package service

import (
	"context"
	"time"

	"github.com/giftcircle/giftcircle/internal/models"
	"github.com/giftcircle/giftcircle/internal/storage"
)

// QuestionService manages the Q&A between users.
type QuestionService struct {
	store storage.Store
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(store storage.Store) *QuestionService {
	return &QuestionService{store: store}
}

// Ask records a question addressed to another user.
func (s *QuestionService) Ask(ctx context.Context, actorID, askedOfID, text string) (*models.Question, error) {
	if text == "" {
		return nil, validationf("question text required")
	}
	if askedOfID == "" || askedOfID == actorID {
		return nil, validationf("question must be addressed to another user")
	}
	if _, err := s.store.GetUserByID(ctx, askedOfID); err != nil {
		return nil, err
	}

	q := &models.Question{
		AskedByID: actorID,
		AskedOfID: askedOfID,
		Text:      text,
	}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// List returns questions involving the acting user, asked or asking.
func (s *QuestionService) List(ctx context.Context, actorID string) ([]*models.Question, error) {
	return s.store.ListQuestionsForUser(ctx, actorID)
}

// Answer records a reply. Only the asked user may answer, and answers can
// be revised.
func (s *QuestionService) Answer(ctx context.Context, actorID, questionID, answer string) (*models.Question, error) {
	if answer == "" {
		return nil, validationf("answer text required")
	}

	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q.AskedOfID != actorID {
		return nil, ErrForbidden
	}

	q.Answer = answer
	q.AnsweredAt = time.Now().Unix()
	if err := s.store.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}
