package models

// Question is a question one user asks of another, e.g. about sizes or
// preferences. The asked user answers in place.
type Question struct {
	// ID is the unique identifier for the question (UUID format).
	ID string `json:"id"`

	// AskedByID is the asking user, AskedOfID the user expected to answer.
	AskedByID string `json:"askedById"`
	AskedOfID string `json:"askedOfId"`

	// Text is the question body.
	Text string `json:"text"`

	// Answer is empty until the asked user responds. AnsweredAt is the
	// Unix timestamp of the answer, zero while unanswered.
	Answer     string `json:"answer,omitempty"`
	AnsweredAt int64  `json:"answeredAt,omitempty"`

	// CreatedAt is the Unix timestamp when the question was asked.
	CreatedAt int64 `json:"createdAt"`
}
