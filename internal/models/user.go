package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the display name shown to other users. It is also the
	// sort key for the contribution grouping view.
	Username string `json:"username"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// ImageURL is an optional profile picture reference.
	ImageURL string `json:"imageUrl,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser creates a user with the given credentials. ID and timestamps are
// assigned by the store on insert.
func NewUser(email, username, passwordHash string) *User {
	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}
}
