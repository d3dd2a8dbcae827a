package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account as stored by the repository.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	FamilyName   string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the projection of a user exposed to request handlers.
// It never carries the password hash.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	FamilyName string    `json:"familyName"`
}

// Identity projects the user to its public identity.
func (u User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		FamilyName: u.FamilyName,
	}
}

// NewUser carries the fields required to persist a user.
type NewUser struct {
	Email        string
	FirstName    string
	FamilyName   string
	PasswordHash string
}

// RegisterRequest is the payload accepted by the registration endpoints.
type RegisterRequest struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	FamilyName string `json:"familyName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the user shape returned next to an issued token.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}
