package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an office-staff account. Each user belongs to one organization
// and carries a single role.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	PasswordHash   string
	Name           string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateUserParams holds the fields for a new user account.
type CreateUserParams struct {
	OrganizationID uuid.UUID
	Email          string
	PasswordHash   string
	Name           string
	Role           string
}

// Repository defines the auth data operations. Services depend on this
// abstraction so tests can substitute an in-memory implementation.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
	ListUsersByOrganization(ctx context.Context, orgID uuid.UUID) ([]User, error)

	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}
