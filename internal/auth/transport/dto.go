// Package transport defines the request and response DTOs for the auth API.
package transport

import "time"

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AuthResponse carries a fresh access token. The refresh token travels in an
// HTTP-only cookie, never in the body.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// ProfileResponse is the authenticated user's own profile.
type ProfileResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organizationId"`
	Roles          []string  `json:"roles"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserSummaryResponse is one row in the admin user listing.
type UserSummaryResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
