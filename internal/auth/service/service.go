// Package service implements the authentication flows: credential login,
// refresh token rotation and profile lookup.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"offerte-engine-backend/internal/auth/password"
	"offerte-engine-backend/internal/auth/repository"
	"offerte-engine-backend/internal/auth/token"
	"offerte-engine-backend/internal/auth/transport"
	"offerte-engine-backend/platform/apperr"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/logger"
)

const accessTokenType = "access"

const (
	msgInvalidCredentials = "invalid credentials"
	msgTokenInvalid       = "token invalid"
	msgTokenExpired       = "token expired"
)

// Roles assignable to office staff. Admin unlocks the rates catalog
// management and user listing endpoints.
const (
	RoleAdmin      = "admin"
	RoleMedewerker = "medewerker"
)

// Service provides the authentication business logic.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and issues an access/refresh token pair.
// Lookup failures and password mismatches are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", "", apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "password mismatch")
		return "", "", apperr.Unauthorized(msgInvalidCredentials)
	}

	s.log.AuthEvent("login", email, true, "")
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Expired tokens are revoked and rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", apperr.Unauthorized(msgTokenInvalid)
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", apperr.Unauthorized(msgTokenExpired)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", apperr.Unauthorized(msgTokenInvalid)
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return "", "", err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	return transport.ProfileResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		Name:           user.Name,
		OrganizationID: user.OrganizationID.String(),
		Roles:          []string{user.Role},
		CreatedAt:      user.CreatedAt,
	}, nil
}

// ListUsers returns all users within the organization, for admins.
func (s *Service) ListUsers(ctx context.Context, orgID uuid.UUID) ([]transport.UserSummaryResponse, error) {
	users, err := s.repo.ListUsersByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	summaries := make([]transport.UserSummaryResponse, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, transport.UserSummaryResponse{
			ID:        user.ID.String(),
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	return summaries, nil
}

// CreateUser registers a new account with a hashed password. Used by the
// seeder to provision the first admin.
func (s *Service) CreateUser(ctx context.Context, orgID uuid.UUID, email, plainPassword, name, role string) (repository.User, error) {
	if role != RoleAdmin && role != RoleMedewerker {
		return repository.User{}, apperr.Validation("unknown role")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, err
	}

	return s.repo.CreateUser(ctx, repository.CreateUserParams{
		OrganizationID: orgID,
		Email:          email,
		PasswordHash:   hash,
		Name:           name,
		Role:           role,
	})
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (string, string, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"tenant_id": user.OrganizationID.String(),
		"roles":     []string{user.Role},
		"type":      accessTokenType,
		"exp":       now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":       now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
