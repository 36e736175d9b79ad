package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cmsapi/internal/model"
	"cmsapi/internal/repository"
)

// TokenStoreInterface defines the refresh token whitelist operations.
type TokenStoreInterface interface {
	Add(ctx context.Context, tokenID, rawToken string, userID uint) error
	FindByID(ctx context.Context, tokenID string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint) error
}

// TokenStore keeps the refresh token whitelist in the relational store.
// Raw tokens never reach the database, only their digests.
type TokenStore struct {
	repo repository.RefreshTokenRepository
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(repo repository.RefreshTokenRepository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Add whitelists a freshly issued refresh token under its jti.
func (s *TokenStore) Add(ctx context.Context, tokenID, rawToken string, userID uint) error {
	entry := &model.RefreshToken{
		ID:          tokenID,
		HashedToken: HashToken(rawToken),
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// FindByID returns the whitelist entry for tokenID, or nil when there is none.
func (s *TokenStore) FindByID(ctx context.Context, tokenID string) (*model.RefreshToken, error) {
	entry, err := s.repo.FindByID(ctx, tokenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return entry, nil
}

// Revoke marks one entry revoked and reports whether it was still active.
// The row is kept for replay detection.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.repo.Revoke(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return revoked, nil
}

// RevokeAllForUser marks every active entry of userID revoked.
func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID uint) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}
