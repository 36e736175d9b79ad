package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cmsapi/internal/model"
)

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestTokenStore_AddStoresDigestOnly(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		return rt.ID == "jti-1" &&
			rt.UserID == 11 &&
			rt.HashedToken == HashToken("raw-token") &&
			!rt.Revoked
	})).Return(nil)

	err := NewTokenStore(repo).Add(context.Background(), "jti-1", "raw-token", 11)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTokenStore_FindByID(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByID", mock.Anything, "broken").Return(nil, errors.New("connection reset"))
	repo.On("FindByID", mock.Anything, "present").Return(&model.RefreshToken{ID: "present", UserID: 2}, nil)

	store := NewTokenStore(repo)

	entry, err := store.FindByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, entry)

	_, err = store.FindByID(context.Background(), "broken")
	assert.Error(t, err)

	entry, err = store.FindByID(context.Background(), "present")
	require.NoError(t, err)
	assert.Equal(t, uint(2), entry.UserID)
}

func TestTokenStore_RevokeWrapsErrors(t *testing.T) {
	boom := errors.New("deadlock")
	repo := new(MockRefreshTokenRepository)
	repo.On("Revoke", mock.Anything, "jti").Return(false, boom)
	repo.On("Revoke", mock.Anything, "live").Return(true, nil)
	repo.On("RevokeAllForUser", mock.Anything, uint(4)).Return(nil)

	store := NewTokenStore(repo)
	_, err := store.Revoke(context.Background(), "jti")
	assert.ErrorIs(t, err, boom)

	revoked, err := store.Revoke(context.Background(), "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, store.RevokeAllForUser(context.Background(), 4))
	repo.AssertExpectations(t)
}
