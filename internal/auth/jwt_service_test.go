package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cmsapi/internal/errors"
)

func newTestTokenService() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	s := newTestTokenService()

	token, err := s.IssueAccessToken(42)
	require.NoError(t, err)

	claims, err := s.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Empty(t, claims.ID)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenService_RefreshCarriesJTI(t *testing.T) {
	s := newTestTokenService()
	jti := NewTokenID()

	token, err := s.IssueRefreshToken(7, jti)
	require.NoError(t, err)

	claims, err := s.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, jti, claims.ID)
}

func TestTokenService_RefreshRequiresJTI(t *testing.T) {
	_, err := newTestTokenService().IssueRefreshToken(7, "")
	assert.Error(t, err)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	s := newTestTokenService()

	access, err := s.IssueAccessToken(1)
	require.NoError(t, err)
	refresh, err := s.IssueRefreshToken(1, NewTokenID())
	require.NoError(t, err)

	_, err = s.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = s.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_ExpiredVersusTampered(t *testing.T) {
	expired := NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	s := newTestTokenService()

	token, err := expired.IssueAccessToken(3)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	other := NewTokenService("another-secret", "refresh-secret", -time.Minute, time.Hour)
	forged, err := other.IssueAccessToken(3)
	require.NoError(t, err)

	// Expired and badly signed: integrity failure wins.
	_, err = s.VerifyAccessToken(forged)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.NotErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_RejectsGarbageAndOtherAlgorithms(t *testing.T) {
	s := newTestTokenService()

	_, err := s.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(raw)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestPeekClaims_ReadsExpiredToken(t *testing.T) {
	expired := NewTokenService("access-secret", "refresh-secret", time.Minute, -time.Minute)
	jti := NewTokenID()

	token, err := expired.IssueRefreshToken(9, jti)
	require.NoError(t, err)

	claims, err := PeekClaims(token)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, uint(9), claims.UserID)

	_, err = PeekClaims("garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestIssuePair(t *testing.T) {
	s := newTestTokenService()
	pair, err := s.IssuePair(5, NewTokenID())
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestNewTokenIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewTokenID(), NewTokenID())
}
