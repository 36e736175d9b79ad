package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "cmsapi/internal/errors"
)

const (
	// DefaultAccessTokenTTL is the lifetime of access tokens unless configured.
	DefaultAccessTokenTTL = 20 * time.Minute
	// DefaultRefreshTokenTTL is the lifetime of refresh tokens unless configured.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims represents JWT claims. Refresh tokens carry their jti in
// RegisteredClaims.ID; access tokens leave it empty.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful register, login or refresh hands back.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs and verifies access and refresh tokens. The two kinds
// use different secrets so one can never be accepted in place of the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a token service. Zero TTLs fall back to the defaults.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL == 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL == 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token for userID.
func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.sign(userID, "", s.accessTTL, s.accessSecret)
}

// IssueRefreshToken signs a long-lived token for userID identified by jti.
func (s *TokenService) IssueRefreshToken(userID uint, jti string) (string, error) {
	if jti == "" {
		return "", errors.New("refresh token requires a token id")
	}
	return s.sign(userID, jti, s.refreshTTL, s.refreshSecret)
}

// IssuePair issues an access token and a refresh token bound to jti.
func (s *TokenService) IssuePair(userID uint, jti string) (*TokenPair, error) {
	access, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.IssueRefreshToken(userID, jti)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates an access token against the access secret.
func (s *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	return verify(token, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token against the refresh secret
// and requires a jti.
func (s *TokenService) VerifyRefreshToken(token string) (*Claims, error) {
	claims, err := verify(token, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *TokenService) sign(userID uint, jti string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify returns ErrTokenExpired when the signature checks out but the token
// is past its expiry, and ErrUnauthorized for every other failure.
func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return claims, nil
}

// PeekClaims decodes a token WITHOUT checking its signature or expiry.
//
// The result is untrusted. It may only be used to locate a server-side record
// (such as a whitelist entry by jti) whose own check is authoritative; it must
// never be the basis of an authorization decision by itself.
func PeekClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

// NewTokenID generates a unique token ID for refresh tokens.
func NewTokenID() string {
	return uuid.New().String()
}
