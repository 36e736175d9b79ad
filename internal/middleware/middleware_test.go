package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmsapi/internal/auth"
	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/rbac"
)

type fakeResolver struct {
	roles map[uint]rbac.Role
	err   error
}

func (f *fakeResolver) CurrentRole(_ context.Context, userID uint) (rbac.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

type fakeCounter struct {
	hits map[string]int64
	down bool
}

func (f *fakeCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, bool) {
	if f.down {
		return 0, false
	}
	f.hits[key]++
	return f.hits[key], true
}

func (f *fakeCounter) TTL(context.Context, string) time.Duration { return 42 * time.Second }

func newTokens() *auth.TokenService {
	return auth.NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users")
	return c, rec
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestAuthenticate(t *testing.T) {
	tokens := newTokens()
	access, err := tokens.IssueAccessToken(3)
	require.NoError(t, err)
	refresh, err := tokens.IssueRefreshToken(3, "jti")
	require.NoError(t, err)
	expired, err := auth.NewTokenService("access-secret", "refresh-secret", -time.Minute, time.Hour).IssueAccessToken(3)
	require.NoError(t, err)

	tests := []struct {
		name          string
		header        string
		expectedError error
	}{
		{name: "valid access token", header: "Bearer " + access},
		{name: "missing header", header: "", expectedError: apperrors.ErrUnauthorized},
		{name: "no bearer prefix", header: access, expectedError: apperrors.ErrUnauthorized},
		{name: "refresh token", header: "Bearer " + refresh, expectedError: apperrors.ErrUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", expectedError: apperrors.ErrUnauthorized},
		{name: "expired", header: "Bearer " + expired, expectedError: apperrors.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(tt.header)

			err := Authenticate(tokens)(ok)(c)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			claims, found := ClaimsFrom(c)
			require.True(t, found)
			assert.Equal(t, uint(3), claims.UserID)
		})
	}
}

func TestResolveRole(t *testing.T) {
	tokens := newTokens()
	resolver := &fakeResolver{roles: map[uint]rbac.Role{1: rbac.RoleManager}}

	t.Run("uses claims from authentication", func(t *testing.T) {
		c, _ := newContext("")
		c.Set(ClaimsKey, &auth.Claims{UserID: 1})

		require.NoError(t, ResolveRole(resolver, tokens)(ok)(c))
		role, found := RoleFrom(c)
		require.True(t, found)
		assert.Equal(t, rbac.RoleManager, role)
	})

	t.Run("verifies the bearer token when run alone", func(t *testing.T) {
		access, err := tokens.IssueAccessToken(1)
		require.NoError(t, err)
		c, _ := newContext("Bearer " + access)

		require.NoError(t, ResolveRole(resolver, tokens)(ok)(c))
		role, _ := RoleFrom(c)
		assert.Equal(t, rbac.RoleManager, role)
	})

	t.Run("unverifiable token is forbidden", func(t *testing.T) {
		c, _ := newContext("Bearer nope")
		assert.ErrorIs(t, ResolveRole(resolver, tokens)(ok)(c), apperrors.ErrForbidden)
	})

	t.Run("unknown user is forbidden", func(t *testing.T) {
		c, _ := newContext("")
		c.Set(ClaimsKey, &auth.Claims{UserID: 99})
		assert.ErrorIs(t, ResolveRole(resolver, tokens)(ok)(c), apperrors.ErrForbidden)
	})

	t.Run("store failure is passed through", func(t *testing.T) {
		boom := errors.New("db down")
		c, _ := newContext("")
		c.Set(ClaimsKey, &auth.Claims{UserID: 1})
		assert.ErrorIs(t, ResolveRole(&fakeResolver{err: boom}, tokens)(ok)(c), boom)
	})
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		role       rbac.Role
		permission rbac.Permission
		allowed    bool
	}{
		{rbac.RoleSuperAdmin, rbac.DeleteUser, true},
		{rbac.RoleProjectAdmin, rbac.CreateUser, true},
		{rbac.RoleManager, rbac.CreateCategory, true},
		{rbac.RoleManager, rbac.CreateUser, false},
		{rbac.RoleClient, rbac.CreateCategory, false},
		{"", rbac.GetUsers, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.permission), func(t *testing.T) {
			c, rec := newContext("")
			if tt.role != "" {
				c.Set(RoleKey, tt.role)
			}

			err := RequirePermission(tt.permission)(ok)(c)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	limited := RateLimit(counter, 2, time.Minute)(ok)

	for i := 0; i < 2; i++ {
		c, _ := newContext("")
		require.NoError(t, limited(c))
	}

	c, rec := newContext("")
	assert.ErrorIs(t, limited(c), apperrors.ErrTooManyRequests)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	limited := RateLimit(&fakeCounter{down: true}, 1, time.Minute)(ok)
	for i := 0; i < 5; i++ {
		c, _ := newContext("")
		require.NoError(t, limited(c))
	}
}

func TestRateLimitDisabled(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	limited := RateLimit(counter, 0, time.Minute)(ok)
	c, _ := newContext("")
	require.NoError(t, limited(c))
	assert.Empty(t, counter.hits)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/ping", ok)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"uri":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
