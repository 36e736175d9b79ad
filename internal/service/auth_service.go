package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"cmsapi/internal/auth"
	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/mailer"
	"cmsapi/internal/metrics"
	"cmsapi/internal/model"
	"cmsapi/internal/rbac"
	"cmsapi/internal/repository"
)

const (
	// DefaultResetTokenTTL is how long a password reset link stays valid.
	DefaultResetTokenTTL = 30 * time.Minute

	resetTokenBytes = 32
	mailTimeout     = 10 * time.Second
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      rbac.Role
	Location  string
	Status    *bool
	BirthAt   *time.Time
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*auth.TokenPair, *model.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	ValidPassword(ctx context.Context, email, password string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	CheckResetToken(ctx context.Context, userID uint, token string) (time.Duration, error)
	ChangePassword(ctx context.Context, userID uint, token, newPassword string) error
}

// AuthOptions tunes the password reset flows.
type AuthOptions struct {
	ResetTokenTTL time.Duration
	FrontendURL   string
	// UniformForgotPassword answers forgot-password requests for unknown
	// addresses with success instead of ErrUserNotFound.
	UniformForgotPassword bool
	// ClientOnlyRegistration rejects self-registration with any role other
	// than Client.
	ClientOnlyRegistration bool
	// Now overrides the clock used for reset token expiry.
	Now func() time.Time
}

type authService struct {
	users       repository.UserRepository
	resetTokens repository.PasswordResetTokenRepository
	tokens      *auth.TokenService
	tokenStore  auth.TokenStoreInterface
	passwords   *auth.PasswordHasher
	mail        mailer.Mailer
	log         zerolog.Logger
	tracer      trace.Tracer
	opts        AuthOptions
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	resetTokens repository.PasswordResetTokenRepository,
	tokens *auth.TokenService,
	tokenStore auth.TokenStoreInterface,
	passwords *auth.PasswordHasher,
	mail mailer.Mailer,
	log zerolog.Logger,
	opts AuthOptions,
) AuthService {
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = DefaultResetTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &authService{
		users:       users,
		resetTokens: resetTokens,
		tokens:      tokens,
		tokenStore:  tokenStore,
		passwords:   passwords,
		mail:        mail,
		log:         log.With().Str("component", "auth").Logger(),
		tracer:      otel.Tracer("cmsapi/internal/service"),
		opts:        opts,
	}
}

// Register creates a user, opens a session for it and sends a welcome mail.
func (s *authService) Register(ctx context.Context, in RegisterInput) (pair *auth.TokenPair, user *model.User, err error) {
	ctx, done := s.trace(ctx, "register")
	defer func() { done(err) }()

	role := in.Role
	if role == "" {
		role = rbac.RoleClient
	}
	if !role.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if s.opts.ClientOnlyRegistration && role != rbac.RoleClient {
		return nil, nil, fmt.Errorf("%w: self-registration is limited to %s", apperrors.ErrForbidden, rbac.RoleClient)
	}

	email := model.NormalizeEmail(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, nil, apperrors.ErrEmailInUse
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}

	user = &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Password:  hashed,
		Role:      role,
		Status:    status,
		Location:  in.Location,
		BirthAt:   in.BirthAt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailInUse) {
			return nil, nil, apperrors.ErrEmailInUse
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	pair, err = s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.sendAsync(mailer.WelcomeMessage(user.Email, user.FirstName))
	return pair, user, nil
}

// Login checks credentials and opens a new session.
func (s *authService) Login(ctx context.Context, email, password string) (pair *auth.TokenPair, user *model.User, err error) {
	ctx, done := s.trace(ctx, "login")
	defer func() { done(err) }()

	user, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if !user.Status {
		return nil, nil, apperrors.ErrUserInactive
	}
	if !s.passwords.Verify(password, user.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err = s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates a refresh token. The presented token is revoked before the
// new pair is whitelisted, so every refresh token is single-use.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (pair *auth.TokenPair, err error) {
	ctx, done := s.trace(ctx, "refresh")
	defer func() { done(err) }()

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	entry, err := s.tokenStore.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if entry == nil || entry.UserID != claims.UserID || !auth.TokenMatches(refreshToken, entry.HashedToken) {
		return nil, apperrors.ErrUnauthorized
	}
	if entry.Revoked {
		s.replayed(ctx, entry)
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.Status {
		return nil, apperrors.ErrUnauthorized
	}

	revoked, err := s.tokenStore.Revoke(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		// Another request rotated this token between the lookup and now.
		s.replayed(ctx, entry)
		return nil, apperrors.ErrUnauthorized
	}

	return s.openSession(ctx, user.ID)
}

// Revoke ends the session bound to refreshToken. An expired token is still
// accepted as long as its signature and whitelist hash check out. Revoking an
// already revoked entry succeeds.
func (s *authService) Revoke(ctx context.Context, refreshToken string) (err error) {
	ctx, done := s.trace(ctx, "revoke")
	defer func() { done(err) }()

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if errors.Is(err, apperrors.ErrTokenExpired) {
		// The signature was verified; only the expiry failed.
		claims, err = auth.PeekClaims(refreshToken)
	}
	if err != nil || claims.ID == "" {
		return apperrors.ErrUnauthorized
	}

	entry, err := s.tokenStore.FindByID(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("find refresh token: %w", err)
	}
	if entry == nil || !auth.TokenMatches(refreshToken, entry.HashedToken) {
		return apperrors.ErrUnauthorized
	}

	if _, err := s.tokenStore.Revoke(ctx, entry.ID); err != nil {
		return err
	}
	return nil
}

// ValidPassword reports whether password matches the account behind email.
// Unknown addresses yield false.
func (s *authService) ValidPassword(ctx context.Context, email, password string) (ok bool, err error) {
	ctx, done := s.trace(ctx, "valid_password")
	defer func() { done(err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	return s.passwords.Verify(password, user.Password), nil
}

// ForgotPassword replaces any outstanding reset token of the user behind
// email and mails a fresh reset link.
func (s *authService) ForgotPassword(ctx context.Context, email string) (err error) {
	ctx, done := s.trace(ctx, "forgot_password")
	defer func() { done(err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find user: %w", err)
		}
		if s.opts.UniformForgotPassword {
			s.log.Info().Msg("password reset requested for unknown address")
			return nil
		}
		return apperrors.ErrUserNotFound
	}

	if err := s.resetTokens.DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete reset tokens: %w", err)
	}

	raw, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	now := s.opts.Now()
	token := &model.PasswordResetToken{
		ResetToken: raw,
		UserID:     user.ID,
		ExpireTime: now.Add(s.opts.ResetTokenTTL),
		CreatedAt:  now,
	}
	if err := s.resetTokens.Create(ctx, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	link := mailer.ResetLink(s.opts.FrontendURL, user.ID, raw)
	s.sendAsync(mailer.ResetPasswordMessage(user.Email, link, int(s.opts.ResetTokenTTL.Minutes())))
	return nil
}

// CheckResetToken validates a reset link and returns how long it stays valid.
func (s *authService) CheckResetToken(ctx context.Context, userID uint, token string) (remaining time.Duration, err error) {
	ctx, done := s.trace(ctx, "check_reset_token")
	defer func() { done(err) }()

	current, err := s.currentResetToken(ctx, userID, token)
	if err != nil {
		return 0, err
	}
	return current.ExpireTime.Sub(s.opts.Now()), nil
}

// ChangePassword sets a new password through a valid reset token. The token
// is consumed and every open session of the user is revoked.
func (s *authService) ChangePassword(ctx context.Context, userID uint, token, newPassword string) (err error) {
	ctx, done := s.trace(ctx, "change_password")
	defer func() { done(err) }()

	if _, err := s.currentResetToken(ctx, userID, token); err != nil {
		return err
	}

	hashed, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.resetTokens.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete reset tokens: %w", err)
	}
	if err := s.tokenStore.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}
	return nil
}

// currentResetToken returns the newest reset token of userID when it matches
// token and has not expired.
func (s *authService) currentResetToken(ctx context.Context, userID uint, token string) (*model.PasswordResetToken, error) {
	stored, err := s.resetTokens.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find reset tokens: %w", err)
	}
	if len(stored) == 0 || token == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(stored[0].ResetToken)) != 1 {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	if stored[0].ExpiredAt(s.opts.Now()) {
		return nil, apperrors.ErrResetTokenExpired
	}
	return &stored[0], nil
}

// openSession issues a token pair under a fresh jti and whitelists its
// refresh token.
func (s *authService) openSession(ctx context.Context, userID uint) (*auth.TokenPair, error) {
	jti := auth.NewTokenID()
	pair, err := s.tokens.IssuePair(userID, jti)
	if err != nil {
		return nil, err
	}
	if err := s.tokenStore.Add(ctx, jti, pair.RefreshToken, userID); err != nil {
		return nil, err
	}
	return pair, nil
}

// replayed handles a revoked refresh token presented again: the token may
// have been stolen, so every session of its owner is closed.
func (s *authService) replayed(ctx context.Context, entry *model.RefreshToken) {
	metrics.RefreshReplays.Inc()
	s.log.Warn().Uint("user_id", entry.UserID).Str("jti", entry.ID).Msg("revoked refresh token presented again")
	if err := s.tokenStore.RevokeAllForUser(ctx, entry.UserID); err != nil {
		s.log.Error().Err(err).Uint("user_id", entry.UserID).Msg("revoke sessions after replay")
	}
}

// sendAsync hands msg to the mailer without blocking the caller.
func (s *authService) sendAsync(msg mailer.Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := s.mail.Send(ctx, msg); err != nil {
			metrics.MailFailures.Inc()
			s.log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("send mail")
		}
	}()
}

func (s *authService) trace(ctx context.Context, flow string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "auth."+flow)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		metrics.Observe(flow, err)
	}
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
