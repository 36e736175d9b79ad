package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"cmsapi/internal/auth"
	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/model"
	"cmsapi/internal/rbac"
	"cmsapi/internal/repository"
)

// CreateUserInput carries the fields an administrator sets on a new user.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      rbac.Role
	Location  string
	Avatar    string
	Status    *bool
	BirthAt   *time.Time
}

// UpdateUserInput carries optional changes. Nil fields are left untouched.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *rbac.Role
	Location  *string
	Avatar    *string
	Status    *bool
	BirthAt   *time.Time
}

// UserService exposes user management and role resolution.
type UserService interface {
	CurrentRole(ctx context.Context, userID uint) (rbac.Role, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo       repository.UserRepository
	tokenStore auth.TokenStoreInterface
	passwords  *auth.PasswordHasher
	log        zerolog.Logger
}

// NewUserService builds a UserService. Roles are always read from repo so a
// role change takes effect on the next request.
func NewUserService(repo repository.UserRepository, tokenStore auth.TokenStoreInterface, passwords *auth.PasswordHasher, log zerolog.Logger) UserService {
	return &userService{
		repo:       repo,
		tokenStore: tokenStore,
		passwords:  passwords,
		log:        log.With().Str("component", "users").Logger(),
	}
}

// CurrentRole returns the role userID holds right now. Missing, inactive or
// misconfigured users resolve to ErrForbidden.
func (s *userService) CurrentRole(ctx context.Context, userID uint) (rbac.Role, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrForbidden
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !user.Status || !user.Role.Valid() {
		return "", apperrors.ErrForbidden
	}
	return user.Role, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	role := in.Role
	if role == "" {
		role = rbac.RoleClient
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	hashed, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}

	user := &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     model.NormalizeEmail(in.Email),
		Password:  hashed,
		Role:      role,
		Status:    status,
		Location:  in.Location,
		Avatar:    in.Avatar,
		BirthAt:   in.BirthAt,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailInUse) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser applies in to the user. Deactivating a user or changing its
// password revokes all of its refresh tokens.
func (s *userService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Email != nil {
		user.Email = model.NormalizeEmail(*in.Email)
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.BirthAt != nil {
		user.BirthAt = in.BirthAt
	}

	endSessions := false
	if in.Status != nil {
		endSessions = user.Status && !*in.Status
		user.Status = *in.Status
	}
	if in.Password != nil {
		hashed, err := s.passwords.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
		endSessions = true
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailInUse) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if endSessions {
		if err := s.tokenStore.RevokeAllForUser(ctx, user.ID); err != nil {
			return nil, err
		}
		s.log.Info().Uint("user_id", user.ID).Msg("refresh tokens revoked after account change")
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
