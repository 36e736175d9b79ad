package repository

import (
	"context"

	"gorm.io/gorm"

	"cmsapi/internal/model"
)

// PasswordResetTokenRepository defines password reset token persistence.
// It does not enforce one token per user; the auth service deletes before
// it creates.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	FindAllForUser(ctx context.Context, userID uint) ([]model.PasswordResetToken, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

type passwordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new password reset token repository.
func NewPasswordResetTokenRepository(db *gorm.DB) PasswordResetTokenRepository {
	return &passwordResetTokenRepository{db: db}
}

func (r *passwordResetTokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *passwordResetTokenRepository) FindAllForUser(ctx context.Context, userID uint) ([]model.PasswordResetToken, error) {
	var tokens []model.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *passwordResetTokenRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.PasswordResetToken{}).Error
}
