package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/mailer"
	"cmsapi/internal/model"
	"cmsapi/internal/rbac"
)

// In-memory repositories standing in for gorm in end-to-end tests.

type memUsers struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[uint]model.User{}} }

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email {
			return apperrors.ErrEmailInUse
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.rows[user.ID] = *user
	return nil
}

func (m *memUsers) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.rows {
		if id != user.ID && u.Email == user.Email {
			return apperrors.ErrEmailInUse
		}
	}
	user.UpdatedAt = time.Now()
	m.rows[user.ID] = *user
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = passwordHash
	m.rows[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = model.NormalizeEmail(email)
	for _, u := range m.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]model.User, 0, len(m.rows))
	for _, u := range m.rows {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memUsers) set(id uint, fn func(*model.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.rows[id]
	fn(&u)
	m.rows[id] = u
}

func (m *memUsers) setRole(id uint, role rbac.Role) {
	m.set(id, func(u *model.User) { u.Role = role })
}

type memRefreshTokens struct {
	mu   sync.Mutex
	rows map[string]model.RefreshToken
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{rows: map[string]model.RefreshToken{}}
}

func (m *memRefreshTokens) Create(_ context.Context, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[token.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.rows[token.ID] = *token
	return nil
}

func (m *memRefreshTokens) FindByID(_ context.Context, id string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (m *memRefreshTokens) Revoke(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok || t.Revoked {
		return false, nil
	}
	t.Revoked = true
	m.rows[id] = t
	return true, nil
}

func (m *memRefreshTokens) RevokeAllForUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.rows {
		if t.UserID == userID {
			t.Revoked = true
			m.rows[id] = t
		}
	}
	return nil
}

func (m *memRefreshTokens) active(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.rows {
		if t.UserID == userID && t.Active() {
			n++
		}
	}
	return n
}

type memResetTokens struct {
	mu     sync.Mutex
	nextID uint
	rows   []model.PasswordResetToken
}

func (m *memResetTokens) Create(_ context.Context, token *model.PasswordResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	token.ID = m.nextID
	m.rows = append(m.rows, *token)
	return nil
}

func (m *memResetTokens) FindAllForUser(_ context.Context, userID uint) ([]model.PasswordResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tokens []model.PasswordResetToken
	for _, t := range m.rows {
		if t.UserID == userID {
			tokens = append(tokens, t)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID > tokens[j].ID })
	return tokens, nil
}

func (m *memResetTokens) DeleteAllForUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, t := range m.rows {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	m.rows = kept
	return nil
}

func (m *memResetTokens) latest(userID uint) (model.PasswordResetToken, bool) {
	tokens, _ := m.FindAllForUser(context.Background(), userID)
	if len(tokens) == 0 {
		return model.PasswordResetToken{}, false
	}
	return tokens[0], true
}

type memCategories struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.Category
}

func newMemCategories() *memCategories { return &memCategories{rows: map[uint]model.Category{}} }

func (m *memCategories) Create(_ context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Name == category.Name {
			return apperrors.ErrConflict
		}
	}
	m.nextID++
	category.ID = m.nextID
	m.rows[category.ID] = *category
	return nil
}

func (m *memCategories) Update(_ context.Context, category *model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[category.ID] = *category
	return nil
}

func (m *memCategories) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id uint) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memCategories) List(context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := make([]model.Category, 0, len(m.rows))
	for _, c := range m.rows {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// discardMailer accepts every message.
type discardMailer struct{}

func (discardMailer) Send(context.Context, mailer.Message) error { return nil }
