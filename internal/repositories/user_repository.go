package repositories

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"market-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the current-user provider: it resolves phone-number
// logins against the authorized list and serves profile reads and edits.
type UserRepository interface {
	Authenticate(ctx context.Context, phone string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	RegisterPending(ctx context.Context, input models.PendingUser) error
}

// UserRepo is an in-memory UserRepository seeded with the authorized list.
type UserRepo struct {
	mu      sync.RWMutex
	users   []models.User
	pending []models.PendingUser
}

// NewUserRepo constructs a UserRepo over the given authorized users.
func NewUserRepo(authorized []models.User) *UserRepo {
	return &UserRepo{users: append([]models.User(nil), authorized...)}
}

// Authenticate matches a phone number against the authorized list, ignoring
// formatting: only digits are compared.
func (r *UserRepo) Authenticate(ctx context.Context, phone string) (models.User, error) {
	normalized := digitsOnly(phone)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if digitsOnly(u.Phone) == normalized {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// GetByID fetches a user profile.
func (r *UserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// Update applies a profile patch. Existing listings and sessions keep the
// seller snapshot taken when they were created.
func (r *UserRepo) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		if patch.Name != nil {
			r.users[i].Name = *patch.Name
		}
		if patch.Location != nil {
			r.users[i].Location = *patch.Location
		}
		if patch.Email != nil {
			r.users[i].Email = *patch.Email
		}
		if patch.AvatarURL != nil {
			r.users[i].AvatarURL = *patch.AvatarURL
		}
		return r.users[i], nil
	}
	return models.User{}, ErrUserNotFound
}

// RegisterPending queues a signup request for manual review. Pending users
// cannot log in until someone adds them to the authorized list.
func (r *UserRepo) RegisterPending(ctx context.Context, input models.PendingUser) error {
	r.mu.Lock()
	r.pending = append(r.pending, input)
	r.mu.Unlock()
	log.Printf("pending registration name=%q phone=%s", input.Name, input.Phone)
	return nil
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
