package user

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, email, username, password string) (*User, error) {
	args := m.Called(ctx, email, username, password)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ValidateUser(ctx context.Context, username, password string) (*User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]User)
	return users, args.Error(1)
}

func (m *MockUserRepository) IncrementAndRaiseMax(ctx context.Context, id, counterField, maxField string, candidate int) (*User, error) {
	args := m.Called(ctx, id, counterField, maxField, candidate)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) IncrementCounters(ctx context.Context, id string, deltas map[string]int) (*User, error) {
	args := m.Called(ctx, id, deltas)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, password string) (*User, error) {
	args := m.Called(ctx, id, password)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

// MemoryUserRepository is an in-memory UserRepository for tests. Each counter
// update runs under one lock, like the single-statement SQL updates.
type MemoryUserRepository struct {
	mu    sync.Mutex
	seq   int
	users map[string]*User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*User)}
}

func (m *MemoryUserRepository) CreateUser(ctx context.Context, email, username, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return nil, apperrors.NewAppError(http.StatusConflict, "user already exists", ErrDuplicateUser)
		}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	m.seq++
	u := &User{
		ID:        uuid.NewString(),
		Email:     email,
		Username:  username,
		Password:  string(hashed),
		CreatedAt: time.Unix(int64(m.seq), 0),
	}
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *MemoryUserRepository) ValidateUser(ctx context.Context, username, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "Incorrect credentials", ErrInvalidCredentials)
		}
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NewAppError(http.StatusUnauthorized, "No user found with this username", ErrInvalidCredentials)
}

func (m *MemoryUserRepository) GetUser(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (m *MemoryUserRepository) IncrementAndRaiseMax(ctx context.Context, id, counterField, maxField string, candidate int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	counter, best := counterFor(u, counterField), counterFor(u, maxField)
	if counter == nil || best == nil {
		return nil, fmt.Errorf("invalid counter columns %q/%q", counterField, maxField)
	}
	*counter++
	if candidate > *best {
		*best = candidate
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryUserRepository) IncrementCounters(ctx context.Context, id string, deltas map[string]int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	for column := range deltas {
		if counterFor(u, column) == nil {
			return nil, fmt.Errorf("invalid counter column %q", column)
		}
	}
	for column, delta := range deltas {
		*counterFor(u, column) += delta
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryUserRepository) UpdatePassword(ctx context.Context, id, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hashed)
	}
	copied := *u
	return &copied, nil
}

func counterFor(u *User, column string) *int {
	switch column {
	case ColHigherLowerGamesPlayed:
		return &u.HigherLowerGamesPlayed
	case ColHigherLowerGameHighestScore:
		return &u.HigherLowerGameHighestScore
	case ColDraftGamesPlayed:
		return &u.DraftGamesPlayed
	case ColDraftGameWins:
		return &u.DraftGameWins
	case ColDraftGameLosses:
		return &u.DraftGameLosses
	}
	return nil
}
