package user

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
)

// mockGenerateJWT is a helper to override GenerateJWT in tests
var mockGenerateJWT func(u *User) (string, error)

func TestMain(m *testing.M) {
	orig := GenerateJWT
	GenerateJWT = func(u *User) (string, error) {
		if mockGenerateJWT != nil {
			return mockGenerateJWT(u)
		}
		return orig(u)
	}
	code := m.Run()
	GenerateJWT = orig
	os.Exit(code)
}

var ctx = context.Background()

func TestUserService_Signup(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	defer func() { mockGenerateJWT = nil }()

	created := &User{ID: "u1", Email: "alice@example.com", Username: "alice123"}
	mockRepo.On("CreateUser", mock.Anything, "alice@example.com", "alice123", "P@ssw0rd!").Return(created, nil)
	mockGenerateJWT = func(u *User) (string, error) { return "token123", nil }

	auth, err := service.Signup(ctx, SignupRequest{Email: " alice@example.com ", Username: "alice123", Password: "P@ssw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, "token123", auth.Token)
	assert.Equal(t, created, auth.User)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  SignupRequest
		msg  string
	}{
		{"bad email", SignupRequest{Email: "bad-email", Username: "bob1234", Password: "secret"}, "Must match an email address!"},
		{"short username", SignupRequest{Email: "cathy@example.com", Username: "cat", Password: "secret"}, "shorter than the minimum allowed length"},
		{"short password", SignupRequest{Email: "dave@example.com", Username: "dave777", Password: "1234"}, "shorter than the minimum allowed length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockUserRepository{}
			service := NewUserService(mockRepo)

			_, err := service.Signup(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, http.StatusUnprocessableEntity, apperrors.Status(err))
			mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_Signup_Error(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	mockRepo.On("CreateUser", mock.Anything, "err@example.com", "errr", "fail1").Return(nil, errors.New("fail"))

	_, err := service.Signup(ctx, SignupRequest{Email: "err@example.com", Username: "errr", Password: "fail1"})
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Signup_JWTError(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	defer func() { mockGenerateJWT = nil }()

	mockRepo.On("CreateUser", mock.Anything, "jwt@example.com", "jwtuser", "secret").Return(&User{ID: "u9"}, nil)
	mockGenerateJWT = func(u *User) (string, error) { return "", errors.New("no key") }

	_, err := service.Signup(ctx, SignupRequest{Email: "jwt@example.com", Username: "jwtuser", Password: "secret"})
	assert.Equal(t, http.StatusInternalServerError, apperrors.Status(err))
}

func TestUserService_Login(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	defer func() { mockGenerateJWT = nil }()

	found := &User{ID: "u2", Username: "foooo"}
	mockRepo.On("ValidateUser", mock.Anything, "foooo", "barbar").Return(found, nil)
	mockGenerateJWT = func(u *User) (string, error) { return "tok456", nil }

	auth, err := service.Login(ctx, LoginRequest{Username: "foooo", Password: "barbar"})
	require.NoError(t, err)
	assert.Equal(t, "tok456", auth.Token)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_BadCredentials(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	mockRepo.On("ValidateUser", mock.Anything, "foooo", "wrong").
		Return(nil, apperrors.NewAppError(http.StatusUnauthorized, "Incorrect credentials", ErrInvalidCredentials))

	_, err := service.Login(ctx, LoginRequest{Username: "foooo", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, apperrors.Status(err))
}

func TestUserService_GetUserStats(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	found := &User{ID: "u3", Username: "alice", DraftGamesPlayed: 10, DraftGameWins: 7, DraftGameLosses: 3, HigherLowerGameHighestScore: 12}
	mockRepo.On("GetUser", mock.Anything, "u3").Return(found, nil)

	resp, err := service.GetUserStats(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 10, resp.DraftGamesPlayed)
	assert.Equal(t, 12, resp.HigherLowerGameHighestScore)
	assert.InDelta(t, 70.0, resp.DraftWinRate, 0.01)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserStats_NotFound(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	mockRepo.On("GetUser", mock.Anything, "ghost").Return(nil, nil)

	_, err := service.GetUserStats(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.Status(err))
}

func TestUserService_RecordHigherLowerScore(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	mockRepo.On("IncrementAndRaiseMax", mock.Anything, "u4", ColHigherLowerGamesPlayed, ColHigherLowerGameHighestScore, 7).
		Return(&User{ID: "u4", HigherLowerGamesPlayed: 1, HigherLowerGameHighestScore: 7}, nil)

	updated, err := service.RecordHigherLowerScore(ctx, "u4", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.HigherLowerGameHighestScore)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RecordHigherLowerScore_Negative(t *testing.T) {
	service := NewUserService(&MockUserRepository{})

	_, err := service.RecordHigherLowerScore(ctx, "u4", -1)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestUserService_RecordHigherLowerScore_Ratchet(t *testing.T) {
	repo := NewMemoryUserRepository()
	service := NewUserService(repo)
	created, err := repo.CreateUser(ctx, "ratchet@example.com", "ratchet", "secret")
	require.NoError(t, err)

	var played, best []int
	for _, score := range []int{7, 3, 12} {
		u, err := service.RecordHigherLowerScore(ctx, created.ID, score)
		require.NoError(t, err)
		played = append(played, u.HigherLowerGamesPlayed)
		best = append(best, u.HigherLowerGameHighestScore)
	}

	assert.Equal(t, []int{1, 2, 3}, played)
	assert.Equal(t, []int{7, 7, 12}, best)
}

func TestUserService_RecordDraftResult(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	mockRepo.On("IncrementCounters", mock.Anything, "u5", map[string]int{ColDraftGamesPlayed: 1, ColDraftGameWins: 1}).
		Return(&User{ID: "u5", DraftGamesPlayed: 1, DraftGameWins: 1}, nil)
	mockRepo.On("IncrementCounters", mock.Anything, "u5", map[string]int{ColDraftGamesPlayed: 1, ColDraftGameLosses: 1}).
		Return(&User{ID: "u5", DraftGamesPlayed: 2, DraftGameWins: 1, DraftGameLosses: 1}, nil)

	_, err := service.RecordDraftResult(ctx, "u5", true)
	require.NoError(t, err)
	u, err := service.RecordDraftResult(ctx, "u5", false)
	require.NoError(t, err)
	assert.Equal(t, 2, u.DraftGamesPlayed)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RecordDraftResult_KeepsTotals(t *testing.T) {
	repo := NewMemoryUserRepository()
	service := NewUserService(repo)
	created, err := repo.CreateUser(ctx, "drafter@example.com", "drafter", "secret")
	require.NoError(t, err)

	var u *User
	for _, won := range []bool{true, false, false, true, true} {
		u, err = service.RecordDraftResult(ctx, created.ID, won)
		require.NoError(t, err)
		assert.Equal(t, u.DraftGamesPlayed, u.DraftGameWins+u.DraftGameLosses)
	}
	assert.Equal(t, 5, u.DraftGamesPlayed)
	assert.Equal(t, 3, u.DraftGameWins)
	assert.Equal(t, 2, u.DraftGameLosses)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := NewMemoryUserRepository()
	service := NewUserService(repo)
	created, err := repo.CreateUser(ctx, "henry@example.com", "henry777", "firstPass")
	require.NoError(t, err)

	same, err := service.ChangePassword(ctx, created.ID, ChangePasswordRequest{CurrentPassword: "firstPass", NewPassword: "firstPass"})
	require.NoError(t, err)
	assert.Equal(t, created.Password, same.Password)

	changed, err := service.ChangePassword(ctx, created.ID, ChangePasswordRequest{CurrentPassword: "firstPass", NewPassword: "newPass123"})
	require.NoError(t, err)
	assert.NotEqual(t, created.Password, changed.Password)

	_, err = repo.ValidateUser(ctx, "henry777", "newPass123")
	assert.NoError(t, err)
}

func TestUserService_ChangePassword_Rejections(t *testing.T) {
	repo := NewMemoryUserRepository()
	service := NewUserService(repo)
	created, err := repo.CreateUser(ctx, "ivy@example.com", "ivy123", "firstPass")
	require.NoError(t, err)

	_, err = service.ChangePassword(ctx, created.ID, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newPass123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.ChangePassword(ctx, created.ID, ChangePasswordRequest{CurrentPassword: "firstPass", NewPassword: "1234"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.ChangePassword(ctx, "missing", ChangePasswordRequest{CurrentPassword: "firstPass", NewPassword: "newPass123"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
