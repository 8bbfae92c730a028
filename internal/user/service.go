package user

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "user").Logger()

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (u *UserService) Signup(ctx context.Context, req SignupRequest) (*AuthPayload, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := u.repo.CreateUser(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, errJWT := GenerateJWT(created)
	if errJWT != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", errJWT)
	}
	logger.Info().Str("user", created.ID).Msg("user signed up")
	return &AuthPayload{Token: token, User: created}, nil
}

func (u *UserService) Login(ctx context.Context, req LoginRequest) (*AuthPayload, error) {
	found, err := u.repo.ValidateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	token, errJWT := GenerateJWT(found)
	if errJWT != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", errJWT)
	}
	return &AuthPayload{Token: token, User: found}, nil
}

// GetUser returns nil without error when the user does not exist.
func (u *UserService) GetUser(ctx context.Context, id string) (*User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserService) ListUsers(ctx context.Context) ([]User, error) {
	return u.repo.ListUsers(ctx)
}

func (u *UserService) GetUserStats(ctx context.Context, id string) (*UserStatsResponse, error) {
	found, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}

	winRate := 0.0
	if found.DraftGamesPlayed > 0 {
		winRate = 100 * (float64(found.DraftGameWins) / float64(found.DraftGamesPlayed))
	}

	return &UserStatsResponse{
		Username:                    found.Username,
		HigherLowerGamesPlayed:      found.HigherLowerGamesPlayed,
		HigherLowerGameHighestScore: found.HigherLowerGameHighestScore,
		DraftGamesPlayed:            found.DraftGamesPlayed,
		DraftGameWins:               found.DraftGameWins,
		DraftGameLosses:             found.DraftGameLosses,
		DraftWinRate:                winRate,
	}, nil
}

// RecordHigherLowerScore counts a finished Higher/Lower game and keeps the best streak.
func (u *UserService) RecordHigherLowerScore(ctx context.Context, id string, streak int) (*User, error) {
	if streak < 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "streak must not be negative", ErrValidation)
	}
	updated, err := u.repo.IncrementAndRaiseMax(ctx, id, ColHigherLowerGamesPlayed, ColHigherLowerGameHighestScore, streak)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("user", id).Int("streak", streak).Int("best", updated.HigherLowerGameHighestScore).Msg("higher/lower score recorded")
	return updated, nil
}

// RecordDraftResult counts one draft game as exactly one win or one loss.
func (u *UserService) RecordDraftResult(ctx context.Context, id string, won bool) (*User, error) {
	deltas := map[string]int{ColDraftGamesPlayed: 1}
	if won {
		deltas[ColDraftGameWins] = 1
	} else {
		deltas[ColDraftGameLosses] = 1
	}

	updated, err := u.repo.IncrementCounters(ctx, id, deltas)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("user", id).Bool("won", won).Msg("draft result recorded")
	return updated, nil
}

func (u *UserService) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) (*User, error) {
	found, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	if _, err := u.repo.ValidateUser(ctx, found.Username, req.CurrentPassword); err != nil {
		return nil, err
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return nil, err
	}
	return u.repo.UpdatePassword(ctx, id, req.NewPassword)
}
