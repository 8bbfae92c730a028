package game

import (
	"context"
	"fmt"
	"net/http"

	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

// PlayerStore is the part of the user store a session needs.
// user.UserRepository satisfies it.
type PlayerStore interface {
	GetUser(ctx context.Context, id string) (*user.User, error)
	IncrementAndRaiseMax(ctx context.Context, id, counterField, maxField string, candidate int) (*user.User, error)
}

type HigherLowerService struct {
	selector  *MatchupSelector
	validator *GuessValidator
	players   PlayerStore
}

func NewHigherLowerService(selector *MatchupSelector, validator *GuessValidator, players PlayerStore) *HigherLowerService {
	return &HigherLowerService{selector: selector, validator: validator, players: players}
}

func isSessionAttribute(attribute string) bool {
	for _, a := range SessionAttributes {
		if a == attribute {
			return true
		}
	}
	return false
}

func (s *HigherLowerService) StartSession(ctx context.Context, userID string, req StartSessionRequest) (*Session, error) {
	if !isSessionAttribute(req.Attribute) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid attribute", ErrInvalidArgument)
	}

	player, err := s.players.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matchup, err := s.selector.SelectBalancedPair(ctx, req.Attribute, player)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user", userID).
		Str("attribute", matchup.Attribute).
		Str("difficulty", string(matchup.Difficulty)).
		Msg("higher/lower session started")

	return &Session{
		HeroA:      matchup.HeroA,
		HeroB:      matchup.HeroB,
		Attribute:  matchup.Attribute,
		Difficulty: matchup.Difficulty,
		Diff:       matchup.Diff,
		Prompt:     Prompt(&matchup.HeroA, &matchup.HeroB, matchup.Attribute),
	}, nil
}

func Prompt(a, b *hero.Hero, attribute string) string {
	return fmt.Sprintf("Is %s's %s HIGHER or LOWER than %s's %s?", a.Name, attribute, b.Name, attribute)
}

func (s *HigherLowerService) ValidateGuess(ctx context.Context, req GuessRequest) (*GuessResult, error) {
	return s.validator.Validate(ctx, req)
}

// EndSession counts the game and ratchets the stored best score in one update.
func (s *HigherLowerService) EndSession(ctx context.Context, userID string, req EndSessionRequest) (*SessionSummary, error) {
	if req.FinalScore < 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "finalScore must not be negative", ErrInvalidArgument)
	}

	updated, err := s.players.IncrementAndRaiseMax(ctx, userID,
		user.ColHigherLowerGamesPlayed, user.ColHigherLowerGameHighestScore, req.FinalScore)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user", userID).
		Int("finalScore", req.FinalScore).
		Int("best", updated.HigherLowerGameHighestScore).
		Msg("higher/lower session ended")

	return &SessionSummary{
		HigherLowerGamesPlayed:      updated.HigherLowerGamesPlayed,
		HigherLowerGameHighestScore: updated.HigherLowerGameHighestScore,
	}, nil
}
