package game

import (
	"context"
	"net/http"
	"strings"

	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
)

type HeroFinder interface {
	FindByID(ctx context.Context, id string) (*hero.Hero, error)
}

type GuessValidator struct {
	heroes HeroFinder
}

func NewGuessValidator(heroes HeroFinder) *GuessValidator {
	return &GuessValidator{heroes: heroes}
}

// CorrectAnswer compares two stat values. Ties count as Higher.
func CorrectAnswer(a, b int) string {
	if a < b {
		return GuessLower
	}
	return GuessHigher
}

// Validate checks a guess against the stored stats. It keeps no state: the
// caller owns the running score and sends it back as CurrentScore.
func (v *GuessValidator) Validate(ctx context.Context, req GuessRequest) (*GuessResult, error) {
	if strings.TrimSpace(req.Attribute) == "" || req.Guess == "" || req.HeroAID == "" || req.HeroBID == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "guess, attribute, heroAId and heroBId are required", ErrInvalidArgument)
	}
	if !hero.IsAttribute(req.Attribute) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid attribute", ErrInvalidArgument)
	}

	heroA, err := v.heroes.FindByID(ctx, req.HeroAID)
	if err != nil {
		return nil, err
	}
	heroB, err := v.heroes.FindByID(ctx, req.HeroBID)
	if err != nil {
		return nil, err
	}
	if heroA == nil || heroB == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "Invalid hero IDs", ErrNotFound)
	}

	answer := CorrectAnswer(heroA.IntStat(req.Attribute), heroB.IntStat(req.Attribute))
	result := &GuessResult{
		IsCorrect:     req.Guess == answer,
		CorrectAnswer: answer,
	}
	if result.IsCorrect {
		result.ScoreDelta = 1
	}
	result.NewScore = req.CurrentScore + result.ScoreDelta
	return result, nil
}
