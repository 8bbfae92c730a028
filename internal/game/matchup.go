package game

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "game").Logger()

const DefaultPoolSize = 150

type HeroLister interface {
	ListUpTo(ctx context.Context, n int) ([]hero.Hero, error)
}

// Rand is the random source used for shuffling. *rand.Rand from math/rand/v2
// satisfies it but is not safe for concurrent use.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type MatchupSelector struct {
	heroes   HeroLister
	rng      Rand
	poolSize int
}

// NewMatchupSelector falls back to the process wide random source when rng is
// nil and to DefaultPoolSize when poolSize is below 2.
func NewMatchupSelector(heroes HeroLister, rng Rand, poolSize int) *MatchupSelector {
	if rng == nil {
		rng = globalRand{}
	}
	if poolSize < 2 {
		poolSize = DefaultPoolSize
	}
	return &MatchupSelector{heroes: heroes, rng: rng, poolSize: poolSize}
}

type candidate struct {
	hero  hero.Hero
	value float64
}

// SelectBalancedPair picks the two heroes whose gap on attribute best fits the
// player's difficulty tier. player may be nil.
func (s *MatchupSelector) SelectBalancedPair(ctx context.Context, attribute string, player *user.User) (*MatchupResult, error) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "attribute is required", ErrInvalidArgument)
	}
	if !hero.IsAttribute(attribute) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "invalid attribute", ErrInvalidArgument)
	}

	difficulty := Easy
	if player != nil {
		difficulty = DifficultyFor(player.HigherLowerGameHighestScore)
	}
	target := TargetRangeFor(difficulty)

	pool, err := s.heroes.ListUpTo(ctx, s.poolSize)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(pool))
	for i := range pool {
		if value, ok := pool[i].Stat(attribute); ok {
			candidates = append(candidates, candidate{hero: pool[i], value: value})
		}
	}
	if len(candidates) < 2 {
		return nil, apperrors.NewAppError(http.StatusUnprocessableEntity,
			fmt.Sprintf("not enough heroes with a numeric %s", attribute), ErrInsufficientData)
	}

	s.shuffle(candidates)

	bestA, bestB := -1, -1
	bestScore, bestDiff := math.Inf(1), 0.0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			diff := math.Abs(candidates[i].value - candidates[j].value)
			if diff == 0 {
				continue
			}
			if score := pairScore(diff, target); score < bestScore {
				bestA, bestB = i, j
				bestScore, bestDiff = score, diff
			}
		}
	}
	if bestA < 0 {
		return nil, apperrors.NewAppError(http.StatusUnprocessableEntity,
			fmt.Sprintf("every hero shares the same %s", attribute),
			fmt.Errorf("%w: %w", ErrNoSuitablePair, ErrInsufficientData))
	}

	logger.Debug().
		Str("attribute", attribute).
		Str("difficulty", string(difficulty)).
		Int("pool", len(candidates)).
		Float64("diff", bestDiff).
		Msg("matchup selected")

	return &MatchupResult{
		HeroA:      candidates[bestA].hero,
		HeroB:      candidates[bestB].hero,
		Attribute:  attribute,
		Difficulty: difficulty,
		Diff:       bestDiff,
	}, nil
}

// shuffle is a Fisher-Yates permutation driven by the selector's source.
func (s *MatchupSelector) shuffle(c []candidate) {
	for i := len(c) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		c[i], c[j] = c[j], c[i]
	}
}

// pairScore is the distance of diff from the ideal window, lower is better.
// Gaps outside the window always score above 10.
func pairScore(diff float64, target TargetRange) float64 {
	switch {
	case diff < target.Min:
		return (target.Min - diff) + 10
	case diff > target.Max:
		return (diff - target.Max) + 10
	default:
		return math.Abs(diff - target.Mid())
	}
}
