package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

var ctx = context.Background()

// heroPool serves a fixed catalog, honoring the ListUpTo limit.
type heroPool []hero.Hero

func (p heroPool) ListUpTo(ctx context.Context, n int) ([]hero.Hero, error) {
	if n <= 0 || n > len(p) {
		n = len(p)
	}
	out := make([]hero.Hero, n)
	copy(out, p[:n])
	return out, nil
}

func (p heroPool) FindByID(ctx context.Context, id string) (*hero.Hero, error) {
	for i := range p {
		if p[i].HeroID == id {
			h := p[i]
			return &h, nil
		}
	}
	return nil, nil
}

// keepOrder makes the shuffle a no-op.
type keepOrder struct{}

func (keepOrder) IntN(n int) int { return n - 1 }

func strengthHero(id string, value string) hero.Hero {
	return hero.New(id, "Hero "+id, hero.Powerstats{hero.Strength: value})
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		streak int
		want   Difficulty
	}{
		{-3, Easy}, {0, Easy}, {4, Easy},
		{5, Medium}, {9, Medium},
		{10, Hard}, {250, Hard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyFor(tt.streak), "streak %d", tt.streak)
	}
}

func TestTargetRangeFor(t *testing.T) {
	assert.Equal(t, TargetRange{Min: 20, Max: 50}, TargetRangeFor(Easy))
	assert.Equal(t, TargetRange{Min: 10, Max: 25}, TargetRangeFor(Medium))
	assert.Equal(t, TargetRange{Min: 3, Max: 15}, TargetRangeFor(Hard))
	assert.Equal(t, TargetRangeFor(Hard), TargetRangeFor(Difficulty("legendary")))

	for _, d := range []Difficulty{Easy, Medium, Hard, ""} {
		r := TargetRangeFor(d)
		assert.Less(t, r.Min, r.Max)
	}
}

func TestPairScore(t *testing.T) {
	easy := TargetRangeFor(Easy)
	assert.Equal(t, 0.0, pairScore(35, easy))
	assert.Equal(t, 15.0, pairScore(20, easy))
	assert.Equal(t, 15.0, pairScore(50, easy))
	assert.Equal(t, 20.0, pairScore(10, easy))
	assert.Equal(t, 45.0, pairScore(85, easy))
}

func TestSelectBalancedPair_EasyScenario(t *testing.T) {
	pool := heroPool{strengthHero("A", "95"), strengthHero("B", "60"), strengthHero("C", "10")}
	selector := NewMatchupSelector(pool, seeded(), 0)

	for i := 0; i < 20; i++ {
		result, err := selector.SelectBalancedPair(ctx, hero.Strength, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A", "B"}, []string{result.HeroA.HeroID, result.HeroB.HeroID})
		assert.Equal(t, 35.0, result.Diff)
		assert.Equal(t, Easy, result.Difficulty)
		assert.Equal(t, hero.Strength, result.Attribute)
	}
}

func TestSelectBalancedPair_TierFromUser(t *testing.T) {
	// hard window is 3..15 (mid 9): B/C at 8 apart beats A/B at 35
	pool := heroPool{strengthHero("A", "95"), strengthHero("B", "60"), strengthHero("C", "52")}
	selector := NewMatchupSelector(pool, seeded(), 0)

	result, err := selector.SelectBalancedPair(ctx, hero.Strength, &user.User{HigherLowerGameHighestScore: 12})
	require.NoError(t, err)
	assert.Equal(t, Hard, result.Difficulty)
	assert.ElementsMatch(t, []string{"B", "C"}, []string{result.HeroA.HeroID, result.HeroB.HeroID})
	assert.Equal(t, 8.0, result.Diff)
}

func TestSelectBalancedPair_TiesKeepFirstSeen(t *testing.T) {
	// A/B and B/C both sit on the easy midpoint
	pool := heroPool{strengthHero("A", "10"), strengthHero("B", "45"), strengthHero("C", "80")}

	result, err := NewMatchupSelector(pool, keepOrder{}, 0).SelectBalancedPair(ctx, hero.Strength, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", result.HeroA.HeroID)
	assert.Equal(t, "B", result.HeroB.HeroID)

	reversed := heroPool{pool[2], pool[1], pool[0]}
	result, err = NewMatchupSelector(reversed, keepOrder{}, 0).SelectBalancedPair(ctx, hero.Strength, nil)
	require.NoError(t, err)
	assert.Equal(t, "C", result.HeroA.HeroID)
	assert.Equal(t, "B", result.HeroB.HeroID)
}

func TestSelectBalancedPair_SkipsUnusableStats(t *testing.T) {
	pool := heroPool{
		strengthHero("A", "95"),
		hero.New("missing", "No Strength", hero.Powerstats{hero.Speed: "40"}),
		strengthHero("null", "null"),
		strengthHero("blank", " "),
		strengthHero("B", "60"),
	}
	selector := NewMatchupSelector(pool, seeded(), 0)

	result, err := selector.SelectBalancedPair(ctx, hero.Strength, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, []string{result.HeroA.HeroID, result.HeroB.HeroID})
}

func TestSelectBalancedPair_InvalidAttribute(t *testing.T) {
	repo := &hero.MockHeroRepository{}
	selector := NewMatchupSelector(repo, seeded(), 0)

	for _, attr := range []string{"", "   ", "charisma"} {
		_, err := selector.SelectBalancedPair(ctx, attr, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument, "attribute %q", attr)
		assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
	}
	repo.AssertNotCalled(t, "ListUpTo", mock.Anything, mock.Anything)
}

func TestSelectBalancedPair_InsufficientData(t *testing.T) {
	pool := heroPool{strengthHero("A", "95"), strengthHero("B", "-")}

	_, err := NewMatchupSelector(pool, seeded(), 0).SelectBalancedPair(ctx, hero.Strength, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.False(t, errors.Is(err, ErrNoSuitablePair))

	_, err = NewMatchupSelector(heroPool{}, seeded(), 0).SelectBalancedPair(ctx, hero.Strength, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSelectBalancedPair_AllEqualValues(t *testing.T) {
	pool := heroPool{strengthHero("A", "50"), strengthHero("B", "50"), strengthHero("C", "50.0")}

	_, err := NewMatchupSelector(pool, seeded(), 0).SelectBalancedPair(ctx, hero.Strength, nil)
	assert.ErrorIs(t, err, ErrNoSuitablePair)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSelectBalancedPair_ReadsBoundedPool(t *testing.T) {
	repo := &hero.MockHeroRepository{}
	repo.On("ListUpTo", mock.Anything, 25).Return([]hero.Hero{strengthHero("A", "95"), strengthHero("B", "60")}, nil)

	_, err := NewMatchupSelector(repo, seeded(), 25).SelectBalancedPair(ctx, hero.Strength, nil)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	repo = &hero.MockHeroRepository{}
	repo.On("ListUpTo", mock.Anything, DefaultPoolSize).Return(nil, errors.New("catalog down"))
	_, err = NewMatchupSelector(repo, nil, 0).SelectBalancedPair(ctx, hero.Strength, nil)
	assert.EqualError(t, err, "catalog down")
}

func TestSelectBalancedPair_AlwaysDistinctWithPositiveGap(t *testing.T) {
	rng := seeded()
	for round := 0; round < 200; round++ {
		size := 2 + rng.IntN(30)
		pool := make(heroPool, size)
		for i := range pool {
			pool[i] = strengthHero(fmt.Sprintf("h%d", i), fmt.Sprint(rng.IntN(101)))
		}
		// guarantee at least one non-zero gap
		pool[0] = strengthHero("h0", "0")
		pool[1] = strengthHero("h1", "100")

		streak := rng.IntN(15)
		result, err := NewMatchupSelector(pool, rng, 0).SelectBalancedPair(ctx, hero.Strength, &user.User{HigherLowerGameHighestScore: streak})
		require.NoError(t, err)
		assert.NotEqual(t, result.HeroA.HeroID, result.HeroB.HeroID)
		assert.Greater(t, result.Diff, 0.0)
		assert.Equal(t, DifficultyFor(streak), result.Difficulty)
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	selector := NewMatchupSelector(heroPool{}, seeded(), 0)
	c := make([]candidate, 50)
	for i := range c {
		c[i].value = float64(i)
	}
	selector.shuffle(c)

	seen := make(map[float64]bool, len(c))
	for _, x := range c {
		seen[x.value] = true
	}
	assert.Len(t, seen, 50)
}
