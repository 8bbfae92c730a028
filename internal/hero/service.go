package hero

import (
	"context"
	"errors"
	"net/http"

	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
)

var ErrHeroNotFound = errors.New("hero not found")

type HeroService struct {
	repo HeroRepository
}

func NewHeroService(repo HeroRepository) *HeroService {
	return &HeroService{repo: repo}
}

func (s *HeroService) ListHeroes(ctx context.Context) ([]Hero, error) {
	return s.repo.ListUpTo(ctx, 0)
}

// GetHero returns nil without error when id is unknown.
func (s *HeroService) GetHero(ctx context.Context, id string) (*Hero, error) {
	if id == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "hero id is required", nil)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *HeroService) MustGetHero(ctx context.Context, id string) (*Hero, error) {
	h, err := s.GetHero(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "hero not found", ErrHeroNotFound)
	}
	return h, nil
}

// Seed stores the catalog entries, skipping any without an external id.
func (s *HeroService) Seed(ctx context.Context, heroes []Hero) (int, error) {
	valid := make([]Hero, 0, len(heroes))
	for _, h := range heroes {
		if h.HeroID == "" {
			logger.Warn().Str("name", h.Name).Msg("skipping hero without id")
			continue
		}
		h.StoreID = 0
		valid = append(valid, h)
	}

	n, err := s.repo.Upsert(ctx, valid)
	if err != nil {
		return 0, err
	}
	logger.Info().Int("heroes", len(valid)).Msg("hero catalog seeded")
	return n, nil
}
