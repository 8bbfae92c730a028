package hero

import (
	"context"
	"errors"
	"net/http"

	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HeroRepository interface {
	ListUpTo(ctx context.Context, n int) ([]Hero, error)
	FindByID(ctx context.Context, id string) (*Hero, error)
	Upsert(ctx context.Context, heroes []Hero) (int, error)
}

type GormHeroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *GormHeroRepository {
	return &GormHeroRepository{db: db}
}

// ListUpTo returns at most n heroes in storage order. n <= 0 lists the whole catalog.
func (r *GormHeroRepository) ListUpTo(ctx context.Context, n int) ([]Hero, error) {
	query := r.db.WithContext(ctx).Order("store_id")
	if n > 0 {
		query = query.Limit(n)
	}

	heroes := []Hero{}
	if err := query.Find(&heroes).Error; err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error listing heroes", err)
	}
	return heroes, nil
}

// FindByID looks a hero up by its external id and returns nil when it does not exist.
func (r *GormHeroRepository) FindByID(ctx context.Context, id string) (*Hero, error) {
	var h Hero
	err := r.db.WithContext(ctx).Where("hero_id = ?", id).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error getting hero", err)
	}
	return &h, nil
}

// Upsert inserts the heroes, replacing the stored entry of any hero whose id already exists.
func (r *GormHeroRepository) Upsert(ctx context.Context, heroes []Hero) (int, error) {
	if len(heroes) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hero_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"response", "name", "powerstats", "biography", "appearance", "work", "connections", "image",
		}),
	}).CreateInBatches(heroes, 100)
	if result.Error != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "error saving heroes", result.Error)
	}
	return int(result.RowsAffected), nil
}
