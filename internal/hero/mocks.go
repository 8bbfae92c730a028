package hero

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockHeroRepository struct {
	mock.Mock
}

func (m *MockHeroRepository) ListUpTo(ctx context.Context, n int) ([]Hero, error) {
	args := m.Called(ctx, n)
	heroes, _ := args.Get(0).([]Hero)
	return heroes, args.Error(1)
}

func (m *MockHeroRepository) FindByID(ctx context.Context, id string) (*Hero, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*Hero)
	return h, args.Error(1)
}

func (m *MockHeroRepository) Upsert(ctx context.Context, heroes []Hero) (int, error) {
	args := m.Called(ctx, heroes)
	return args.Int(0), args.Error(1)
}
