package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, username, password string) (*User, error)
	ValidateUser(ctx context.Context, username, password string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	IncrementAndRaiseMax(ctx context.Context, id, counterField, maxField string, candidate int) (*User, error)
	IncrementCounters(ctx context.Context, id string, deltas map[string]int) (*User, error)
	UpdatePassword(ctx context.Context, id, password string) (*User, error)
}

type GormUserRepository struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserRepository(db *gorm.DB, bcryptCost int) *GormUserRepository {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &GormUserRepository{db: db, bcryptCost: bcryptCost}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, email, username, password string) (*User, error) {
	var exists User
	result := r.db.WithContext(ctx).Where("username = ? OR email = ?", username, email).Limit(1).Find(&exists)
	if result.Error != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error checking user", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil, apperrors.NewAppError(http.StatusConflict, "user already exists", ErrDuplicateUser)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error hashing password", err)
	}
	newUser := User{
		Email:    email,
		Username: username,
		Password: string(hashed),
	}

	if err := r.db.WithContext(ctx).Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewAppError(http.StatusConflict, "user already exists", ErrDuplicateUser)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error creating user", err)
	}

	return &newUser, nil
}

func (r *GormUserRepository) ValidateUser(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "No user found with this username", ErrInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error getting user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Incorrect credentials", ErrInvalidCredentials)
	}

	return &u, nil
}

// GetUser returns nil without error when the user does not exist.
func (r *GormUserRepository) GetUser(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var u User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error getting user", err)
	}
	return &u, nil
}

func (r *GormUserRepository) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error listing users", err)
	}
	return users, nil
}

// IncrementAndRaiseMax adds one to counterField and raises maxField to
// candidate if candidate is greater, in a single UPDATE.
func (r *GormUserRepository) IncrementAndRaiseMax(ctx context.Context, id, counterField, maxField string, candidate int) (*User, error) {
	if !counterColumns[counterField] || !counterColumns[maxField] || counterField == maxField {
		return nil, apperrors.NewAppError(http.StatusInternalServerError,
			fmt.Sprintf("invalid counter columns %q/%q", counterField, maxField), nil)
	}
	return r.update(ctx, id, map[string]interface{}{
		counterField: gorm.Expr(counterField+" + ?", 1),
		maxField:     gorm.Expr("GREATEST("+maxField+", ?)", candidate),
	})
}

func (r *GormUserRepository) IncrementCounters(ctx context.Context, id string, deltas map[string]int) (*User, error) {
	updates := make(map[string]interface{}, len(deltas))
	for column, delta := range deltas {
		if !counterColumns[column] {
			return nil, apperrors.NewAppError(http.StatusInternalServerError,
				fmt.Sprintf("invalid counter column %q", column), nil)
		}
		updates[column] = gorm.Expr(column+" + ?", delta)
	}
	if len(updates) == 0 {
		return r.mustGetUser(ctx, id)
	}
	return r.update(ctx, id, updates)
}

// UpdatePassword stores a new hash only when password differs from the current one.
func (r *GormUserRepository) UpdatePassword(ctx context.Context, id, password string) (*User, error) {
	u, err := r.mustGetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
		return u, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error hashing password", err)
	}
	return r.update(ctx, id, map[string]interface{}{"password": string(hashed)})
}

func (r *GormUserRepository) update(ctx context.Context, id string, updates map[string]interface{}) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	var updated User
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error updating user", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	return &updated, nil
}

func (r *GormUserRepository) mustGetUser(ctx context.Context, id string) (*User, error) {
	u, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewAppError(http.StatusNotFound, "user not found", ErrUserNotFound)
	}
	return u, nil
}
