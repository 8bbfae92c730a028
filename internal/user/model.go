package user

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinUsernameLength = 4
	MinPasswordLength = 5
)

// Counter columns that the store may increment atomically.
const (
	ColHigherLowerGamesPlayed      = "higher_lower_games_played"
	ColHigherLowerGameHighestScore = "higher_lower_game_highest_score"
	ColDraftGamesPlayed            = "draft_games_played"
	ColDraftGameWins               = "draft_game_wins"
	ColDraftGameLosses             = "draft_game_losses"
)

var counterColumns = map[string]bool{
	ColHigherLowerGamesPlayed:      true,
	ColHigherLowerGameHighestScore: true,
	ColDraftGamesPlayed:            true,
	ColDraftGameWins:               true,
	ColDraftGameLosses:             true,
}

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

type User struct {
	ID                          string    `gorm:"primaryKey;type:uuid" json:"_id"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	Username                    string    `gorm:"uniqueIndex;not null" json:"username"`
	Password                    string    `gorm:"not null" json:"-"`
	HigherLowerGamesPlayed      int       `gorm:"not null;default:0" json:"higherLowerGamesPlayed"`
	HigherLowerGameHighestScore int       `gorm:"not null;default:0" json:"higherLowerGameHighestScore"`
	DraftGamesPlayed            int       `gorm:"not null;default:0" json:"draftGamesPlayed"`
	DraftGameWins               int       `gorm:"not null;default:0" json:"draftGameWins"`
	DraftGameLosses             int       `gorm:"not null;default:0" json:"draftGameLosses"`
	CreatedAt                   time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UserStatsResponse struct {
	Username                    string  `json:"username"`
	HigherLowerGamesPlayed      int     `json:"higherLowerGamesPlayed"`
	HigherLowerGameHighestScore int     `json:"higherLowerGameHighestScore"`
	DraftGamesPlayed            int     `json:"draftGamesPlayed"`
	DraftGameWins               int     `json:"draftGameWins"`
	DraftGameLosses             int     `json:"draftGameLosses"`
	DraftWinRate                float64 `json:"draftWinRate"`
}
