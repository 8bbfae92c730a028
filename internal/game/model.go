package game

import (
	"errors"

	"github.com/thesrcielos/HeroHigherLower/internal/hero"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNoSuitablePair   = errors.New("no suitable pair")
	ErrNotFound         = errors.New("not found")
)

const (
	GuessHigher = "Higher"
	GuessLower  = "Lower"
)

// SessionAttributes are the attributes a Higher/Lower session may be started with.
var SessionAttributes = []string{hero.Strength, hero.Speed, hero.Intelligence, hero.Power}

type MatchupResult struct {
	HeroA      hero.Hero  `json:"heroA"`
	HeroB      hero.Hero  `json:"heroB"`
	Attribute  string     `json:"attribute"`
	Difficulty Difficulty `json:"difficulty"`
	Diff       float64    `json:"diff"`
}

type StartSessionRequest struct {
	Attribute string `json:"attribute"`
}

type Session struct {
	HeroA      hero.Hero  `json:"heroA"`
	HeroB      hero.Hero  `json:"heroB"`
	Attribute  string     `json:"attribute"`
	Difficulty Difficulty `json:"difficulty"`
	Diff       float64    `json:"diff"`
	Prompt     string     `json:"prompt"`
}

type GuessRequest struct {
	Guess        string `json:"guess"`
	Attribute    string `json:"attribute"`
	HeroAID      string `json:"heroAId"`
	HeroBID      string `json:"heroBId"`
	CurrentScore int    `json:"currentScore"`
}

type GuessResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	ScoreDelta    int    `json:"scoreDelta"`
	NewScore      int    `json:"newScore"`
}

type EndSessionRequest struct {
	FinalScore int `json:"finalScore"`
}

// SessionSummary is what the user record holds after a session ends.
type SessionSummary struct {
	HigherLowerGamesPlayed      int `json:"higherLowerGamesPlayed"`
	HigherLowerGameHighestScore int `json:"higherLowerGameHighestScore"`
}
