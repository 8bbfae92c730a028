package hero

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

const (
	Strength     = "strength"
	Speed        = "speed"
	Intelligence = "intelligence"
	Power        = "power"
	Durability   = "durability"
	Combat       = "combat"
)

var Attributes = []string{Strength, Speed, Intelligence, Power, Durability, Combat}

func IsAttribute(attribute string) bool {
	for _, a := range Attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// Powerstats maps an attribute name to its value as stored by the catalog,
// e.g. {"strength": "95"}. Attributes may be absent.
type Powerstats map[string]string

type Biography struct {
	FullName        string   `json:"full-name"`
	AlterEgos       string   `json:"alter-egos"`
	Aliases         []string `json:"aliases"`
	PlaceOfBirth    string   `json:"place-of-birth"`
	FirstAppearance string   `json:"first-appearance"`
	Publisher       string   `json:"publisher"`
	Alignment       string   `json:"alignment"`
}

type Appearance struct {
	Gender    string   `json:"gender"`
	Race      string   `json:"race"`
	Height    []string `json:"height"`
	Weight    []string `json:"weight"`
	EyeColor  string   `json:"eye-color"`
	HairColor string   `json:"hair-color"`
}

type Work struct {
	Occupation string `json:"occupation"`
	Base       string `json:"base"`
}

type Connections struct {
	GroupAffiliation string `json:"group-affiliation"`
	Relatives        string `json:"relatives"`
}

type Image struct {
	URL string `json:"url"`
}

type Hero struct {
	StoreID     uint                            `gorm:"primaryKey" json:"_id"`
	HeroID      string                          `gorm:"column:hero_id;uniqueIndex;not null" json:"id"`
	Response    string                          `json:"response,omitempty"`
	Name        string                          `gorm:"index" json:"name"`
	Powerstats  datatypes.JSONType[Powerstats]  `json:"powerstats"`
	Biography   datatypes.JSONType[Biography]   `json:"biography"`
	Appearance  datatypes.JSONType[Appearance]  `json:"appearance"`
	Work        datatypes.JSONType[Work]        `json:"work"`
	Connections datatypes.JSONType[Connections] `json:"connections"`
	Image       datatypes.JSONType[Image]       `json:"image"`
}

func (Hero) TableName() string {
	return "heroes"
}

// New builds a catalog entry holding only an id, a name and its powerstats.
func New(id, name string, stats Powerstats) Hero {
	return Hero{HeroID: id, Name: name, Powerstats: datatypes.NewJSONType(stats)}
}

// Stat returns the attribute as a finite number. Missing, blank or
// non-numeric values report false.
func (h *Hero) Stat(attribute string) (float64, bool) {
	if h == nil {
		return 0, false
	}
	raw, ok := h.Powerstats.Data()[attribute]
	if !ok {
		return 0, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// IntStat reads the leading integer of the attribute value, "87.5" is 87.
// Missing or non-numeric values read as 0.
func (h *Hero) IntStat(attribute string) int {
	if h == nil {
		return 0
	}
	return parseLeadingInt(h.Powerstats.Data()[attribute])
}

func parseLeadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return sign * value
}
