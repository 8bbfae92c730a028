package game

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultyFor maps a player's best streak to a tier.
func DifficultyFor(highestStreak int) Difficulty {
	switch {
	case highestStreak < 5:
		return Easy
	case highestStreak < 10:
		return Medium
	default:
		return Hard
	}
}

// TargetRange is the inclusive gap window a balanced pair should land in.
type TargetRange struct {
	Min float64
	Max float64
}

func (r TargetRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

func TargetRangeFor(d Difficulty) TargetRange {
	switch d {
	case Easy:
		return TargetRange{Min: 20, Max: 50}
	case Medium:
		return TargetRange{Min: 10, Max: 25}
	default:
		return TargetRange{Min: 3, Max: 15}
	}
}
