package exam

// Level is the topic flow's difficulty: an integer from 1 to 5.
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 5
	DefaultLevel Level = 3
)

// Clamp forces the level into the valid 1-5 range.
func (l Level) Clamp() Level {
	if l < MinLevel {
		return MinLevel
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// Named is the subject flow's difficulty: one of easy, medium, hard.
type Named string

const (
	Easy   Named = "easy"
	Medium Named = "medium"
	Hard   Named = "hard"
)

// AllNamed lists the named difficulties in display order.
func AllNamed() []Named {
	return []Named{Easy, Medium, Hard}
}

// Label returns the human-readable form shown on the difficulty chips.
func (n Named) Label() string {
	switch n {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return string(n)
}
