package entities

// Default word list bounds.
const (
	DefaultWordLimit = 30
	MinWordLimit     = 10
	MaxWordLimit     = 100
)

// WordLimits bounds the size of one word list fetch.
type WordLimits struct {
	Default int
	Min     int
	Max     int
}

// NewWordLimits returns the default bounds (30, 10..100).
func NewWordLimits() WordLimits {
	return WordLimits{
		Default: DefaultWordLimit,
		Min:     MinWordLimit,
		Max:     MaxWordLimit,
	}
}

// Clamp maps a caller-supplied limit into [Min, Max]. A non-positive limit
// means "not set" and resolves to Default.
func (l WordLimits) Clamp(limit int) int {
	if limit <= 0 {
		limit = l.Default
	}
	if limit < l.Min {
		return l.Min
	}
	if limit > l.Max {
		return l.Max
	}
	return limit
}
