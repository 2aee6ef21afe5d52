package matching

import "fmt"

// Score boundaries. Lower bounds are inclusive.
const (
	AcceptanceThreshold = 0.5
	MediumThreshold     = 0.70
	HighThreshold       = 0.85
)

// Tier is the precision bucket of an accepted match.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

var tierNames = map[Tier]string{
	TierLow:    "low",
	TierMedium: "medium",
	TierHigh:   "high",
}

// Classify maps a composite score to a tier. Callers are expected to have
// filtered out scores below AcceptanceThreshold.
func Classify(score float64) Tier {
	switch {
	case score >= HighThreshold:
		return TierHigh
	case score >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if name == string(text) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}

// Tiers lists all tiers from strongest to weakest.
func Tiers() []Tier {
	return []Tier{TierHigh, TierMedium, TierLow}
}
