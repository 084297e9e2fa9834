package similarity

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tier is a discrete match-quality class derived from a similarity score.
type Tier int

const (
	// Unknown is the zero value, used when no score is available.
	Unknown Tier = iota
	NeedsImprovement
	GoodMatch
	StrongMatch
)

func (t Tier) String() string {
	switch t {
	case NeedsImprovement:
		return "Needs Improvement"
	case GoodMatch:
		return "Good Match"
	case StrongMatch:
		return "Strong Match"
	default:
		return ""
	}
}

// MarshalText renders the tier with its human-readable name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ParseTier accepts a tier name in any of the common spellings, e.g.
// "Strong Match", "strong", "good_match" or "moderate".
func ParseTier(s string) (Tier, error) {
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "":
		return Unknown, nil
	case "strong", "strongmatch":
		return StrongMatch, nil
	case "good", "goodmatch":
		return GoodMatch, nil
	case "moderate", "weak", "needsimprovement":
		return NeedsImprovement, nil
	default:
		return Unknown, fmt.Errorf("unknown match status %q", s)
	}
}

// Policy holds the tier boundaries. A score strictly above Strong is a strong
// match, strictly above Good a good match, anything else needs improvement.
type Policy struct {
	Strong float64 `mapstructure:"strong-threshold" validate:"gte=0,lte=1,gtfield=Good"`
	Good   float64 `mapstructure:"good-threshold" validate:"gte=0,lte=1"`
}

// DefaultPolicy returns the 0.6 / 0.4 boundaries.
func DefaultPolicy() Policy {
	return Policy{Strong: 0.6, Good: 0.4}
}

// Validate checks that thresholds are within [0,1] and ordered.
func (p Policy) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid threshold policy: %w", err)
	}
	return nil
}

// Classify maps a score onto exactly one tier.
func (p Policy) Classify(score float64) Tier {
	switch {
	case score > p.Strong:
		return StrongMatch
	case score > p.Good:
		return GoodMatch
	default:
		return NeedsImprovement
	}
}

// Suggestion returns the canned advice shown next to a ranked resume.
func (t Tier) Suggestion() string {
	switch t {
	case StrongMatch:
		return "Highly aligned with job requirements. Candidate is a great fit."
	case GoodMatch:
		return "Meets many requirements but could be improved."
	case NeedsImprovement:
		return "Resume does not align well. Candidate may not be a fit."
	default:
		return ""
	}
}
