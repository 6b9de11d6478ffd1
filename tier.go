package llmrouter

import "fmt"

// Tier identifies a user subscription tier. The tier determines which
// models are visible to a request and how large batch chunks are.
type Tier string

// String returns the tier identifier.
func (t Tier) String() string { return string(t) }

// Supported tiers.
const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// ParseTier converts a string into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierPro, TierPremium:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}
