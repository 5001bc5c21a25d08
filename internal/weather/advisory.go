// Package weather turns current conditions into a spraying advisory.
package weather

import (
	"context"
	"fmt"
	"strings"
)

// Kind classifies an advisory.
type Kind string

const (
	KindAvoid       Kind = "avoid"
	KindEvening     Kind = "evening"
	KindGood        Kind = "good"
	KindUnavailable Kind = "unavailable"
)

// HotThresholdC is the temperature above which spraying should wait for the evening.
const HotThresholdC = 30.0

// UnavailableMessage is returned whenever conditions cannot be fetched.
const UnavailableMessage = "Weather info not available."

// Conditions are the fields of the weather response the advisory depends on.
type Conditions struct {
	Description string
	TempC       float64
}

// Advisory is a canned spraying recommendation.
type Advisory struct {
	Kind    Kind
	Message string

	// Conditions is nil when Kind is KindUnavailable.
	Conditions *Conditions
}

// Fetcher retrieves current conditions.
type Fetcher interface {
	Fetch(ctx context.Context) (Conditions, error)
}

// Advise maps conditions to an advisory: rain first, then heat, otherwise good.
func Advise(c Conditions) Advisory {
	detail := fmt.Sprintf("(%s, %.1f°C)", c.Description, c.TempC)
	switch {
	case strings.Contains(strings.ToLower(c.Description), "rain"):
		return Advisory{Kind: KindAvoid, Message: "It's raining today. Avoid spraying. " + detail, Conditions: &c}
	case c.TempC > HotThresholdC:
		return Advisory{Kind: KindEvening, Message: "It's too hot. Spray in evening. " + detail, Conditions: &c}
	default:
		return Advisory{Kind: KindGood, Message: "Good weather for spraying. " + detail, Conditions: &c}
	}
}

// Unavailable is the fallback advisory.
func Unavailable() Advisory {
	return Advisory{Kind: KindUnavailable, Message: UnavailableMessage}
}

// Recommend fetches conditions and advises. It never fails: any fetch error
// yields the unavailable advisory.
func Recommend(ctx context.Context, f Fetcher) Advisory {
	c, err := f.Fetch(ctx)
	if err != nil {
		return Unavailable()
	}
	return Advise(c)
}
