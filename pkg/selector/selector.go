// Package selector picks topics and content types by weighted random draws.
package selector

import (
	"math/rand/v2"
	"time"

	"github.com/umputun/devtips/pkg/domain"
)

// Rand is the random source used for draws
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a random source seeded from the current time
func NewRand() *rand.Rand {
	now := uint64(time.Now().UnixNano()) //nolint:gosec // not a security-sensitive seed
	return rand.New(rand.NewPCG(now, now>>1|1))
}

// SelectTopic walks topics in their configured order accumulating weights and returns the
// first topic whose cumulative weight reaches r. Zero-weight topics are never picked.
// If weights sum below r the first topic is returned. Weights summing above 1 over-select
// topics listed first, callers are expected to keep the sum at 1.
func SelectTopic(topics []domain.Topic, r float64) domain.Topic {
	if len(topics) == 0 {
		return domain.Topic{}
	}
	var cumulative float64
	for _, t := range topics {
		if t.Weight <= 0 {
			continue
		}
		cumulative += t.Weight
		if cumulative >= r {
			return t
		}
	}
	return topics[0]
}

// Pick returns a uniformly chosen element, empty string for an empty list
func Pick(rnd Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rnd.IntN(len(items))]
}
