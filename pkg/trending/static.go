package trending

import (
	"context"
	"errors"
	"slices"

	"github.com/umputun/devtips/pkg/selector"
)

// StaticSource picks a random subset of a configured subject list
type StaticSource struct {
	topics   []string
	min, max int
	rnd      selector.Rand
}

// NewStaticSource makes a source returning between min and max random subjects of the list
func NewStaticSource(topics []string, minTopics, maxTopics int, rnd selector.Rand) *StaticSource {
	if minTopics < 1 {
		minTopics = 1
	}
	if maxTopics < minTopics {
		maxTopics = minTopics
	}
	return &StaticSource{topics: topics, min: minTopics, max: maxTopics, rnd: rnd}
}

// Fetch returns a shuffled subset of the subject list
func (s *StaticSource) Fetch(context.Context) ([]string, error) {
	if len(s.topics) == 0 {
		return nil, errors.New("no trending topics configured")
	}
	n := s.min + s.rnd.IntN(s.max-s.min+1)
	pool := slices.Clone(s.topics)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + s.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}
