package selector

import (
	"time"

	"github.com/umputun/devtips/pkg/domain"
)

// Distribution is the share of each content type
type Distribution struct {
	Tips        float64
	Interactive float64
	Community   float64
	Trending    float64
}

// Signals carries run context that may override the random draw
type Signals struct {
	CelebratedToday bool // a celebration post was already published today
	TrendingFresh   bool // trending topics were refreshed during this run
}

// ContentTypeSelector maps a draw to a content type through cumulative cutpoints
type ContentTypeSelector struct {
	cutpoints       [3]float64 // upper bounds of tips, interactive and community
	celebrationDay  *time.Weekday
	trendingEnabled bool
}

// NewContentTypeSelector creates a selector. celebrationDay nil disables the weekday override.
func NewContentTypeSelector(d Distribution, celebrationDay *time.Weekday, trendingEnabled bool) *ContentTypeSelector {
	s := &ContentTypeSelector{celebrationDay: celebrationDay, trendingEnabled: trendingEnabled}
	s.cutpoints[0] = d.Tips
	s.cutpoints[1] = s.cutpoints[0] + d.Interactive
	s.cutpoints[2] = s.cutpoints[1] + d.Community
	return s
}

// Select picks the content type for a run. The celebration weekday override is checked first,
// then the fresh-trending signal, then the draw r against cutpoints in the order
// tips, interactive, community, trending. Subtypes are drawn from rnd.
func (s *ContentTypeSelector) Select(now time.Time, r float64, sig Signals, rnd Rand) domain.ContentChoice {
	if s.celebrationDay != nil && now.Weekday() == *s.celebrationDay && !sig.CelebratedToday {
		return domain.ContentChoice{Type: domain.ContentCommunity, Subtype: domain.SubtypeCelebration}
	}
	if s.trendingEnabled && sig.TrendingFresh {
		return domain.ContentChoice{Type: domain.ContentTrending}
	}

	switch {
	case r < s.cutpoints[0]:
		return domain.ContentChoice{Type: domain.ContentTips}
	case r < s.cutpoints[1]:
		return domain.ContentChoice{Type: domain.ContentInteractive, Subtype: Pick(rnd, domain.InteractiveSubtypes)}
	case r < s.cutpoints[2]:
		return domain.ContentChoice{Type: domain.ContentCommunity, Subtype: Pick(rnd, communityDrawSubtypes)}
	default:
		if !s.trendingEnabled {
			return domain.ContentChoice{Type: domain.ContentTips}
		}
		return domain.ContentChoice{Type: domain.ContentTrending}
	}
}

// celebration is reserved for the weekday override
var communityDrawSubtypes = []string{domain.SubtypeEncouragement, domain.SubtypeTipRequest, domain.SubtypeDiscussion}
