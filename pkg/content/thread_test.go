package content

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/devtips/pkg/domain"
)

func TestGenerator_ThreadTopics(t *testing.T) {
	g := newTestGenerator(nil)
	for name, want := range map[string]bool{"Python": true, "javascript": true, "React": true, "Docker": false} {
		_, ok := g.Thread(domain.Topic{Name: name}, nil, false, 6)
		assert.Equal(t, want, ok, name)
	}
}

func TestGenerator_Thread(t *testing.T) {
	g := newTestGenerator(nil)

	t.Run("template thread", func(t *testing.T) {
		th, ok := g.Thread(pythonTopic, nil, false, 6)
		require.True(t, ok)
		assert.Contains(t, []string{"tutorial", "best_practices"}, th.Kind)
		require.Len(t, th.Parts, 5)
		for i, p := range th.Parts {
			assert.True(t, strings.HasPrefix(p, fmt.Sprintf("%d/5 ", i+1)), p)
		}
		assert.Equal(t, []string{"#Python", "#Thread", "#Programming", "#TechTwitter"}, th.Hashtags)
		assert.Empty(t, th.Subject)
	})

	t.Run("parts capped", func(t *testing.T) {
		th, ok := g.Thread(pythonTopic, nil, false, 3)
		require.True(t, ok)
		require.Len(t, th.Parts, 3)
		assert.True(t, strings.HasPrefix(th.Parts[2], "3/3 "))
	})

	t.Run("trending thread", func(t *testing.T) {
		th, ok := g.Thread(pythonTopic, []string{"Serverless"}, true, 6)
		require.True(t, ok)
		assert.Equal(t, "trending", th.Kind)
		assert.Equal(t, "Serverless", th.Subject)
		require.Len(t, th.Parts, 4)
		assert.Contains(t, th.Parts[0], "Serverless with Python")
		assert.True(t, strings.HasPrefix(th.Parts[3], "4/4 "))
		assert.Equal(t, []string{"#Serverless", "#Python", "#Thread", "#TechTwitter"}, th.Hashtags)
	})

	t.Run("trending without subjects uses templates", func(t *testing.T) {
		th, ok := g.Thread(pythonTopic, nil, true, 6)
		require.True(t, ok)
		assert.NotEqual(t, "trending", th.Kind)
	})

	t.Run("topic without templates", func(t *testing.T) {
		_, ok := g.Thread(domain.Topic{Name: "Docker"}, []string{"Serverless"}, true, 6)
		assert.False(t, ok)
	})
}

func TestGenerator_ThreadPartsFitPlatformLimit(t *testing.T) {
	g := newTestGenerator(nil)
	for key := range threadTemplates {
		for i := 0; i < 20; i++ {
			th, ok := g.Thread(domain.Topic{Name: key}, []string{"Cloud Computing"}, i%2 == 0, 6)
			require.True(t, ok)
			first := domain.JoinHashtags(th.Parts[0], th.Hashtags)
			assert.LessOrEqual(t, utf8.RuneCountInString(first), 280, first)
			for _, p := range th.Parts[1:] {
				assert.LessOrEqual(t, utf8.RuneCountInString(p), 280, p)
			}
		}
	}
}
