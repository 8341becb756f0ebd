package content

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/umputun/devtips/pkg/domain"
)

// keywordTags maps words found in a post to hashtags, checked in this order
var keywordTags = []struct{ keyword, tag string }{
	{"react", "#React"},
	{"python", "#Python"},
	{"javascript", "#JavaScript"},
	{"docker", "#Docker"},
	{"git", "#Git"},
	{"async", "#AsyncProgramming"},
	{"performance", "#Performance"},
	{"debug", "#Debugging"},
	{"testing", "#Testing"},
	{"security", "#Security"},
	{"deployment", "#Deployment"},
	{"optimization", "#Optimization"},
}

// hashtags builds tip hashtags: topic tags, tags for keywords in the text and two random general tags
func (g *Generator) hashtags(base []string, text string, limit int) []string {
	tags := slices.Clone(base)
	lower := strings.ToLower(text)
	for _, kt := range keywordTags {
		if strings.Contains(lower, kt.keyword) {
			tags = append(tags, kt.tag)
		}
	}
	tags = append(tags, g.sample(g.cfg.TrendingHashtags, 2)...)
	return capTags(dedupTags(tags), limit)
}

// sample returns up to n distinct random elements
func (g *Generator) sample(items []string, n int) []string {
	pool := slices.Clone(items)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + g.rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// dedupTags drops repeated tags ignoring case, first occurrence wins
func dedupTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, t)
	}
	return res
}

func capTags(tags []string, limit int) []string {
	if limit >= 0 && len(tags) > limit {
		return slices.Clone(tags[:limit])
	}
	return slices.Clone(tags)
}

// fitTags drops trailing tags until text with tags fits the limit
func fitTags(text string, tags []string, limit int) []string {
	for len(tags) > 0 && utf8.RuneCountInString(domain.JoinHashtags(text, tags)) > limit {
		tags = tags[:len(tags)-1]
	}
	return tags
}

// tagOf makes a hashtag from a free-form name, "Cloud Computing" -> "#CloudComputing", "AI/ML" -> "#AIML"
func tagOf(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "#" + sb.String()
}
