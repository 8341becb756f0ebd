package content

import (
	"fmt"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/selector"
)

type threadTemplate struct {
	kind  string
	title string
	parts []string
}

var threadTemplates = map[string][]threadTemplate{
	"python": {
		{kind: "tutorial", title: "Python list comprehensions", parts: []string{
			"🐍 Python list comprehensions: a quick guide. Build lists in one readable line 👇",
			"Basic syntax:\n\n```python\nnums = [i * 2 for i in range(10)]\n```\n\nSame as a loop with append, shorter and faster.",
			"With a filter:\n\n```python\nevens = [x for x in range(20) if x % 2 == 0]\n```",
			"Nested, to flatten a matrix:\n\n```python\nflat = [v for row in matrix for v in row]\n```",
			"Pro tip: if it needs two conditions and a comment, write a loop. Readability wins. Follow for more Python tips! 🐍",
		}},
		{kind: "best_practices", title: "Python best practices", parts: []string{
			"🐍 Python best practices you should know 👇",
			"Isolate every project:\n\n```bash\npython -m venv .venv\nsource .venv/bin/activate\n```",
			"Add type hints:\n\n```python\ndef first(items: list[str]) -> str | None:\n    return items[0] if items else None\n```",
			"Catch specific exceptions:\n\n```python\ntry:\n    ratio = a / b\nexcept ZeroDivisionError:\n    ratio = 0\n```",
			"Follow PEP 8 and let a formatter enforce it. Consistent code is maintainable code.",
		}},
	},
	"javascript": {
		{kind: "tutorial", title: "JavaScript async/await", parts: []string{
			"⚡ JavaScript async/await: a quick guide 👇",
			"The basics:\n\n```javascript\nasync function getUser(id) {\n  const res = await fetch(`/api/users/${id}`)\n  return res.json()\n}\n```",
			"Handle errors:\n\n```javascript\ntry {\n  const user = await getUser(1)\n} catch (err) {\n  console.error('fetch failed', err)\n}\n```",
			"Run independent calls in parallel:\n\n```javascript\nconst [user, posts] = await Promise.all([\n  getUser(id),\n  getPosts(id),\n])\n```",
			"Recap: always await, wrap in try/catch, use Promise.all for independent calls. Follow for more JS tips! ⚡",
		}},
		{kind: "optimization", title: "JavaScript performance", parts: []string{
			"⚡ JavaScript performance tips 👇",
			"Cache DOM lookups outside loops:\n\n```javascript\nconst el = document.getElementById('list')\nfor (const item of items) el.append(render(item))\n```",
			"Debounce noisy handlers:\n\n```javascript\nconst debounce = (fn, ms) => {\n  let t\n  return (...a) => { clearTimeout(t); t = setTimeout(() => fn(...a), ms) }\n}\n```",
			"Clean up listeners and timers:\n\n```javascript\nel.removeEventListener('click', onClick)\nclearInterval(timer)\n```",
		}},
	},
	"react": {
		{kind: "tutorial", title: "React hooks", parts: []string{
			"⚛️ React hooks: a quick guide 👇",
			"useState keeps state across renders:\n\n```jsx\nconst [count, setCount] = useState(0)\n```",
			"useEffect runs side effects:\n\n```jsx\nuseEffect(() => {\n  fetchUser(id).then(setUser)\n}, [id])\n```\n\nRuns again only when id changes.",
			"useMemo for expensive work:\n\n```jsx\nconst sorted = useMemo(() => sortBy(items), [items])\n```",
			"Custom hooks share logic, not state. Name them useSomething. Follow for more React tips! ⚛️",
		}},
	},
}

var trendingThreadParts = []string{
	"🔥 %[1]s with %[2]s: quick guide. How to bring %[1]s into your %[2]s projects 👇",
	"Getting started: pick one small, real problem in your %[2]s codebase and try %[1]s there first.",
	"Best practices:\n\n✅ Start simple\n✅ Follow the docs\n✅ Test thoroughly\n✅ Keep it maintainable",
	"Pro tip: %[1]s works great with %[2]s. How are you using it? Share below! 🚀",
}

// Thread builds a thread for a topic with templates. With trending set and subjects available the thread
// is about one of the subjects. Parts are capped at maxParts and numbered, hashtags fit the first part.
func (g *Generator) Thread(topic domain.Topic, subjects []string, trending bool, maxParts int) (domain.Thread, bool) {
	templates := threadTemplates[topicKey(topic)]
	if len(templates) == 0 {
		return domain.Thread{}, false
	}

	var th domain.Thread
	if subject := selector.Pick(g.rnd, subjects); trending && subject != "" {
		parts := make([]string, 0, len(trendingThreadParts))
		for _, p := range trendingThreadParts {
			parts = append(parts, fmt.Sprintf(p, subject, topic.Name))
		}
		th = domain.Thread{
			Kind:     "trending",
			Title:    fmt.Sprintf("%s with %s", subject, topic.Name),
			Subject:  subject,
			Parts:    parts,
			Hashtags: []string{tagOf(subject), tagOf(topic.Name), "#Thread", "#TechTwitter"},
		}
	} else {
		tmpl := templates[g.rnd.IntN(len(templates))]
		th = domain.Thread{
			Kind:     tmpl.kind,
			Title:    tmpl.title,
			Parts:    append([]string(nil), tmpl.parts...),
			Hashtags: []string{tagOf(topic.Name), "#Thread", "#Programming", "#TechTwitter"},
		}
	}

	if maxParts > 0 && len(th.Parts) > maxParts {
		th.Parts = th.Parts[:maxParts]
	}
	for i := range th.Parts {
		th.Parts[i] = fmt.Sprintf("%d/%d %s", i+1, len(th.Parts), th.Parts[i])
	}
	th.Hashtags = fitTags(th.Parts[0], dedupTags(th.Hashtags), g.cfg.MaxPostLength)
	return th, true
}
