package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/devtips/pkg/domain"
	"github.com/umputun/devtips/pkg/selector"
)

type poll struct {
	question string
	options  []string
}

type challenge struct {
	question string
	lang     string
	code     string
}

type staticTip struct {
	text     string
	hashtags []string
}

// template pools are keyed by lowercase topic name
var polls = map[string][]poll{
	"python": {
		{"What's your favorite Python framework?", []string{"Django", "Flask", "FastAPI", "Other"}},
		{"Which Python feature do you use most?", []string{"Comprehensions", "Decorators", "Context managers", "Generators"}},
		{"What's your go-to Python package?", []string{"requests", "pandas", "numpy", "pytest"}},
	},
	"javascript": {
		{"What's your preferred JS framework?", []string{"React", "Vue", "Angular", "Svelte"}},
		{"Which ES6+ feature do you love most?", []string{"Arrow functions", "Destructuring", "Async/await", "Template literals"}},
		{"Which JS runtime do you prefer?", []string{"Node.js", "Deno", "Bun", "Browser"}},
	},
	"react": {
		{"How do you manage state in React?", []string{"useState", "Redux", "Zustand", "Context API"}},
		{"Which React hook do you use most?", []string{"useState", "useEffect", "useContext", "useMemo"}},
		{"How do you style React apps?", []string{"CSS Modules", "Styled Components", "Tailwind", "MUI"}},
	},
	"ai": {
		{"What's your favorite ML framework?", []string{"TensorFlow", "PyTorch", "scikit-learn", "Hugging Face"}},
		{"What are you building with AI?", []string{"Chatbots", "Computer vision", "NLP", "Recommendations"}},
	},
	"flutter": {
		{"Your Flutter state management?", []string{"Provider", "Bloc", "Riverpod", "GetX"}},
		{"Which Flutter architecture do you follow?", []string{"BLoC", "MVC", "MVVM", "Clean"}},
	},
	"security": {
		{"What's your biggest security concern?", []string{"Authentication", "Encryption", "SQL injection", "XSS"}},
		{"Which security tool do you use most?", []string{"OWASP ZAP", "Burp Suite", "Nmap", "Wireshark"}},
	},
}

var genericPolls = []poll{
	{"How do you learn new %s features?", []string{"Docs", "Videos", "Blogs", "Trial and error"}},
	{"How often do you use %s at work?", []string{"Daily", "Weekly", "Rarely", "Side projects only"}},
}

var challenges = map[string][]challenge{
	"python": {
		{"What does this print?", "python", "print([x*2 for x in range(3)])"},
		{"What's the output?", "python", "x = [1, 2, 3]\ny = x\ny[0] = 10\nprint(x)"},
	},
	"javascript": {
		{"What does this log?", "javascript", "console.log([1, 2, 3].map(x => x * 2))"},
		{"What's the result?", "javascript", "console.log(typeof null)"},
		{"What does this log?", "javascript", "console.log(0.1 + 0.2 === 0.3)"},
	},
	"react": {
		{"How many times does this log?", "jsx", "useEffect(() => {\n  console.log('mounted')\n}, [])"},
	},
	"ai": {
		{"What does this print?", "python", "import numpy as np\nx = np.array([1, 2, 3])\nprint(x * 2)"},
	},
	"flutter": {
		{"What's printed?", "dart", "final items = ['a', 'b'];\nitems.add('c');\nprint(items.length);"},
	},
	"security": {
		{"What's wrong with this code?", "python", "query = \"SELECT * FROM users WHERE id = \" + user_input"},
	},
	"git": {
		{"What does this do?", "bash", "git reset --soft HEAD~1"},
	},
	"docker": {
		{"What's the problem with this Dockerfile?", "dockerfile", "FROM node:20\nCOPY . .\nRUN npm install"},
	},
	"node.js": {
		{"What's logged first?", "javascript", "setTimeout(() => console.log('a'), 0)\nprocess.nextTick(() => console.log('b'))"},
	},
}

var questions = []string{
	"What's your biggest challenge with %s?",
	"What %s tip would you share with a beginner?",
	"What's your favorite %s tool or library?",
	"What %s concept did you find most confusing at first?",
}

var quizzes = map[string][]string{
	"python": {
		"What's the difference between a list and a tuple?",
		"What does __init__ do?",
		"When would you use a generator instead of a list?",
	},
	"javascript": {
		"What's the difference between == and ===?",
		"What is a closure?",
		"How do you stop event bubbling?",
	},
	"react": {
		"What's the difference between state and props?",
		"When does useEffect run?",
		"Why do list items need keys?",
	},
}

var genericQuizzes = []string{
	"What's one %s feature most devs don't know about?",
	"Name a %s anti-pattern you keep seeing.",
}

var encouragements = []string{
	"Keep coding, keep learning! 💻✨",
	"Every bug is a learning opportunity! 🐛➡️✨",
	"You're doing great, dev! Keep pushing forward! 🚀",
	"Remember: the best code is readable code! 📖",
	"Debugging is like being a detective! 🔍",
	"Take breaks, stay hydrated, keep coding! 💧💻",
}

var tipRequests = map[string][]string{
	"python": {
		"What's your favorite Python tip? Share below! 🐍",
		"What Python package can't you live without? 📦",
	},
	"javascript": {
		"What's your favorite JS trick? Drop it below! ⚡",
		"Share your best async/await pattern! 🔄",
	},
	"react": {
		"React devs: what's your favorite hook pattern? 🎣",
		"What's your go-to React performance tip? ⚡",
	},
	"node.js": {
		"What's your favorite npm package? 📦",
		"Share your best Node.js error handling pattern! 🛡️",
	},
	"docker": {
		"Share your best Dockerfile optimization! ⚡",
		"What's your go-to Docker debugging command? 🔍",
	},
	"git": {
		"Git users: what's your favorite command? 📝",
		"Share your best Git workflow! 🔄",
	},
}

var genericTipRequests = []string{
	"What's your favorite %s tip? Share below! 💡",
	"What %s trick saved you the most time? 👇",
}

var discussions = map[string][]string{
	"python": {
		"Which Python framework do you prefer and why?",
		"How do you handle Python package management?",
	},
	"javascript": {
		"What's your experience with TypeScript?",
		"Which JS framework ecosystem do you prefer?",
	},
	"react": {
		"How do you handle state management in large React apps?",
		"Which React testing strategy do you prefer?",
	},
	"node.js": {
		"How do you scale Node.js services?",
		"How do you handle Node.js security?",
	},
	"docker": {
		"How do you handle container security?",
		"How do you keep Docker builds fast?",
	},
	"git": {
		"How do you handle merge conflicts?",
		"Rebase or merge, and why?",
	},
}

var genericDiscussions = []string{
	"What's your biggest %s challenge right now?",
	"How has %s changed the way you work?",
}

var celebrations = []string{
	"Happy Friday, devs! 🎉 What are you building this weekend?",
	"TGIF! Time to code something awesome! 💻✨",
	"Weekend coding session anyone? 🚀",
	"Friday vibes: time to refactor that code! 🔧",
	"Happy Friday! What are you learning today? 📚",
}

var trendingTemplates = []string{
	"How are you using %[1]s with %[2]s? Share your experience! 🚀",
	"%[1]s is everywhere. What's your biggest challenge with it in %[2]s projects?",
	"Hot take: %[1]s changes how we write %[2]s. Agree? 🤔",
}

var fallbackTips = []staticTip{
	{"// Always commit before pulling: git commit -am 'WIP' && git pull --rebase", []string{"#GitTips", "#CLI", "#DevLife"}},
	{"Reverse a string in JS: `const rev = s => [...s].reverse().join('')`", []string{"#JavaScript", "#DevTips"}},
	{"Python: swap without a temp variable `a, b = b, a`", []string{"#Python", "#DevTips"}},
	{"Shrink images with multi-stage builds: build in one stage, `COPY --from=build` only the binary", []string{"#Docker", "#DevOps"}},
}

func topicKey(t domain.Topic) string {
	return strings.ToLower(t.Name)
}

// interactive builds polls, challenges, questions and quizzes
func (g *Generator) interactive(_ context.Context, req domain.GenerateRequest) (domain.Content, error) {
	name, key := req.Topic.Name, topicKey(req.Topic)
	var text, code string
	var tags []string

	switch req.Choice.Subtype {
	case domain.SubtypeChallenge:
		pool, ok := challenges[key]
		if !ok {
			pool = challenges["python"]
		}
		ch := pool[g.rnd.IntN(len(pool))]
		text = fmt.Sprintf("%s\n\n```%s\n%s\n```", ch.question, ch.lang, ch.code)
		code = ch.code
		tags = []string{tagOf(name), "#CodeChallenge", "#Programming", "#TechTwitter"}
	case domain.SubtypeQuestion:
		text = fmt.Sprintf(selector.Pick(g.rnd, questions), name)
		tags = []string{tagOf(name), "#DevCommunity", "#TechTwitter", "#Programming"}
	case domain.SubtypeQuiz:
		if pool, ok := quizzes[key]; ok {
			text = fmt.Sprintf("Quick %s quiz: %s", name, selector.Pick(g.rnd, pool))
		} else {
			text = fmt.Sprintf("Quick %s quiz: "+selector.Pick(g.rnd, genericQuizzes), name, name)
		}
		tags = []string{tagOf(name), "#Quiz", "#Programming", "#TechTwitter"}
	default:
		req.Choice.Subtype = domain.SubtypePoll
		var p poll
		if pool, ok := polls[key]; ok {
			p = pool[g.rnd.IntN(len(pool))]
		} else {
			p = genericPolls[g.rnd.IntN(len(genericPolls))]
			p.question = fmt.Sprintf(p.question, name)
		}
		text = pollText(p)
		tags = []string{tagOf(name), "#Poll", "#DevCommunity", "#TechTwitter"}
	}

	return g.templated(text, code, tags, req), nil
}

// community builds encouragement, tip requests, discussions and celebrations
func (g *Generator) community(_ context.Context, req domain.GenerateRequest) (domain.Content, error) {
	name, key := req.Topic.Name, topicKey(req.Topic)
	var text string
	var tags []string

	switch req.Choice.Subtype {
	case domain.SubtypeTipRequest:
		text = pickOr(g.rnd, tipRequests[key], genericTipRequests, name)
		tags = []string{tagOf(name), "#DevCommunity", "#TechTwitter", "#Programming"}
	case domain.SubtypeDiscussion:
		text = pickOr(g.rnd, discussions[key], genericDiscussions, name)
		tags = []string{tagOf(name), "#DevCommunity", "#TechTwitter", "#Programming"}
	case domain.SubtypeCelebration:
		text = selector.Pick(g.rnd, celebrations)
		tags = []string{"#TGIF", "#DevCommunity", "#Coding", "#TechTwitter"}
	default:
		req.Choice.Subtype = domain.SubtypeEncouragement
		text = selector.Pick(g.rnd, encouragements)
		tags = []string{"#DevCommunity", "#Coding", "#Programming", "#TechTwitter"}
	}

	return g.templated(text, "", tags, req), nil
}

// trending ties a trending or seasonal subject to the topic
func (g *Generator) trending(_ context.Context, req domain.GenerateRequest) (domain.Content, error) {
	subjects := make([]string, 0, len(req.Trending)+len(req.Seasonal))
	subjects = append(subjects, req.Trending...)
	subjects = append(subjects, req.Seasonal...)
	subject := selector.Pick(g.rnd, subjects)
	if subject == "" {
		subject = "new tooling"
	}

	text := fmt.Sprintf(selector.Pick(g.rnd, trendingTemplates), subject, req.Topic.Name)
	tags := []string{tagOf(subject), tagOf(req.Topic.Name), "#TechTwitter", "#DevCommunity"}
	return g.templated(text, "", tags, req), nil
}

func (g *Generator) templated(text, code string, tags []string, req domain.GenerateRequest) domain.Content {
	tags = capTags(dedupTags(tags), req.MaxHashtags)
	return domain.Content{
		Text:     text,
		RawCode:  code,
		Hashtags: fitTags(text, tags, g.cfg.MaxPostLength),
		Choice:   req.Choice,
		Attempts: 1,
	}
}

func pollText(p poll) string {
	var sb strings.Builder
	sb.WriteString(p.question)
	sb.WriteString("\n")
	for i, o := range p.options {
		fmt.Fprintf(&sb, "\n%c) %s", 'A'+i, o)
	}
	return sb.String()
}

// pickOr picks from the topic pool, or from the generic formats filled with the topic name
func pickOr(rnd selector.Rand, pool, generic []string, name string) string {
	if len(pool) > 0 {
		return selector.Pick(rnd, pool)
	}
	return fmt.Sprintf(selector.Pick(rnd, generic), name)
}
