package config

func defaultTopics() []TopicConfig {
	return []TopicConfig{
		{Name: "Python", Weight: 0.20, Hashtags: []string{"#Python", "#DevTips"}, Prompts: []string{
			"Share an advanced Python tip with a one-line code example",
			"Show a lesser-known Python standard library feature with a short snippet",
		}},
		{Name: "JavaScript", Weight: 0.20, Hashtags: []string{"#JavaScript", "#DevTips"}, Prompts: []string{
			"Share a modern JavaScript tip with a short code example",
			"Show a concise ES2020+ JavaScript trick with code",
		}},
		{Name: "React", Weight: 0.15, Hashtags: []string{"#React", "#Frontend"}, Prompts: []string{
			"Share a React hooks tip with a minimal code example",
			"Give a React performance tip with a short snippet",
		}},
		{Name: "Node.js", Weight: 0.12, Hashtags: []string{"#NodeJS", "#Backend"}, Prompts: []string{
			"Share a Node.js tip with a short code example",
		}},
		{Name: "Docker", Weight: 0.08, Hashtags: []string{"#Docker", "#DevOps"}, Prompts: []string{
			"Share a Docker or Dockerfile tip with a command example",
		}},
		{Name: "Git", Weight: 0.05, Hashtags: []string{"#Git", "#CLI"}, Prompts: []string{
			"Share a practical git command tip",
		}},
		{Name: "AI", Weight: 0.10, Hashtags: []string{"#AI", "#MachineLearning"}, Prompts: []string{
			"Share a practical tip for developers using AI tools or LLM APIs with a short code example",
		}},
		{Name: "Flutter", Weight: 0.05, Hashtags: []string{"#Flutter", "#Dart"}, Prompts: []string{
			"Share a Flutter widget tip with a short Dart snippet",
		}},
		{Name: "Security", Weight: 0.05, Hashtags: []string{"#Security", "#InfoSec"}, Prompts: []string{
			"Share a secure coding tip with a short code example",
		}},
	}
}

func defaultTrends() []string {
	return []string{"AI/ML", "Web3", "Cloud Computing", "Cybersecurity", "DevOps", "Mobile Development",
		"Data Science", "Blockchain", "IoT", "Edge Computing", "Serverless", "Microservices"}
}

func defaultSeasonal() map[string][]string {
	return map[string][]string{
		"january":   {"New Year's Resolution Coding", "January Learning Goals"},
		"february":  {"Valentine's Day Code Love", "February Framework Focus"},
		"march":     {"Spring Cleaning Code", "March Madness Programming"},
		"april":     {"April Fools Debugging", "Spring Framework Season"},
		"may":       {"May the Code Be With You", "Cinco de Code"},
		"june":      {"Summer Coding Camp", "June JavaScript"},
		"july":      {"Independence Day Code", "July Python"},
		"august":    {"August Algorithm Month", "Summer Hackathon"},
		"september": {"Back to School Coding", "September Startup"},
		"october":   {"October Hacktoberfest", "Halloween Code"},
		"november":  {"November Node.js", "Thanksgiving Tech"},
		"december":  {"December Debugging", "Holiday Code"},
	}
}
