package intent

// Keyword tables, in rule order. Matching is by substring, so short words
// also fire inside longer ones ("hi" inside "machine"); the order of the
// rules is what keeps replies predictable.
var (
	greetingKeywords = []string{"hello", "hi", "hey", "greet", "howdy", "what's up"}

	experienceKeywords = []string{"experience", "work", "intern", "job", "spaceece", "professional"}

	skillsKeywords = []string{"skill", "tech", "stack", "what can", "capabilities", "expertise"}

	contactKeywords = []string{"contact", "reach", "email", "linkedin", "github", "hire", "connect"}

	overviewKeywords = []string{"all projects", "all project", "how many project", "project count", "portfolio overview", "tell me about projects"}

	dataAnalyticsKeywords = []string{"data analyt", "dashboard", "visualization", "power bi", "excel", "analytics project"}

	mlKeywords = []string{"machine learning", "ml project", "supervised", "unsupervised", "scikit", "sklearn"}

	deepLearningKeywords = []string{"deep learning", "neural network", "cnn", "ann", "lstm", "rnn", "tensorflow", "keras"}

	pythonKeywords = []string{"python project", "oop", "backend", "sqlite", "streamlit app"}

	tipKeywords = []string{"tip", "advice", "learn", "study", "career advice", "how to"}

	helpKeywords = []string{"help", "what can you do", "how to use", "commands"}

	thanksKeywords = []string{"thank", "thanks", "awesome", "great", "helpful", "perfect"}
)

func aboutKeywords(first, full string) []string {
	kws := []string{"who are you"}
	if first != "" {
		kws = append(kws, "who is "+first, "about "+first, "tell me about "+first)
	}
	if full != "" && full != first {
		kws = append(kws, full)
	}
	return kws
}
