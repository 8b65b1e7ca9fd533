package widget

import "strings"

// Page tags the hosting page. It only selects the opening greeting.
type Page string

const (
	PageHome            Page = "home"
	PageDataAnalytics   Page = "data-analytics"
	PageMachineLearning Page = "machine-learning"
	PagePythonProjects  Page = "python-projects"
	PageDeepLearning    Page = "deep-learning"
)

var Pages = []Page{PageHome, PageDataAnalytics, PageMachineLearning, PagePythonProjects, PageDeepLearning}

func ParsePage(s string) (Page, bool) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Pages {
		if p == known {
			return p, true
		}
	}
	return PageHome, false
}

// PageFromPath derives the tag from a URL path the way the site does:
// the first section name contained in the path wins, home otherwise.
func PageFromPath(path string) Page {
	path = strings.ToLower(path)
	for _, p := range Pages[1:] {
		if strings.Contains(path, string(p)) {
			return p
		}
	}
	return PageHome
}

// Mode selects who answers submissions.
type Mode string

const (
	ModeLocal Mode = "local"
	ModeAI    Mode = "ai"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLocal, "":
		return ModeLocal, true
	case ModeAI:
		return ModeAI, true
	}
	return ModeLocal, false
}

// Action is a quick-action button.
type Action string

const (
	ActionGreeting   Action = "greeting"
	ActionSkills     Action = "skills"
	ActionProjects   Action = "projects"
	ActionMLProjects Action = "ml-projects"
	ActionDLProjects Action = "dl-projects"
	ActionContact    Action = "contact"
	ActionExperience Action = "experience"
	ActionTip        Action = "tip"
)

var Actions = []Action{
	ActionGreeting, ActionSkills, ActionProjects, ActionMLProjects,
	ActionDLProjects, ActionContact, ActionExperience, ActionTip,
}

// QuickPrompts maps each action to the canned prompt it submits.
func QuickPrompts(owner string) map[Action]string {
	if owner == "" {
		owner = "the owner"
	}
	return map[Action]string{
		ActionGreeting:   "Hello!",
		ActionSkills:     "What are " + owner + "'s skills?",
		ActionProjects:   "Tell me about all of " + owner + "'s projects",
		ActionMLProjects: "Show me Machine Learning projects",
		ActionDLProjects: "Tell me about Deep Learning projects",
		ActionContact:    "How can I contact " + owner + "?",
		ActionExperience: "What is " + owner + "'s work experience?",
		ActionTip:        "Give me a learning tip for data science",
	}
}
