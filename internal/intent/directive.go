package intent

import "cosmic-portfolio/internal/knowledge"

// Kind identifies the handler chosen for an input.
type Kind string

const (
	KindGreeting         Kind = "greeting"
	KindAbout            Kind = "about"
	KindExperience       Kind = "experience"
	KindSkills           Kind = "skills"
	KindContact          Kind = "contact"
	KindProjectsOverview Kind = "projects_overview"
	KindCategory         Kind = "category"
	KindProject          Kind = "project"
	KindTopic            Kind = "topic"
	KindTip              Kind = "tip"
	KindHelp             Kind = "help"
	KindThanks           Kind = "thanks"
	KindEntry            Kind = "entry"
	KindFallback         Kind = "fallback"
)

// Directive is the matcher's decision for one input. Only the fields
// relevant to Kind are set.
type Directive struct {
	Kind Kind
	// Rule is the name of the rule that fired ("fallback" when none did).
	Rule string

	Category knowledge.Category
	Projects []knowledge.Project

	// Project is nil for KindProject when the featured name no longer
	// resolves; the renderer answers with a not-found reply.
	Project  *knowledge.Project
	Featured *knowledge.Featured
	Topic    *knowledge.Topic
	Entry    *knowledge.Entry
	Tip      string
}

// ID is a stable label for logs and analytics, e.g. "category:ml".
func (d Directive) ID() string {
	switch d.Kind {
	case KindCategory:
		return string(d.Kind) + ":" + string(d.Category)
	case KindProject, KindTopic:
		return string(d.Kind) + ":" + d.Rule
	}
	return string(d.Kind)
}
