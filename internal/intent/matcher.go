package intent

import (
	"math/rand/v2"
	"strings"

	"cosmic-portfolio/internal/knowledge"
)

// TipPicker chooses one of n tips.
type TipPicker func(n int) int

// RandomTip is the default picker.
func RandomTip(n int) int { return rand.IntN(n) }

type rule struct {
	name     string
	keywords []string
	handle   func() Directive
}

func (r rule) fires(t string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Matcher classifies raw input with an ordered rule table. Matching is plain
// substring containment; the first rule that fires wins.
type Matcher struct {
	kb    *knowledge.Base
	rules []rule
	pick  TipPicker
}

type Option func(*Matcher)

func WithTipPicker(p TipPicker) Option {
	return func(m *Matcher) {
		if p != nil {
			m.pick = p
		}
	}
}

func NewMatcher(kb *knowledge.Base, opts ...Option) *Matcher {
	m := &Matcher{kb: kb, pick: RandomTip}
	for _, o := range opts {
		o(m)
	}
	m.rules = m.buildRules()
	return m
}

// Match normalizes input and returns the directive of the first firing rule.
// Entries from the knowledge base are consulted after every rule; fallback
// covers the rest, including blank input.
func (m *Matcher) Match(input string) Directive {
	t := strings.ToLower(strings.TrimSpace(input))
	if t == "" {
		return Directive{Kind: KindFallback, Rule: "fallback"}
	}
	for _, r := range m.rules {
		if r.fires(t) {
			d := r.handle()
			d.Rule = r.name
			return d
		}
	}
	if e, ok := m.kb.FindByKeyword(t); ok {
		return Directive{Kind: KindEntry, Rule: "entry", Entry: &e}
	}
	return Directive{Kind: KindFallback, Rule: "fallback"}
}

// Rules lists rule names in evaluation order.
func (m *Matcher) Rules() []string {
	names := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		names = append(names, r.name)
	}
	return names
}

func (m *Matcher) buildRules() []rule {
	first := strings.ToLower(firstName(m.kb.Owner().Name))
	full := strings.ToLower(m.kb.Owner().Name)

	rules := []rule{
		{name: "greeting", keywords: greetingKeywords, handle: m.simple(KindGreeting)},
		{name: "about", keywords: aboutKeywords(first, full), handle: m.simple(KindAbout)},
		{name: "experience", keywords: experienceKeywords, handle: m.simple(KindExperience)},
		{name: "skills", keywords: skillsKeywords, handle: m.simple(KindSkills)},
		{name: "contact", keywords: contactKeywords, handle: m.simple(KindContact)},
		{name: "projects", keywords: overviewKeywords, handle: m.overview},
		{name: "data-analytics", keywords: dataAnalyticsKeywords, handle: m.category(knowledge.CategoryDataAnalytics)},
		{name: "ml", keywords: mlKeywords, handle: m.category(knowledge.CategoryML)},
		{name: "deep-learning", keywords: deepLearningKeywords, handle: m.category(knowledge.CategoryDeepLearning)},
		{name: "python-oop", keywords: pythonKeywords, handle: m.category(knowledge.CategoryPythonOOP)},
	}
	for _, f := range m.kb.Featured() {
		rules = append(rules, rule{name: ruleName(f.Name), keywords: lower(f.Aliases), handle: m.project(f)})
	}
	for _, tp := range m.kb.Topics() {
		rules = append(rules, rule{name: tp.Name, keywords: lower(tp.Keywords), handle: m.topic(tp)})
	}
	return append(rules,
		rule{name: "tip", keywords: tipKeywords, handle: m.tip},
		rule{name: "help", keywords: helpKeywords, handle: m.simple(KindHelp)},
		rule{name: "thanks", keywords: thanksKeywords, handle: m.simple(KindThanks)},
	)
}

func (m *Matcher) simple(k Kind) func() Directive {
	return func() Directive { return Directive{Kind: k} }
}

func (m *Matcher) overview() Directive {
	var spot []knowledge.Project
	for _, p := range m.kb.Projects() {
		if p.Spotlight {
			spot = append(spot, p)
		}
	}
	return Directive{Kind: KindProjectsOverview, Projects: spot}
}

func (m *Matcher) category(c knowledge.Category) func() Directive {
	return func() Directive {
		return Directive{Kind: KindCategory, Category: c, Projects: m.kb.ProjectsByCategory(c)}
	}
}

func (m *Matcher) project(f knowledge.Featured) func() Directive {
	return func() Directive {
		d := Directive{Kind: KindProject, Featured: &f}
		if p, ok := m.kb.FindProjectByName(f.Name); ok {
			d.Project = &p
			d.Category = p.Category
		}
		return d
	}
}

func (m *Matcher) topic(tp knowledge.Topic) func() Directive {
	return func() Directive {
		return Directive{Kind: KindTopic, Topic: &tp, Projects: m.kb.ProjectsMentioning(tp.Terms)}
	}
}

func (m *Matcher) tip() Directive {
	tips := m.kb.Tips()
	if len(tips) == 0 {
		return Directive{Kind: KindTip}
	}
	i := m.pick(len(tips))
	if i < 0 || i >= len(tips) {
		i = 0
	}
	return Directive{Kind: KindTip, Tip: tips[i]}
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return full
}

func ruleName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func lower(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
