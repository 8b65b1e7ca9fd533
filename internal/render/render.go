package render

import (
	"strings"
	"text/template"
	"unicode/utf8"

	"cosmic-portfolio/internal/intent"
	"cosmic-portfolio/internal/knowledge"
)

const (
	dataAnalyticsShown = 5
	supervisedShown    = 4
	unsupervisedShown  = 3
	pythonOthersShown  = 4
	skillsShown        = 6
)

type counts struct {
	DataAnalytics, ML, DeepLearning, PythonOOP int
}

// view is the data every template sees.
type view struct {
	Owner      knowledge.Owner
	FirstName  string
	Experience knowledge.Experience
	Skills     []knowledge.Skill
	MoreSkills []string
	Counts     counts

	Projects        []knowledge.Project
	More            int
	Supervised      []knowledge.Project
	SupervisedTotal int
	Unsupervised    []knowledge.Project

	Project  *knowledge.Project
	Featured *knowledge.Featured
	Topic    *knowledge.Topic
	Tip      string
}

var funcs = template.FuncMap{
	"truncate":      truncate,
	"join":          func(sep string, s []string) string { return strings.Join(s, sep) },
	"subKind":       subKind,
	"categoryTitle": func(c knowledge.Category) string { return c.Title() },
}

var templates = template.Must(parseAll(map[string]string{
	"greeting":          greetingTmpl,
	"about":             aboutTmpl,
	"experience":        experienceTmpl,
	"skills":            skillsTmpl,
	"contact":           contactTmpl,
	"overview":          overviewTmpl,
	"data-analytics":    dataAnalyticsTmpl,
	"ml":                mlTmpl,
	"deep-learning":     deepLearningTmpl,
	"python-oop":        pythonTmpl,
	"project":           projectTmpl,
	"not-found":         notFoundTmpl,
	"topic":             topicTmpl,
	"tip":               tipTmpl,
	"help":              helpTmpl,
	"thanks":            thanksTmpl,
	"fallback":          fallbackTmpl,
	"welcome-home":      welcomeHomeTmpl,
	"welcome-analytics": welcomeDataAnalyticsTmpl,
	"welcome-ml":        welcomeMLTmpl,
	"welcome-python":    welcomePythonTmpl,
	"welcome-deep":      welcomeDeepLearningTmpl,
}))

func parseAll(src map[string]string) (*template.Template, error) {
	root := template.New("reply").Funcs(funcs)
	for name, text := range src {
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, err
		}
	}
	return root, nil
}

var welcomeByPage = map[string]string{
	"home":             "welcome-home",
	"data-analytics":   "welcome-analytics",
	"machine-learning": "welcome-ml",
	"python-projects":  "welcome-python",
	"deep-learning":    "welcome-deep",
}

// Renderer expands directives into reply text. The text keeps the light
// markdown (**bold**, newlines, bare URLs) that Format turns into markup.
type Renderer struct {
	kb *knowledge.Base
}

func New(kb *knowledge.Base) *Renderer {
	return &Renderer{kb: kb}
}

func (r *Renderer) Render(d intent.Directive) string {
	v := r.baseView()
	name := "fallback"

	switch d.Kind {
	case intent.KindGreeting:
		name = "greeting"
	case intent.KindAbout:
		name = "about"
	case intent.KindExperience:
		name = "experience"
	case intent.KindSkills:
		name = "skills"
		skills := r.kb.Skills()
		if len(skills) > skillsShown {
			for _, s := range skills[skillsShown:] {
				v.MoreSkills = append(v.MoreSkills, s.Name)
			}
			skills = skills[:skillsShown]
		}
		v.Skills = skills
	case intent.KindContact:
		name = "contact"
	case intent.KindProjectsOverview:
		name = "overview"
		v.Projects = d.Projects
	case intent.KindCategory:
		name = r.category(&v, d)
	case intent.KindProject:
		v.Featured = d.Featured
		v.Project = d.Project
		name = "project"
		if d.Project == nil || d.Featured == nil {
			name = "not-found"
			if v.Featured == nil {
				v.Featured = &knowledge.Featured{Name: "that project"}
			}
		}
	case intent.KindTopic:
		name = "topic"
		v.Topic = d.Topic
		v.Projects = d.Projects
		if v.Topic == nil {
			v.Topic = &knowledge.Topic{}
		}
	case intent.KindTip:
		if d.Tip != "" {
			name = "tip"
			v.Tip = d.Tip
		}
	case intent.KindHelp:
		name = "help"
	case intent.KindThanks:
		name = "thanks"
	case intent.KindEntry:
		if d.Entry != nil {
			return r.expand(d.Entry.Answer, v)
		}
	}

	if name == "fallback" {
		if fb := r.kb.FallbackAnswer(); fb != "" {
			return r.expand(fb, v)
		}
	}
	return r.execute(name, v)
}

// Welcome is the greeting shown once when a widget is first opened. Unknown
// pages get the home greeting.
func (r *Renderer) Welcome(page string) string {
	name, ok := welcomeByPage[page]
	if !ok {
		name = welcomeByPage["home"]
	}
	return r.execute(name, r.baseView())
}

func (r *Renderer) category(v *view, d intent.Directive) string {
	switch d.Category {
	case knowledge.CategoryDataAnalytics:
		v.Projects = d.Projects
		if len(d.Projects) > dataAnalyticsShown {
			v.Projects = d.Projects[:dataAnalyticsShown]
			v.More = len(d.Projects) - dataAnalyticsShown
		}
	case knowledge.CategoryML:
		for _, p := range d.Projects {
			switch {
			case strings.HasPrefix(p.Kind, "Supervised"):
				v.SupervisedTotal++
				if len(v.Supervised) < supervisedShown {
					v.Supervised = append(v.Supervised, p)
				}
			case strings.HasPrefix(p.Kind, "Unsupervised"):
				if len(v.Unsupervised) < unsupervisedShown {
					v.Unsupervised = append(v.Unsupervised, p)
				}
			}
		}
	case knowledge.CategoryDeepLearning:
		v.Projects = d.Projects
	case knowledge.CategoryPythonOOP:
		for _, p := range d.Projects {
			if p.Flagship && v.Project == nil {
				v.Project = &p
				continue
			}
			if len(v.Projects) < pythonOthersShown {
				v.Projects = append(v.Projects, p)
			}
		}
	default:
		return "fallback"
	}
	return string(d.Category)
}

func (r *Renderer) baseView() view {
	owner := r.kb.Owner()
	c := r.kb.CategoryCounts()
	return view{
		Owner:      owner,
		FirstName:  firstName(owner.Name),
		Experience: r.kb.Experience(),
		Counts: counts{
			DataAnalytics: c[knowledge.CategoryDataAnalytics],
			ML:            c[knowledge.CategoryML],
			DeepLearning:  c[knowledge.CategoryDeepLearning],
			PythonOOP:     c[knowledge.CategoryPythonOOP],
		},
	}
}

func (r *Renderer) execute(name string, v view) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, v); err != nil {
		return fallbackTmpl
	}
	return strings.TrimSpace(b.String())
}

// expand renders corpus-supplied text, which may itself be a template. Text
// that fails to parse is returned as written.
func (r *Renderer) expand(text string, v view) string {
	t, err := template.New("corpus").Funcs(funcs).Parse(text)
	if err != nil {
		return strings.TrimSpace(text)
	}
	var b strings.Builder
	if err := t.Execute(&b, v); err != nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(b.String())
}

func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// subKind returns the part after " - " in kinds like "Unsupervised - Clustering".
func subKind(kind string) string {
	if _, after, ok := strings.Cut(kind, " - "); ok {
		return after
	}
	return kind
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return full
}
