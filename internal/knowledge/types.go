package knowledge

import (
	"fmt"
	"strings"
)

// Category groups projects the way the site's showcase pages do.
type Category string

const (
	CategoryDataAnalytics Category = "data-analytics"
	CategoryML            Category = "ml"
	CategoryDeepLearning  Category = "deep-learning"
	CategoryPythonOOP     Category = "python-oop"
)

// Categories lists every category in showcase order.
var Categories = []Category{CategoryDataAnalytics, CategoryML, CategoryDeepLearning, CategoryPythonOOP}

func (c Category) Valid() bool {
	switch c {
	case CategoryDataAnalytics, CategoryML, CategoryDeepLearning, CategoryPythonOOP:
		return true
	}
	return false
}

// ParseCategory accepts a category name or the tag of its showcase page.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "machine-learning":
		return CategoryML, nil
	case "python-projects", "python":
		return CategoryPythonOOP, nil
	default:
		if c.Valid() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Title is the human label used in replies.
func (c Category) Title() string {
	switch c {
	case CategoryDataAnalytics:
		return "Data Analytics"
	case CategoryML:
		return "Machine Learning"
	case CategoryDeepLearning:
		return "Deep Learning"
	case CategoryPythonOOP:
		return "Python/OOP"
	}
	return string(c)
}

type Owner struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	GitHub   string `yaml:"github" json:"github"`
	Twitter  string `yaml:"twitter" json:"twitter"`
	About    string `yaml:"about" json:"about"`
}

type Experience struct {
	Role        string   `yaml:"role" json:"role"`
	Company     string   `yaml:"company" json:"company"`
	Duration    string   `yaml:"duration" json:"duration"`
	Description string   `yaml:"description" json:"description"`
	Projects    []string `yaml:"projects" json:"projects"`
}

type Skill struct {
	Name string `yaml:"name" json:"name"`
	Desc string `yaml:"desc" json:"desc"`
}

type Links struct {
	Repo     string `yaml:"repo" json:"repo"`
	LiveDemo string `yaml:"live_demo,omitempty" json:"live_demo,omitempty"`
}

// Project is read-only reference data about one showcased project.
type Project struct {
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Kind        string   `yaml:"kind,omitempty" json:"kind,omitempty"` // e.g. "Supervised - Classification", "CNN"
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech" json:"tech"`
	Stats       string   `yaml:"stats,omitempty" json:"stats,omitempty"`
	Features    []string `yaml:"features,omitempty" json:"features,omitempty"`
	Links       Links    `yaml:"links" json:"links"`
	Spotlight   bool     `yaml:"spotlight,omitempty" json:"spotlight,omitempty"`
	Flagship    bool     `yaml:"flagship,omitempty" json:"flagship,omitempty"`
}

// Featured binds a project name to the aliases visitors use for it.
type Featured struct {
	Name    string   `yaml:"name" json:"name"`
	Icon    string   `yaml:"icon" json:"icon"`
	Aliases []string `yaml:"aliases" json:"aliases"`
}

// Topic maps a visitor domain (health, sports, ...) to the projects whose
// name or description mentions one of Terms.
type Topic struct {
	Name     string   `yaml:"name" json:"name"`
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Terms    []string `yaml:"terms" json:"terms"`
}

// Entry is a static (keywords, answer) record. Keywords are lowercase.
type Entry struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Answer   string   `yaml:"answer" json:"answer"`
}

// Data is the whole corpus as it appears on disk.
type Data struct {
	Owner      Owner      `yaml:"owner"`
	Experience Experience `yaml:"experience"`
	Skills     []Skill    `yaml:"skills"`
	Projects   []Project  `yaml:"projects"`
	Featured   []Featured `yaml:"featured"`
	Topics     []Topic    `yaml:"topics"`
	Tips       []string   `yaml:"tips"`
	Entries    []Entry    `yaml:"entries"`
	Fallback   string     `yaml:"fallback"`
}
