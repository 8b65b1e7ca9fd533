package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/portfolio.yaml
var defaultCorpus []byte

var (
	ErrInvalidCorpus   = errors.New("invalid knowledge corpus")
	ErrUnknownCategory = errors.New("unknown project category")
)

// Base owns the static corpus. It is built once and never mutated; every
// accessor hands out copies.
type Base struct {
	data Data
}

// Default returns the corpus compiled into the binary.
func Default() (*Base, error) {
	return Parse(defaultCorpus)
}

// Load reads a corpus from a YAML file.
func Load(path string) (*Base, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Base, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
	}
	return New(d)
}

// New validates d and takes a private copy of it.
func New(d Data) (*Base, error) {
	b := &Base{data: cloneData(d)}
	for i := range b.data.Entries {
		for j, kw := range b.data.Entries[i].Keywords {
			b.data.Entries[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	for i, p := range b.data.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: project #%d has no name", ErrInvalidCorpus, i)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("%w: %q (project %q)", ErrUnknownCategory, p.Category, p.Name)
		}
	}
	for _, f := range b.data.Featured {
		if _, ok := b.FindProjectByName(f.Name); !ok {
			return nil, fmt.Errorf("%w: featured project %q not found", ErrInvalidCorpus, f.Name)
		}
	}
	return b, nil
}

// FindByKeyword returns the first entry with a keyword contained in input
// (case-insensitive). Declaration order breaks ties.
func (b *Base) FindByKeyword(input string) (Entry, bool) {
	t := strings.ToLower(input)
	for _, e := range b.data.Entries {
		for _, kw := range e.Keywords {
			if kw != "" && strings.Contains(t, kw) {
				return cloneEntry(e), true
			}
		}
	}
	return Entry{}, false
}

// ProjectsByCategory keeps declaration order. An absent category yields an
// empty slice.
func (b *Base) ProjectsByCategory(c Category) []Project {
	out := make([]Project, 0)
	for _, p := range b.data.Projects {
		if p.Category == c {
			out = append(out, cloneProject(p))
		}
	}
	return out
}

// FindProjectByName matches sub case-insensitively against project names;
// the first declared match wins. A blank query matches nothing.
func (b *Base) FindProjectByName(sub string) (Project, bool) {
	q := strings.ToLower(strings.TrimSpace(sub))
	if q == "" {
		return Project{}, false
	}
	for _, p := range b.data.Projects {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return cloneProject(p), true
		}
	}
	return Project{}, false
}

// ProjectsMentioning returns projects whose name or description contains any
// of terms.
func (b *Base) ProjectsMentioning(terms []string) []Project {
	out := make([]Project, 0)
	for _, p := range b.data.Projects {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		for _, term := range terms {
			term = strings.ToLower(term)
			if term != "" && (strings.Contains(name, term) || strings.Contains(desc, term)) {
				out = append(out, cloneProject(p))
				break
			}
		}
	}
	return out
}

func (b *Base) CategoryCounts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, p := range b.data.Projects {
		counts[p.Category]++
	}
	return counts
}

func (b *Base) Projects() []Project {
	out := make([]Project, 0, len(b.data.Projects))
	for _, p := range b.data.Projects {
		out = append(out, cloneProject(p))
	}
	return out
}

func (b *Base) Owner() Owner { return b.data.Owner }

func (b *Base) Experience() Experience {
	e := b.data.Experience
	e.Projects = slices.Clone(e.Projects)
	return e
}

func (b *Base) Skills() []Skill        { return slices.Clone(b.data.Skills) }
func (b *Base) Tips() []string         { return slices.Clone(b.data.Tips) }
func (b *Base) FallbackAnswer() string { return b.data.Fallback }

func (b *Base) Featured() []Featured {
	out := make([]Featured, 0, len(b.data.Featured))
	for _, f := range b.data.Featured {
		f.Aliases = slices.Clone(f.Aliases)
		out = append(out, f)
	}
	return out
}

func (b *Base) Topics() []Topic {
	out := make([]Topic, 0, len(b.data.Topics))
	for _, t := range b.data.Topics {
		t.Keywords = slices.Clone(t.Keywords)
		t.Terms = slices.Clone(t.Terms)
		out = append(out, t)
	}
	return out
}

func cloneProject(p Project) Project {
	p.Tech = slices.Clone(p.Tech)
	p.Features = slices.Clone(p.Features)
	return p
}

func cloneEntry(e Entry) Entry {
	e.Keywords = slices.Clone(e.Keywords)
	return e
}

func cloneData(d Data) Data {
	out := d
	out.Experience.Projects = slices.Clone(d.Experience.Projects)
	out.Skills = slices.Clone(d.Skills)
	out.Tips = slices.Clone(d.Tips)
	out.Projects = make([]Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		out.Projects = append(out.Projects, cloneProject(p))
	}
	out.Featured = make([]Featured, 0, len(d.Featured))
	for _, f := range d.Featured {
		f.Aliases = slices.Clone(f.Aliases)
		out.Featured = append(out.Featured, f)
	}
	out.Topics = make([]Topic, 0, len(d.Topics))
	for _, t := range d.Topics {
		t.Keywords = slices.Clone(t.Keywords)
		t.Terms = slices.Clone(t.Terms)
		out.Topics = append(out.Topics, t)
	}
	out.Entries = make([]Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		out.Entries = append(out.Entries, cloneEntry(e))
	}
	return out
}
