package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosmic-portfolio/internal/intent"
	"cosmic-portfolio/internal/knowledge"
)

func setup(t *testing.T) (*intent.Matcher, *Renderer) {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return intent.NewMatcher(kb, intent.WithTipPicker(func(int) int { return 0 })), New(kb)
}

func TestRender_GreetingCountsProjects(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("hello"))

	assert.True(t, strings.HasPrefix(out, "👋 **Hey there!**"), out)
	assert.Contains(t, out, "Mayank Goyal")
	assert.Contains(t, out, "**11 Data Analytics**")
	assert.Contains(t, out, "**13 Machine Learning**")
	assert.Contains(t, out, "**4 Deep Learning**")
	assert.Contains(t, out, "**6 Python/OOP**")
}

func TestRender_ProjectCard(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("Tell me about ASL Digits Recognizer"))

	assert.Contains(t, out, "🤟 **ASL Digits Recognizer**")
	assert.Contains(t, out, "~96% accuracy")
	assert.Contains(t, out, "🔗 Live Demo: https://asl-digit-recognition-cnn-opencv-project.streamlit.app/")
	assert.Contains(t, out, "💻 GitHub: https://github.com/mayank-goyal09/asl-digit-recognition-cnn-opencv")

	html := Format(out)
	assert.Contains(t, html, "<strong>ASL Digits Recognizer</strong>")
	assert.Contains(t, html, `<a href="https://asl-digit-recognition-cnn-opencv-project.streamlit.app/"`)
}

func TestRender_ProjectNotFound(t *testing.T) {
	_, r := setup(t)
	out := r.Render(intent.Directive{Kind: intent.KindProject, Featured: &knowledge.Featured{Name: "Nope"}})
	assert.Contains(t, out, `"Nope"`)

	out = r.Render(intent.Directive{Kind: intent.KindProject})
	assert.Contains(t, out, "that project")
}

func TestRender_DataAnalyticsTruncatesList(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("power bi"))

	assert.Contains(t, out, "📊 **Data Analytics Projects**")
	assert.Contains(t, out, "...and 6 more projects!")
}

func TestRender_MLSplitsLearningStyles(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("scikit"))

	assert.Contains(t, out, "**Supervised Learning (")
	assert.Contains(t, out, "**Unsupervised Learning:**")
}

func TestRender_PythonFlagshipFirst(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("oop"))
	assert.Contains(t, out, "⭐ **FLAGSHIP: YouTube Studio Automation**")
	assert.Contains(t, out, "**Other Projects:**")
}

func TestRender_EmptyCategory(t *testing.T) {
	kb, err := knowledge.New(knowledge.Data{Owner: knowledge.Owner{Name: "Ada Lovelace"}})
	require.NoError(t, err)
	r := New(kb)

	out := r.Render(intent.NewMatcher(kb).Match("deep learning"))
	assert.Contains(t, out, "🧠 **Deep Learning Projects**")
	assert.Contains(t, out, "on the way")
}

func TestRender_TipQuotesCorpus(t *testing.T) {
	m, r := setup(t)
	d := m.Match("tip")
	out := r.Render(d)
	assert.Contains(t, out, "💡 **Learning Tip from Mayank:**")
	assert.Contains(t, out, d.Tip)
}

func TestRender_EntryExpandsTemplate(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("my project"))
	assert.True(t, strings.HasPrefix(out, "Mayank's featured work"), out)
}

func TestRender_FallbackUsesCorpusText(t *testing.T) {
	m, r := setup(t)
	out := r.Render(m.Match("xyzzy"))
	assert.Contains(t, out, "🤔 I'm not sure I understood that fully")
	assert.Contains(t, out, `"What are Mayank's skills?"`)
	assert.NotContains(t, out, "{{")
}

func TestRender_UnknownCategoryFallsBack(t *testing.T) {
	_, r := setup(t)
	out := r.Render(intent.Directive{Kind: intent.KindCategory, Category: "astrology"})
	assert.Contains(t, out, "🤔")
}

func TestWelcome_PerPage(t *testing.T) {
	_, r := setup(t)

	cases := map[string]string{
		"home":             "I can help you explore:",
		"data-analytics":   "**Data Analytics** projects",
		"machine-learning": "**Machine Learning Lab**",
		"python-projects":  "**Python & OOP** section",
		"deep-learning":    "**Deep Learning Lab**",
		"elsewhere":        "I can help you explore:",
	}
	for page, want := range cases {
		out := r.Welcome(page)
		assert.True(t, strings.HasPrefix(out, "👋 **Hey there! I'm the Cosmic AI Assistant**"), page)
		assert.Contains(t, out, want, page)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate(5, "abc"))
	assert.Equal(t, "ab...", truncate(2, "abcdef"))
	assert.Equal(t, "éé...", truncate(2, "éééé"))
}
