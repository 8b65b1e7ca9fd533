package knowledge

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBase(t *testing.T) *Base {
	t.Helper()
	b, err := Default()
	require.NoError(t, err)
	return b
}

func TestDefaultCorpusLoads(t *testing.T) {
	b := defaultBase(t)

	counts := b.CategoryCounts()
	assert.Equal(t, 11, counts[CategoryDataAnalytics])
	assert.Equal(t, 13, counts[CategoryML])
	assert.Equal(t, 4, counts[CategoryDeepLearning])
	assert.Equal(t, 6, counts[CategoryPythonOOP])
	assert.Equal(t, "Mayank Goyal", b.Owner().Name)
	assert.NotEmpty(t, b.Tips())
	assert.Len(t, b.Featured(), 5)
}

func TestFindByKeyword_Deterministic(t *testing.T) {
	b := defaultBase(t)

	first, ok := b.FindByKeyword("Show me your PROJECT list")
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := b.FindByKeyword("Show me your PROJECT list")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
	assert.Contains(t, first.Keywords, "project")
}

func TestFindByKeyword_FirstEntryWins(t *testing.T) {
	b, err := New(Data{Entries: []Entry{
		{Keywords: []string{"Alpha"}, Answer: "first"},
		{Keywords: []string{"alpha", "beta"}, Answer: "second"},
	}})
	require.NoError(t, err)

	e, ok := b.FindByKeyword("alpha and beta")
	require.True(t, ok)
	assert.Equal(t, "first", e.Answer)

	e, ok = b.FindByKeyword("just beta")
	require.True(t, ok)
	assert.Equal(t, "second", e.Answer)

	_, ok = b.FindByKeyword("gamma")
	assert.False(t, ok)
}

func TestProjectsByCategory_OrderAndAbsence(t *testing.T) {
	b := defaultBase(t)

	dl := b.ProjectsByCategory(CategoryDeepLearning)
	require.Len(t, dl, 4)
	assert.True(t, strings.HasPrefix(dl[0].Name, "Smart Price Predictor"))
	assert.Equal(t, "ASL Digits Recognizer", dl[2].Name)

	none := b.ProjectsByCategory(Category("quantum"))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindProjectByName_RoundTrip(t *testing.T) {
	b := defaultBase(t)

	for _, q := range []string{"asl digits recognizer", "LEDGER", "geo-pulse", "WeatherLens"} {
		p, ok := b.FindProjectByName(q)
		require.True(t, ok, q)
		assert.Contains(t, strings.ToLower(p.Name), strings.ToLower(q))
	}

	_, ok := b.FindProjectByName("   ")
	assert.False(t, ok)
	_, ok = b.FindProjectByName("no such project")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	b := defaultBase(t)

	p, ok := b.FindProjectByName("ASL")
	require.True(t, ok)
	p.Tech[0] = "COBOL"

	again, _ := b.FindProjectByName("ASL")
	assert.Equal(t, "Python", again.Tech[0])

	tips := b.Tips()
	tips[0] = "changed"
	assert.NotEqual(t, "changed", b.Tips()[0])
}

func TestProjectsMentioning(t *testing.T) {
	b := defaultBase(t)

	got := b.ProjectsMentioning([]string{"cardio", "heart"})
	require.Len(t, got, 2)
	assert.Equal(t, "Mr. Cardio Disease Astrologer", got[0].Name)
	assert.True(t, strings.HasPrefix(got[1].Name, "CardioPredict"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("projects:\n  - name: X\n    category: astrology\n"))
	assert.True(t, errors.Is(err, ErrUnknownCategory), "got %v", err)

	_, err = Parse([]byte("projects:\n  - name: X\n    category: ml\nfeatured:\n  - name: Missing\n"))
	assert.True(t, errors.Is(err, ErrInvalidCorpus), "got %v", err)

	_, err = Parse([]byte("projects: [: broken"))
	assert.True(t, errors.Is(err, ErrInvalidCorpus), "got %v", err)
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"ml":               CategoryML,
		"Machine-Learning": CategoryML,
		" deep-learning ":  CategoryDeepLearning,
		"python-projects":  CategoryPythonOOP,
		"data-analytics":   CategoryDataAnalytics,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCategory("astrology")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
