package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/codeshelf/internal/models"
)

func ptr[T any](v T) *T { return &v }

func snippet(id, categoryID uint, category, title, language, code string, tags ...string) models.Snippet {
	s := models.Snippet{
		BaseModel:  models.BaseModel{ID: id},
		Title:      title,
		Language:   language,
		Code:       code,
		CategoryID: categoryID,
		Category:   models.Category{BaseModel: models.BaseModel{ID: categoryID}, Name: category},
	}
	for i, name := range tags {
		s.Tags = append(s.Tags, models.Tag{BaseModel: models.BaseModel{ID: uint(100 + i)}, Name: name})
	}
	return s
}

func fixture() []models.Snippet {
	debounce := snippet(1, 1, "Frontend", "useDebounce hook", "TypeScript",
		"export function useDebounce(value) {\n  return value\n}", "React", "Hook")
	debounce.Description = ptr("Delays updates until input settles")

	join := snippet(2, 3, "Database", "Join orders", "sql", "SELECT *\nFROM orders\nJOIN users", "SQL")
	fetcher := snippet(3, 2, "Backend", "HTTP client", "javascript", "fetch(url).then(r => r.json())", "API", "Node.js")
	styles := snippet(4, 1, "Frontend", "Card styles", "css", ".card { display: grid }", "CSS")
	styles.Description = ptr("Grid card")

	return []models.Snippet{debounce, join, fetcher, styles}
}

func ids(snippets []models.Snippet) []uint {
	out := make([]uint, 0, len(snippets))
	for _, s := range snippets {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterEmptyCriteriaKeepsSourceOrder(t *testing.T) {
	all := fixture()
	require.False(t, Criteria{}.Active())
	if diff := cmp.Diff(all, Filter(all, Criteria{})); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
	require.Empty(t, Filter(nil, Criteria{Term: "x"}))
}

func TestFilterTermScansTitleDescriptionCodeAndTags(t *testing.T) {
	all := fixture()

	cases := []struct {
		term string
		want []uint
	}{
		{term: "DEBOUNCE", want: []uint{1}},
		{term: "settles", want: []uint{1}},
		{term: "from orders", want: []uint{2}},
		{term: "node", want: []uint{3}},
		{term: "grid", want: []uint{4}},
		{term: "frontend", want: []uint{}},
		{term: "e", want: []uint{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ids(Filter(all, Criteria{Term: tc.term})), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("unexpected ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterTermInclusionIsExact(t *testing.T) {
	all := fixture()
	for _, term := range []string{"use", "json", "SQL", "card", "zzz", "orders"} {
		kept := make(map[uint]bool)
		for _, s := range Filter(all, Criteria{Term: term}) {
			kept[s.ID] = true
		}
		for _, s := range all {
			fields := append([]string{s.Title, s.Code, s.DescriptionText()}, s.TagNames()...)
			want := false
			for _, field := range fields {
				if strings.Contains(strings.ToLower(field), strings.ToLower(term)) {
					want = true
				}
			}
			require.Equal(t, want, kept[s.ID], "term %q snippet %d", term, s.ID)
		}
	}
}

func TestFilterLanguageIsSubstring(t *testing.T) {
	all := fixture()
	require.Equal(t, []uint{1, 3}, ids(Filter(all, Criteria{Language: "script"})))
	require.Equal(t, []uint{3}, ids(Filter(all, Criteria{Language: "JAVA"})))
}

func TestFilterCategoryUsesNumericIdentity(t *testing.T) {
	all := fixture()
	all = append(all, snippet(5, 13, "Category 3", "Other", "go", "package main"))

	require.Equal(t, []uint{2}, ids(Filter(all, Criteria{Category: "3"})))
	require.Equal(t, []uint{2}, ids(Filter(all, Criteria{Category: " 3 "})))
	require.Empty(t, Filter(all, Criteria{Category: "Database"}))
	require.Empty(t, Filter(all, Criteria{Category: "0"}))
	require.True(t, Criteria{Category: "Database"}.Active())
}

func TestFilterCombinesWithAnd(t *testing.T) {
	all := fixture()
	got := Filter(all, Criteria{Term: "grid", Language: "css", Category: "1"})
	require.Equal(t, []uint{4}, ids(got))
	require.Empty(t, Filter(all, Criteria{Term: "grid", Language: "sql"}))
	require.Empty(t, Filter(all, Criteria{Term: "debounce", Category: "2"}))
}

func TestFilterIsIdempotent(t *testing.T) {
	all := fixture()
	for _, criteria := range []Criteria{
		{},
		{Term: "e"},
		{Term: "e", Language: "s"},
		{Category: "1"},
		{Term: "card", Category: "1", Language: "css"},
	} {
		once := Filter(all, criteria)
		twice := Filter(once, criteria)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("%+v not idempotent (-once +twice):\n%s", criteria, diff)
		}
	}
}

func TestCodeMatches(t *testing.T) {
	got := CodeMatches("foo\nFOObar\nbaz", "foo")
	want := []LineMatch{
		{Line: 1, Content: "foo", Before: "", After: "FOObar", Count: 1},
		{Line: 2, Content: "FOObar", Before: "foo", After: "baz", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected matches (-want +got):\n%s", diff)
	}

	got = CodeMatches("  aaaa  \n\tnone", "aa")
	require.Equal(t, []LineMatch{{Line: 1, Content: "aaaa", After: "none", Count: 2}}, got)

	require.Empty(t, CodeMatches("foo", ""))
	require.Empty(t, CodeMatches("foo", "bar"))
}

func TestHighlight(t *testing.T) {
	cases := []struct {
		text, term string
		want       []Span
	}{
		{"hello world", "world", []Span{{"hello ", false}, {"world", true}}},
		{"hello world", "", []Span{{"hello world", false}}},
		{"a.b and axb", "a.b", []Span{{"a.b", true}, {" and axb", false}}},
		{"Foo foo FOO", "foo", []Span{{"Foo", true}, {" ", false}, {"foo", true}, {" ", false}, {"FOO", true}}},
		{"price (usd)", "(usd)", []Span{{"price ", false}, {"(usd)", true}}},
		{"nothing", "zz", []Span{{"nothing", false}}},
		{"", "a", []Span{{"", false}}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%s", tc.text, tc.term), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Highlight(tc.text, tc.term)); diff != "" {
				t.Fatalf("unexpected spans (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMetadataMatches(t *testing.T) {
	s := fixture()[0]

	meta := MetadataMatches(s, "HOOK")
	require.Equal(t, Metadata{Title: true, Tags: []string{"Hook"}}, meta)
	require.Equal(t, 2, meta.Count())

	meta = MetadataMatches(s, "front")
	require.True(t, meta.Category)
	require.Equal(t, 1, meta.Count())

	require.Equal(t, Metadata{}, MetadataMatches(s, ""))
}

func TestSummarize(t *testing.T) {
	one := []models.Snippet{snippet(1, 1, "Utilities", "parse args", "go", "func main() {\n  parse()\n}")}
	require.Equal(t, Stats{Snippets: 1, Matches: 2, Languages: 1, Categories: 1}, Summarize(one, "parse"))

	all := fixture()
	stats := Summarize(all, "")
	require.Equal(t, Stats{Snippets: 4, Languages: 4, Categories: 3}, stats)

	// two matching code lines, nothing else
	stats = Summarize(all[:1], "value")
	require.Equal(t, 2, stats.Matches)

	// four occurrences on one code line
	stats = Summarize([]models.Snippet{snippet(9, 1, "Utilities", "x", "go", "a := aaa")}, "a")
	require.Equal(t, 4, stats.Matches)
}
