package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetaArithmetic(t *testing.T) {
	meta := NewMeta(5, 10, 47)

	assert.Equal(t, 5, meta.CurrentPage)
	assert.Equal(t, 5, meta.LastPage)
	require.NotNil(t, meta.From)
	require.NotNil(t, meta.To)
	assert.Equal(t, 41, *meta.From)
	assert.Equal(t, 47, *meta.To)
}

func TestNewMetaEmptyResult(t *testing.T) {
	meta := NewMeta(1, 10, 0)

	assert.Nil(t, meta.From)
	assert.Nil(t, meta.To)
	assert.Equal(t, 1, meta.LastPage)
	assert.Equal(t, 0, meta.Total)
}

func TestNewMetaFullPageRange(t *testing.T) {
	meta := NewMeta(2, 25, 100)

	require.NotNil(t, meta.From)
	require.NotNil(t, meta.To)
	assert.Equal(t, 26, *meta.From)
	assert.Equal(t, 50, *meta.To)
	assert.Equal(t, 25, *meta.To-*meta.From+1)
	assert.LessOrEqual(t, *meta.From, *meta.To)
}

func TestNewMetaPastTheEndPage(t *testing.T) {
	meta := NewMeta(9, 10, 47)

	assert.Nil(t, meta.From)
	assert.Nil(t, meta.To)
	assert.Equal(t, 47, meta.Total)
}

func TestParseValuesDefaults(t *testing.T) {
	p := ParseValues(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, Ascending, p.Dir)
	assert.Empty(t, p.Filters)
}

func TestParseValuesClampsPageSize(t *testing.T) {
	p := ParseValues(url.Values{"per_page": {"37"}})
	assert.Equal(t, DefaultPerPage, p.PerPage)

	p = ParseValues(url.Values{"per_page": {"50"}})
	assert.Equal(t, 50, p.PerPage)

	// "size" is accepted as an alias
	p = ParseValues(url.Values{"size": {"25"}})
	assert.Equal(t, 25, p.PerPage)
}

func TestParseValuesCollectsFilters(t *testing.T) {
	p := ParseValues(url.Values{
		"page":    {"3"},
		"search":  {"lahore"},
		"sort":    {"title_en"},
		"dir":     {"desc"},
		"zone_id": {"7"},
	})

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, "lahore", p.Search)
	assert.Equal(t, "title_en", p.Sort)
	assert.Equal(t, Descending, p.Dir)
	assert.Equal(t, "7", p.Filter("zone_id"))
	assert.True(t, p.HasFilters())
}

type record struct {
	ID   int
	Name string
}

func TestSortStableIdempotent(t *testing.T) {
	items := []record{{3, "c"}, {1, "a"}, {2, "b"}}
	byID := func(r record) Key { return NumberKey(float64(r.ID)) }

	SortStable(items, byID, Ascending)
	first := append([]record(nil), items...)

	SortStable(items, byID, Ascending)
	assert.Equal(t, first, items, "sorting twice yields the same order")
}

func TestSortStableTies(t *testing.T) {
	items := []record{{1, "x"}, {2, "same"}, {3, "same"}, {4, "same"}}
	byName := func(r record) Key { return StringKey(r.Name) }

	SortStable(items, byName, Ascending)

	// ties keep their original relative order
	assert.Equal(t, []record{{2, "same"}, {3, "same"}, {4, "same"}, {1, "x"}}, items)
}

func TestSortStableToggleReversesExactly(t *testing.T) {
	items := []record{{5, "e"}, {1, "b"}, {3, "b"}, {2, "a"}}
	byName := func(r record) Key { return StringKey(r.Name) }

	SortStable(items, byName, Ascending)
	asc := append([]record(nil), items...)

	SortStable(items, byName, Descending)

	for i := range asc {
		assert.Equal(t, asc[len(asc)-1-i], items[i])
	}
}

func TestSortStableNilValuesSortAsEmpty(t *testing.T) {
	name := "z"
	keys := []Key{StringPtrKey(nil), StringPtrKey(&name)}

	items := []int{0, 1}
	SortStable(items, func(i int) Key { return keys[i] }, Ascending)

	assert.Equal(t, []int{0, 1}, items, "nil key sorts before non-empty string")
}

func TestPageWindow(t *testing.T) {
	// few pages: show all
	assert.Equal(t, []int{1, 2, 3}, PageWindow(2, 3))

	// centered on current
	assert.Equal(t, []int{3, 4, 5, 6, 7}, PageWindow(5, 12))

	// clamped at the start
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 12))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(2, 12))

	// clamped at the end
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(12, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(11, 12))

	// exactly five
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(3, 5))

	assert.Nil(t, PageWindow(1, 0))
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "7", NormalizeID("7"))
	assert.Equal(t, "7", NormalizeID(float64(7)))
	assert.Equal(t, "7", NormalizeID(7))
	assert.Equal(t, "7", NormalizeID(uint64(7)))
	assert.Equal(t, "", NormalizeID(nil))
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID("7", float64(7)))
	assert.True(t, SameID(7, "7"))
	assert.False(t, SameID("7", "8"))
	assert.False(t, SameID("", ""), "empty identifiers never match")
	assert.False(t, SameID(nil, 0))
}

func TestApplyLocalRecomputesMeta(t *testing.T) {
	items := make([]record, 0, 30)
	for i := 1; i <= 30; i++ {
		name := "even"
		if i%2 == 1 {
			name = "odd"
		}

		items = append(items, record{ID: i, Name: name})
	}

	p := Params{Page: 2, PerPage: 10, Sort: "id"}

	env := ApplyLocal(items, p,
		func(r record) bool { return r.Name == "odd" },
		func(r record) Key { return NumberKey(float64(r.ID)) },
	)

	assert.Equal(t, 15, env.Meta.Total, "meta reflects the filtered subset, not the superset")
	assert.Equal(t, 2, env.Meta.LastPage)
	assert.Len(t, env.Data, 5)
	require.NotNil(t, env.Meta.From)
	assert.Equal(t, 11, *env.Meta.From)
	assert.Equal(t, 15, *env.Meta.To)
	assert.Equal(t, 21, env.Data[0].ID)
}

func TestApplyLocalEmptyAfterFilter(t *testing.T) {
	items := []record{{1, "a"}}

	env := ApplyLocal(items, Params{Page: 1, PerPage: 10},
		func(record) bool { return false }, nil)

	assert.Empty(t, env.Data)
	assert.NotNil(t, env.Data, "data serializes as [] rather than null")
	assert.Equal(t, 0, env.Meta.Total)
	assert.Nil(t, env.Meta.From)
}
