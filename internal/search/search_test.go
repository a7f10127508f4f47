package search_test

import (
	"testing"

	"app/internal/search"

	"github.com/stretchr/testify/assert"
)

type course struct {
	ID    int
	Title string
}

var courses = []course{
	{1, "Toán cao cấp"},
	{2, "Lý thuyết số"},
	{3, "TOEIC luyện thi"},
	{4, "Hóa học đại cương"},
}

func title(c course) string { return c.Title }

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	got := search.Filter(courses, "to", title)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestFilter_EmptyTermReturnsInputUnchanged(t *testing.T) {
	got := search.Filter(courses, "", title)
	assert.Equal(t, courses, got)

	// 空白だけも同じ扱い
	got = search.Filter(courses, "   ", title)
	assert.Equal(t, courses, got)
}

func TestFilter_NoMatch(t *testing.T) {
	got := search.Filter(courses, "zzz", title)
	assert.Empty(t, got)
}

func TestFilter_SameTermTwiceGivesSameResult(t *testing.T) {
	first := search.Filter(courses, "lý", title)
	second := search.Filter(courses, "lý", title)
	assert.Equal(t, first, second)
}
