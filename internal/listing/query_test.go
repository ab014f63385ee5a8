package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckit/speckit-backend/internal/domain"
)

func TestCompileFilters_Empty(t *testing.T) {
	for _, src := range domain.Sources {
		q := CompileFilters(src, nil)
		assert.True(t, q.MatchAll, src)
		assert.Equal(t, MatchAll(), q.Body())
	}
}

func TestCompileFilters_QnetIsStrict(t *testing.T) {
	q := CompileFilters(domain.SourceQnet, domain.FilterSet{
		{Key: "mainCategory", Value: "정보통신"},
		{Key: "title", Value: "정보처리,기사"},
	})

	require.Len(t, q.Must, 2)
	assert.Empty(t, q.Should)
	assert.False(t, q.MatchAll)
	assert.Equal(t, map[string]interface{}{
		"match": map[string]interface{}{
			"title": map[string]interface{}{"query": "정보처리 기사", "operator": "and"},
		},
	}, q.Must[1])
}

func TestCompileFilters_OthersAreLoose(t *testing.T) {
	q := CompileFilters(domain.SourceCompetition, domain.FilterSet{
		{Key: "field", Value: "기획,아이디어,마케팅"},
		{Key: "target", Value: "대학생"},
	})

	assert.Empty(t, q.Must)
	require.Len(t, q.Should, 2)
	match := q.Should[0]["match"].(map[string]interface{})["field"].(map[string]interface{})
	assert.Equal(t, "기획 아이디어 마케팅", match["query"])
}

func TestCompileFilters_FacetsAppendToShould(t *testing.T) {
	q := CompileFilters(domain.SourceIntern, domain.FilterSet{
		{Key: "location", Value: "서울"},
		{Key: domain.FacetScale, Value: "1000 미만,2~4"},
		{Key: domain.FacetMonth, Value: "12개월 이상"},
	})

	assert.Empty(t, q.Must)
	require.Len(t, q.Should, 4)
	assert.Contains(t, q.Should[0], "match")
	for _, c := range q.Should[1:] {
		assert.Contains(t, c, "range")
	}

	body := q.Body()["bool"].(map[string]interface{})
	assert.Len(t, body["should"], 4)
}
