package elasticsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchResponse(t *testing.T) {
	raw := map[string]interface{}{
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": float64(27)},
			"hits": []interface{}{
				map[string]interface{}{
					"_id":     "a1",
					"_score":  float64(1.5),
					"_source": map[string]interface{}{"title": "공모전"},
				},
				map[string]interface{}{"_id": "a2"},
				"garbage",
			},
		},
	}

	resp := parseSearchResponse(raw)

	assert.Equal(t, int64(27), resp.Total)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "a1", resp.Results[0].ID)
	assert.Equal(t, 1.5, resp.Results[0].Score)
	assert.Equal(t, "공모전", resp.Results[0].Source["title"])
	assert.NotNil(t, resp.Results[1].Source)
}

func TestParseSearchResponse_NoHits(t *testing.T) {
	resp := parseSearchResponse(map[string]interface{}{})

	assert.Equal(t, int64(0), resp.Total)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}
