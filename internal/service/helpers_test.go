package service

import (
	"encoding/json"
	"time"

	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
)

var testNow = time.Date(2023, 1, 5, 0, 0, 0, 0, time.FixedZone("KST", 9*60*60))

func newTestRegistry() *listing.Registry {
	return listing.NewRegistry(listing.Options{
		QnetImageURL: "https://cdn.example.com/qnet.png",
		Now:          func() time.Time { return testNow },
	})
}

func hits(docs ...elasticsearch.SearchResult) *elasticsearch.SearchResponse {
	if docs == nil {
		docs = []elasticsearch.SearchResult{}
	}
	return &elasticsearch.SearchResponse{Total: int64(len(docs)), Results: docs}
}

func hit(id string, src map[string]interface{}) elasticsearch.SearchResult {
	return elasticsearch.SearchResult{ID: id, Source: src}
}

func jsonBytes(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
