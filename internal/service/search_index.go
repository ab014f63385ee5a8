package service

import (
	"context"

	"github.com/speckit/speckit-backend/pkg/elasticsearch"
)

// SearchIndex document search index (one index per listing source)
type SearchIndex interface {
	Search(ctx context.Context, index string, req elasticsearch.SearchRequest) (*elasticsearch.SearchResponse, error)
	Count(ctx context.Context, index string, query map[string]interface{}) (int64, error)
	UpdateScript(ctx context.Context, index, docID, script string, withSource bool) (*elasticsearch.UpdateResult, error)
	IndexDocument(ctx context.Context, index, docID string, body interface{}) (string, error)
}
