package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	pkglogger "github.com/speckit/speckit-backend/pkg/logger"
)

// ErrDocumentNotFound is returned when an update targets a missing document
var ErrDocumentNotFound = errors.New("document not found")

// Client wraps the Elasticsearch client with convenience methods
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client
func NewClient(addresses []string, username, password string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	// Ping
	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	pkglogger.GetLogger().Info().Msg("connected to Elasticsearch")
	return &Client{es: es}, nil
}

// IndexDocument indexes a single document. An empty docID lets the cluster assign one.
func (c *Client) IndexDocument(ctx context.Context, index, docID string, body interface{}) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: docID,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", responseError("index", res)
	}

	var ack struct {
		ID string `json:"_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("failed to decode index response: %w", err)
	}
	return ack.ID, nil
}

// UpdateResult holds the document returned by a scripted update
type UpdateResult struct {
	ID     string
	Source map[string]interface{}
}

// UpdateScript runs a painless script against one document (e.g. "ctx._source.view++").
// When withSource is set the updated _source is returned.
func (c *Client) UpdateScript(ctx context.Context, index, docID, script string, withSource bool) (*UpdateResult, error) {
	body := map[string]interface{}{
		"script": map[string]interface{}{
			"source": script,
		},
	}
	if withSource {
		body["_source"] = true
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode update body: %w", err)
	}

	req := esapi.UpdateRequest{
		Index:      index,
		DocumentID: docID,
		Body:       &buf,
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrDocumentNotFound
	}
	if res.IsError() {
		return nil, responseError("update", res)
	}

	var raw struct {
		ID  string `json:"_id"`
		Get struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"get"`
	}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	return &UpdateResult{ID: raw.ID, Source: raw.Get.Source}, nil
}

// SearchRequest describes one search call
type SearchRequest struct {
	Query          map[string]interface{}
	Sort           []map[string]interface{}
	SourceIncludes []string
	From           int
	Size           int
}

// SearchResult represents a single search hit
type SearchResult struct {
	ID     string                 `json:"id"`
	Score  float64                `json:"score"`
	Source map[string]interface{} `json:"source"`
}

// SearchResponse holds search results
type SearchResponse struct {
	Total   int64          `json:"total"`
	Results []SearchResult `json:"results"`
}

// Search performs a search query
func (c *Client) Search(ctx context.Context, index string, req SearchRequest) (*SearchResponse, error) {
	body := map[string]interface{}{
		"query": req.Query,
	}
	if len(req.Sort) > 0 {
		body["sort"] = req.Sort
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	opts := []func(*esapi.SearchRequest){
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithFrom(req.From),
		c.es.Search.WithTrackTotalHits(true),
	}
	if req.Size > 0 {
		opts = append(opts, c.es.Search.WithSize(req.Size))
	}
	if len(req.SourceIncludes) > 0 {
		opts = append(opts, c.es.Search.WithSourceIncludes(req.SourceIncludes...))
	}

	res, err := c.es.Search(opts...)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, err
	}

	return parseSearchResponse(raw), nil
}

// Count returns the number of documents matching query
func (c *Client) Count(ctx context.Context, index string, query map[string]interface{}) (int64, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]interface{}{"query": query}); err != nil {
		return 0, err
	}

	res, err := c.es.Count(
		c.es.Count.WithContext(ctx),
		c.es.Count.WithIndex(index),
		c.es.Count.WithBody(&buf),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, responseError("count", res)
	}

	var raw struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}
	return raw.Count, nil
}

func responseError(op string, res *esapi.Response) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s error [%s]: failed to read response body: %w", op, res.Status(), err)
	}
	return fmt.Errorf("%s error [%s]: %s", op, res.Status(), string(body))
}

func parseSearchResponse(raw map[string]interface{}) *SearchResponse {
	resp := &SearchResponse{Results: []SearchResult{}}

	hits, ok := raw["hits"].(map[string]interface{})
	if !ok {
		return resp
	}
	if total, ok := hits["total"].(map[string]interface{}); ok {
		if v, ok := total["value"].(float64); ok {
			resp.Total = int64(v)
		}
	}

	hitList, ok := hits["hits"].([]interface{})
	if !ok {
		return resp
	}
	for _, h := range hitList {
		hit, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		result := SearchResult{
			ID: fmt.Sprintf("%v", hit["_id"]),
		}
		if score, ok := hit["_score"].(float64); ok {
			result.Score = score
		}
		if source, ok := hit["_source"].(map[string]interface{}); ok {
			result.Source = source
		} else {
			result.Source = map[string]interface{}{}
		}
		resp.Results = append(resp.Results, result)
	}

	return resp
}
