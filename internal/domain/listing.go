package domain

import (
	"encoding/json"
	"fmt"
)

// Source 공고 출처 (검색 인덱스 이름과 동일)
type Source string

const (
	SourceLanguage    Source = "language"    // 어학 시험
	SourceQnet        Source = "qnet"        // 자격증 (Q-Net)
	SourceIntern      Source = "intern"      // 인턴
	SourceCompetition Source = "competition" // 공모전
	SourceOutside     Source = "outside"     // 대외활동
)

// Sources lists every listing source in a fixed order
var Sources = []Source{SourceCompetition, SourceOutside, SourceIntern, SourceLanguage, SourceQnet}

// ParseSource validates a raw source tag
func ParseSource(s string) (Source, error) {
	for _, src := range Sources {
		if string(src) == s {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// Index returns the search index holding this source's documents
func (s Source) Index() string {
	return string(s)
}

// Listing 출처별로 정규화된 공고 한 건.
// Fields holds the source payload plus derived display fields.
type Listing struct {
	ID      string
	Source  Source
	Fields  map[string]interface{}
	IsScrap *bool
}

// SetScrap stamps the personalization flag
func (l *Listing) SetScrap(v bool) {
	l.IsScrap = &v
}

// Has reports whether a payload field is present
func (l Listing) Has(key string) bool {
	_, ok := l.Fields[key]
	return ok
}

// MarshalJSON flattens the listing: {"id": ..., <fields>..., "isScrap": ...}
func (l Listing) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Fields)+2)
	for k, v := range l.Fields {
		out[k] = v
	}
	out["id"] = l.ID
	if l.IsScrap != nil {
		out["isScrap"] = *l.IsScrap
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON; Source is left for the caller to set
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		l.ID = id
	}
	delete(raw, "id")
	if v, ok := raw["isScrap"].(bool); ok {
		l.SetScrap(v)
	}
	delete(raw, "isScrap")
	l.Fields = raw
	return nil
}

// Filter 필터 키 하나와 원본 문자열 값
type Filter struct {
	Key   string
	Value string
}

// FilterSet ordered filter list parsed at the request boundary
type FilterSet []Filter

// Facet filter keys expanded into range predicates
const (
	FacetScale = "scale"
	FacetMonth = "month"
)

// IsFacet reports whether key is a multi-valued range facet
func IsFacet(key string) bool {
	return key == FacetScale || key == FacetMonth
}
