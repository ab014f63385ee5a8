package listing

import (
	"strings"

	"github.com/speckit/speckit-backend/internal/domain"
)

// Query compiled search query: conjunctive Must, disjunctive Should, or match-all
type Query struct {
	Must     []map[string]interface{}
	Should   []map[string]interface{}
	MatchAll bool
}

// CompileFilters turns a FilterSet into a query for source.
//
// qnet matches strictly (every free-text filter is a must clause); the other
// sources put the same clauses in should. Facets always go to should.
// An empty FilterSet yields match-all.
func CompileFilters(source domain.Source, filters domain.FilterSet) Query {
	q := Query{
		Must:   []map[string]interface{}{},
		Should: []map[string]interface{}{},
	}
	for _, f := range filters {
		if domain.IsFacet(f.Key) {
			for _, p := range BucketRange(f.Key, strings.Split(f.Value, ",")) {
				q.Should = append(q.Should, p.Clause())
			}
			continue
		}

		clause := matchAllWords(f.Key, f.Value)
		if source == domain.SourceQnet {
			q.Must = append(q.Must, clause)
		} else {
			q.Should = append(q.Should, clause)
		}
	}
	q.MatchAll = len(q.Must) == 0 && len(q.Should) == 0
	return q
}

// matchAllWords requires every word of value; commas separate words
func matchAllWords(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"match": map[string]interface{}{
			field: map[string]interface{}{
				"query":    strings.ReplaceAll(value, ",", " "),
				"operator": "and",
			},
		},
	}
}

// Body renders the query clause of a search request
func (q Query) Body() map[string]interface{} {
	if q.MatchAll {
		return MatchAll()
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must":   q.Must,
			"should": q.Should,
		},
	}
}

// MatchAll query matching every document
func MatchAll() map[string]interface{} {
	return map[string]interface{}{"match_all": map[string]interface{}{}}
}

// RandomOne query scoring documents randomly (daily pick)
func RandomOne() map[string]interface{} {
	return map[string]interface{}{
		"function_score": map[string]interface{}{
			"query":        MatchAll(),
			"random_score": map[string]interface{}{},
		},
	}
}

// IDsIn query restricted to the given document ids
func IDsIn(ids []string) map[string]interface{} {
	if ids == nil {
		ids = []string{}
	}
	return map[string]interface{}{
		"terms": map[string]interface{}{"_id": ids},
	}
}
