package listing

import (
	"strings"

	"github.com/speckit/speckit-backend/internal/domain"
)

// 구간 필터 기준값. 토큰 문자열에서 유도할 수 없는 고정 임계값이다.
const (
	scaleUnder = 1000 // "미만"
	scaleOver  = 5000 // "이상"
	monthUnder = 3    // "이하"
	monthOver  = 12   // "이상"
)

// RangePredicate is one range clause on a numeric field. Nil bounds are omitted.
type RangePredicate struct {
	Field string
	Gte   *int
	Lte   *int
}

// Clause renders the predicate as a search range clause
func (p RangePredicate) Clause() map[string]interface{} {
	bounds := map[string]interface{}{}
	if p.Gte != nil {
		bounds["gte"] = *p.Gte
	}
	if p.Lte != nil {
		bounds["lte"] = *p.Lte
	}
	return map[string]interface{}{
		"range": map[string]interface{}{p.Field: bounds},
	}
}

// BucketRange expands facet tokens ("1000 미만", "2~4", "12개월 이상") into one
// range predicate per token.
//
// The "A~B" form reads only the first character of each side, so "20~40"
// becomes 2..4 (×1000 for scale). Zero or non-digit bounds are dropped.
func BucketRange(key string, tokens []string) []RangePredicate {
	preds := make([]RangePredicate, 0, len(tokens))
	for _, tok := range tokens {
		preds = append(preds, bucket(key, tok))
	}
	return preds
}

func bucket(key, tok string) RangePredicate {
	p := RangePredicate{Field: key}

	if key == domain.FacetScale {
		switch {
		case strings.Contains(tok, "미만"):
			p.Lte = bound(scaleUnder)
		case strings.Contains(tok, "이상"):
			p.Gte = bound(scaleOver)
		default:
			start, end := splitRange(tok)
			p.Gte = bound(firstDigit(start) * 1000)
			p.Lte = bound(firstDigit(end) * 1000)
		}
		return p
	}

	switch {
	case strings.Contains(tok, "이하"):
		p.Lte = bound(monthUnder)
	case strings.Contains(tok, "이상"):
		p.Gte = bound(monthOver)
	default:
		start, end := splitRange(tok)
		p.Gte = bound(firstDigit(start))
		p.Lte = bound(firstDigit(end))
	}
	return p
}

func splitRange(tok string) (string, string) {
	start, end, _ := strings.Cut(tok, "~")
	return start, end
}

// firstDigit returns the numeric value of the first byte, 0 when it is not a digit
func firstDigit(s string) int {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0
	}
	return int(s[0] - '0')
}

// bound returns nil for zero so the clause omits it
func bound(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
