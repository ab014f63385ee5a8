package listing

import (
	"fmt"
	"time"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
)

// View 같은 문서라도 화면마다 모양이 다르다
type View int

const (
	ViewList     View = iota // 목록
	ViewBest                 // 인기 공고
	ViewPick                 // 오늘의 공고 (랜덤)
	ViewDetail               // 상세
	ViewSaved                // 스크랩 목록
	ViewCalendar             // 캘린더 (projection only)
)

// Adapter per-source search and shaping rules
type Adapter interface {
	Source() domain.Source
	// SourceIncludes projection for the search call; nil means the whole document
	SourceIncludes(v View) []string
	Sort() []map[string]interface{}
	// FilterKeys accepted filter keys, in clause order
	FilterKeys() []string
	Shape(v View, id string, src map[string]interface{}) domain.Listing
	Phases(src map[string]interface{}) ([]calendar.Phase, error)
	Title(src map[string]interface{}) string
}

// Options registry configuration
type Options struct {
	QnetImageURL string
	Now          func() time.Time
}

// Registry holds one adapter per source
type Registry struct {
	adapters map[domain.Source]Adapter
}

// NewRegistry builds every source adapter from opts
func NewRegistry(opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := base{opts: opts}
	r := &Registry{adapters: map[domain.Source]Adapter{}}
	for _, a := range []Adapter{
		newContestAdapter(b, domain.SourceCompetition, []string{"field", "target", "organizer", "benefit"}),
		newContestAdapter(b, domain.SourceOutside, []string{"field", "target", "organizer", "location", "interests"}),
		&internAdapter{base: b},
		&languageAdapter{base: b},
		&qnetAdapter{base: b},
	} {
		r.adapters[a.Source()] = a
	}
	return r
}

// Get adapter for source
func (r *Registry) Get(source domain.Source) (Adapter, error) {
	a, ok := r.adapters[source]
	if !ok {
		return nil, common.BadRequest(fmt.Sprintf("알 수 없는 출처입니다: %s", source), common.ErrUnknownSource)
	}
	return a, nil
}

// Lookup parses a raw source tag and returns its adapter
func (r *Registry) Lookup(raw string) (Adapter, error) {
	source, err := domain.ParseSource(raw)
	if err != nil {
		return nil, common.BadRequest(fmt.Sprintf("알 수 없는 출처입니다: %s", raw), common.ErrUnknownSource)
	}
	return r.Get(source)
}

// Filters keeps only the keys the source accepts, in the adapter's order.
// values maps filter key → raw value; empty values are skipped.
func (r *Registry) Filters(source domain.Source, values map[string]string) domain.FilterSet {
	a, err := r.Get(source)
	if err != nil {
		return nil
	}
	fs := domain.FilterSet{}
	for _, k := range a.FilterKeys() {
		if v := values[k]; v != "" {
			fs = append(fs, domain.Filter{Key: k, Value: v})
		}
	}
	return fs
}

// Phases implements calendar.PhaseResolver
func (r *Registry) Phases(source domain.Source, fields map[string]interface{}) ([]calendar.Phase, error) {
	a, err := r.Get(source)
	if err != nil {
		return nil, err
	}
	return a.Phases(fields)
}

// Title implements calendar.PhaseResolver
func (r *Registry) Title(source domain.Source, fields map[string]interface{}) string {
	a, err := r.Get(source)
	if err != nil {
		return ""
	}
	return a.Title(fields)
}

// base shared helpers
type base struct {
	opts Options
}

func (b base) now() time.Time {
	return b.opts.Now()
}

func (b base) dday(src map[string]interface{}) string {
	return DDay(str(src, "period"), b.now())
}

func byView() []map[string]interface{} {
	return []map[string]interface{}{
		{"view": map[string]interface{}{"order": "desc"}},
	}
}

// str reads a string field; non-strings are formatted, missing is ""
func str(src map[string]interface{}, key string) string {
	v, ok := src[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// clone copies src without the dropped keys
func clone(src map[string]interface{}, drop ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(src))
	for k, v := range src {
		out[k] = v
	}
	for _, k := range drop {
		delete(out, k)
	}
	return out
}

func shaped(source domain.Source, id string, fields map[string]interface{}) domain.Listing {
	return domain.Listing{ID: id, Source: source, Fields: fields}
}

// periodWindow reads "a ~ b" as one application window
func periodWindow(period string) (calendar.Phase, error) {
	start, end := SplitPeriod(period)
	s, err := ParseDate(start)
	if err != nil {
		return calendar.Phase{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return calendar.Phase{}, err
	}
	return calendar.Window(s, e), nil
}

// examPhase reads a single date or "a ~ b" as exam day(s)
func examPhase(v string) (calendar.Phase, error) {
	start, end := SplitPeriod(v)
	if start == "" {
		start = end
	}
	s, err := ParseDate(start)
	if err != nil {
		return calendar.Phase{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return calendar.Phase{}, err
	}
	return calendar.ExamDays(s, e), nil
}
