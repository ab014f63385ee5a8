package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/domain"
)

// contestAdapter 공모전 / 대외활동. 기간 하나와 D-day.
type contestAdapter struct {
	base
	source     domain.Source
	filterKeys []string
}

func newContestAdapter(b base, source domain.Source, keys []string) *contestAdapter {
	return &contestAdapter{base: b, source: source, filterKeys: keys}
}

func (a *contestAdapter) Source() domain.Source { return a.source }
func (a *contestAdapter) FilterKeys() []string  { return a.filterKeys }
func (a *contestAdapter) Sort() []map[string]interface{} {
	return byView()
}

func (a *contestAdapter) SourceIncludes(v View) []string {
	switch v {
	case ViewDetail:
		return nil
	case ViewCalendar:
		return []string{"title", "period"}
	}
	return []string{"title", "mainImage", "enterprise", "period", "view", "scrap"}
}

func (a *contestAdapter) Shape(v View, id string, src map[string]interface{}) domain.Listing {
	var fields map[string]interface{}
	switch v {
	case ViewDetail:
		fields = clone(src)
	case ViewBest:
		fields = clone(src, "period", "preferentialTreatment")
	default:
		fields = clone(src, "period")
	}
	fields["Dday"] = a.dday(src)
	return shaped(a.source, id, fields)
}

func (a *contestAdapter) Phases(src map[string]interface{}) ([]calendar.Phase, error) {
	p, err := periodWindow(str(src, "period"))
	if err != nil {
		return nil, err
	}
	return []calendar.Phase{p}, nil
}

func (a *contestAdapter) Title(src map[string]interface{}) string {
	return str(src, "title")
}

// internAdapter 인턴. 목록에서는 D-day 대신 시작/마감일을 준다.
type internAdapter struct {
	base
}

func (a *internAdapter) Source() domain.Source { return domain.SourceIntern }
func (a *internAdapter) Sort() []map[string]interface{} {
	return byView()
}

func (a *internAdapter) FilterKeys() []string {
	return []string{"location", domain.FacetScale, domain.FacetMonth, "enterprise"}
}

func (a *internAdapter) SourceIncludes(v View) []string {
	switch v {
	case ViewDetail:
		return nil
	case ViewCalendar:
		return []string{"title", "period"}
	}
	return []string{"title", "mainImage", "enterprise", "location", "scale", "month", "period", "view", "scrap"}
}

func (a *internAdapter) Shape(v View, id string, src map[string]interface{}) domain.Listing {
	var fields map[string]interface{}
	switch v {
	case ViewList:
		fields = clone(src, "period", "scrap", "Dday")
		fields["openDate"], fields["closeDate"] = SplitPeriod(str(src, "period"))
		return shaped(domain.SourceIntern, id, fields)
	case ViewPick:
		fields = clone(src, "period")
		_, fields["closeDate"] = SplitPeriod(str(src, "period"))
		return shaped(domain.SourceIntern, id, fields)
	case ViewDetail:
		fields = clone(src)
	case ViewBest:
		fields = clone(src, "period", "preferentialTreatment")
	default:
		fields = clone(src, "period")
	}
	fields["Dday"] = a.dday(src)
	return shaped(domain.SourceIntern, id, fields)
}

func (a *internAdapter) Phases(src map[string]interface{}) ([]calendar.Phase, error) {
	p, err := periodWindow(str(src, "period"))
	if err != nil {
		return nil, err
	}
	return []calendar.Phase{p}, nil
}

func (a *internAdapter) Title(src map[string]interface{}) string {
	return str(src, "title")
}

// languageAdapter 어학 시험. 제목은 시험 코드에서 만든다.
type languageAdapter struct {
	base
}

// 시험 코드 → 표시 이름
var languageTitles = map[string]string{
	"toeic":         "TOEIC 정기시험",
	"toeicSpeaking": "TOEIC Speaking",
	"toeicWriting":  "TOEIC Writing",
	"toeicBridge":   "TOEIC Bridge",
	"jpt":           "JPT 일본어능력시험",
	"sjpt":          "SJPT 일본어 말하기",
	"tsc":           "TSC 중국어 말하기",
	"kpe":           "KPE 실용글쓰기",
}

// LanguageTitle maps a test code to its display name; unknown codes pass through
func LanguageTitle(code string) string {
	if t, ok := languageTitles[code]; ok {
		return t
	}
	return code
}

// 어학 시험 주관사 (저장 목록 표시용)
const languageEnterprise = "YBM"

func (a *languageAdapter) Source() domain.Source { return domain.SourceLanguage }
func (a *languageAdapter) FilterKeys() []string  { return []string{"classify", "test"} }

func (a *languageAdapter) Sort() []map[string]interface{} {
	return []map[string]interface{}{
		{"sortDate": map[string]interface{}{"order": "asc"}},
	}
}

func (a *languageAdapter) SourceIncludes(v View) []string {
	switch v {
	case ViewDetail:
		return nil
	case ViewCalendar:
		return []string{"test", "openDate", "closeDate", "examDate"}
	}
	return []string{"test", "classify", "mainImage", "homePage", "examDate", "openDate", "closeDate", "sortDate", "scrap"}
}

func (a *languageAdapter) Shape(v View, id string, src map[string]interface{}) domain.Listing {
	var fields map[string]interface{}
	if v == ViewDetail {
		fields = clone(src)
	} else {
		fields = clone(src, "test")
	}
	fields["title"] = a.Title(src)
	if v == ViewSaved {
		fields["enterprise"] = languageEnterprise
	}
	return shaped(domain.SourceLanguage, id, fields)
}

func (a *languageAdapter) Phases(src map[string]interface{}) ([]calendar.Phase, error) {
	open, err := ParseDate(str(src, "openDate"))
	if err != nil {
		return nil, err
	}
	closing, err := ParseDate(str(src, "closeDate"))
	if err != nil {
		return nil, err
	}
	phases := []calendar.Phase{calendar.Window(open, closing)}

	if exam := str(src, "examDate"); exam != "" {
		p, err := examPhase(exam)
		if err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	return phases, nil
}

func (a *languageAdapter) Title(src map[string]interface{}) string {
	return LanguageTitle(str(src, "test"))
}

// qnetAdapter 자격증. 회차별 일정(examSchedules) 중 하나를 골라 보여주고 D-day 는 없다.
type qnetAdapter struct {
	base
}

// ExamSchedule 자격증 시험 한 회차
type ExamSchedule struct {
	WtPeriod string // 필기 접수
	WtDday   string // 필기 시험
	PtPeriod string // 실기 접수
	PtDday   string // 실기 시험
}

func (a *qnetAdapter) Source() domain.Source { return domain.SourceQnet }
func (a *qnetAdapter) Sort() []map[string]interface{} {
	return byView()
}

func (a *qnetAdapter) FilterKeys() []string {
	return []string{"mainCategory", "subCategory", "title"}
}

func (a *qnetAdapter) SourceIncludes(v View) []string {
	switch v {
	case ViewDetail:
		return nil
	case ViewCalendar:
		return []string{"title", "examSchedules"}
	}
	return []string{"title", "mainCategory", "subCategory", "view", "scrap", "examSchedules"}
}

func (a *qnetAdapter) Shape(v View, id string, src map[string]interface{}) domain.Listing {
	var fields map[string]interface{}
	switch v {
	case ViewDetail:
		fields = clone(src, "Dday")
	case ViewBest:
		fields = clone(src, "Dday", "examSchedules", "preferentialTreatment")
	default:
		fields = clone(src, "Dday", "examSchedules", "scrap", "view")
	}

	s := a.current(Schedules(src))
	fields["mainImage"] = a.opts.QnetImageURL
	fields["wtPeriod"] = s.WtPeriod
	fields["ptPeriod"] = s.PtPeriod
	fields["period"] = strings.TrimSpace(strings.Split(s.WtPeriod, "[")[0])
	fields["examDate"] = s.WtDday
	return shaped(domain.SourceQnet, id, fields)
}

// current the earliest round still accepting written applications, else the last one
func (a *qnetAdapter) current(schedules []ExamSchedule) ExamSchedule {
	if len(schedules) == 0 {
		return ExamSchedule{}
	}

	type dated struct {
		s   ExamSchedule
		end time.Time
	}
	rounds := make([]dated, 0, len(schedules))
	for _, s := range schedules {
		_, end := SplitPeriod(s.WtPeriod)
		d, err := ParseDate(end)
		if err != nil {
			continue
		}
		rounds = append(rounds, dated{s: s, end: d})
	}
	if len(rounds) == 0 {
		return schedules[len(schedules)-1]
	}
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].end.Before(rounds[j].end) })

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, r := range rounds {
		if !r.end.Before(today) {
			return r.s
		}
	}
	return rounds[len(rounds)-1].s
}

func (a *qnetAdapter) Phases(src map[string]interface{}) ([]calendar.Phase, error) {
	var phases []calendar.Phase
	for _, s := range Schedules(src) {
		for _, w := range []string{s.WtPeriod, s.PtPeriod} {
			if w == "" {
				continue
			}
			p, err := periodWindow(strings.Split(w, "[")[0])
			if err != nil {
				return nil, err
			}
			phases = append(phases, p)
		}
		for _, e := range []string{s.WtDday, s.PtDday} {
			if e == "" {
				continue
			}
			p, err := examPhase(e)
			if err != nil {
				return nil, err
			}
			phases = append(phases, p)
		}
	}
	return phases, nil
}

func (a *qnetAdapter) Title(src map[string]interface{}) string {
	return str(src, "title")
}

// Schedules reads the examSchedules array of a qnet document
func Schedules(src map[string]interface{}) []ExamSchedule {
	raw, ok := src["examSchedules"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]ExamSchedule, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, ExamSchedule{
			WtPeriod: str(m, "wtPeriod"),
			WtDday:   str(m, "wtDday"),
			PtPeriod: str(m, "ptPeriod"),
			PtDday:   str(m, "ptDday"),
		})
	}
	return out
}
