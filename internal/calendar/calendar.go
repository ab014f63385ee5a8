package calendar

import (
	"time"

	"github.com/speckit/speckit-backend/internal/domain"
)

// Status 캘린더 하루 항목의 상태
type Status string

const (
	StatusOpen        Status = "open"         // 접수 시작일
	StatusAccepting   Status = "accepting"    // 접수 중
	StatusClosingSoon Status = "closing-soon" // 마감 3일 전부터
	StatusExam        Status = "exam-day"     // 시험일
)

// closingSoonDays last N days of a window are closing-soon
const closingSoonDays = 3

// precedence when one record lands on the same day twice
var precedence = map[Status]int{
	StatusAccepting:   1,
	StatusOpen:        2,
	StatusClosingSoon: 3,
	StatusExam:        4,
}

// Phase is either an application window [Start, End] or exam day(s)
type Phase struct {
	Start time.Time
	End   time.Time
	Exam  bool
}

// Window application period phase
func Window(start, end time.Time) Phase {
	return Phase{Start: day(start), End: day(end)}
}

// ExamDays exam phase; a single exam day has start == end
func ExamDays(start, end time.Time) Phase {
	return Phase{Start: day(start), End: day(end), Exam: true}
}

// Record one saved listing to project onto the month
type Record struct {
	ID     string
	Source domain.Source
	Fields map[string]interface{}
}

// Entry one record on one day
type Entry struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Source domain.Source `json:"source"`
	Status Status        `json:"status"`
}

// Bucket ISO date (2006-01-02) → entries in arrival order
type Bucket map[string][]Entry

// PhaseResolver knows each source's date shape
type PhaseResolver interface {
	Phases(source domain.Source, fields map[string]interface{}) ([]Phase, error)
	Title(source domain.Source, fields map[string]interface{}) string
}

// day truncates to a calendar day in UTC
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
