package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThermometerRecord 사용자가 직접 기록한 활동 한 건.
// Kind 는 다섯 가지 활동 유형 중 하나이며 출처 태그를 그대로 쓴다.
type ThermometerRecord struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"column:user_id;index:idx_thermo_user_kind;size:36" json:"-"`
	Kind          Source    `gorm:"column:kind;index:idx_thermo_user_kind;size:20" json:"kind"`
	Field         string    `gorm:"column:field;size:50" json:"field"`
	Category      string    `gorm:"column:category;size:50" json:"category"`
	ActiveTitle   string    `gorm:"column:active_title;size:200" json:"activeTitle"`
	ActiveContent string    `gorm:"column:active_content;type:text" json:"activeContent"`
	Period        string    `gorm:"column:period;size:50" json:"period,omitempty"` // intern
	Score         string    `gorm:"column:score;size:20" json:"score,omitempty"`   // language
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ThermometerRecord) TableName() string { return "user_thermometers" }

func (r *ThermometerRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ActivityCounts 유형별 활동 수와 합계 (합계가 활동 점수)
type ActivityCounts struct {
	Competition int `json:"competition"`
	Outside     int `json:"outside"`
	Qnet        int `json:"qnet"`
	Intern      int `json:"intern"`
	Language    int `json:"language"`
}

// Total each activity counts 1 regardless of kind
func (a ActivityCounts) Total() int {
	return a.Competition + a.Outside + a.Qnet + a.Intern + a.Language
}

// Add increments the counter for kind
func (a *ActivityCounts) Add(kind Source, n int) {
	switch kind {
	case SourceCompetition:
		a.Competition += n
	case SourceOutside:
		a.Outside += n
	case SourceQnet:
		a.Qnet += n
	case SourceIntern:
		a.Intern += n
	case SourceLanguage:
		a.Language += n
	}
}

// CohortRank 전공 집단 내 순위 결과
type CohortRank struct {
	UserID     string  `json:"userId"`
	Total      int     `json:"total"`
	Rank       int     `json:"rank"`
	Percentile float64 `json:"percentile"`
}
