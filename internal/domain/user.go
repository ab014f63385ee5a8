package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MainMajor 상위 전공 (백분위 산정 집단)
type MainMajor struct {
	ID        string `gorm:"column:id;primaryKey;size:36" json:"id"`
	MainMajor string `gorm:"column:main_major;uniqueIndex;size:50" json:"mainMajor"`
}

func (MainMajor) TableName() string { return "main_majors" }

// SubMajor 세부 전공, 하나의 MainMajor에 속한다
type SubMajor struct {
	ID          string `gorm:"column:id;primaryKey;size:36" json:"id"`
	SubMajor    string `gorm:"column:sub_major;size:50" json:"subMajor"`
	MainMajorID string `gorm:"column:main_major_id;index;size:36" json:"mainMajorId"`
}

func (SubMajor) TableName() string { return "sub_majors" }

// User 회원. Thermometer/Top 은 활동 점수와 전공 내 백분위.
type User struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	Nickname     string    `gorm:"column:nickname;uniqueIndex;size:30" json:"nickname"`
	ProfileImage string    `gorm:"column:profile_image;size:500" json:"profileImage"`
	SubMajorID   string    `gorm:"column:sub_major_id;index;size:36" json:"subMajorId"`
	Thermometer  int       `gorm:"column:thermometer;default:0" json:"thermometer"`
	Top          float64   `gorm:"column:top;default:0" json:"top"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserScrap 사용자가 저장한 공고 (출처별)
type UserScrap struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;size:36;uniqueIndex:idx_user_scrap" json:"userId"`
	Source    Source    `gorm:"column:source;size:20;uniqueIndex:idx_user_scrap" json:"source"`
	ListingID string    `gorm:"column:listing_id;size:64;uniqueIndex:idx_user_scrap" json:"listingId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserScrap) TableName() string { return "user_scraps" }

// UserInterestKeyword 사용자가 출처별로 등록한 관심 키워드 (가입/프로필에서 저장, 여기서는 읽기만)
type UserInterestKeyword struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;size:36;uniqueIndex:idx_user_keyword" json:"userId"`
	Source    Source    `gorm:"column:source;size:20;uniqueIndex:idx_user_keyword" json:"source"`
	Keyword   string    `gorm:"column:keyword;size:100;uniqueIndex:idx_user_keyword" json:"keyword"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserInterestKeyword) TableName() string { return "user_interest_keywords" }
