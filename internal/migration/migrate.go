package migration

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/speckit/speckit-backend/internal/domain"
)

// 기본 계열 (대학 전공 대분류). 백분위는 이 단위로 계산한다.
var defaultMainMajors = []string{
	"인문계열", "사회계열", "교육계열", "공학계열", "자연계열", "의약계열", "예체능계열",
}

// Run executes AutoMigrate for every table and seeds main majors if empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 있으면 컬럼만 추가
	if err := db.AutoMigrate(
		&domain.MainMajor{},
		&domain.SubMajor{},
		&domain.User{},
		&domain.UserScrap{},
		&domain.ThermometerRecord{},
		&domain.UserInterestKeyword{},
	); err != nil {
		return err
	}

	// 2. Seed - main_majors 가 비어있을 때만
	var count int64
	if err := db.Model(&domain.MainMajor{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return seedMainMajors(db)
	}
	return nil
}

func seedMainMajors(db *gorm.DB) error {
	majors := make([]domain.MainMajor, 0, len(defaultMainMajors))
	for _, name := range defaultMainMajors {
		majors = append(majors, domain.MainMajor{ID: uuid.NewString(), MainMajor: name})
	}
	return db.Create(&majors).Error
}
