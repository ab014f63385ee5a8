package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository user data access interface
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error

	// Cohort operations
	MainMajorOf(ctx context.Context, userID string) (string, error)
	ListByMainMajor(ctx context.Context, mainMajorID string) ([]domain.User, error)
	UpdateThermometer(ctx context.Context, userID string, total int) error
	UpdateTops(ctx context.Context, ranks []domain.CohortRank) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID finds a user; a missing row is common.ErrUserNotFound
func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// MainMajorOf returns the cohort (main major) the user's sub major belongs to
func (r *userRepository) MainMajorOf(ctx context.Context, userID string) (string, error) {
	var row struct {
		MainMajorID string `gorm:"column:main_major_id"`
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("sub_majors.main_major_id").
		Joins("JOIN sub_majors ON sub_majors.id = users.sub_major_id").
		Where("users.id = ?", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", common.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("main major of %s: %w", userID, err)
	}
	return row.MainMajorID, nil
}

// ListByMainMajor returns every cohort member ordered by thermometer DESC, id ASC
func (r *userRepository) ListByMainMajor(ctx context.Context, mainMajorID string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN sub_majors ON sub_majors.id = users.sub_major_id").
		Where("sub_majors.main_major_id = ?", mainMajorID).
		Order("users.thermometer DESC").
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

// UpdateThermometer sets the user's activity total.
// MySQL reports 0 affected rows for an unchanged value, so existence is the caller's check.
func (r *userRepository) UpdateThermometer(ctx context.Context, userID string, total int) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("thermometer", total).Error
}

// UpdateTops writes every percentile of one recompute in a single transaction
func (r *userRepository) UpdateTops(ctx context.Context, ranks []domain.CohortRank) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rank := range ranks {
			if err := tx.Model(&domain.User{}).
				Where("id = ?", rank.UserID).
				UpdateColumn("top", rank.Percentile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
