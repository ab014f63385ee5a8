package repository

import (
	"context"
	"errors"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"gorm.io/gorm"
)

// ThermometerRepository activity record data access interface
type ThermometerRepository interface {
	Create(ctx context.Context, rec *domain.ThermometerRecord) error
	FindByID(ctx context.Context, id string) (*domain.ThermometerRecord, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, kind domain.Source) ([]domain.ThermometerRecord, error)
	Counts(ctx context.Context, userID string) (domain.ActivityCounts, error)
}

type thermometerRepository struct {
	db *gorm.DB
}

// NewThermometerRepository creates a new ThermometerRepository
func NewThermometerRepository(db *gorm.DB) ThermometerRepository {
	return &thermometerRepository{db: db}
}

func (r *thermometerRepository) Create(ctx context.Context, rec *domain.ThermometerRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// FindByID a missing row is common.ErrRecordNotFound
func (r *thermometerRepository) FindByID(ctx context.Context, id string) (*domain.ThermometerRecord, error) {
	var rec domain.ThermometerRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies a partial update (column → value)
func (r *thermometerRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.ThermometerRecord{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *thermometerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ThermometerRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrRecordNotFound
	}
	return nil
}

// ListByUser returns the user's records of one kind, newest first
func (r *thermometerRepository) ListByUser(ctx context.Context, userID string, kind domain.Source) ([]domain.ThermometerRecord, error) {
	recs := []domain.ThermometerRecord{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

// Counts returns the number of records per kind
func (r *thermometerRepository) Counts(ctx context.Context, userID string) (domain.ActivityCounts, error) {
	var rows []struct {
		Kind  domain.Source
		Count int
	}
	var counts domain.ActivityCounts

	err := r.db.WithContext(ctx).Model(&domain.ThermometerRecord{}).
		Select("kind, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		counts.Add(row.Kind, row.Count)
	}
	return counts, nil
}
