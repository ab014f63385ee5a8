package repository

import (
	"context"

	"github.com/speckit/speckit-backend/internal/domain"
	"gorm.io/gorm"
)

// ScrapRepository saved-listing data access interface
type ScrapRepository interface {
	ListingIDs(ctx context.Context, userID string, source domain.Source) ([]string, error)
	Exists(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error)
	Create(ctx context.Context, userID string, source domain.Source, listingID string) error
	Delete(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error)
}

type scrapRepository struct {
	db *gorm.DB
}

// NewScrapRepository creates a new ScrapRepository
func NewScrapRepository(db *gorm.DB) ScrapRepository {
	return &scrapRepository{db: db}
}

// ListingIDs returns the ids the user saved for source, newest first
func (r *scrapRepository) ListingIDs(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.UserScrap{}).
		Where("user_id = ? AND source = ?", userID, source).
		Order("id DESC").
		Pluck("listing_id", &ids).Error
	return ids, err
}

// Exists checks if the listing is already saved
func (r *scrapRepository) Exists(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserScrap{}).
		Where("user_id = ? AND source = ? AND listing_id = ?", userID, source, listingID).
		Count(&count).Error
	return count > 0, err
}

// Create saves a listing
func (r *scrapRepository) Create(ctx context.Context, userID string, source domain.Source, listingID string) error {
	return r.db.WithContext(ctx).Create(&domain.UserScrap{
		UserID:    userID,
		Source:    source,
		ListingID: listingID,
	}).Error
}

// Delete removes a saved listing; false when nothing was saved
func (r *scrapRepository) Delete(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND listing_id = ?", userID, source, listingID).
		Delete(&domain.UserScrap{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
