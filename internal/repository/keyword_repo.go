package repository

import (
	"context"

	"github.com/speckit/speckit-backend/internal/domain"
	"gorm.io/gorm"
)

// KeywordRepository interest keyword read access
type KeywordRepository interface {
	Keywords(ctx context.Context, userID string, source domain.Source) ([]string, error)
}

type keywordRepository struct {
	db *gorm.DB
}

// NewKeywordRepository creates a new KeywordRepository
func NewKeywordRepository(db *gorm.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

// Keywords returns the user's keywords for source in registration order
func (r *keywordRepository) Keywords(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	keywords := []string{}
	err := r.db.WithContext(ctx).Model(&domain.UserInterestKeyword{}).
		Where("user_id = ? AND source = ?", userID, source).
		Order("id ASC").
		Pluck("keyword", &keywords).Error
	return keywords, err
}
