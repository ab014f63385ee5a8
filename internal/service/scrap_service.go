package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/repository"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
	pkglogger "github.com/speckit/speckit-backend/pkg/logger"
)

// ScrapService saves and unsaves listings
type ScrapService interface {
	// Toggle flips membership and returns whether the listing is saved afterwards
	Toggle(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error)
}

type scrapService struct {
	users  repository.UserRepository
	scraps repository.ScrapRepository
	index  SearchIndex
}

// NewScrapService creates a new ScrapService
func NewScrapService(users repository.UserRepository, scraps repository.ScrapRepository, index SearchIndex) ScrapService {
	return &scrapService{users: users, scraps: scraps, index: index}
}

func (s *scrapService) Toggle(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	if _, err := domain.ParseSource(string(source)); err != nil {
		return false, common.BadRequest(fmt.Sprintf("알 수 없는 출처입니다: %s", source), common.ErrUnknownSource)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return false, common.NotFound("id가 일치하는 유저가 없습니다", err)
		}
		return false, err
	}

	exists, err := s.scraps.Exists(ctx, userID, source, listingID)
	if err != nil {
		return false, fmt.Errorf("scrap exists: %w", err)
	}

	script := "ctx._source.scrap++"
	if exists {
		if _, err := s.scraps.Delete(ctx, userID, source, listingID); err != nil {
			return false, fmt.Errorf("scrap delete: %w", err)
		}
		script = "ctx._source.scrap--"
	} else if err := s.scraps.Create(ctx, userID, source, listingID); err != nil {
		return false, fmt.Errorf("scrap create: %w", err)
	}

	// 인덱스의 scrap 카운터는 표시용이라 실패해도 저장 상태는 유지한다
	if _, err := s.index.UpdateScript(ctx, source.Index(), listingID, script, false); err != nil &&
		!errors.Is(err, elasticsearch.ErrDocumentNotFound) {
		pkglogger.GetLogger().Warn().Err(err).
			Str("source", string(source)).
			Str("listing_id", listingID).
			Msg("scrap counter update failed")
	}
	return !exists, nil
}
