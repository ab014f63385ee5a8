package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/repository"
)

// ThermometerInput 활동 기록 생성 요청
type ThermometerInput struct {
	Kind          domain.Source
	Field         string
	Category      string
	ActiveTitle   string
	ActiveContent string
	Period        string
	Score         string
}

// ThermometerPatch nil fields are left unchanged
type ThermometerPatch struct {
	Field         *string
	Category      *string
	ActiveTitle   *string
	ActiveContent *string
	Period        *string
	Score         *string
}

func (p ThermometerPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	for col, v := range map[string]*string{
		"field":          p.Field,
		"category":       p.Category,
		"active_title":   p.ActiveTitle,
		"active_content": p.ActiveContent,
		"period":         p.Period,
		"score":          p.Score,
	} {
		if v != nil {
			cols[col] = *v
		}
	}
	return cols
}

// ThermometerService activity records and cohort percentile
type ThermometerService interface {
	Add(ctx context.Context, userID string, in ThermometerInput) (*domain.ThermometerRecord, error)
	Remove(ctx context.Context, userID, recordID string) error
	Patch(ctx context.Context, userID, recordID string, patch ThermometerPatch) (*domain.ThermometerRecord, error)
	List(ctx context.Context, userID string, kind domain.Source) ([]domain.ThermometerRecord, error)
	Counts(ctx context.Context, userID string) (domain.ActivityCounts, error)

	Rank(ctx context.Context, userID string) (*domain.CohortRank, error)
	RecomputeCohort(ctx context.Context, mainMajorID string) ([]domain.CohortRank, error)
}

type thermometerService struct {
	users   repository.UserRepository
	records repository.ThermometerRepository
	flight  cohortFlight
}

// NewThermometerService creates a new ThermometerService
func NewThermometerService(users repository.UserRepository, records repository.ThermometerRepository) ThermometerService {
	return &thermometerService{users: users, records: records}
}

func (s *thermometerService) requireUser(ctx context.Context, userID string) error {
	_, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, common.ErrUserNotFound) {
		return common.NotFound("id가 일치하는 유저가 없습니다", err)
	}
	return err
}

// owned loads a record and checks that userID owns it
func (s *thermometerService) owned(ctx context.Context, userID, recordID string) (*domain.ThermometerRecord, error) {
	rec, err := s.records.FindByID(ctx, recordID)
	if errors.Is(err, common.ErrRecordNotFound) {
		return nil, common.NotFound("활동 기록을 찾을 수 없습니다", err)
	}
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, common.Forbidden("본인의 활동 기록만 수정할 수 있습니다", common.ErrForbidden)
	}
	return rec, nil
}

// Add records one activity, then refreshes the user's total and cohort
func (s *thermometerService) Add(ctx context.Context, userID string, in ThermometerInput) (*domain.ThermometerRecord, error) {
	if _, err := domain.ParseSource(string(in.Kind)); err != nil {
		return nil, common.BadRequest("알 수 없는 활동 유형입니다", common.ErrInvalidInput)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	rec := &domain.ThermometerRecord{
		UserID:        userID,
		Kind:          in.Kind,
		Field:         in.Field,
		Category:      in.Category,
		ActiveTitle:   in.ActiveTitle,
		ActiveContent: in.ActiveContent,
		Period:        in.Period,
		Score:         in.Score,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create thermometer record: %w", err)
	}
	if err := s.refresh(ctx, userID); err != nil {
		return nil, err
	}
	return rec, nil
}

// Remove deletes one of the user's records, then refreshes total and cohort
func (s *thermometerService) Remove(ctx context.Context, userID, recordID string) error {
	if _, err := s.owned(ctx, userID, recordID); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, recordID); err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			return common.NotFound("활동 기록을 찾을 수 없습니다", err)
		}
		return fmt.Errorf("delete thermometer record: %w", err)
	}
	return s.refresh(ctx, userID)
}

// Patch edits a record's text fields; the total does not change
func (s *thermometerService) Patch(ctx context.Context, userID, recordID string, patch ThermometerPatch) (*domain.ThermometerRecord, error) {
	if _, err := s.owned(ctx, userID, recordID); err != nil {
		return nil, err
	}
	if err := s.records.Update(ctx, recordID, patch.columns()); err != nil {
		return nil, fmt.Errorf("update thermometer record: %w", err)
	}
	return s.records.FindByID(ctx, recordID)
}

func (s *thermometerService) List(ctx context.Context, userID string, kind domain.Source) ([]domain.ThermometerRecord, error) {
	if _, err := domain.ParseSource(string(kind)); err != nil {
		return nil, common.BadRequest("알 수 없는 활동 유형입니다", common.ErrInvalidInput)
	}
	return s.records.ListByUser(ctx, userID, kind)
}

func (s *thermometerService) Counts(ctx context.Context, userID string) (domain.ActivityCounts, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return domain.ActivityCounts{}, err
	}
	return s.records.Counts(ctx, userID)
}

// Rank recomputes the user's cohort and returns the user's entry
func (s *thermometerService) Rank(ctx context.Context, userID string) (*domain.CohortRank, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	major, err := s.users.MainMajorOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cohort of %s: %w", userID, err)
	}

	ranks, err := s.RecomputeCohort(ctx, major)
	if err != nil {
		return nil, err
	}
	for i := range ranks {
		if ranks[i].UserID == userID {
			return &ranks[i], nil
		}
	}
	return nil, common.NotFound("id가 일치하는 유저가 없습니다", common.ErrUserNotFound)
}

// RecomputeCohort ranks every member of the main major and stores each percentile.
// Concurrent calls for the same cohort are merged, but a call never receives a
// ranking listed before it was made.
func (s *thermometerService) RecomputeCohort(ctx context.Context, mainMajorID string) ([]domain.CohortRank, error) {
	return s.flight.do(ctx, mainMajorID, func(ctx context.Context) ([]domain.CohortRank, error) {
		users, err := s.users.ListByMainMajor(ctx, mainMajorID)
		if err != nil {
			return nil, fmt.Errorf("list cohort %s: %w", mainMajorID, err)
		}
		ranks := rankCohort(users)
		if err := s.users.UpdateTops(ctx, ranks); err != nil {
			return nil, fmt.Errorf("store cohort %s: %w", mainMajorID, err)
		}
		return ranks, nil
	})
}

// refresh recounts the user's total and recomputes their cohort
func (s *thermometerService) refresh(ctx context.Context, userID string) error {
	counts, err := s.records.Counts(ctx, userID)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if err := s.users.UpdateThermometer(ctx, userID, counts.Total()); err != nil {
		return fmt.Errorf("update thermometer: %w", err)
	}

	major, err := s.users.MainMajorOf(ctx, userID)
	if err != nil {
		return fmt.Errorf("cohort of %s: %w", userID, err)
	}
	_, err = s.RecomputeCohort(ctx, major)
	return err
}

// rankCohort users must already be ordered by thermometer DESC.
// 동점자는 첫 번째 위치의 순위를 공유한다 ([5,3,3,1] → 25, 50, 50, 100).
func rankCohort(users []domain.User) []domain.CohortRank {
	n := len(users)
	ranks := make([]domain.CohortRank, 0, n)
	rank := 0
	for i, u := range users {
		if i == 0 || u.Thermometer != users[i-1].Thermometer {
			rank = i + 1
		}
		ranks = append(ranks, domain.CohortRank{
			UserID:     u.ID,
			Total:      u.Thermometer,
			Rank:       rank,
			Percentile: float64(rank) / float64(n) * 100,
		})
	}
	return ranks
}
