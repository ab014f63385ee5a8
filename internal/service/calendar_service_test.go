package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
)

func TestCalendarMonth(t *testing.T) {
	users := new(mockUserRepo)
	scraps := new(mockScrapRepo)
	index := new(mockSearchIndex)
	registry := newTestRegistry()
	svc := NewCalendarService(users, scraps, index, registry, calendar.NewWindower(registry, zerolog.Nop()))

	users.On("FindByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)
	for _, s := range domain.Sources {
		switch s {
		case domain.SourceCompetition:
			scraps.On("ListingIDs", mock.Anything, "u1", s).Return([]string{"c1", "bad"}, nil)
		case domain.SourceLanguage:
			scraps.On("ListingIDs", mock.Anything, "u1", s).Return([]string{"l1"}, nil)
		default:
			scraps.On("ListingIDs", mock.Anything, "u1", s).Return([]string{}, nil)
		}
	}
	index.On("Search", mock.Anything, "competition", mock.Anything).Return(hits(
		hit("c1", map[string]interface{}{"title": "아이디어 공모전", "period": "23.03.01 ~ 23.03.10"}),
		hit("bad", map[string]interface{}{"title": "상시", "period": "상시모집"}),
	), nil)
	index.On("Search", mock.Anything, "language", mock.Anything).Return(hits(
		hit("l1", map[string]interface{}{"test": "toeic", "openDate": "23.02.20", "closeDate": "23.03.01", "examDate": "23.03.10"}),
	), nil)

	b, err := svc.Month(context.Background(), "u1", 2023, time.March)
	require.NoError(t, err)

	first := b["2023-03-01"]
	require.Len(t, first, 2)
	assert.Equal(t, "c1", first[0].ID)
	assert.Equal(t, calendar.StatusOpen, first[0].Status)
	assert.Equal(t, "TOEIC 정기시험", first[1].Title)
	assert.Equal(t, calendar.StatusClosingSoon, first[1].Status)

	tenth := b["2023-03-10"]
	require.Len(t, tenth, 2)
	assert.Equal(t, calendar.StatusClosingSoon, tenth[0].Status)
	assert.Equal(t, calendar.StatusExam, tenth[1].Status)

	for _, entries := range b {
		for _, e := range entries {
			assert.NotEqual(t, "bad", e.ID)
		}
	}
	index.AssertNotCalled(t, "Search", mock.Anything, "qnet", mock.Anything)
}

func TestCalendarMonth_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	registry := newTestRegistry()
	svc := NewCalendarService(users, new(mockScrapRepo), new(mockSearchIndex), registry, calendar.NewWindower(registry, zerolog.Nop()))
	users.On("FindByID", mock.Anything, "ghost").Return(nil, common.ErrUserNotFound)

	_, err := svc.Month(context.Background(), "ghost", 2023, time.March)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
