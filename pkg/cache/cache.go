package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// 오늘의 랜덤 공고 보관 시간
const TTLDailyPick = 12 * time.Hour

// 캐시 키 접두사
const (
	PrefixDailyPick = "daily_pick:"
)

// ErrUnavailable is returned by reads when no Redis client is configured
var ErrUnavailable = errors.New("redis not available")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 오늘의 랜덤 공고 캐시
	GetDailyPick(ctx context.Context, source string) ([]byte, error)
	SetDailyPick(ctx context.Context, source string, data interface{}) error
	InvalidateDailyPick(ctx context.Context, source string) error

	// IsAvailable false 이면 읽기는 항상 miss, 쓰기는 무시된다
	IsAvailable() bool
}

// IsMiss reports whether err means the key is absent (or the cache is off)
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil) || errors.Is(err, ErrUnavailable)
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// ========================================
// 오늘의 랜덤 공고 캐시
// ========================================

// DailyPickKey returns the cache key holding one source's pick
func DailyPickKey(source string) string {
	return PrefixDailyPick + source
}

func (c *redisCache) GetDailyPick(ctx context.Context, source string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	return c.client.Get(ctx, DailyPickKey(source)).Bytes()
}

func (c *redisCache) SetDailyPick(ctx context.Context, source string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, DailyPickKey(source), jsonData, TTLDailyPick).Err()
}

func (c *redisCache) InvalidateDailyPick(ctx context.Context, source string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, DailyPickKey(source)).Err()
}
