package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options Redis 접속 정보. URL이 있으면 나머지 필드보다 우선한다.
type Options struct {
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NewClient Redis 클라이언트 생성 후 연결 확인
func NewClient(ctx context.Context, o Options) (*redis.Client, error) {
	opts, err := o.redisOptions()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// 연결 테스트
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func (o Options) redisOptions() (*redis.Options, error) {
	if o.URL != "" {
		opts, err := redis.ParseURL(o.URL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		if o.PoolSize > 0 {
			opts.PoolSize = o.PoolSize
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", o.Host, o.Port),
		Password: o.Password,
		DB:       o.DB,
		PoolSize: o.PoolSize,
	}, nil
}
