package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	pkglogger "github.com/speckit/speckit-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config 애플리케이션 설정 (configs/config.<APP_ENV>.yaml)
type Config struct {
	Env           string              `yaml:"env"`
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	JWT           JWTConfig           `yaml:"jwt"`
	CORS          CORSConfig          `yaml:"cors"`
	Listing       ListingConfig       `yaml:"listing"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port int    `yaml:"port" validate:"required,min=1,max=65535"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Host            string `yaml:"host" validate:"required"`
	Port            int    `yaml:"port" validate:"required"`
	User            string `yaml:"user" validate:"required"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name" validate:"required"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN returns the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addresses []string `yaml:"addresses" validate:"required_if=Enabled true"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret" validate:"required"`
	ExpiresIn int    `yaml:"expires_in"` // seconds
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// ListingConfig 공고 응답 가공에 쓰이는 값
type ListingConfig struct {
	QnetImageURL string `yaml:"qnet_image_url"`
	Timezone     string `yaml:"timezone"`
}

type SchedulerConfig struct {
	DailyPickSpec string `yaml:"daily_pick_spec"`
}

// RateLimitConfig 쓰기 요청 제한 (사용자별, 분 단위)
type RateLimitConfig struct {
	WritesPerMinute int `yaml:"writes_per_minute" validate:"gte=0"`
}

// Load reads the YAML file at path, applies env overrides and defaults, then validates
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyEnv 비밀값은 환경변수가 파일보다 우선
func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("ES_ADDRESSES"); v != "" {
		c.Elasticsearch.Addresses = splitAndTrim(v, ",")
		c.Elasticsearch.Enabled = true
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("QNET_IMAGE"); v != "" {
		c.Listing.QnetImageURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 50
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.JWT.ExpiresIn == 0 {
		c.JWT.ExpiresIn = 3600
	}
	if c.Listing.Timezone == "" {
		c.Listing.Timezone = "Asia/Seoul"
	}
	if c.Scheduler.DailyPickSpec == "" {
		c.Scheduler.DailyPickSpec = "@every 12h"
	}
	if c.RateLimit.WritesPerMinute == 0 {
		c.RateLimit.WritesPerMinute = 60
	}
}

// IsDevelopment reports whether the app runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "local", "dev", "development":
		return true
	}
	return false
}

// LogResolved logs the effective configuration without secrets
func LogResolved(c *Config) {
	pkglogger.GetLogger().Info().
		Str("env", c.Env).
		Int("port", c.Server.Port).
		Str("db_host", c.Database.Host).
		Str("db_name", c.Database.Name).
		Bool("redis_url_set", c.Redis.URL != "").
		Str("redis_addr", fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)).
		Bool("es_enabled", c.Elasticsearch.Enabled).
		Strs("es_addresses", c.Elasticsearch.Addresses).
		Bool("qnet_image_set", c.Listing.QnetImageURL != "").
		Str("daily_pick_spec", c.Scheduler.DailyPickSpec).
		Msg("config resolved")
}

func splitAndTrim(s, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
