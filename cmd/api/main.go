package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/config"
	"github.com/speckit/speckit-backend/internal/handler"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/middleware"
	"github.com/speckit/speckit-backend/internal/migration"
	"github.com/speckit/speckit-backend/internal/repository"
	"github.com/speckit/speckit-backend/internal/routes"
	"github.com/speckit/speckit-backend/internal/scheduler"
	"github.com/speckit/speckit-backend/internal/service"
	pkgcache "github.com/speckit/speckit-backend/pkg/cache"
	pkges "github.com/speckit/speckit-backend/pkg/elasticsearch"
	"github.com/speckit/speckit-backend/pkg/jwt"
	pkglogger "github.com/speckit/speckit-backend/pkg/logger"
	pkgredis "github.com/speckit/speckit-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV
func getConfigPath(env string) string {
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	dotenvFiles := config.LoadDotEnv(env)

	// 로거 초기화
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath(env)
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	loc, err := time.LoadLocation(cfg.Listing.Timezone)
	if err != nil {
		log.Fatalf("Invalid listing timezone %q: %v", cfg.Listing.Timezone, err)
	}

	// MySQL 연결
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		pkglogger.Warn("Migration warning: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := middleware.RegisterDBStats(sqlDB, cfg.Database.Name); err != nil {
			pkglogger.Warn("DB stats collector not registered: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis 연결 (없으면 캐시/요청 제한 없이 동작)
	var redisClient *redis.Client
	redisClient, err = pkgredis.NewClient(ctx, pkgredis.Options{
		URL:      cfg.Redis.URL,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// Elasticsearch 연결
	if !cfg.Elasticsearch.Enabled {
		log.Fatal("Elasticsearch is required (elasticsearch.enabled=false)")
	}
	esClient, err := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
	if err != nil {
		log.Fatalf("Elasticsearch connection failed: %v", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	registry := listing.NewRegistry(listing.Options{
		QnetImageURL: cfg.Listing.QnetImageURL,
		Now:          func() time.Time { return time.Now().In(loc) },
	})

	// Repositories
	userRepo := repository.NewUserRepository(db)
	scrapRepo := repository.NewScrapRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)
	thermoRepo := repository.NewThermometerRepository(db)

	// Services
	listingService := service.NewListingService(esClient, userRepo, scrapRepo, keywordRepo, registry)
	pickService := service.NewDailyPickService(esClient, cacheService, registry)
	scrapService := service.NewScrapService(userRepo, scrapRepo, esClient)
	thermoService := service.NewThermometerService(userRepo, thermoRepo)
	windower := calendar.NewWindower(registry, pkglogger.GetLogger().With().Str("component", "calendar").Logger())
	calendarService := service.NewCalendarService(userRepo, scrapRepo, esClient, registry, windower)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	routes.Setup(router, routes.Handlers{
		Listing:     handler.NewListingHandler(listingService, pickService, registry),
		Scrap:       handler.NewScrapHandler(scrapService, listingService, registry),
		Calendar:    handler.NewCalendarHandler(calendarService),
		Thermometer: handler.NewThermometerHandler(thermoService),
	}, jwtManager, redisClient, cfg.RateLimit.WritesPerMinute)

	// 오늘의 공고 갱신
	sched := scheduler.New(pickService, cacheService, cfg.Scheduler.DailyPickSpec,
		pkglogger.GetLogger().With().Str("component", "scheduler").Logger())
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Warn("Server shutdown error: %v", err)
	}
	sched.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	pkglogger.Info("Stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range strings.Split(cfg.CORS.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowOrigins = append(c.AllowOrigins, o)
		}
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"http://localhost:5173"}
	}
	return c
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+09:00'" // KST

	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
