package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agapechurch/chms-backend/internal/config"
	"github.com/agapechurch/chms-backend/internal/handler"
	"github.com/agapechurch/chms-backend/internal/middleware"
	"github.com/agapechurch/chms-backend/internal/migration"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/agapechurch/chms-backend/internal/routes"
	"github.com/agapechurch/chms-backend/internal/service"
	pkgcache "github.com/agapechurch/chms-backend/pkg/cache"
	"github.com/agapechurch/chms-backend/pkg/jwt"
	pkglogger "github.com/agapechurch/chms-backend/pkg/logger"
	pkgredis "github.com/agapechurch/chms-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Agape Church CMS API
// @version         1.0
// @description     Content lifecycle backend: review workflow, version history, scheduled publishing
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional: without it list caching is skipped, nothing else changes.
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without cache)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn.Std(), cfg.JWT.RefreshIn.Std())

	store := repository.NewStore(db)

	announcementService := service.NewAnnouncementService(store, cacheService)
	devotionalService := service.NewDevotionalService(store, cacheService)
	workflowService := service.NewWorkflowService(store, cacheService)
	versionService := service.NewVersionService(store)
	schedulerService := service.NewSchedulerService(store, cacheService)

	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	devotionalHandler := handler.NewDevotionalHandler(devotionalService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	versionHandler := handler.NewVersionHandler(versionService)
	schedulerHandler := handler.NewSchedulerHandler(schedulerService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(
		router,
		announcementHandler,
		devotionalHandler,
		workflowHandler,
		versionHandler,
		schedulerHandler,
		jwtManager,
		cfg,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.CORS.AllowOrigins == "" || cfg.CORS.AllowOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CORS.AllowOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-API-Key", "X-Request-ID")
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	return corsCfg
}
