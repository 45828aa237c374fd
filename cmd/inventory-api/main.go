package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rollyard/roll-inventory-api/api/swagger"
	"github.com/rollyard/roll-inventory-api/internal/handler"
	"github.com/rollyard/roll-inventory-api/internal/middleware"
	"github.com/rollyard/roll-inventory-api/internal/repository"
	"github.com/rollyard/roll-inventory-api/internal/service"
	"github.com/rollyard/roll-inventory-api/pkg/cache"
	"github.com/rollyard/roll-inventory-api/pkg/config"
	"github.com/rollyard/roll-inventory-api/pkg/database"
	"github.com/rollyard/roll-inventory-api/pkg/logger"
	corsmiddleware "github.com/rollyard/roll-inventory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rollyard/roll-inventory-api/pkg/middleware/requestid"
)

// @title Roll Inventory API
// @version 1.0.0
// @description Inventory tracking for material rolls
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Stats.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, true)
	}

	rollRepo := repository.NewRollRepository(db, metricsSvc)
	rollSvc := service.NewRollService(rollRepo, cacheSvc, validator.New(), logr)
	rollHandler := handler.NewRollHandler(rollSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/rolls", rollHandler.Create)
	api.GET("/rolls", rollHandler.List)
	api.GET("/rolls/stats", rollHandler.Stats)
	api.GET("/rolls/:id", rollHandler.Get)
	api.DELETE("/rolls/:id", rollHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
