package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campus-dev/timetable-api/api/swagger"
	"github.com/campus-dev/timetable-api/internal/handler"
	"github.com/campus-dev/timetable-api/internal/middleware"
	"github.com/campus-dev/timetable-api/internal/repository"
	"github.com/campus-dev/timetable-api/internal/service"
	"github.com/campus-dev/timetable-api/pkg/cache"
	"github.com/campus-dev/timetable-api/pkg/config"
	"github.com/campus-dev/timetable-api/pkg/database"
	"github.com/campus-dev/timetable-api/pkg/logger"
	corsmiddleware "github.com/campus-dev/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-dev/timetable-api/pkg/middleware/requestid"
)

// @title Timetable API
// @version 1.0.0
// @description Greedy weekly lecture timetable generator
// @BasePath /api
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, reference cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ReferenceTTL, logr, cfg.Cache.Enabled)

	facultyRepo := repository.NewFacultyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	validate := validator.New()

	timetableSvc := service.NewTimetableService(
		facultyRepo, roomRepo, sectionRepo, timeslotRepo, assignmentRepo,
		validate, metricsSvc, logr, cfg.Generator,
	)
	referenceSvc := service.NewReferenceService(
		facultyRepo, roomRepo, sectionRepo, timeslotRepo,
		cacheSvc, cfg.Cache.ReferenceTTL, logr,
	)
	exportSvc := service.NewExportService(timetableSvc, logr)
	authSvc := service.NewAuthService(logr, service.AuthConfig{
		Secret:     cfg.Auth.Secret,
		Expiration: cfg.Auth.Expiration,
	})

	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	referenceHandler := handler.NewReferenceHandler(referenceSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/reference-data", referenceHandler.ReferenceData)
	api.GET("/timetable", timetableHandler.Timetable)
	api.GET("/timetable/export", timetableHandler.Export)

	generate := api.Group("")
	if cfg.Auth.Enabled {
		generate.Use(middleware.JWT(authSvc))
	}
	generate.POST("/generate-timetable", timetableHandler.Generate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
