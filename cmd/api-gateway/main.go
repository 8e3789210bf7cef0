package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/clubsanmartin/club-api/api/swagger"
	"github.com/clubsanmartin/club-api/internal/handler"
	"github.com/clubsanmartin/club-api/internal/middleware"
	"github.com/clubsanmartin/club-api/internal/repository"
	"github.com/clubsanmartin/club-api/internal/service"
	"github.com/clubsanmartin/club-api/pkg/cache"
	"github.com/clubsanmartin/club-api/pkg/config"
	"github.com/clubsanmartin/club-api/pkg/database"
	"github.com/clubsanmartin/club-api/pkg/export"
	"github.com/clubsanmartin/club-api/pkg/jobs"
	"github.com/clubsanmartin/club-api/pkg/logger"
	corsmiddleware "github.com/clubsanmartin/club-api/pkg/middleware/cors"
	reqidmiddleware "github.com/clubsanmartin/club-api/pkg/middleware/requestid"
	"github.com/clubsanmartin/club-api/pkg/storage"
)

// @title Club San Martin API
// @version 1.0.0
// @description Court booking and sports practice management for the club portal
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	slotRepo := repository.NewSlotRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	var csvExporter *export.CSVExporter
	var pdfExporter *export.PDFExporter
	var sheetArchive *storage.LocalArchive
	if cfg.Exports.Enabled {
		csvExporter = export.NewCSVExporter()
		pdfExporter = export.NewPDFExporter()
		if cfg.Exports.ArchiveDir != "" {
			sheetArchive, err = storage.NewLocalArchive(cfg.Exports.ArchiveDir)
			if err != nil {
				log.Fatalf("failed to init sheet archive: %v", err)
			}
		}
	}

	slotSvc := service.NewSlotService(slotRepo, courtRepo, practiceRepo, cacheSvc, metricsSvc, csvExporter, pdfExporter, sheetArchive, nil, logr)
	rentalSvc := service.NewRentalService(rentalRepo, slotRepo, memberRepo, db, cacheSvc, metricsSvc, nil, logr)
	practiceSvc := service.NewPracticeService(practiceRepo, courtRepo, trainerRepo, slotRepo, db, cacheSvc, metricsSvc, nil, logr)
	courtSvc := service.NewCourtService(courtRepo, db, cacheSvc, nil, logr)
	memberSvc := service.NewMemberService(memberRepo, familyRepo, nil, logr)
	trainerSvc := service.NewTrainerService(trainerRepo, nil, logr)
	familySvc := service.NewFamilyService(familyRepo, memberRepo, db, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, memberRepo, practiceRepo, familyRepo, nil, logr)

	slotHandler := handler.NewSlotHandler(slotSvc)
	rentalHandler := handler.NewRentalHandler(rentalSvc)
	practiceHandler := handler.NewPracticeHandler(practiceSvc)
	courtHandler := handler.NewCourtHandler(courtSvc)
	memberHandler := handler.NewMemberHandler(memberSvc, enrollmentSvc)
	trainerHandler := handler.NewTrainerHandler(trainerSvc)
	familyHandler := handler.NewFamilyHandler(familySvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sweep *jobs.Queue
	if cfg.Rentals.SweepEnabled {
		sweep = jobs.NewQueue("rental-sweep", func(ctx context.Context, job jobs.Job) error {
			_, err := rentalSvc.CompleteElapsed(ctx)
			return err
		}, jobs.Options{
			Workers: cfg.Rentals.SweepWorkers,
			Retries: cfg.Rentals.SweepRetries,
			Logger:  logr,
		})
		sweep.Start(ctx)
		defer sweep.Stop()

		sweep.RunEvery(cfg.Rentals.SweepInterval, func() jobs.Job {
			return jobs.Job{ID: uuid.NewString(), Type: "complete-elapsed"}
		})
	}

	if sheetArchive != nil {
		cleanup := jobs.NewQueue("sheet-archive-cleanup", func(ctx context.Context, job jobs.Job) error {
			removed, err := sheetArchive.CleanupOlderThan(cfg.Exports.ArchiveTTL)
			if err != nil {
				return err
			}
			if removed > 0 {
				logr.Info("sheet archive cleaned", zap.Int("removed", removed))
			}
			return nil
		}, jobs.Options{Logger: logr})
		cleanup.Start(ctx)
		defer cleanup.Stop()

		cleanup.RunEvery(24*time.Hour, func() jobs.Job {
			return jobs.Job{ID: uuid.NewString(), Type: "archive-cleanup"}
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
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
	{
		api.POST("/slots/generate", slotHandler.Generate)
		api.GET("/slots", slotHandler.List)
		if cfg.Exports.Enabled {
			api.GET("/slots/sheet", slotHandler.Sheet)
		}

		api.POST("/rentals", rentalHandler.Reserve)
		api.GET("/rentals", rentalHandler.List)
		api.GET("/rentals/:id", rentalHandler.Get)
		api.PUT("/rentals/:id/cancel", rentalHandler.Cancel)

		api.POST("/practices", practiceHandler.Create)
		api.GET("/practices", practiceHandler.List)
		api.GET("/practices/:id", practiceHandler.Get)
		api.PUT("/practices/:id", practiceHandler.Update)
		api.DELETE("/practices/:id", practiceHandler.Delete)
		api.GET("/practices/:id/enrollments", enrollmentHandler.ListByPractice)

		api.POST("/courts", courtHandler.Create)
		api.GET("/courts", courtHandler.List)
		api.GET("/courts/:id", courtHandler.Get)
		api.PUT("/courts/:id", courtHandler.Update)
		api.DELETE("/courts/:id", courtHandler.Delete)

		api.POST("/members", memberHandler.Create)
		api.GET("/members", memberHandler.List)
		api.GET("/members/:id", memberHandler.Get)
		api.PUT("/members/:id", memberHandler.Update)
		api.GET("/members/:id/enrollments", memberHandler.Enrollments)

		api.POST("/trainers", trainerHandler.Create)
		api.GET("/trainers", trainerHandler.List)
		api.GET("/trainers/:id", trainerHandler.Get)

		api.POST("/families", familyHandler.Create)
		api.GET("/families", familyHandler.List)
		api.GET("/families/:id", familyHandler.Get)
		api.DELETE("/families/:id", familyHandler.Delete)

		api.POST("/enrollments", enrollmentHandler.Enroll)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
