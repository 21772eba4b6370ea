// Package main runs the campus event portal HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campus-events/portal/config"
	"github.com/campus-events/portal/internal/auth"
	"github.com/campus-events/portal/internal/campusmap"
	"github.com/campus-events/portal/internal/events"
	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/middleware"
	"github.com/campus-events/portal/internal/moderation"
	"github.com/campus-events/portal/internal/myevents"
	"github.com/campus-events/portal/internal/notifications"
	"github.com/campus-events/portal/internal/proxy"
	"github.com/campus-events/portal/internal/rooms"
	"github.com/campus-events/portal/pkg/redis"
	"github.com/campus-events/portal/pkg/response"
	"github.com/campus-events/portal/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			MapsBucket:      cfg.AWS.MapsBucket,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	// Session plumbing: signed cookie names a redis token slot read fresh
	// on every upstream call.
	cookieCodec := auth.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTLHours)
	tokenStore := auth.NewRedisStore(rdb)
	creds := auth.NewSessionCredentials(tokenStore, cookieCodec.TTL())

	api := gateway.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSec)*time.Second, creds, logger)

	authManager := auth.NewManager(api, creds, logger)
	authHandler := auth.NewHandler(authManager, logger)

	moderationService := moderation.NewService(api, logger)
	moderationHandler := moderation.NewHandler(moderationService, logger)

	eventsService := events.NewService(api, logger)
	eventsHandler := events.NewHandler(eventsService, logger)

	myEventsService := myevents.NewService(api, logger)
	myEventsHandler := myevents.NewHandler(myEventsService, moderationService, logger)

	roomsHandler := rooms.NewHandler(api, logger)
	notificationsHandler := notifications.NewHandler(api, logger)

	proxyHandler := proxy.NewHandler(
		cfg.Upstream.BaseURL,
		&http.Client{Timeout: time.Duration(cfg.Upstream.TimeoutSec) * time.Second},
		cfg.Server.Production,
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Session(cookieCodec, cfg.Session.CookieName, cfg.Server.Production))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
	}

	// Raw upstream passthrough (the upstream enforces its own auth on these)
	router.Any("/api/*path", proxyHandler.Forward)

	// Campus map (public pages; uploads admin-gated below)
	if s3Client != nil {
		loader := campusmap.NewLoader(s3Client, rdb, logger)
		renderer := campusmap.NewRenderer(loader)
		mapHandler := campusmap.NewHandler(api, loader, renderer, s3Client, logger)

		router.GET("/map/:page", mapHandler.Page)
		router.GET("/map/:page/document", mapHandler.Document)
		router.GET("/map/:page/url", mapHandler.DocumentURL)

		mapAdmin := router.Group("/map")
		mapAdmin.Use(middleware.RequireUser(authManager, logger), middleware.RequireRole("admin"))
		{
			mapAdmin.POST("/:page/document", mapHandler.Upload)
			mapAdmin.DELETE("/:page/document", mapHandler.Delete)
		}
	} else {
		logger.Warn("campus map routes disabled (no s3)")
	}

	// Signed-in portal surface
	private := router.Group("")
	private.Use(middleware.RequireUser(authManager, logger))
	{
		// Catalog and participation
		private.GET("/events", eventsHandler.Catalog)
		private.GET("/events/curators", eventsHandler.Curators)
		private.POST("/events", eventsHandler.Create)
		private.POST("/events/:id/register", eventsHandler.Register)
		private.POST("/events/:id/apply", eventsHandler.Apply)

		// Rooms and notifications
		private.GET("/rooms", roomsHandler.List)
		private.GET("/rooms/:id", roomsHandler.Get)
		private.GET("/notifications", notificationsHandler.List)
		private.POST("/notifications/:id/read", notificationsHandler.MarkRead)

		// Creator dashboard
		private.GET("/my-events/created", myEventsHandler.Created)
		private.GET("/my-events/registered", myEventsHandler.Registered)
		private.POST("/my-events/:id/submit", myEventsHandler.Submit)
		private.POST("/my-events/:id/complete", myEventsHandler.Complete)
		private.DELETE("/my-events/:id", myEventsHandler.Delete)
		private.DELETE("/my-events/registrations/:id", myEventsHandler.CancelRegistration)
		private.POST("/my-events/applications/:id/approve", myEventsHandler.ApproveApplication)
		private.POST("/my-events/applications/:id/reject", myEventsHandler.RejectApplication)
		private.POST("/my-events/applications/:id/revision", myEventsHandler.ReviseApplication)

		// Moderation console (curator/admin)
		mod := private.Group("/moderation")
		mod.Use(middleware.RequireRole("admin", "curator"))
		{
			mod.GET("/console", moderationHandler.Console)
			mod.POST("/events/:id/approve", moderationHandler.Approve)
			mod.POST("/events/:id/reject", moderationHandler.Reject)
			mod.POST("/events/:id/request-changes", moderationHandler.RequestChanges)
			mod.POST("/events/:id/complete", moderationHandler.Complete)
			mod.DELETE("/events/:id", moderationHandler.Delete)
			mod.POST("/applications/:id/approve", moderationHandler.ApproveApplication)
			mod.POST("/applications/:id/reject", moderationHandler.RejectApplication)
			mod.POST("/applications/:id/revision", moderationHandler.ReviseApplication)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
