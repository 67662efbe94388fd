package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fileservice/internal/config"
	"fileservice/internal/database"
	"fileservice/internal/middleware"
	"fileservice/internal/modules/cleanup"
	"fileservice/internal/modules/file"
	"fileservice/internal/modules/stats"
	"fileservice/internal/modules/usage"
	jwtsvc "fileservice/internal/pkg/jwt"
	"fileservice/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	backend, err := storage.NewBackendFromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	fileRepo := file.NewRepository(db)
	fileService := file.NewService(fileRepo, backend, cfg.Limits)
	fileHandler := file.NewHandler(fileService)

	usageRepo := usage.NewRepository(db)
	usageService := usage.NewService(usageRepo)
	usageHandler := usage.NewHandler(usageService)

	cleanupRepo := cleanup.NewRepository(db)
	cleanupService := cleanup.NewService(fileRepo, cleanupRepo, backend)
	cleanupHandler := cleanup.NewHandler(cleanupService, cfg.Cleanup)

	statsRepo := stats.NewRepository(db)
	statsService := stats.NewService(statsRepo)
	statsHandler := stats.NewHandler(statsService)

	cronRunner, err := cleanup.StartScheduler(cleanupService, cfg.Cleanup)
	if err != nil {
		log.Fatalf("cleanup scheduler failed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "file-service"})
	})

	v1 := r.Group("/api/v1")
	{
		files := v1.Group("/files")
		{
			// public lookups
			file.RegisterPublicRoutes(files, fileHandler)

			// everything else requires an identity
			protected := files.Group("")
			protected.Use(middleware.Auth(j))
			{
				file.RegisterRoutes(protected, fileHandler)
				usage.RegisterRoutes(protected, usageHandler)
				cleanup.RegisterRoutes(protected, cleanupHandler)
				stats.RegisterRoutes(protected, statsHandler)
			}
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("file service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	if cronRunner != nil {
		<-cronRunner.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("stopped")
}
