package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/checklistia/checklistia/internal/ai"
	"github.com/checklistia/checklistia/internal/backup"
	"github.com/checklistia/checklistia/internal/database"
	"github.com/checklistia/checklistia/internal/logging"
	"github.com/checklistia/checklistia/internal/push"
	"github.com/checklistia/checklistia/internal/server"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("CHECKLISTIA_LOG_LEVEL"), os.Getenv("CHECKLISTIA_LOG_FORMAT"))

	port := os.Getenv("CHECKLISTIA_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHECKLISTIA_DB_PATH")
	if dbPath == "" {
		dbPath = "checklistia.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var aiClient *ai.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		aiClient, err = ai.NewClient(context.Background(), ai.Config{
			APIKey: apiKey,
			Model:  os.Getenv("CHECKLISTIA_AI_MODEL"),
		}, logger.With("component", "ai"))
		if err != nil {
			log.Fatalf("failed to create AI client: %v", err)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, recipe synthesis disabled and aisle grouping uses keywords only")
	}

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("CHECKLISTIA_S3_ENDPOINT"),
			Bucket:    os.Getenv("CHECKLISTIA_S3_BUCKET"),
			Region:    os.Getenv("CHECKLISTIA_S3_REGION"),
			AccessKey: os.Getenv("CHECKLISTIA_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("CHECKLISTIA_S3_SECRET_KEY"),
		},
		DBPath:     dbPath,
		Passphrase: os.Getenv("CHECKLISTIA_BACKUP_PASSPHRASE"),
	}

	pushCfg := push.Config{
		VAPIDPublicKey:  os.Getenv("CHECKLISTIA_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("CHECKLISTIA_VAPID_PRIVATE_KEY"),
	}

	srv := server.New(db, aiClient, backupCfg, pushCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retentionDays := 30
	if s := os.Getenv("CHECKLISTIA_BACKUP_RETENTION_DAYS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			retentionDays = n
		}
	}

	if mgr := srv.BackupManager(); mgr != nil {
		mgr.Start(ctx)
		defer mgr.Stop()

		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := mgr.Cleanup(ctx, retentionDays); err != nil {
						logger.Error("backup cleanup", "error", err)
					}
				}
			}
		}()
	}

	// Expired sessions and stale rate-limit windows are swept hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("ChecklistIA running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
