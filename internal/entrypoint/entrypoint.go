// Package entrypoint wires the catalog web app together and serves it.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/stacks/internal/auth"
	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database"
	"github.com/mrlokans/stacks/internal/database/catalog"
	"github.com/mrlokans/stacks/internal/database/users"
	http_controllers "github.com/mrlokans/stacks/internal/http"
	"github.com/mrlokans/stacks/internal/scheduler"
	"github.com/mrlokans/stacks/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server exiting")
	return nil
}

// csrfSecret decodes AUTH_SESSION_SECRET, or generates a secret that lasts
// until the process exits.
func csrfSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("generate CSRF secret: %w", err)
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}

func Run(cfg *config.Config, version string) error {
	log.Printf("Starting stacks v%s", version)

	db, err := database.NewCatalogDatabase(cfg.Catalog.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	catalogRepo := catalog.NewRepository(db.DB, cfg.Catalog.LoanDays)
	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth)

	sqlDB, err := db.SQL()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	var secret []byte
	if cfg.Auth.CSRFEnabled {
		secret, err = csrfSecret(cfg.Auth.SessionSecret)
		if err != nil {
			return err
		}
	} else {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	var taskClient *tasks.Client
	var reportScheduler *scheduler.OverdueReportScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Catalog.DatabasePath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewOverdueReportQueue(catalogRepo))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.OverdueReport.Enabled {
			reportScheduler = scheduler.NewOverdueReportScheduler(taskClient, cfg.OverdueReport.Schedule)
			if err := reportScheduler.Start(); err != nil {
				log.Printf("WARNING: overdue report disabled: %v", err)
				reportScheduler = nil
			}
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:        catalogRepo,
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		CSRFSecret:     secret,
		SecureCookies:  cfg.Auth.SecureCookies,
		RequestLogging: true,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if reportScheduler != nil {
			reportScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}
