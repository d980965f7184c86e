package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/tabulens/tabulens/internal/janitor"
	"github.com/tabulens/tabulens/internal/pipeline"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/internal/web"
	"github.com/tabulens/tabulens/internal/web/handlers"
	"github.com/tabulens/tabulens/pkg/config"
	"github.com/tabulens/tabulens/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "프로파일링 웹 서버 시작",
	Long: `CSV 프로파일링 웹 서버를 시작합니다.

이 명령어는:
- 업로드 폼 및 리포트 다운로드 제공
- 업로드 → 파싱 → 분석 → 렌더링 파이프라인 실행
- 보관 기간이 지난 파일 정리 (janitor)

Endpoints:
  GET  /                 - 업로드 폼
  POST /upload           - CSV 업로드 및 리포트 생성
  GET  /reports/{name}   - 생성된 PDF 다운로드
  GET  /health           - Health check

Example:
  go run ./cmd/tabulens serve
  go run ./cmd/tabulens serve --port 8080`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "서버 포트 (기본: PORT 환경변수)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tabulens Server ===")

	applyGlobalFlags()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing server")

	// 3. Prepare storage directories
	store := storage.New(storage.Dirs{
		Input:  cfg.Storage.InputDir,
		Output: cfg.Storage.OutputDir,
	}, log)
	if err := store.Ensure(); err != nil {
		return fmt.Errorf("prepare storage: %w", err)
	}

	// 4. Create pipeline runner
	runner := pipeline.NewRunner(
		profile.NewAnalyzer(cfg.Profile.CorrelationThreshold, log),
		report.NewRenderer(cfg.Profile.HistogramBins, log),
		store,
		log,
	)

	// 5. Create handler
	uploadHandler := handlers.NewUploadHandler(runner, store, cfg.Upload.MaxBytes, log)

	// 6. Create upload rate limiter
	limiter := rate.NewLimiter(rate.Limit(cfg.Upload.Rate), cfg.Upload.Burst)
	if cfg.Upload.Rate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	// 7. Create router
	router := web.NewRouter(uploadHandler, limiter, log)

	// 8. Create server
	server := web.New(cfg, log, router)

	// 9. Start janitor
	jan := janitor.New(store, cfg.Storage.SweepSchedule, cfg.Storage.Retention, log)
	if err := jan.Start(); err != nil {
		return fmt.Errorf("start janitor: %w", err)
	}
	defer jan.Stop()

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /")
	fmt.Println("  POST /upload")
	fmt.Println("  GET  /reports/{name}")
	fmt.Println("  GET  /health")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
