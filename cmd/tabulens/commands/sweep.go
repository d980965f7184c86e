package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/config"
	"github.com/tabulens/tabulens/pkg/logger"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "보관 기간이 지난 파일 즉시 정리",
	Long: `input/output 디렉토리에서 보관 기간(RETENTION)이 지난
업로드와 리포트를 즉시 삭제합니다.

serve 중에는 janitor가 같은 정리를 주기적으로 수행합니다.

Example:
  go run ./cmd/tabulens sweep
  go run ./cmd/tabulens sweep --retention 1h`,
	RunE: runSweep,
}

var (
	sweepRetention time.Duration
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	// Flags
	sweepCmd.Flags().DurationVar(&sweepRetention, "retention", 0, "보관 기간 재정의 (예: 1h, 30m)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tabulens Sweep ===")

	applyGlobalFlags()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override retention if flag is set
	if sweepRetention > 0 {
		cfg.Storage.Retention = sweepRetention
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Prepare storage directories
	store := storage.New(storage.Dirs{
		Input:  cfg.Storage.InputDir,
		Output: cfg.Storage.OutputDir,
	}, log)
	if err := store.Ensure(); err != nil {
		return fmt.Errorf("prepare storage: %w", err)
	}

	// 4. Sweep expired files
	removed, err := store.Sweep(cfg.Storage.Retention)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("\n✅ Removed %d expired file(s) (retention %s)\n", removed, cfg.Storage.Retention)
	return nil
}
