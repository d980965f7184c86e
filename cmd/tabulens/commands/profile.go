package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabulens/tabulens/internal/pipeline"
	"github.com/tabulens/tabulens/internal/profile"
	"github.com/tabulens/tabulens/internal/report"
	"github.com/tabulens/tabulens/internal/storage"
	"github.com/tabulens/tabulens/pkg/config"
	"github.com/tabulens/tabulens/pkg/logger"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile [file.csv]",
	Short: "단일 CSV 파일을 분석해 PDF 리포트 생성",
	Long: `서버 없이 CSV 파일 하나를 분석합니다.

업로드 파이프라인과 동일한 단계를 거칩니다:
  PARSED → ANALYZED → RENDERED

Example:
  go run ./cmd/tabulens profile data.csv
  go run ./cmd/tabulens profile data.csv --out ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

var (
	profileOut string
)

func init() {
	rootCmd.AddCommand(profileCmd)

	// Flags
	profileCmd.Flags().StringVar(&profileOut, "out", "", "리포트 출력 디렉토리 (기본: OUTPUT_DIR)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tabulens Profile ===")

	applyGlobalFlags()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override output dir if flag is set
	if profileOut != "" {
		cfg.Storage.OutputDir = profileOut
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

	// 4. Create pipeline runner
	runner := pipeline.NewRunner(
		profile.NewAnalyzer(cfg.Profile.CorrelationThreshold, log),
		report.NewRenderer(cfg.Profile.HistogramBins, log),
		store,
		log,
	)

	// 5. Run the pipeline on the file
	res, err := runner.RunFile(args[0], storage.NewID(), "")
	if err != nil {
		fmt.Printf("\n❌ %s\n", pipeline.UserMessage(err))
		return err
	}

	fmt.Printf("\n✅ Report generated\n")
	fmt.Printf("  File:     %s\n", res.SourceName)
	fmt.Printf("  Rows:     %d\n", res.Rows)
	fmt.Printf("  Columns:  %d\n", res.Cols)
	fmt.Printf("  Report:   %s\n", res.ReportPath)
	fmt.Printf("  Duration: %d ms\n", res.Duration)

	return nil
}
