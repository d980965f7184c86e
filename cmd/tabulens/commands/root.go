package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabulens",
	Short: "Tabulens - CSV 프로파일링 리포트 서비스",
	Long: `Tabulens CLI

CSV 파일을 업로드 받아 컬럼 타입, 결측값, 상관관계, 트렌드를 분석하고
PDF 리포트를 생성하는 웹 서비스.

Usage:
  go run ./cmd/tabulens [command]

Examples:
  go run ./cmd/tabulens serve
  go run ./cmd/tabulens profile data.csv
  go run ./cmd/tabulens sweep`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// applyGlobalFlags maps the persistent flags onto the environment before
// config.Load reads it. godotenv never overrides variables that are already
// set, so --config wins over a local .env.
func applyGlobalFlags() {
	if configFile != "" {
		_ = godotenv.Load(configFile)
	}
	if rootCmd.PersistentFlags().Changed("env") {
		os.Setenv("ENV", env)
	}
	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("LOG_FORMAT", "console")
	}
}
