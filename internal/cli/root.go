// Package cli implements the img2md command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roboco-io/img2md/internal/config"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "img2md",
	Short: "클립보드 이미지를 Markdown 문서에 붙여넣기",
	Long: `img2md는 클립보드의 이미지를 변환하여 파일로 저장하거나 base64로 인라인한 뒤
Markdown 이미지 링크를 문서에 삽입합니다.

변환 옵션:
  흰색 투명 처리, 둥근 모서리, 크기 조절, 인라인(base64) 삽입

예시:
  img2md paste notes.md
  img2md paste notes.md --name diagram --scale 50
  img2md paste notes.md -i
  img2md inspect --scale 50`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "img2md %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.img2md/config.yaml, 환경 변수 IMG2MD_CONFIG)")
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newLoader returns the loader for --config, IMG2MD_CONFIG, or the default location.
func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	if p := os.Getenv("IMG2MD_CONFIG"); p != "" {
		return config.NewLoaderWithPath(p), nil
	}
	return config.NewLoader()
}

// loadConfig loads the configuration with environment overrides applied.
func loadConfig() (*config.Loader, *config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	config.ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("설정 오류: %w", err)
	}
	return loader, cfg, nil
}
