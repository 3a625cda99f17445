package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/img2md/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `img2md 설정을 관리합니다.

설정 파일 위치: ~/.img2md/config.yaml

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.img2md/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  defaults.directory_pattern     이미지 디렉토리 패턴 ({document_name} 치환)
  defaults.corner_radius         모서리 반지름 (픽셀)
  defaults.scale_percent         크기 조절 비율 (%)
  defaults.white_as_transparent  흰색 투명 처리 (true, false)
  defaults.round_corners         둥근 모서리 (true, false)
  defaults.inline                인라인 삽입 (true, false)
  scale.backend                  크기 조절 백엔드 (xdraw, nfnt, gift)
  scale.resampler                보간 방식 (nearest, bilinear, lanczos)
  png.compression                PNG 압축 (default, speed, best, none)
  prefs.backend                  환경 설정 저장소 (yaml, sqlite, memory)
  prefs.path                     환경 설정 파일 경로
  vcs.enabled                    git 스테이징 (true, false)
  log.level                      로그 수준 (debug, info, warn, error)
  log.format                     로그 형식 (text, json)

예시:
  img2md config set defaults.directory_pattern assets/{document_name}
  img2md config set scale.backend gift`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "환경 설정 저장소:", loader.PrefsPath(cfg))
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintln(cmd.OutOrStdout(), "환경 변수:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{"IMG2MD_CONFIG", "설정 파일 경로"},
		{"IMG2MD_BACKEND", "크기 조절 백엔드"},
		{"IMG2MD_RESAMPLER", "보간 방식"},
		{"IMG2MD_PREFS", "환경 설정 저장소"},
		{"IMG2MD_LOG_LEVEL", "로그 수준"},
		{"IMG2MD_NO_VCS", "git 스테이징 비활성화"},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("유효하지 않은 값: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

// setConfigValue assigns value to the dotted key. Enumerated values are
// checked afterwards by Config.Validate.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "defaults.directory_pattern":
		if value == "" {
			return fmt.Errorf("디렉토리 패턴은 비어 있을 수 없습니다")
		}
		cfg.Defaults.DirectoryPattern = value
	case "defaults.corner_radius":
		return setInt(&cfg.Defaults.CornerRadius, key, value, 0)
	case "defaults.scale_percent":
		return setInt(&cfg.Defaults.ScalePercent, key, value, 1)
	case "defaults.white_as_transparent":
		return setBool(&cfg.Defaults.WhiteAsTransparent, key, value)
	case "defaults.round_corners":
		return setBool(&cfg.Defaults.RoundCorners, key, value)
	case "defaults.inline":
		return setBool(&cfg.Defaults.Inline, key, value)
	case "scale.backend":
		cfg.Scale.Backend = value
	case "scale.resampler":
		cfg.Scale.Resampler = value
	case "png.compression":
		cfg.PNG.Compression = value
	case "prefs.backend":
		cfg.Prefs.Backend = value
	case "prefs.path":
		cfg.Prefs.Path = value
	case "vcs.enabled":
		return setBool(&cfg.VCS.Enabled, key, value)
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("알 수 없는 설정 키: %s\n`img2md config set --help`로 지원하는 키를 확인하세요", key)
	}
	return nil
}

func setInt(dst *int, key, value string, min int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("유효하지 않은 정수 값: %s = %s", key, value)
	}
	if n < min {
		return fmt.Errorf("%s 값은 %d 이상이어야 합니다: %d", key, min, n)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("유효하지 않은 값: %s = %s (true, false)", key, value)
	}
	*dst = b
	return nil
}
