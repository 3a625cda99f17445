package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/img2md/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "저장된 붙여넣기 옵션 관리",
	Long: `마지막 붙여넣기에서 저장된 옵션을 관리합니다.

저장되는 값: 이미지 이름, 흰색 투명 처리, 둥근 모서리, 크기 조절 비율,
인라인 삽입, 마지막 디렉토리 패턴, 문서별 디렉토리 패턴.

하위 명령:
  show    저장된 값 표시
  clear   저장된 값 삭제`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "저장된 값 표시",
	RunE:  runPrefsShow,
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear [key...]",
	Short: "저장된 값 삭제",
	Long: `저장된 값을 삭제합니다. 키를 지정하지 않으면 모든 값을 삭제합니다.

예시:
  img2md prefs clear
  img2md prefs clear PI__IMAGE_NAME`,
	RunE: runPrefsClear,
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsClearCmd)

	rootCmd.AddCommand(prefsCmd)
}

func openPrefs() (prefs.Store, string, error) {
	loader, cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	path := loader.PrefsPath(cfg)
	store, err := prefs.Open(cfg.Prefs.Backend, path)
	if err != nil {
		return nil, "", fmt.Errorf("환경 설정 저장소 열기 실패: %w", err)
	}
	return store, path, nil
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	store, path, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := store.Keys()
	if err != nil {
		return fmt.Errorf("환경 설정 읽기 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "저장소: %s\n\n", path)
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(저장된 값 없음)")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()
	for _, k := range keys {
		v, _, err := store.Get(k)
		if err != nil {
			return fmt.Errorf("환경 설정 읽기 실패: %w", err)
		}
		if v == "" {
			v = `""`
		}
		fmt.Fprintf(w, "%s\t%s\n", k, v)
	}
	return nil
}

func runPrefsClear(cmd *cobra.Command, args []string) error {
	store, _, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	keys := args
	if len(keys) == 0 {
		if keys, err = store.Keys(); err != nil {
			return fmt.Errorf("환경 설정 읽기 실패: %w", err)
		}
	}

	for _, k := range keys {
		if err := store.Delete(k); err != nil {
			return fmt.Errorf("환경 설정 삭제 실패: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "삭제됨: %d개\n", len(keys))
	return nil
}
