package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/img2md/internal/transform"
)

var backendDescriptions = map[string]string{
	"xdraw": "golang.org/x/image/draw",
	"nfnt":  "github.com/nfnt/resize",
	"gift":  "github.com/disintegration/gift",
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "사용 가능한 크기 조절 백엔드 목록",
	Long: `크기 조절(--scale)에 사용할 수 있는 백엔드와 보간 방식을 표시합니다.

백엔드는 --backend 플래그, 설정 파일의 scale.backend,
또는 IMG2MD_BACKEND 환경 변수로 선택합니다.

사용 예시:
  img2md paste notes.md --scale 50 --backend nfnt
  img2md paste notes.md --scale 50 --resampler lanczos`,
	Run: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "백엔드\t기본\t보간 방식\t라이브러리")
	fmt.Fprintln(w, "------\t----\t--------\t---------")

	for _, name := range transform.List() {
		s, err := transform.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			name, defaultMark(name), resamplerNames(s), backendDescriptions[name])
	}
}

func defaultMark(name string) string {
	if name == transform.DefaultBackend {
		return "✓"
	}
	return ""
}

func resamplerNames(s transform.Scaler) string {
	rs := s.Resamplers()
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
