package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roboco-io/img2md/internal/action"
	"github.com/roboco-io/img2md/internal/clipboard"
	"github.com/roboco-io/img2md/internal/codec"
	"github.com/roboco-io/img2md/internal/config"
	"github.com/roboco-io/img2md/internal/editor"
	"github.com/roboco-io/img2md/internal/ir"
	"github.com/roboco-io/img2md/internal/planner"
	"github.com/roboco-io/img2md/internal/prefs"
	"github.com/roboco-io/img2md/internal/settings"
	"github.com/roboco-io/img2md/internal/transform"
	"github.com/roboco-io/img2md/internal/vcs"
)

var (
	pasteFrom        string
	pasteName        string
	pasteDir         string
	pasteWhite       bool
	pasteRound       bool
	pasteRadius      int
	pasteScale       int
	pasteInline      bool
	pasteAt          string
	pasteStdout      bool
	pasteInteractive bool
	pasteBackend     string
	pasteResampler   string
	pasteNoVCS       bool
	pasteVerbose     bool
	pasteQuiet       bool
)

var pasteCmd = &cobra.Command{
	Use:   "paste <document.md>",
	Short: "클립보드 이미지를 Markdown 문서에 삽입",
	Long: `클립보드의 이미지를 변환하여 Markdown 이미지 링크로 문서에 삽입합니다.

변환은 흰색 투명 처리, 둥근 모서리, 크기 조절 순서로 적용됩니다.
--inline을 사용하지 않으면 이미지는 문서 옆 디렉토리에 PNG 파일로 저장되고
문서 기준 상대 경로로 링크됩니다. 같은 이름의 파일은 확인 없이 덮어씁니다.

이미지 이름을 비워 두면 8자리 임의 이름이 생성됩니다.
디렉토리 패턴의 {document_name}은 확장자를 뺀 문서 이름으로 바뀝니다.
지정하지 않은 옵션은 마지막으로 사용한 값을 따릅니다.

예시:
  img2md paste notes.md
  img2md paste notes.md --name diagram --white-transparent --scale 50
  img2md paste notes.md --inline --stdout
  img2md paste notes.md --from screenshot.png --at 12:1
  img2md paste notes.md -i`,
	Args: cobra.ExactArgs(1),
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().StringVar(&pasteFrom, "from", "", "클립보드 대신 읽을 이미지 파일 (- 는 stdin)")
	pasteCmd.Flags().StringVar(&pasteName, "name", "", "이미지 이름 (빈 값이면 임의 생성)")
	pasteCmd.Flags().StringVar(&pasteDir, "dir", "", "이미지 디렉토리 패턴 (기본: ."+ir.DocumentNameToken+"_images)")
	pasteCmd.Flags().BoolVar(&pasteWhite, "white-transparent", false, "흰색 픽셀을 투명하게 처리")
	pasteCmd.Flags().BoolVar(&pasteRound, "round-corners", false, "모서리를 둥글게 처리")
	pasteCmd.Flags().IntVar(&pasteRadius, "radius", ir.DefaultCornerRadius, "모서리 반지름 (픽셀)")
	pasteCmd.Flags().IntVar(&pasteScale, "scale", ir.NoScale, "크기 조절 비율 (%)")
	pasteCmd.Flags().BoolVar(&pasteInline, "inline", false, "파일 대신 base64로 인라인 삽입")
	pasteCmd.Flags().StringVar(&pasteAt, "at", "end", "삽입 위치 (line:col, 기본: 문서 끝)")
	pasteCmd.Flags().BoolVar(&pasteStdout, "stdout", false, "문서를 수정하지 않고 Markdown을 stdout에 출력")
	pasteCmd.Flags().BoolVarP(&pasteInteractive, "interactive", "i", false, "설정 화면에서 옵션 확인")
	pasteCmd.Flags().StringVar(&pasteBackend, "backend", "", "크기 조절 백엔드 (xdraw, nfnt, gift)")
	pasteCmd.Flags().StringVar(&pasteResampler, "resampler", "", "보간 방식 (nearest, bilinear, lanczos)")
	pasteCmd.Flags().BoolVar(&pasteNoVCS, "no-vcs", false, "git 스테이징 비활성화")
	pasteCmd.Flags().BoolVarP(&pasteVerbose, "verbose", "v", false, "상세 출력")
	pasteCmd.Flags().BoolVarP(&pasteQuiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(pasteCmd)
}

func runPaste(cmd *cobra.Command, args []string) error {
	docPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("문서 경로 오류: %w", err)
	}

	if pasteInteractive && pasteFrom == "-" {
		return fmt.Errorf("--interactive와 --from - 는 함께 사용할 수 없습니다")
	}

	caret, err := editor.ParseCaret(pasteAt)
	if err != nil {
		return fmt.Errorf("삽입 위치 오류: %w", err)
	}

	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log, pasteVerbose, pasteQuiet)

	scaler, resampler, err := resolveScaler(cfg, pasteBackend, pasteResampler)
	if err != nil {
		return err
	}

	compression, err := codec.ParseCompression(cfg.PNG.Compression)
	if err != nil {
		return fmt.Errorf("설정 오류: %w", err)
	}

	store, err := prefs.Open(cfg.Prefs.Backend, loader.PrefsPath(cfg))
	if err != nil {
		return fmt.Errorf("환경 설정 저장소 열기 실패: %w", err)
	}
	defer store.Close()

	overrides := pasteOverrides(cmd.Flags())
	var collab settings.Collaborator = settings.Static{Overrides: overrides}
	if pasteInteractive {
		collab = settings.Dialog{Out: cmd.ErrOrStderr(), Overrides: overrides}
	}

	var inserter editor.Inserter = editor.FileCaret{Path: docPath, Caret: caret}
	if pasteStdout {
		inserter = editor.Writer{W: cmd.OutOrStdout()}
	}

	var stager vcs.Stager
	if cfg.VCS.Enabled && !pasteNoVCS {
		stager = vcs.Git{Binary: cfg.VCS.Git}
	}

	ctrl := &action.Controller{
		Clipboard: clipboard.FromFlag(pasteFrom, cmd.InOrStdin()),
		Settings:  collab,
		Planner: planner.New(
			planner.WithEncoder(codec.NewEncoder(compression)),
			planner.WithLogger(logger),
		),
		Editor:    inserter,
		VCS:       stager,
		Prefs:     store,
		Defaults:  cfg.InsertOptions(),
		Scaler:    scaler,
		Resampler: resampler,
		Logger:    logger,
	}

	out, err := ctrl.Run(cmd.Context(), docPath)
	if errors.Is(err, ir.ErrUserCancelled) {
		if !pasteQuiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "붙여넣기가 취소되었습니다")
		}
		return nil
	}
	if err != nil {
		return userError(err)
	}

	if !pasteQuiet {
		w := cmd.ErrOrStderr()
		if pasteVerbose {
			fmt.Fprintf(w, "원본 크기: %d x %d\n", out.SrcWidth, out.SrcHeight)
			fmt.Fprintf(w, "출력 크기: %d x %d\n", out.Width, out.Height)
			for _, step := range out.Applied {
				fmt.Fprintf(w, "적용: %s\n", step)
			}
		}
		if out.Result.IsFile() {
			fmt.Fprintf(w, "이미지 저장: %s\n", out.Result.RelativePath)
			if out.Result.Overwritten {
				fmt.Fprintf(w, "기존 파일을 덮어썼습니다: %s\n", out.Result.RelativePath)
			}
			if out.Staged && pasteVerbose {
				fmt.Fprintln(w, "git 스테이징 완료")
			}
		} else {
			fmt.Fprintf(w, "인라인 이미지 삽입: %s (%d bytes base64)\n", out.Result.Name, len(out.Result.Payload))
		}
		if !pasteStdout {
			fmt.Fprintf(w, "삽입 완료: %s (%s)\n", docPath, caret)
		}
	}

	return nil
}

// pasteOverrides collects the options given explicitly on the command line.
func pasteOverrides(flags *pflag.FlagSet) settings.Overrides {
	var o settings.Overrides
	if flags.Changed("white-transparent") {
		o.WhiteAsTransparent = &pasteWhite
	}
	if flags.Changed("round-corners") {
		o.RoundCorners = &pasteRound
	}
	if flags.Changed("radius") {
		o.CornerRadius = &pasteRadius
	}
	if flags.Changed("scale") {
		o.ScalePercent = &pasteScale
	}
	if flags.Changed("inline") {
		o.Inline = &pasteInline
	}
	if flags.Changed("name") {
		o.ImageName = &pasteName
	}
	if flags.Changed("dir") {
		o.DirectoryPattern = &pasteDir
	}
	return o
}

// resolveScaler picks the scaling backend and resampler, flags first.
func resolveScaler(cfg *config.Config, backend, resampler string) (transform.Scaler, transform.Resampler, error) {
	if backend == "" {
		backend = cfg.Scale.Backend
	}
	if backend == "" {
		backend = transform.DefaultBackend
	}
	s, err := transform.Get(backend)
	if err != nil {
		return nil, "", fmt.Errorf("크기 조절 백엔드 오류: %w", err)
	}

	if resampler == "" {
		resampler = cfg.Scale.Resampler
	}
	r, err := transform.ParseResampler(resampler)
	if err != nil {
		return nil, "", fmt.Errorf("보간 방식 오류: %w", err)
	}
	return s, r, nil
}

// userError maps paste failures to the messages shown to the user.
func userError(err error) error {
	switch {
	case errors.Is(err, ir.ErrNoImageOnClipboard):
		return fmt.Errorf("클립보드에 이미지가 없습니다: %w", err)
	case errors.Is(err, ir.ErrInvalidImage):
		return fmt.Errorf("이미지를 처리할 수 없습니다: %w", err)
	case errors.Is(err, ir.ErrFileSystem):
		return fmt.Errorf("파일 저장 실패: %w", err)
	default:
		return fmt.Errorf("붙여넣기 실패: %w", err)
	}
}
