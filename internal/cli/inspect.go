package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/img2md/internal/clipboard"
	"github.com/roboco-io/img2md/internal/codec"
	"github.com/roboco-io/img2md/internal/ir"
	"github.com/roboco-io/img2md/internal/settings"
	"github.com/roboco-io/img2md/internal/transform"
)

var (
	inspectFrom   string
	inspectScale  int
	inspectFormat string
	inspectPretty bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "클립보드 이미지 정보 표시",
	Long: `클립보드(또는 --from 파일)의 이미지 크기와 픽셀 정보를 표시합니다.

--scale을 지정하면 크기 조절 후 예상 크기를 함께 표시합니다.
출력 형식은 텍스트 또는 JSON을 지원합니다.

예시:
  img2md inspect
  img2md inspect --scale 50
  img2md inspect --from screenshot.png --format json`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFrom, "from", "", "클립보드 대신 읽을 이미지 파일 (- 는 stdin)")
	inspectCmd.Flags().IntVar(&inspectScale, "scale", ir.NoScale, "예상 크기 계산에 사용할 비율 (%)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "출력 형식 (text, json)")
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(inspectCmd)
}

// imageInfo summarizes a clipboard image.
type imageInfo struct {
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	WhitePixels       int    `json:"white_pixels"`
	TranslucentPixels int    `json:"translucent_pixels"`
	PNGBytes          int    `json:"png_bytes"`
	Base64Bytes       int    `json:"base64_bytes"`
	ScalePercent      int    `json:"scale_percent"`
	Projected         string `json:"projected"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	src := clipboard.FromFlag(inspectFrom, cmd.InOrStdin())
	img, err := src.Image(cmd.Context())
	if err != nil {
		return userError(err)
	}

	info, err := inspectImage(img, inspectScale)
	if err != nil {
		return userError(err)
	}

	output, err := formatInfo(info, inspectFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func inspectImage(img *ir.RasterImage, scale int) (*imageInfo, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := transform.TargetSize(img.Width, img.Height, scale); err != nil {
		return nil, err
	}

	data, err := codec.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	info := &imageInfo{
		Width:        img.Width,
		Height:       img.Height,
		PNGBytes:     len(data),
		Base64Bytes:  len(codec.ToBase64(data)),
		ScalePercent: scale,
		Projected:    settings.ProjectedSize(img.Width, img.Height, scale),
	}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff && img.Pix[i+1] == 0xff && img.Pix[i+2] == 0xff {
			info.WhitePixels++
		}
		if img.Pix[i+3] != 0xff {
			info.TranslucentPixels++
		}
	}
	return info, nil
}

func formatInfo(info *imageInfo, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if inspectPretty {
			data, err = json.MarshalIndent(info, "", "  ")
		} else {
			data, err = json.Marshal(info)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		var sb strings.Builder
		fmt.Fprintf(&sb, "크기: %d x %d\n", info.Width, info.Height)
		fmt.Fprintf(&sb, "흰색 픽셀: %d\n", info.WhitePixels)
		fmt.Fprintf(&sb, "반투명 픽셀: %d\n", info.TranslucentPixels)
		fmt.Fprintf(&sb, "PNG 크기: %d bytes (base64 %d bytes)\n", info.PNGBytes, info.Base64Bytes)
		fmt.Fprintf(&sb, "예상 크기 (%d%%): %s", info.ScalePercent, info.Projected)
		return sb.String(), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}
