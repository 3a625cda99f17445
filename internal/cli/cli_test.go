package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roboco-io/img2md/internal/codec"
	"github.com/roboco-io/img2md/internal/config"
	"github.com/roboco-io/img2md/internal/ir"
	"github.com/roboco-io/img2md/internal/transform"
)

func TestSetVersion(t *testing.T) {
	oldVersion := version
	defer func() { version = oldVersion }()

	SetVersion("1.2.3")
	if version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got '%s'", version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "img2md" {
		t.Errorf("expected Use 'img2md', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("expected persistent flag 'config' to exist")
	}
}

func TestVersionCommand(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("expected Use 'version', got '%s'", versionCmd.Use)
	}

	if versionCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
}

func TestPasteCommandFlags(t *testing.T) {
	if pasteCmd.Use != "paste <document.md>" {
		t.Errorf("expected Use 'paste <document.md>', got '%s'", pasteCmd.Use)
	}

	flags := []string{
		"from", "name", "dir", "white-transparent", "round-corners", "radius", "scale",
		"inline", "at", "stdout", "interactive", "backend", "resampler", "no-vcs", "verbose", "quiet",
	}
	for _, flag := range flags {
		if pasteCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func TestInspectCommandFlags(t *testing.T) {
	if inspectCmd.Use != "inspect" {
		t.Errorf("expected Use 'inspect', got '%s'", inspectCmd.Use)
	}

	flags := []string{"from", "scale", "format", "pretty"}
	for _, flag := range flags {
		if inspectCmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag '%s' to exist", flag)
		}
	}
}

func subcommandNames(cmd *cobra.Command) map[string]bool {
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	return names
}

func TestConfigCommand(t *testing.T) {
	if configCmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", configCmd.Use)
	}

	names := subcommandNames(configCmd)
	for _, name := range []string{"show", "init", "set", "path"} {
		if !names[name] {
			t.Errorf("expected subcommand '%s' to exist", name)
		}
	}
}

func TestPrefsCommand(t *testing.T) {
	if prefsCmd.Use != "prefs" {
		t.Errorf("expected Use 'prefs', got '%s'", prefsCmd.Use)
	}

	names := subcommandNames(prefsCmd)
	for _, name := range []string{"show", "clear"} {
		if !names[name] {
			t.Errorf("expected subcommand '%s' to exist", name)
		}
	}
}

func TestBackendsCommand(t *testing.T) {
	var buf bytes.Buffer
	backendsCmd.SetOut(&buf)
	defer backendsCmd.SetOut(nil)

	runBackends(backendsCmd, nil)

	out := buf.String()
	for _, name := range []string{"xdraw", "nfnt", "gift", "lanczos", "github.com/nfnt/resize"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected backends output to contain %q, got:\n%s", name, out)
		}
	}
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(*config.Config) bool
	}{
		{"defaults.directory_pattern", "assets/{document_name}", false, func(c *config.Config) bool {
			return c.Defaults.DirectoryPattern == "assets/{document_name}"
		}},
		{"defaults.directory_pattern", "", true, nil},
		{"defaults.scale_percent", "50", false, func(c *config.Config) bool { return c.Defaults.ScalePercent == 50 }},
		{"defaults.scale_percent", "0", true, nil},
		{"defaults.scale_percent", "half", true, nil},
		{"defaults.corner_radius", "8", false, func(c *config.Config) bool { return c.Defaults.CornerRadius == 8 }},
		{"defaults.inline", "true", false, func(c *config.Config) bool { return c.Defaults.Inline }},
		{"defaults.round_corners", "maybe", true, nil},
		{"scale.backend", "gift", false, func(c *config.Config) bool { return c.Scale.Backend == "gift" }},
		{"vcs.enabled", "false", false, func(c *config.Config) bool { return !c.VCS.Enabled }},
		{"log.format", "json", false, func(c *config.Config) bool { return c.Log.Format == "json" }},
		{"unknown.key", "x", true, nil},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := setConfigValue(cfg, tc.key, tc.value)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(cfg) {
				t.Errorf("value not applied: %+v", cfg)
			}
		})
	}
}

func TestSetConfigValue_EnumCheckedByValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := setConfigValue(cfg, "scale.backend", "magick"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject unknown backend")
	}
}

func TestUserError(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{ir.ErrNoImageOnClipboard, "클립보드에 이미지가 없습니다"},
		{ir.ErrInvalidImage, "이미지를 처리할 수 없습니다"},
		{&ir.FileSystemError{Op: "write", Path: "x.png", Err: os.ErrPermission}, "파일 저장 실패"},
		{errors.New("boom"), "붙여넣기 실패"},
	}

	for _, tc := range tests {
		err := userError(tc.err)
		if !strings.Contains(err.Error(), tc.contains) {
			t.Errorf("userError(%v) = %q, want it to contain %q", tc.err, err, tc.contains)
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("expected userError to wrap %v", tc.err)
		}
	}
}

func TestPasteOverrides(t *testing.T) {
	fs := pflag.NewFlagSet("paste", pflag.ContinueOnError)
	fs.StringVar(&pasteName, "name", "", "")
	fs.StringVar(&pasteDir, "dir", "", "")
	fs.BoolVar(&pasteWhite, "white-transparent", false, "")
	fs.BoolVar(&pasteRound, "round-corners", false, "")
	fs.IntVar(&pasteRadius, "radius", ir.DefaultCornerRadius, "")
	fs.IntVar(&pasteScale, "scale", ir.NoScale, "")
	fs.BoolVar(&pasteInline, "inline", false, "")

	if err := fs.Parse([]string{"--name", "", "--scale", "40", "--white-transparent=false"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	o := pasteOverrides(fs)
	if o.ImageName == nil || *o.ImageName != "" {
		t.Error("expected explicit blank name override")
	}
	if o.ScalePercent == nil || *o.ScalePercent != 40 {
		t.Error("expected scale override 40")
	}
	if o.WhiteAsTransparent == nil || *o.WhiteAsTransparent {
		t.Error("expected explicit false white-transparent override")
	}
	if o.RoundCorners != nil || o.Inline != nil || o.DirectoryPattern != nil || o.CornerRadius != nil {
		t.Errorf("expected unset flags to leave saved values alone, got %+v", o)
	}
}

func TestResolveScaler(t *testing.T) {
	cfg := config.DefaultConfig()

	s, r, err := resolveScaler(cfg, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "xdraw" || r != transform.Bilinear {
		t.Errorf("expected xdraw/bilinear, got %s/%s", s.Name(), r)
	}

	s, r, err = resolveScaler(cfg, "nfnt", "nearest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "nfnt" || r != transform.Nearest {
		t.Errorf("expected flags to win, got %s/%s", s.Name(), r)
	}

	if _, _, err := resolveScaler(cfg, "imagemagick", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, _, err := resolveScaler(cfg, "", "cubic"); err == nil {
		t.Error("expected error for unknown resampler")
	}
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	lc := config.LogConfig{Level: "info", Format: "json"}

	var buf bytes.Buffer
	logger := newLogger(&buf, lc, false, false)
	if logger.Enabled(ctx, slog.LevelDebug) || !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected configured info level")
	}
	logger.Info("planner: wrote image", "path", "x.png")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	if !newLogger(&buf, lc, true, false).Enabled(ctx, slog.LevelDebug) {
		t.Error("expected verbose to enable debug")
	}
	if newLogger(&buf, lc, true, true).Enabled(ctx, slog.LevelWarn) {
		t.Error("expected quiet to win over verbose")
	}
	if newLogger(&buf, config.LogConfig{}, false, false).Enabled(ctx, slog.LevelInfo) {
		t.Error("expected warn as the default level")
	}
}

func TestInspectImage(t *testing.T) {
	img := ir.NewRaster(4, 2)
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 10, A: 255})

	info, err := inspectImage(img, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Width != 4 || info.Height != 2 {
		t.Errorf("expected 4x2, got %dx%d", info.Width, info.Height)
	}
	if info.WhitePixels != 1 {
		t.Errorf("expected 1 white pixel, got %d", info.WhitePixels)
	}
	if info.TranslucentPixels != 6 {
		t.Errorf("expected 6 translucent pixels, got %d", info.TranslucentPixels)
	}
	if info.Projected != "2 x 1" {
		t.Errorf("expected projected '2 x 1', got %s", info.Projected)
	}
	if info.PNGBytes == 0 || info.Base64Bytes < info.PNGBytes {
		t.Errorf("unexpected sizes: png=%d base64=%d", info.PNGBytes, info.Base64Bytes)
	}

	if _, err := inspectImage(img, 0); !errors.Is(err, ir.ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage for zero scale, got %v", err)
	}
}

func TestFormatInfo(t *testing.T) {
	info := &imageInfo{Width: 3, Height: 2, ScalePercent: 100, Projected: "3 x 2"}

	text, err := formatInfo(info, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "크기: 3 x 2") {
		t.Errorf("unexpected text output: %s", text)
	}

	js, err := formatInfo(info, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(js), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["width"] != float64(3) {
		t.Errorf("expected width 3, got %v", decoded["width"])
	}

	if _, err := formatInfo(info, "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestPasteCommand_FromFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(doc, []byte("intro\n"), 0644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}

	img := ir.NewRaster(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	data, err := codec.EncodePNG(img)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	src := filepath.Join(dir, "clip.png")
	if err := os.WriteFile(src, data, 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	}()

	rootCmd.SetArgs([]string{
		"paste", doc,
		"--config", filepath.Join(dir, "cfg", "config.yaml"),
		"--from", src,
		"--name", "x",
		"--white-transparent",
		"--no-vcs",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("paste failed: %v\nstderr: %s", err, stderr.String())
	}

	content, _ := os.ReadFile(doc)
	if string(content) != "intro\n![x](.notes_images/x.png)" {
		t.Errorf("unexpected document content: %q", content)
	}
	if _, err := os.Stat(filepath.Join(dir, ".notes_images", "x.png")); err != nil {
		t.Errorf("expected image file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cfg", "prefs.yaml")); err != nil {
		t.Errorf("expected preferences next to the config file: %v", err)
	}
	if !strings.Contains(stderr.String(), "이미지 저장: .notes_images/x.png") {
		t.Errorf("expected progress on stderr, got %q", stderr.String())
	}
}
