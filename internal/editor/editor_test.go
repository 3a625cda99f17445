package editor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roboco-io/img2md/internal/ir"
)

func TestLinks(t *testing.T) {
	if got := FileLink("x", ".notes_images/x.png"); got != "![x](.notes_images/x.png)" {
		t.Errorf("unexpected file link: %s", got)
	}
	if got := InlineLink("x", "QUJD"); got != "![x](data:image/*;base64,QUJD)" {
		t.Errorf("unexpected inline link: %s", got)
	}

	file := ir.NewFileReference("a", "img/a.png", "/abs/img/a.png")
	if got := Link(file); got != "![a](img/a.png)" {
		t.Errorf("unexpected link for file result: %s", got)
	}
	inline := ir.NewInlineReference("b", "Zm9v")
	if got := Link(inline); got != "![b](data:image/*;base64,Zm9v)" {
		t.Errorf("unexpected link for inline result: %s", got)
	}
}

func TestParseCaret(t *testing.T) {
	tests := []struct {
		input    string
		expected Caret
		wantErr  bool
	}{
		{"", Caret{}, false},
		{"end", Caret{}, false},
		{"3", Caret{Line: 3, Col: 1}, false},
		{"3:7", Caret{Line: 3, Col: 7}, false},
		{"0:1", Caret{}, true},
		{"2:0", Caret{}, true},
		{"a:b", Caret{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCaret(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("ParseCaret(%q) = %+v, want %+v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCaret_Offset(t *testing.T) {
	content := []byte("# 제목\nhello\n\nend")

	tests := []struct {
		name     string
		caret    Caret
		expected int
	}{
		{"end", Caret{}, len(content)},
		{"start", Caret{Line: 1, Col: 1}, 0},
		{"after multibyte", Caret{Line: 1, Col: 5}, len("# 제목")},
		{"column clamp", Caret{Line: 2, Col: 99}, len("# 제목\nhello")},
		{"line 2 col 3", Caret{Line: 2, Col: 3}, len("# 제목\nhe")},
		{"empty line", Caret{Line: 3, Col: 1}, len("# 제목\nhello\n")},
		{"line clamp", Caret{Line: 10, Col: 1}, len(content)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.caret.Offset(content); got != tc.expected {
				t.Errorf("Offset() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestFileCaret_Insert(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.md")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ins := FileCaret{Path: path, Caret: Caret{Line: 2, Col: 6}}
	if err := ins.Insert(context.Background(), "![x](x.png) "); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line one\nline ![x](x.png) two\n" {
		t.Errorf("unexpected content: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected permissions to be preserved, got %v", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestFileCaret_InsertAtEndOfNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")

	if err := (FileCaret{Path: path}).Insert(context.Background(), "![a](a.png)"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "![a](a.png)" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestFileCaret_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := (FileCaret{Path: path}).Insert(ctx, "x"); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file to be written")
	}
}

func TestWriter_Insert(t *testing.T) {
	var buf bytes.Buffer
	if err := (Writer{W: &buf}).Insert(context.Background(), "![x](x.png)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "![x](x.png)\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
