// Package editor inserts Markdown image references into documents.
package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roboco-io/img2md/internal/ir"
)

// Inserter inserts text at the caret as a single edit.
type Inserter interface {
	Insert(ctx context.Context, text string) error
}

// FileLink returns the Markdown reference to an image file.
func FileLink(name, relPath string) string {
	return "![" + name + "](" + relPath + ")"
}

// InlineLink returns the Markdown reference embedding a base64 PNG.
func InlineLink(name, payload string) string {
	return "![" + name + "](data:image/*;base64," + payload + ")"
}

// Link returns the Markdown reference for a planned insertion.
func Link(res *ir.InsertionResult) string {
	if res.IsInline() {
		return InlineLink(res.Name, res.Payload)
	}
	return FileLink(res.Name, res.RelativePath)
}

// Caret is a 1-based line and column (in runes). The zero value means end of document.
type Caret struct {
	Line int
	Col  int
}

// IsEnd returns true if the caret points at the end of the document.
func (c Caret) IsEnd() bool {
	return c.Line == 0
}

// String returns the line:col form of the caret.
func (c Caret) String() string {
	if c.IsEnd() {
		return "end"
	}
	return fmt.Sprintf("%d:%d", c.Line, c.Col)
}

// ParseCaret parses "line:col", "line", or "end".
func ParseCaret(s string) (Caret, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "end" {
		return Caret{}, nil
	}

	lineStr, colStr, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return Caret{}, fmt.Errorf("invalid caret line: %q", s)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return Caret{}, fmt.Errorf("invalid caret column: %q", s)
		}
	}
	return Caret{Line: line, Col: col}, nil
}

// Offset returns the byte offset of the caret within content.
// Columns past the end of a line clamp to the line end; lines past the end clamp to the document end.
func (c Caret) Offset(content []byte) int {
	if c.IsEnd() {
		return len(content)
	}

	off := 0
	for line := 1; line < c.Line; line++ {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content)
		}
		off += i + 1
	}

	for col := 1; col < c.Col && off < len(content) && content[off] != '\n'; col++ {
		_, size := utf8.DecodeRune(content[off:])
		off += size
	}
	return off
}

// FileCaret inserts text into a document file at a caret position.
type FileCaret struct {
	Path  string
	Caret Caret
}

// Insert writes the document with text spliced in at the caret.
// The new content replaces the file through a rename so the edit is atomic.
func (f FileCaret) Insert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(f.Path)
	if err != nil && !os.IsNotExist(err) {
		return &ir.FileSystemError{Op: "read", Path: f.Path, Err: err}
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}

	off := f.Caret.Offset(content)
	out := make([]byte, 0, len(content)+len(text))
	out = append(out, content[:off]...)
	out = append(out, text...)
	out = append(out, content[off:]...)

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return &ir.FileSystemError{Op: "write", Path: f.Path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return &ir.FileSystemError{Op: "write", Path: f.Path, Err: err}
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return &ir.FileSystemError{Op: "write", Path: f.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ir.FileSystemError{Op: "write", Path: f.Path, Err: err}
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return &ir.FileSystemError{Op: "write", Path: f.Path, Err: err}
	}
	return nil
}

// Writer writes the inserted text to an io.Writer, followed by a newline.
type Writer struct {
	W io.Writer
}

func (w Writer) Insert(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}
