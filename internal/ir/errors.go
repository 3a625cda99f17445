package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImageOnClipboard is returned when the clipboard holds no image.
	ErrNoImageOnClipboard = errors.New("clipboard does not contain any image")

	// ErrUserCancelled is returned when the settings dialog is dismissed.
	ErrUserCancelled = errors.New("paste cancelled")

	// ErrInvalidImage is returned for zero-dimension or undecodable images.
	ErrInvalidImage = errors.New("invalid image")

	// ErrFileSystem is matched by every FileSystemError.
	ErrFileSystem = errors.New("file system error")
)

// FileSystemError wraps a failed directory creation or file write.
type FileSystemError struct {
	Op   string // mkdir, write, stat
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFileSystem.
func (e *FileSystemError) Is(target error) bool {
	return target == ErrFileSystem
}
