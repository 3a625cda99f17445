// Package ir defines the in-memory representation shared by every stage of a paste.
// A paste reads a RasterImage, confirms InsertOptions, and produces an InsertionResult.
package ir

// ResultKind represents the kind of Markdown reference a paste produces.
type ResultKind string

const (
	ResultFile   ResultKind = "file"
	ResultInline ResultKind = "inline"
)

// InsertionResult is the outcome of planning a paste.
// Exactly one of RelativePath or Payload is set, depending on Kind.
type InsertionResult struct {
	Kind         ResultKind `json:"kind"`
	Name         string     `json:"name"`
	RelativePath string     `json:"relative_path,omitempty"` // forward-slash path relative to the document directory
	AbsolutePath string     `json:"absolute_path,omitempty"` // written file, used for VCS staging
	Payload      string     `json:"-"`                       // base64 PNG for inline references
	Overwritten  bool       `json:"overwritten,omitempty"`   // an existing file was replaced
}

// NewFileReference creates a result pointing at a written image file.
func NewFileReference(name, relPath, absPath string) *InsertionResult {
	return &InsertionResult{
		Kind:         ResultFile,
		Name:         name,
		RelativePath: relPath,
		AbsolutePath: absPath,
	}
}

// NewInlineReference creates a result carrying the base64 image payload.
func NewInlineReference(name, payload string) *InsertionResult {
	return &InsertionResult{
		Kind:    ResultInline,
		Name:    name,
		Payload: payload,
	}
}

// IsFile returns true if the result references a file on disk.
func (r *InsertionResult) IsFile() bool {
	return r.Kind == ResultFile
}

// IsInline returns true if the result embeds the image payload.
func (r *InsertionResult) IsInline() bool {
	return r.Kind == ResultInline
}
