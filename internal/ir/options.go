package ir

import "fmt"

const (
	// DocumentNameToken is replaced by the document base name in directory patterns.
	DocumentNameToken = "{document_name}"

	// DefaultDirectoryPattern is used when no pattern was ever saved.
	DefaultDirectoryPattern = "." + DocumentNameToken + "_images"

	// DefaultCornerRadius is the corner radius in pixels.
	DefaultCornerRadius = 20

	// NoScale is the scaling percentage that leaves the image untouched.
	NoScale = 100
)

// InsertOptions contains the presentation options confirmed for one paste.
type InsertOptions struct {
	WhiteAsTransparent bool   `json:"white_as_transparent" yaml:"white_as_transparent"`
	RoundCorners       bool   `json:"round_corners" yaml:"round_corners"`
	CornerRadius       int    `json:"corner_radius" yaml:"corner_radius"`
	ScalePercent       int    `json:"scale_percent" yaml:"scale_percent"`
	Inline             bool   `json:"inline" yaml:"inline"`
	ImageName          string `json:"image_name" yaml:"image_name"`
	DirectoryPattern   string `json:"directory_pattern" yaml:"directory_pattern"`
}

// DefaultInsertOptions returns options that leave the image untouched.
func DefaultInsertOptions() InsertOptions {
	return InsertOptions{
		CornerRadius:     DefaultCornerRadius,
		ScalePercent:     NoScale,
		DirectoryPattern: DefaultDirectoryPattern,
	}
}

// Validate checks option ranges.
func (o InsertOptions) Validate() error {
	if o.ScalePercent <= 0 {
		return fmt.Errorf("scaling factor must be positive: %d%%", o.ScalePercent)
	}
	if o.CornerRadius < 0 {
		return fmt.Errorf("corner radius must not be negative: %d", o.CornerRadius)
	}
	return nil
}

// Scales returns true if the options request resampling.
func (o InsertOptions) Scales() bool {
	return o.ScalePercent != NoScale
}
