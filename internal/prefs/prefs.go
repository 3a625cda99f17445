// Package prefs persists the options of the last paste.
package prefs

import (
	"fmt"
	"strconv"

	"github.com/roboco-io/img2md/internal/ir"
)

// Preference keys.
const (
	KeyImageName          = "PI__IMAGE_NAME"
	KeyWhiteAsTransparent = "PI__WHITE_AS_TRANSPARENT"
	KeyRoundCorners       = "PI__ROUND_CORNERS"
	KeyScalingFactor      = "PI__SCALING_FACTOR"
	KeyInlineImage        = "PI__INLINE_IMAGE"
	KeyLastDirPattern     = "PI__LAST_DIR_PATTERN"
	KeyDirPatternFor      = "PI__DIR_PATTERN_FOR_"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it was set.
	Get(key string) (string, bool, error)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns all keys (sorted).
	Keys() ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// DirPatternKey returns the per-document directory pattern key.
func DirPatternKey(docPath string) string {
	return KeyDirPatternFor + docPath
}

// GetBool returns the boolean stored under key, or false.
func GetBool(s Store, key string) (bool, error) {
	return getBoolOr(s, key, false)
}

func getBoolOr(s Store, key string, def bool) (bool, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// GetInt returns the integer stored under key, or def.
func GetInt(s Store, key string, def int) (int, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// DirPattern returns the directory pattern for docPath: the per-document
// pattern, then the last used pattern, then the built-in default.
func DirPattern(s Store, docPath string) (string, error) {
	return dirPatternOr(s, docPath, ir.DefaultDirectoryPattern)
}

func dirPatternOr(s Store, docPath, def string) (string, error) {
	for _, key := range []string{DirPatternKey(docPath), KeyLastDirPattern} {
		v, ok, err := s.Get(key)
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}
	return def, nil
}

// Load restores the last confirmed options for docPath.
func Load(s Store, docPath string) (ir.InsertOptions, error) {
	return LoadWith(s, docPath, ir.DefaultInsertOptions())
}

// LoadWith restores the last confirmed options for docPath on top of base.
// Values never saved keep the base value.
func LoadWith(s Store, docPath string, base ir.InsertOptions) (ir.InsertOptions, error) {
	opts := base
	var err error

	if opts.DirectoryPattern, err = dirPatternOr(s, docPath, base.DirectoryPattern); err != nil {
		return opts, fmt.Errorf("reading directory pattern: %w", err)
	}
	if name, ok, err := s.Get(KeyImageName); err != nil {
		return opts, fmt.Errorf("reading image name: %w", err)
	} else if ok {
		opts.ImageName = name
	}
	if opts.WhiteAsTransparent, err = getBoolOr(s, KeyWhiteAsTransparent, base.WhiteAsTransparent); err != nil {
		return opts, err
	}
	if opts.RoundCorners, err = getBoolOr(s, KeyRoundCorners, base.RoundCorners); err != nil {
		return opts, err
	}
	if opts.ScalePercent, err = GetInt(s, KeyScalingFactor, base.ScalePercent); err != nil {
		return opts, err
	}
	if opts.ScalePercent <= 0 {
		opts.ScalePercent = ir.NoScale
	}
	if opts.Inline, err = getBoolOr(s, KeyInlineImage, base.Inline); err != nil {
		return opts, err
	}
	return opts, nil
}

// Save persists confirmed options. rawName is the name as entered, which may be
// blank; it is stored as is so a blank name keeps generating random names.
func Save(s Store, docPath string, opts ir.InsertOptions, rawName string) error {
	values := []struct{ key, value string }{
		{KeyWhiteAsTransparent, strconv.FormatBool(opts.WhiteAsTransparent)},
		{KeyRoundCorners, strconv.FormatBool(opts.RoundCorners)},
		{KeyScalingFactor, strconv.Itoa(opts.ScalePercent)},
		{KeyInlineImage, strconv.FormatBool(opts.Inline)},
		{KeyImageName, rawName},
		{KeyLastDirPattern, opts.DirectoryPattern},
		{DirPatternKey(docPath), opts.DirectoryPattern},
	}
	for _, kv := range values {
		if err := s.Set(kv.key, kv.value); err != nil {
			return fmt.Errorf("saving %s: %w", kv.key, err)
		}
	}
	return nil
}
