package table

import (
	"fmt"

	"github.com/fontbake/fontbake/core"
)

// FaceConfig describes one font table to compile: which face at which pixel
// size, how densely to pack pixels, and which table variants to generate.
type FaceConfig struct {
	Name   string `json:"name"`   // font family, e.g. "TTHoves"
	Style  string `json:"style"`  // e.g. "Regular", "DemiBold"
	Size   int    `json:"size"`   // pixel size
	BPP    int    `json:"bpp"`    // packed bits per pixel: 1, 2, 4 or 8
	ShaveX int    `json:"shaveX"` // pixel columns to trim from the left

	// at least one variant must be enabled
	GenNormal bool `json:"genNormal"` // table with all the letters
	GenUpper  bool `json:"genUpper"`  // table with only upper-cased letters

	// opaque identifiers consumed by downstream emitters; 0 means unset
	FontIdx      int `json:"fontIdx,omitempty"`
	FontIdxUpper int `json:"fontIdxUpper,omitempty"`
}

// FullName returns the canonical "<Name>_<Style>_<Size>" identifier used in
// emitted artifact and symbol names.
func (cfg FaceConfig) FullName() string {
	return fmt.Sprintf("%s_%s_%d", cfg.Name, cfg.Style, cfg.Size)
}

// ConfigError signals an unusable face configuration, e.g. no table variant
// selected, or a missing variant identifier.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "face config: " + e.Reason
}

// ErrorCode returns core.EINVALID.
func (e *ConfigError) ErrorCode() int { return core.EINVALID }

// UserMessage repeats the reason.
func (e *ConfigError) UserMessage() string { return e.Reason }

var _ core.AppError = &ConfigError{}
