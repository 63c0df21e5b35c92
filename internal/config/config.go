package config

import (
	"fmt"
	"image/color"
	"strings"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config holds the application configuration. The view engine itself never
// reads or persists settings; they are resolved here and passed in by the
// caller.
type Config struct {
	// ScrollFactor is the zoom step base: one wheel notch scales the view by
	// ScrollFactor (out) or 1/ScrollFactor (in). Must be greater than 1.
	ScrollFactor float64
	// CenteredZoom anchors wheel zoom at the viewport centre instead of the
	// pointer position.
	CenteredZoom bool
	// CenteredRotation anchors drag rotation at the viewport centre instead
	// of the press position.
	CenteredRotation bool
	// RotateDeadZone is the fraction of min(viewport_w, viewport_h)/2 inside
	// which rotation drags are ignored. Must be between 0 and 1 exclusive.
	RotateDeadZone float64
	// Background fills viewport area the image does not cover.
	Background color.RGBA
	// Interpolation names the resampling kernel: nearest, approx-bilinear,
	// bilinear, or catmull-rom.
	Interpolation string
	// SaveDir receives saved views; empty means the working directory.
	SaveDir string
	// PDFDPI is the rasterisation resolution for PDF pages.
	PDFDPI float64
	Notify Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		ScrollFactor:     1.10,
		CenteredZoom:     true,
		CenteredRotation: true,
		RotateDeadZone:   0.05,
		Background:       color.RGBA{A: 255},
		Interpolation:    "bilinear",
		PDFDPI:           300,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
// The output parses back to an equal configuration.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "scroll_factor = %g\n", c.ScrollFactor)
	fmt.Fprintf(&sb, "centered_zoom = %v\n", c.CenteredZoom)
	fmt.Fprintf(&sb, "centered_rotation = %v\n", c.CenteredRotation)
	fmt.Fprintf(&sb, "rotate_dead_zone = %g\n", c.RotateDeadZone)
	fmt.Fprintf(&sb, "background = %s\n", toHex(c.Background))
	fmt.Fprintf(&sb, "interpolation = %s\n", c.Interpolation)
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "pdf_dpi = %g\n", c.PDFDPI)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
