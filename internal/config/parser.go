package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader. Unknown keys are ignored so
// configurations written by newer versions still load.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch currentSection {
		case "":
			err = setRootField(cfg, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			return nil, err
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "scroll_factor":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid scroll_factor %q: %w", value, err)
		}
		if f <= 1 {
			return fmt.Errorf("scroll_factor must be greater than 1, got %g", f)
		}
		cfg.ScrollFactor = f
	case "centered_zoom":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid centered_zoom %q: %w", value, err)
		}
		cfg.CenteredZoom = b
	case "centered_rotation":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid centered_rotation %q: %w", value, err)
		}
		cfg.CenteredRotation = b
	case "rotate_dead_zone":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid rotate_dead_zone %q: %w", value, err)
		}
		if f <= 0 || f >= 1 {
			return fmt.Errorf("rotate_dead_zone must be between 0 and 1 exclusive, got %g", f)
		}
		cfg.RotateDeadZone = f
	case "background":
		c, err := parseHexColor(value)
		if err != nil {
			return fmt.Errorf("invalid background %q: %w", value, err)
		}
		cfg.Background = c
	case "interpolation":
		switch value {
		case "nearest", "approx-bilinear", "bilinear", "catmull-rom":
			cfg.Interpolation = value
		default:
			return fmt.Errorf("unknown interpolation %q", value)
		}
	case "save_dir":
		cfg.SaveDir = value
	case "pdf_dpi":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid pdf_dpi %q: %w", value, err)
		}
		if f <= 0 {
			return fmt.Errorf("pdf_dpi must be positive, got %g", f)
		}
		cfg.PDFDPI = f
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid notify.%s %q: %w", key, value, err)
	}
	switch key {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	var c color.RGBA
	c.A = 255
	switch len(s) {
	case 8:
		a, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		c.A = uint8(a)
		fallthrough
	case 6:
		r, err := strconv.ParseUint(s[0:2], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		g, err := strconv.ParseUint(s[2:4], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		b, err := strconv.ParseUint(s[4:6], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		c.R, c.G, c.B = uint8(r), uint8(g), uint8(b)
	default:
		return color.RGBA{}, fmt.Errorf("expected #RRGGBB or #RRGGBBAA")
	}
	return c, nil
}
