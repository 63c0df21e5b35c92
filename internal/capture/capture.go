// Package capture grabs the desktop so a screenshot can be loaded straight
// into the viewer.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

// screenshotFn is swapped out in tests.
var screenshotFn = takeScreenshot

var errNoMonitors = errors.New("no monitors available")

// Monitor describes an individual monitor in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// CaptureScreen captures the desktop. When a display selector is provided the
// result is cropped to the matching monitor.
func CaptureScreen(display string) (*image.RGBA, error) {
	img, err := screenshotFn()
	if err != nil {
		return nil, err
	}
	if display == "" {
		return img, nil
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, err
	}
	monitor, err := FindMonitor(monitors, display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]Monitor, error) {
	return listMonitors()
}

// FindMonitor resolves a monitor selector against the provided list. The
// selector may be "primary", an index such as "0" or "#1", or a substring of
// the monitor name.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	if selector == "" {
		return monitors[0], nil
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if strings.HasPrefix(lower, "#") {
		lower = lower[1:]
	}
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

// takeScreenshot and listMonitors are implemented in platform-specific files.
