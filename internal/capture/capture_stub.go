//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func takeScreenshot() (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture is not supported on this platform")
}

func listMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor enumeration is not supported on this platform")
}
