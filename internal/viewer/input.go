package viewer

import (
	"math"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/panview/internal/affine"
)

// WheelNotches converts a wheel button into signed scroll notches. Scrolling
// up returns a negative count, which zooms in.
func WheelNotches(b mouse.Button) int {
	switch b {
	case mouse.ButtonWheelUp:
		return -1
	case mouse.ButtonWheelDown:
		return 1
	default:
		return 0
	}
}

// ZoomFactor converts scroll notches into a view scale factor. base must be
// greater than 1; negative notches produce a factor below 1, which magnifies.
func ZoomFactor(base float64, notches int) float64 {
	return math.Pow(base, float64(notches))
}

// WheelZoom converts a wheel event into a view scale factor. It reports false
// for non-wheel buttons and for the release half of the press/release pair
// some drivers deliver per notch, so each notch zooms exactly once.
func WheelZoom(e mouse.Event, base float64) (float64, bool) {
	n := WheelNotches(e.Button)
	if n == 0 || e.Direction == mouse.DirRelease {
		return 1, false
	}
	return ZoomFactor(base, n), true
}

// DeadZoneRadius returns the rotation dead zone radius in pixels for a
// viewport of the given size. fraction scales against half the smaller
// viewport dimension so the zone stays proportional on resize.
func DeadZoneRadius(width, height int, fraction float64) float64 {
	min := width
	if height < min {
		min = height
	}
	return float64(min) / 2 * fraction
}

// RotationAngle returns the view rotation in radians for a pointer drag from
// prev to cur around center. Rotating the view by the result moves the image
// with the drag, so the pixel under the pointer stays under it. It reports
// false when either position is inside the dead zone radius, where tiny
// pointer movements would translate into wild angle jumps.
func RotationAngle(prev, cur, center affine.Point, deadZone float64) (float64, bool) {
	v1 := prev.Sub(center)
	v2 := cur.Sub(center)
	if v1.Length() <= deadZone || v2.Length() <= deadZone {
		return 0, false
	}
	cross := v2.Normalize().Cross(v1.Normalize())
	if cross > 1 {
		cross = 1
	} else if cross < -1 {
		cross = -1
	}
	return math.Asin(cross), true
}
