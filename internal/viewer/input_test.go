package viewer

import (
	"image"
	"math"
	"testing"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/panview/internal/affine"
	"github.com/example/panview/internal/view"
)

func TestWheelNotches(t *testing.T) {
	if got := WheelNotches(mouse.ButtonWheelUp); got != -1 {
		t.Errorf("wheel up: got %d, want -1", got)
	}
	if got := WheelNotches(mouse.ButtonWheelDown); got != 1 {
		t.Errorf("wheel down: got %d, want 1", got)
	}
	if got := WheelNotches(mouse.ButtonLeft); got != 0 {
		t.Errorf("left button: got %d, want 0", got)
	}
}

func TestZoomFactor(t *testing.T) {
	if got := ZoomFactor(1.1, 0); got != 1 {
		t.Errorf("zero notches: got %g, want 1", got)
	}
	if got := ZoomFactor(1.1, 2); math.Abs(got-1.21) > 1e-12 {
		t.Errorf("two notches out: got %g, want 1.21", got)
	}
	in := ZoomFactor(1.1, -1)
	if math.Abs(in*1.1-1) > 1e-12 {
		t.Errorf("one notch in: got %g, want 1/1.1", in)
	}
}

func TestWheelZoomPressReleasePair(t *testing.T) {
	press := mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirPress}
	factor, ok := WheelZoom(press, 1.1)
	if !ok {
		t.Fatal("expected the press half of a notch to zoom")
	}
	if math.Abs(factor*1.1-1) > 1e-12 {
		t.Errorf("got %g, want 1/1.1", factor)
	}
	release := mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirRelease}
	if _, ok := WheelZoom(release, 1.1); ok {
		t.Error("expected the release half of a notch to be ignored")
	}
	if _, ok := WheelZoom(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}, 1.1); ok {
		t.Error("expected non-wheel buttons to be ignored")
	}
}

func TestDeadZoneRadius(t *testing.T) {
	if got := DeadZoneRadius(800, 600, 0.1); got != 30 {
		t.Errorf("got %g, want 30", got)
	}
	if got := DeadZoneRadius(600, 800, 0.1); got != 30 {
		t.Errorf("transposed viewport: got %g, want 30", got)
	}
}

func TestRotationAngleQuarterTurn(t *testing.T) {
	center := affine.Pt(100, 100)
	prev := affine.Pt(200, 100)
	cur := affine.Pt(100, 200)

	// Sweeping 90 degrees saturates asin at pi/2; the view turns the
	// opposite way so the image follows the drag.
	angle, ok := RotationAngle(prev, cur, center, 10)
	if !ok {
		t.Fatal("expected rotation outside the dead zone")
	}
	if math.Abs(angle+math.Pi/2) > 1e-9 {
		t.Errorf("got %g, want %g", angle, -math.Pi/2)
	}
}

func TestRotationAngleSmallStep(t *testing.T) {
	center := affine.Pt(0, 0)
	prev := affine.Pt(100, 0)
	theta := 0.05
	cur := affine.Pt(100*math.Cos(theta), 100*math.Sin(theta))

	angle, ok := RotationAngle(prev, cur, center, 10)
	if !ok {
		t.Fatal("expected rotation outside the dead zone")
	}
	if math.Abs(angle+theta) > 1e-9 {
		t.Errorf("got %g, want %g", angle, -theta)
	}
}

func TestRotationAngleOppositeDirection(t *testing.T) {
	center := affine.Pt(0, 0)
	prev := affine.Pt(100, 0)
	cur := affine.Pt(100*math.Cos(0.2), -100*math.Sin(0.2))

	angle, ok := RotationAngle(prev, cur, center, 10)
	if !ok {
		t.Fatal("expected rotation outside the dead zone")
	}
	if math.Abs(angle-0.2) > 1e-9 {
		t.Errorf("got %g, want %g", angle, 0.2)
	}
}

func TestRotationDragKeepsPixelUnderPointer(t *testing.T) {
	center := affine.Pt(400, 300)
	prev := affine.Pt(600, 300)
	theta := 0.3
	cur := affine.Pt(400+200*math.Cos(theta), 300+200*math.Sin(theta))

	v := view.New(view.WithSize(800, 600))
	v.Load(image.NewRGBA(image.Rect(0, 0, 800, 600)))

	angle, ok := RotationAngle(prev, cur, center, 30)
	if !ok {
		t.Fatal("expected rotation outside the dead zone")
	}
	v.Rotate(angle, center)

	m, err := affine.Solve(affine.BasisForSize(800, 600), v.Corners())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	// The image pixel that started under the drag is shown at the drag
	// endpoint afterwards.
	got := m.Apply(cur)
	if math.Abs(got.X-prev.X) > 1e-9 || math.Abs(got.Y-prev.Y) > 1e-9 {
		t.Errorf("image point at drag endpoint: got %+v, want %+v", got, prev)
	}
}

func TestRotationAngleDeadZone(t *testing.T) {
	center := affine.Pt(100, 100)
	if _, ok := RotationAngle(affine.Pt(103, 100), affine.Pt(100, 104), center, 10); ok {
		t.Error("expected drag inside the dead zone to be ignored")
	}
	if _, ok := RotationAngle(affine.Pt(300, 100), affine.Pt(100, 101), center, 10); ok {
		t.Error("expected drag ending inside the dead zone to be ignored")
	}
	if _, ok := RotationAngle(center, center, center, 10); ok {
		t.Error("expected zero-length vectors to be ignored")
	}
}
