package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFindMonitor(t *testing.T) {
	monitors := []Monitor{
		{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 1920, 1080)},
		{Index: 1, Name: "DP-2", Rect: image.Rect(1920, 0, 4480, 1440), Primary: true},
	}

	for _, tt := range []struct {
		selector string
		want     int
		wantErr  bool
	}{
		{"", 0, false},
		{"primary", 1, false},
		{"0", 0, false},
		{"#1", 1, false},
		{"edp", 0, false},
		{"DP-2", 1, false},
		{"5", 0, true},
		{"hdmi", 0, true},
	} {
		got, err := FindMonitor(monitors, tt.selector)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FindMonitor(%q): expected error", tt.selector)
			}
			continue
		}
		if err != nil {
			t.Errorf("FindMonitor(%q): %v", tt.selector, err)
			continue
		}
		if got.Index != tt.want {
			t.Errorf("FindMonitor(%q): got monitor %d, want %d", tt.selector, got.Index, tt.want)
		}
	}
}

func TestFindMonitorEmptyList(t *testing.T) {
	if _, err := FindMonitor(nil, "primary"); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}

func TestCaptureScreenCropsToMonitor(t *testing.T) {
	original := screenshotFn
	t.Cleanup(func() { screenshotFn = original })

	full := image.NewRGBA(image.Rect(0, 0, 20, 10))
	full.SetRGBA(15, 5, color.RGBA{R: 255, A: 255})
	screenshotFn = func() (*image.RGBA, error) { return full, nil }

	got, err := CaptureScreen("")
	if err != nil {
		t.Fatalf("CaptureScreen returned error: %v", err)
	}
	if got != full {
		t.Fatalf("expected uncropped capture without a selector")
	}
}

func TestCaptureScreenPropagatesError(t *testing.T) {
	original := screenshotFn
	t.Cleanup(func() { screenshotFn = original })

	sentinel := errors.New("no portal")
	screenshotFn = func() (*image.RGBA, error) { return nil, sentinel }

	if _, err := CaptureScreen(""); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
}

func TestCropToRect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 255, A: 255}
	src.SetRGBA(4, 4, red)

	dst, err := cropToRect(src, image.Rect(2, 2, 8, 8))
	if err != nil {
		t.Fatalf("cropToRect returned error: %v", err)
	}
	if !dst.Bounds().Eq(image.Rect(0, 0, 6, 6)) {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}
	if got := dst.RGBAAt(2, 2); got != red {
		t.Fatalf("cropped pixel: got %+v, want %+v", got, red)
	}

	if _, err := cropToRect(src, image.Rect(50, 50, 60, 60)); err == nil {
		t.Fatal("expected error for rect outside the capture")
	}
}
