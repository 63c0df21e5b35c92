package view

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/example/panview/internal/affine"
	"github.com/example/panview/internal/warp"
)

const tolerance = 1e-9

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func newTestView(imgW, imgH, winW, winH int) *View {
	v := New(WithSize(winW, winH))
	v.Load(solidImage(imgW, imgH, color.RGBA{R: 200, A: 255}))
	return v
}

func pointsClose(t *testing.T, got, want affine.Point, context string) {
	t.Helper()
	scale := math.Max(1, math.Max(math.Abs(want.X), math.Abs(want.Y)))
	if math.Abs(got.X-want.X) > tolerance*scale || math.Abs(got.Y-want.Y) > tolerance*scale {
		t.Errorf("%s: got %+v, want %+v", context, got, want)
	}
}

func basesClose(t *testing.T, got, want affine.Basis, context string) {
	t.Helper()
	for i := range got {
		pointsClose(t, got[i], want[i], context)
	}
}

// imageAt returns the source-image point displayed at viewport pixel p.
func imageAt(t *testing.T, v *View, p affine.Point) affine.Point {
	t.Helper()
	m, err := v.matrix()
	if err != nil {
		t.Fatalf("matrix derivation failed: %v", err)
	}
	return m.Apply(p)
}

func TestResetEqualAspect(t *testing.T) {
	// Viewport 800x600, image 1600x1200: same aspect, so the corners are the
	// image rectangle itself and the view is a pure 2x downscale.
	v := newTestView(1600, 1200, 800, 600)
	basesClose(t, v.Corners(), affine.BasisForSize(1600, 1200), "corners")

	m, err := v.matrix()
	if err != nil {
		t.Fatalf("matrix derivation failed: %v", err)
	}
	pointsClose(t, m.Apply(affine.Pt(400, 300)), affine.Pt(800, 600), "centre mapping")
}

func TestResetLetterboxesTallImage(t *testing.T) {
	// Square image in a wide viewport: fitted height = 400, fitted width =
	// 800/600*400 = 533.33, horizontal offset = 66.67 each side.
	v := newTestView(400, 400, 800, 600)
	fittedW := 800.0 / 600.0 * 400.0
	off := (fittedW - 400) / 2
	want := affine.Basis{
		affine.Pt(-off, 0),
		affine.Pt(fittedW-off, 0),
		affine.Pt(-off, 400),
	}
	basesClose(t, v.Corners(), want, "letterboxed corners")
}

func TestResetPillarboxesWideImage(t *testing.T) {
	v := newTestView(800, 200, 400, 400)
	fittedH := 400.0 / 400.0 * 800.0
	off := (fittedH - 200) / 2
	want := affine.Basis{
		affine.Pt(0, -off),
		affine.Pt(800, -off),
		affine.Pt(0, fittedH-off),
	}
	basesClose(t, v.Corners(), want, "pillarboxed corners")
}

func TestPanInversePanIdentity(t *testing.T) {
	v := newTestView(1000, 700, 640, 480)
	// Disturb the view so pan is tested against a non-trivial state.
	v.Zoom(0.65, affine.Pt(100, 50))
	v.Rotate(0.4, v.Center())
	before := v.Corners()

	delta := affine.Pt(37.5, -82)
	v.Pan(delta)
	v.Pan(delta.Mul(-1))
	basesClose(t, v.Corners(), before, "corners after pan round trip")
}

func TestZoomAnchorInvariance(t *testing.T) {
	v := newTestView(1200, 900, 800, 600)
	anchor := affine.Pt(200, 150)
	before := imageAt(t, v, anchor)
	v.Zoom(1.6, anchor)
	after := imageAt(t, v, anchor)
	pointsClose(t, after, before, "image point under zoom anchor")
}

func TestZoomComposition(t *testing.T) {
	anchor := affine.Pt(321, 123)
	a := newTestView(1200, 900, 800, 600)
	a.Zoom(1.3, anchor)
	a.Zoom(0.7, anchor)

	b := newTestView(1200, 900, 800, 600)
	b.Zoom(1.3*0.7, anchor)

	basesClose(t, a.Corners(), b.Corners(), "zoom composition")
}

func TestRotationAnchorInvariance(t *testing.T) {
	v := newTestView(1000, 800, 640, 480)
	v.Pan(affine.Pt(40, -25))
	anchor := affine.Pt(500, 100)
	before := imageAt(t, v, anchor)
	v.Rotate(math.Pi/5, anchor)
	after := imageAt(t, v, anchor)
	pointsClose(t, after, before, "image point under rotation anchor")
}

func TestRotationAdditivity(t *testing.T) {
	anchor := affine.Pt(320, 240)
	a := newTestView(900, 900, 640, 480)
	a.Rotate(0.3, anchor)
	a.Rotate(0.5, anchor)

	b := newTestView(900, 900, 640, 480)
	b.Rotate(0.8, anchor)

	basesClose(t, a.Corners(), b.Corners(), "rotation additivity")
}

func TestRotateZeroIsIdentity(t *testing.T) {
	v := newTestView(640, 640, 800, 600)
	v.Zoom(0.8, affine.Pt(10, 10))
	before := v.Corners()
	v.Rotate(0, affine.Pt(700, 20))
	basesClose(t, v.Corners(), before, "corners after zero rotation")
}

func TestResetIdempotence(t *testing.T) {
	v := newTestView(1024, 768, 800, 600)
	fresh := v.Corners()

	v.Pan(affine.Pt(-120, 45))
	v.Zoom(2.5, affine.Pt(10, 580))
	v.Rotate(1.1, v.Center())
	v.Zoom(0.3, v.Center())
	v.Reset()
	basesClose(t, v.Corners(), fresh, "corners after reset")

	v.Reset()
	basesClose(t, v.Corners(), fresh, "corners after repeated reset")
}

func TestResizePreservesMagnification(t *testing.T) {
	v := newTestView(1600, 1200, 800, 600)
	v.Zoom(0.5, v.Center())
	oldCentre := imageAt(t, v, v.Center())

	v.Resize(400, 300)
	newCentre := imageAt(t, v, v.Center())
	pointsClose(t, newCentre, oldCentre, "image point at viewport centre")

	// Magnification is unchanged: one viewport pixel still covers the same
	// image distance as before the resize.
	m, err := v.matrix()
	if err != nil {
		t.Fatalf("matrix derivation failed: %v", err)
	}
	step := m.Apply(affine.Pt(1, 0)).Sub(m.Apply(affine.Pt(0, 0)))
	pointsClose(t, step, affine.Pt(1, 0), "image distance per viewport pixel")
}

func TestZeroSizeViewportIdles(t *testing.T) {
	v := newTestView(400, 400, 800, 600)
	v.Resize(0, 600)
	before := v.Corners()

	v.Pan(affine.Pt(10, 10))
	v.Zoom(2, affine.Pt(0, 0))
	v.Rotate(1, affine.Pt(0, 0))
	v.Reset()
	basesClose(t, v.Corners(), before, "corners while viewport degenerate")

	if out := v.Render(); !out.Bounds().Empty() {
		t.Fatalf("expected zero-size raster, got bounds %v", out.Bounds())
	}

	// Restoring a drawable size brings the view back without corrupting it.
	v.Resize(800, 600)
	if !v.HasImage() {
		t.Fatal("expected view to be drawable again")
	}
	if out := v.Render(); out.Bounds().Empty() {
		t.Fatal("expected non-empty raster after size restore")
	}
}

func TestLoadEmptyRasterClearsView(t *testing.T) {
	v := newTestView(100, 100, 200, 200)
	v.Load(image.NewRGBA(image.Rectangle{}))
	if v.HasImage() {
		t.Fatal("expected view without image")
	}
	if out := v.Render(); !out.Bounds().Empty() {
		t.Fatalf("expected zero-size raster, got bounds %v", out.Bounds())
	}
}

func TestMutatorsNoOpWithoutImage(t *testing.T) {
	v := New(WithSize(800, 600))
	v.Pan(affine.Pt(5, 5))
	v.Zoom(2, v.Center())
	v.Rotate(1, v.Center())
	v.Reset()
	if v.Corners() != (affine.Basis{}) {
		t.Fatalf("corners changed without an image: %+v", v.Corners())
	}
}

func TestRenderIdentityView(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	v := New(WithSize(8, 8), WithInterpolator(warp.NearestNeighbor))
	v.Load(solidImage(8, 8, red))

	out := v.Render()
	if !out.Bounds().Eq(image.Rect(0, 0, 8, 8)) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := out.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d): got %+v, want %+v", x, y, got, red)
			}
		}
	}
}

func TestRenderFillsBackgroundWhenZoomedOut(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	v := New(WithSize(16, 16), WithBackground(blue), WithInterpolator(warp.NearestNeighbor))
	v.Load(solidImage(16, 16, red))
	v.Zoom(4, v.Center())

	out := v.Render()
	if got := out.RGBAAt(8, 8); got != red {
		t.Errorf("centre pixel: got %+v, want %+v", got, red)
	}
	if got := out.RGBAAt(0, 0); got != blue {
		t.Errorf("corner pixel: got %+v, want background %+v", got, blue)
	}
}

func TestRenderReturnsIndependentBuffer(t *testing.T) {
	v := New(WithSize(4, 4), WithInterpolator(warp.NearestNeighbor))
	src := solidImage(4, 4, color.RGBA{G: 255, A: 255})
	v.Load(src)

	out := v.Render()
	out.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	if got := src.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("source raster mutated through rendered output: %+v", got)
	}
}
