// Package view maintains the mapping between a source image and a viewport
// showing a panned, zoomed, and rotated view of it.
//
// The view is described by three "corner" points in source-image pixel
// coordinates (an affine basis) together with the viewport size. The
// transform matrix is never cached: every operation that needs it derives it
// fresh from (corners, size), so there is no invalidation to forget.
package view

import (
	"image"
	"image/color"
	"math"

	"github.com/example/panview/internal/affine"
	"github.com/example/panview/internal/warp"
)

// View owns a source raster and the current viewport mapping onto it.
//
// A View is in one of two macro-states: with no raster loaded, or while the
// viewport has a zero dimension, it is idle and all mutators are no-ops;
// otherwise Pan, Zoom, Rotate, Resize and Reset adjust the mapping. A View is
// not safe for concurrent use; it is meant to be owned by a single event
// loop.
type View struct {
	src     *image.RGBA
	corners affine.Basis
	width   int
	height  int

	background color.RGBA
	interp     warp.Interpolator
}

// Option modifies a View during creation.
type Option func(*View)

// WithSize sets the initial viewport size in pixels.
func WithSize(width, height int) Option {
	return func(v *View) { v.width, v.height = width, height }
}

// WithBackground sets the colour used for viewport area the source does not
// cover.
func WithBackground(c color.RGBA) Option {
	return func(v *View) { v.background = c }
}

// WithInterpolator sets the resampling kernel used by Render.
func WithInterpolator(ip warp.Interpolator) Option {
	return func(v *View) { v.interp = ip }
}

// New creates a View with the provided options. The view starts without an
// image; call Load to supply one.
func New(opts ...Option) *View {
	v := &View{
		background: color.RGBA{A: 255},
		interp:     warp.BiLinear,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Size returns the current viewport size.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// Center returns the viewport centre in viewport pixel coordinates, the
// default anchor for zoom and rotation.
func (v *View) Center() affine.Point {
	return affine.Pt(float64(v.width)/2, float64(v.height)/2)
}

// Corners returns the current view basis in source-image pixel coordinates.
func (v *View) Corners() affine.Basis {
	return v.corners
}

// HasImage reports whether a source raster is loaded and the viewport has a
// drawable size.
func (v *View) HasImage() bool {
	return v.loaded() && v.sized()
}

func (v *View) loaded() bool {
	return v.src != nil && !v.src.Bounds().Empty()
}

func (v *View) sized() bool {
	return v.width > 0 && v.height > 0
}

// outputBasis is the canonical viewport basis: (0,0), (W,0), (0,H).
func (v *View) outputBasis() affine.Basis {
	return affine.BasisForSize(float64(v.width), float64(v.height))
}

// matrix derives the viewport-to-image transform from (corners, size).
func (v *View) matrix() (affine.Matrix, error) {
	return affine.Solve(v.outputBasis(), v.corners)
}

// Load replaces the owned source raster. An empty raster clears the view;
// otherwise the view is reset to a centred fit of the new image. The previous
// raster is released, never aliased.
func (v *View) Load(img *image.RGBA) {
	if img == nil || img.Bounds().Empty() {
		v.src = nil
		return
	}
	v.src = img
	v.Reset()
}

// Reset restores the default view: the full image fitted inside the viewport,
// centred, unrotated, never cropped. It is a no-op while no image is loaded
// or the viewport has a zero dimension.
//
// The equal-aspect case takes the image dimensions verbatim, without the
// division the letterbox and pillarbox cases need.
func (v *View) Reset() {
	if !v.loaded() || !v.sized() {
		return
	}
	imgW := v.src.Bounds().Dx()
	imgH := v.src.Bounds().Dy()

	var fittedW, fittedH float64
	var offset affine.Point
	switch {
	case imgH*v.width == imgW*v.height:
		fittedW = float64(imgW)
		fittedH = float64(imgH)
	case imgH*v.width > imgW*v.height:
		// Image is relatively taller: letterbox left and right.
		fittedH = float64(imgH)
		fittedW = float64(v.width) / float64(v.height) * fittedH
		offset = affine.Pt((fittedW-float64(imgW))/2, 0)
	default:
		// Image is relatively wider: pillarbox top and bottom.
		fittedW = float64(imgW)
		fittedH = float64(v.height) / float64(v.width) * fittedW
		offset = affine.Pt(0, (fittedH-float64(imgH))/2)
	}

	v.corners = affine.BasisForSize(fittedW, fittedH).Translate(offset.Mul(-1))
}

// Pan translates the view by delta viewport pixels. Interpreting the delta in
// output pixels keeps pan speed consistent at any zoom level.
func (v *View) Pan(delta affine.Point) {
	if !v.HasImage() {
		return
	}
	m, err := v.matrix()
	if err != nil {
		return
	}
	v.corners = m.ApplyBasis(v.outputBasis().Translate(delta))
}

// Zoom scales the view uniformly about center (in viewport pixels) so the
// image pixel under the anchor stays put. A factor above 1 reveals more of
// the image; below 1 magnifies.
func (v *View) Zoom(factor float64, center affine.Point) {
	v.ZoomAxes(factor, factor, center)
}

// ZoomAxes scales the view by independent per-axis factors about center.
func (v *View) ZoomAxes(fx, fy float64, center affine.Point) {
	if !v.HasImage() {
		return
	}
	m, err := v.matrix()
	if err != nil {
		return
	}
	b := v.outputBasis()
	for i, p := range b {
		b[i] = affine.Pt(
			fx*p.X-(fx*center.X-center.X),
			fy*p.Y-(fy*center.Y-center.Y),
		)
	}
	v.corners = m.ApplyBasis(b)
}

// Rotate turns the view by angle radians about center (in viewport pixels).
// The anchor is resolved through the current matrix to a fixed image-space
// point first, so the pixel under it stays visually fixed regardless of any
// prior pan, zoom, or rotation.
func (v *View) Rotate(angle float64, center affine.Point) {
	if !v.HasImage() {
		return
	}
	m, err := v.matrix()
	if err != nil {
		return
	}
	anchor := m.Apply(center)
	sin, cos := math.Sincos(angle)
	for i, p := range v.corners {
		d := p.Sub(anchor)
		v.corners[i] = affine.Pt(cos*d.X-sin*d.Y, sin*d.X+cos*d.Y).Add(anchor)
	}
}

// Resize sets the viewport size. When both the old and the new size are
// drawable, the view is first zoomed by the per-axis size ratio so the
// visual magnification is preserved instead of the content being re-anchored.
// The stored size is always updated, even through a degenerate size: the
// corners are left untouched while either size is degenerate, so a later
// restore to the old size shows the view unchanged.
func (v *View) Resize(width, height int) {
	if v.loaded() && v.sized() && width > 0 && height > 0 {
		v.ZoomAxes(
			float64(width)/float64(v.width),
			float64(height)/float64(v.height),
			v.Center(),
		)
	}
	v.width, v.height = width, height
}

// Render resamples the source through the inverse view transform into a
// fresh raster of viewport size, filling uncovered area with the background
// colour. While the view is idle, or momentarily degenerate (collinear
// corners, singular matrix), it returns a zero-size raster instead of an
// error: the caller's event loop keeps running and the next valid operation
// repairs the view.
func (v *View) Render() *image.RGBA {
	if !v.HasImage() {
		return image.NewRGBA(image.Rectangle{})
	}
	m, err := v.matrix()
	if err != nil {
		return image.NewRGBA(image.Rectangle{})
	}
	inv, err := m.Invert()
	if err != nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return warp.Warp(v.src, inv, v.width, v.height, v.background, v.interp)
}
