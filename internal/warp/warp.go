// Package warp resamples a source raster through an affine transform into a
// fixed-size output raster.
package warp

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/panview/internal/affine"
)

// Interpolator selects the resampling kernel used by Warp.
type Interpolator = xdraw.Interpolator

// Available interpolators, from fastest to highest quality.
var (
	NearestNeighbor Interpolator = xdraw.NearestNeighbor
	ApproxBiLinear  Interpolator = xdraw.ApproxBiLinear
	BiLinear        Interpolator = xdraw.BiLinear
	CatmullRom      Interpolator = xdraw.CatmullRom
)

// InterpolatorByName resolves a configuration string to an interpolator.
func InterpolatorByName(name string) (Interpolator, error) {
	switch name {
	case "nearest":
		return NearestNeighbor, nil
	case "approx-bilinear":
		return ApproxBiLinear, nil
	case "bilinear":
		return BiLinear, nil
	case "catmull-rom":
		return CatmullRom, nil
	}
	return nil, fmt.Errorf("unknown interpolator %q", name)
}

// Warp resamples src into a width-by-height raster. m maps source pixel
// coordinates to output pixel coordinates. Output area not covered by the
// projected source is filled with the background colour. The returned raster
// is freshly allocated and shares no storage with src.
func Warp(src *image.RGBA, m affine.Matrix, width, height int, background color.RGBA, interp Interpolator) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if src == nil || src.Bounds().Empty() {
		return dst
	}
	if interp == nil {
		interp = BiLinear
	}
	aff := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	interp.Transform(dst, aff, src, src.Bounds(), xdraw.Over, nil)
	return dst
}
