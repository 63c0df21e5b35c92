// Package pdfpage rasterises single PDF pages so they can be viewed like any
// other image.
package pdfpage

import (
	"fmt"
	"image"
	"image/draw"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/converter"
	"seehuhn.de/go/pdf/pagetree"
)

// RenderPage rasterises the given 1-based page of the PDF file at the
// requested resolution.
func RenderPage(path string, page int, dpi float64) (*image.RGBA, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %g", dpi)
	}
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("page count of %s: %w", path, err)
	}
	if page < 1 || page > numPages {
		return nil, fmt.Errorf("page %d out of range, %s has %d pages", page, path, numPages)
	}

	img, err := converter.NewConverter(r).RenderPageToImage(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", page, path, err)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return rgba, nil
}
