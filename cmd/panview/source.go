package main

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/panview/internal/pdfpage"
)

// loadImageFile decodes a raster image file into RGBA.
func loadImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	img, _, err := image.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return toRGBA(img), nil
}

// loadInput resolves the -file / -pdf source flags into a raster.
func loadInput(file, pdfPath string, page int, dpi float64) (*image.RGBA, error) {
	switch {
	case file != "" && pdfPath != "":
		return nil, fmt.Errorf("-file and -pdf are mutually exclusive")
	case file != "":
		return loadImageFile(file)
	case pdfPath != "":
		return pdfpage.RenderPage(pdfPath, page, dpi)
	default:
		return nil, nil
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
