package main

import (
	"flag"
	"image"
	"image/draw"
	"log"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/panview/internal/affine"
	"github.com/example/panview/internal/view"
	"github.com/example/panview/internal/viewer"
)

// Rough single-window prototype kept runnable at the repository root. The
// full command line interface lives in cmd/panview.
func main() {
	file := flag.String("file", "", "image file to open")
	scrollFactor := flag.Float64("scroll-factor", 1.1, "zoom step per wheel notch")
	flag.Parse()

	var rgba *image.RGBA
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("open image: %v", err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			log.Fatalf("decode image: %v", err)
		}
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	driver.Main(func(s screen.Screen) {
		width, height := 960, 720
		w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "PanView"})
		if err != nil {
			log.Fatalf("new window: %v", err)
		}
		defer w.Release()

		v := view.New(view.WithSize(width, height))
		v.Load(rgba)

		var panning bool
		var last affine.Point

		for {
			e := w.NextEvent()
			switch e := e.(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
			case size.Event:
				v.Resize(e.WidthPx, e.HeightPx)
				w.Send(paint.Event{})
			case paint.Event:
				vw, vh := v.Size()
				if vw <= 0 || vh <= 0 {
					continue
				}
				b, err := s.NewBuffer(image.Point{vw, vh})
				if err != nil {
					log.Printf("new buffer: %v", err)
					continue
				}
				out := v.Render()
				if out.Bounds().Empty() {
					draw.Draw(b.RGBA(), b.Bounds(), image.White, image.Point{}, draw.Src)
					d := &font.Drawer{Dst: b.RGBA(), Src: image.Black, Face: basicfont.Face7x13}
					msg := "No image loaded"
					tw := d.MeasureString(msg).Ceil()
					d.Dot = fixed.P((vw-tw)/2, vh/2)
					d.DrawString(msg)
				} else {
					draw.Draw(b.RGBA(), b.Bounds(), out, image.Point{}, draw.Src)
				}
				w.Upload(image.Point{}, b, b.Bounds())
				b.Release()
				w.Publish()
			case mouse.Event:
				pos := affine.Pt(float64(e.X), float64(e.Y))
				if factor, ok := viewer.WheelZoom(e, *scrollFactor); ok {
					v.Zoom(factor, v.Center())
					w.Send(paint.Event{})
					continue
				}
				switch e.Button {
				case mouse.ButtonLeft:
					if e.Direction == mouse.DirPress {
						panning = true
						last = pos
					} else if e.Direction == mouse.DirRelease {
						panning = false
					}
				case mouse.ButtonNone:
					if panning && e.Direction == mouse.DirNone {
						v.Pan(last.Sub(pos))
						last = pos
						w.Send(paint.Event{})
					}
				}
			case key.Event:
				if e.Direction != key.DirPress {
					continue
				}
				switch {
				case e.Code == key.CodeEscape, e.Rune == 'q', e.Rune == 'Q':
					return
				case e.Rune == 'r', e.Rune == 'R':
					v.Reset()
					w.Send(paint.Event{})
				}
			}
		}
	})
}
