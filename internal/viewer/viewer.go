// Package viewer runs the interactive window: it owns the event loop that
// turns pointer and key input into view operations and blits the rendered
// view to the screen.
package viewer

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

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
	"github.com/example/panview/internal/capture"
	"github.com/example/panview/internal/clipboard"
	"github.com/example/panview/internal/config"
	"github.com/example/panview/internal/notify"
	"github.com/example/panview/internal/view"
	"github.com/example/panview/internal/warp"
)

const (
	defaultWidth  = 960
	defaultHeight = 720
)

// captureScreenFn is swapped out in tests.
var captureScreenFn = capture.CaptureScreen

// Viewer couples a view engine with a window and the input bindings.
type Viewer struct {
	cfg      *config.Config
	view     *view.View
	img      *image.RGBA
	notifier *notify.Notifier
	output   string
	title    string

	centeredZoom     bool
	centeredRotation bool
}

// Option modifies a Viewer during creation.
type Option func(*Viewer)

// WithConfig supplies the resolved configuration.
func WithConfig(cfg *config.Config) Option { return func(v *Viewer) { v.cfg = cfg } }

// WithImage sets the initially displayed raster.
func WithImage(img *image.RGBA) Option { return func(v *Viewer) { v.img = img } }

// WithOutput sets the path the save key writes to. An empty path falls back
// to a timestamped name in the configured save directory.
func WithOutput(out string) Option { return func(v *Viewer) { v.output = out } }

// WithNotifier registers a notifier for capture, save, and copy actions.
func WithNotifier(n *notify.Notifier) Option { return func(v *Viewer) { v.notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(v *Viewer) { v.title = title } }

// New creates a Viewer with the provided options.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		cfg:   config.New(),
		title: "PanView",
	}
	for _, o := range opts {
		o(v)
	}
	interp, err := warp.InterpolatorByName(v.cfg.Interpolation)
	if err != nil {
		log.Printf("interpolation: %v", err)
		interp = warp.BiLinear
	}
	v.view = view.New(
		view.WithSize(defaultWidth, defaultHeight),
		view.WithBackground(v.cfg.Background),
		view.WithInterpolator(interp),
	)
	v.view.Load(v.img)
	v.centeredZoom = v.cfg.CenteredZoom
	v.centeredRotation = v.cfg.CenteredRotation
	return v
}

// Run executes the UI loop using shiny's driver.
func (v *Viewer) Run() { driver.Main(v.main) }

func (v *Viewer) main(s screen.Screen) {
	width, height := v.view.Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: v.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	var (
		panning    bool
		panLast    affine.Point
		rotating   bool
		rotLast    affine.Point
		rotAnchor  affine.Point
		message    string
		messageEnd time.Time
	)

	showMessage := func(msg string) {
		message = msg
		messageEnd = time.Now().Add(2 * time.Second)
		w.Send(paint.Event{})
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}

		case size.Event:
			v.view.Resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})

		case paint.Event:
			width, height = v.view.Size()
			if width <= 0 || height <= 0 {
				continue
			}
			b, err := s.NewBuffer(image.Point{width, height})
			if err != nil {
				log.Printf("new buffer: %v", err)
				continue
			}
			out := v.view.Render()
			if out.Bounds().Empty() {
				draw.Draw(b.RGBA(), b.Bounds(), image.White, image.Point{}, draw.Src)
				drawCenteredText(b.RGBA(), "No image loaded. Press n to capture or v to paste.")
			} else {
				draw.Draw(b.RGBA(), b.Bounds(), out, image.Point{}, draw.Src)
			}
			if message != "" && time.Now().Before(messageEnd) {
				drawCenteredText(b.RGBA(), message)
			}
			w.Upload(image.Point{}, b, b.Bounds())
			b.Release()
			w.Publish()

		case mouse.Event:
			pos := affine.Pt(float64(e.X), float64(e.Y))
			if factor, ok := WheelZoom(e, v.cfg.ScrollFactor); ok {
				anchor := pos
				if v.centeredZoom {
					anchor = v.view.Center()
				}
				v.view.Zoom(factor, anchor)
				w.Send(paint.Event{})
				continue
			}
			switch e.Button {
			case mouse.ButtonLeft:
				switch e.Direction {
				case mouse.DirPress:
					panning = true
					panLast = pos
				case mouse.DirRelease:
					panning = false
				}
			case mouse.ButtonRight:
				switch e.Direction {
				case mouse.DirPress:
					rotating = true
					rotLast = pos
					rotAnchor = pos
					if v.centeredRotation {
						rotAnchor = v.view.Center()
					}
				case mouse.DirRelease:
					rotating = false
				}
			case mouse.ButtonNone:
				if e.Direction != mouse.DirNone {
					continue
				}
				if panning {
					// Dragging right moves the content right, so the view
					// window shifts the other way.
					v.view.Pan(panLast.Sub(pos))
					panLast = pos
					w.Send(paint.Event{})
				}
				if rotating {
					vw, vh := v.view.Size()
					radius := DeadZoneRadius(vw, vh, v.cfg.RotateDeadZone)
					if angle, ok := RotationAngle(rotLast, pos, rotAnchor, radius); ok {
						v.view.Rotate(angle, rotAnchor)
						w.Send(paint.Event{})
					}
					rotLast = pos
				}
			}

		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if e.Code == key.CodeEscape {
				return
			}
			switch e.Rune {
			case 'q', 'Q':
				return
			case 'r', 'R':
				v.view.Reset()
				w.Send(paint.Event{})
			case 'z', 'Z':
				v.centeredZoom = !v.centeredZoom
				showMessage(toggleLabel("Centered zoom", v.centeredZoom))
			case 'o', 'O':
				v.centeredRotation = !v.centeredRotation
				showMessage(toggleLabel("Centered rotation", v.centeredRotation))
			case 's', 'S':
				path, err := v.saveView()
				if err != nil {
					log.Printf("save: %v", err)
					showMessage("Save failed")
					break
				}
				showMessage(fmt.Sprintf("Saved %s", filepath.Base(path)))
				if v.notifier != nil {
					v.notifier.Save(path)
				}
			case 'c', 'C':
				out := v.view.Render()
				if out.Bounds().Empty() {
					break
				}
				if err := clipboard.WriteImage(out); err != nil {
					log.Printf("copy: %v", err)
					showMessage("Copy failed")
					break
				}
				showMessage("Copied to clipboard")
				if v.notifier != nil {
					v.notifier.Copy("view")
				}
			case 'v', 'V':
				img, err := clipboard.ReadImage()
				if err != nil {
					log.Printf("paste: %v", err)
					showMessage("Paste failed")
					break
				}
				v.view.Load(toRGBA(img))
				w.Send(paint.Event{})
			case 'n', 'N':
				img, err := captureScreenFn("")
				if err != nil {
					log.Printf("capture: %v", err)
					showMessage("Capture failed")
					break
				}
				v.view.Load(img)
				w.Send(paint.Event{})
				if v.notifier != nil {
					v.notifier.Capture("screen", img)
				}
			}
		}
	}
}

func (v *Viewer) saveView() (string, error) {
	out := v.view.Render()
	if out.Bounds().Empty() {
		return "", fmt.Errorf("nothing to save")
	}
	path := v.output
	if path == "" {
		name := fmt.Sprintf("panview-%s.png", time.Now().Format("20060102-150405"))
		path = filepath.Join(v.cfg.SaveDir, name)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func toggleLabel(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

func drawCenteredText(dst *image.RGBA, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13}
	w := d.MeasureString(msg).Ceil()
	b := dst.Bounds()
	d.Dot = fixed.P(b.Min.X+(b.Dx()-w)/2, b.Min.Y+b.Dy()/2)
	d.DrawString(msg)
}
