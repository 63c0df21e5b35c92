package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/panview/internal/affine"
	"github.com/example/panview/internal/view"
	"github.com/example/panview/internal/warp"
)

type renderCmd struct {
	file   string
	pdf    string
	page   int
	size   string
	ops    string
	output string
	stdout bool
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to render")
	fs.StringVar(&c.pdf, "pdf", "", "PDF file to render")
	fs.IntVar(&c.page, "page", 1, "PDF page to render, 1-based")
	fs.StringVar(&c.size, "size", "800x600", "viewport size as WxH")
	fs.StringVar(&c.ops, "ops", "", "semicolon-separated view operations, e.g. \"zoom=0.5@400,300;rotate=30;pan=10,20\"")
	fs.StringVar(&c.output, "output", "view.png", "write the rendered view to this file path")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && c.pdf == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	width, height, err := parseSize(c.size)
	if err != nil {
		return err
	}
	ops, err := parseOps(c.ops)
	if err != nil {
		return err
	}
	img, err := loadInput(c.file, c.pdf, c.page, c.root.config.PDFDPI)
	if err != nil {
		return err
	}

	interp, err := warp.InterpolatorByName(c.root.config.Interpolation)
	if err != nil {
		return err
	}
	v := view.New(
		view.WithSize(width, height),
		view.WithBackground(c.root.config.Background),
		view.WithInterpolator(interp),
	)
	v.Load(img)
	for _, op := range ops {
		op(v)
	}

	out := v.Render()
	if out.Bounds().Empty() {
		return fmt.Errorf("view is empty, nothing to render")
	}

	var w io.Writer
	if c.stdout {
		w = os.Stdout
	} else {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", c.output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", c.output, cerr)
			}
		}()
		w = f
	}
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("write PNG: %w", err)
	}
	if !c.stdout {
		saved := c.output
		if abs, err := filepath.Abs(c.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		if c.root != nil {
			c.root.notifier.Save(saved)
		}
	}
	return nil
}

// viewOp is a single parsed view operation, applied in order.
type viewOp func(*view.View)

// parseOps parses the -ops mini language: operations separated by semicolons,
// each "name" or "name=args". Angles are given in degrees, anchors as "@x,y"
// suffixes defaulting to the viewport centre.
func parseOps(s string) ([]viewOp, error) {
	var ops []viewOp
	for _, raw := range strings.Split(s, ";") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		name, args := item, ""
		if idx := strings.Index(item, "="); idx >= 0 {
			name = strings.TrimSpace(item[:idx])
			args = strings.TrimSpace(item[idx+1:])
		}
		op, err := parseOp(name, args)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseOp(name, args string) (viewOp, error) {
	switch name {
	case "reset":
		if args != "" {
			return nil, fmt.Errorf("reset takes no arguments")
		}
		return func(v *view.View) { v.Reset() }, nil
	case "pan":
		delta, err := parsePoint(args)
		if err != nil {
			return nil, fmt.Errorf("invalid pan %q: %w", args, err)
		}
		return func(v *view.View) { v.Pan(delta) }, nil
	case "zoom":
		val, anchor, err := splitAnchor(args)
		if err != nil {
			return nil, fmt.Errorf("invalid zoom %q: %w", args, err)
		}
		factor, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid zoom %q: %w", args, err)
		}
		if factor <= 0 {
			return nil, fmt.Errorf("zoom factor must be positive, got %g", factor)
		}
		return func(v *view.View) { v.Zoom(factor, anchorOr(v, anchor)) }, nil
	case "rotate":
		val, anchor, err := splitAnchor(args)
		if err != nil {
			return nil, fmt.Errorf("invalid rotate %q: %w", args, err)
		}
		degrees, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rotate %q: %w", args, err)
		}
		radians := degrees * math.Pi / 180
		return func(v *view.View) { v.Rotate(radians, anchorOr(v, anchor)) }, nil
	case "resize":
		width, height, err := parseSize(args)
		if err != nil {
			return nil, fmt.Errorf("invalid resize %q: %w", args, err)
		}
		return func(v *view.View) { v.Resize(width, height) }, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", name)
	}
}

// splitAnchor splits "value@x,y" into the value and an optional anchor.
func splitAnchor(args string) (string, *affine.Point, error) {
	idx := strings.Index(args, "@")
	if idx < 0 {
		return args, nil, nil
	}
	anchor, err := parsePoint(args[idx+1:])
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(args[:idx]), &anchor, nil
}

func anchorOr(v *view.View, anchor *affine.Point) affine.Point {
	if anchor != nil {
		return *anchor
	}
	return v.Center()
}

func parsePoint(s string) (affine.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return affine.Point{}, fmt.Errorf("expected x,y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return affine.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return affine.Point{}, err
	}
	return affine.Pt(x, y), nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected WxH, got %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return width, height, nil
}
