package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/panview/internal/clipboard"
	"github.com/example/panview/internal/viewer"
)

type viewCmd struct {
	file          string
	pdf           string
	page          int
	fromClipboard bool
	capture       bool
	display       string
	output        string
	title         string
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	c := &viewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to open")
	fs.StringVar(&c.pdf, "pdf", "", "PDF file to open")
	fs.IntVar(&c.page, "page", 1, "PDF page to display, 1-based")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "open the image currently on the clipboard")
	fs.BoolVar(&c.capture, "capture", false, "capture the screen and open the result")
	fs.StringVar(&c.display, "display", "", "monitor selector for -capture: primary, an index, or a name")
	fs.StringVar(&c.output, "output", "", "file path the save key writes to")
	fs.StringVar(&c.title, "title", "", "window title")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	sources := 0
	for _, set := range []bool{c.file != "", c.pdf != "", c.fromClipboard, c.capture} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("-file, -pdf, -from-clipboard, and -capture are mutually exclusive")
	}
	return c, nil
}

func (c *viewCmd) Run() error {
	img, err := c.source()
	if err != nil {
		return err
	}

	title := c.title
	if title == "" {
		title = c.describeTitle()
	}
	v := viewer.New(
		viewer.WithConfig(c.root.config),
		viewer.WithImage(img),
		viewer.WithOutput(c.output),
		viewer.WithNotifier(c.root.notifier),
		viewer.WithTitle(title),
	)
	v.Run()
	return nil
}

func (c *viewCmd) source() (*image.RGBA, error) {
	switch {
	case c.fromClipboard:
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return toRGBA(img), nil
	case c.capture:
		img, err := captureScreenFn(c.display)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		if c.root != nil && c.root.notifier != nil {
			c.root.notifier.Capture(c.describeTitle(), img)
		}
		return img, nil
	default:
		return loadInput(c.file, c.pdf, c.page, c.root.config.PDFDPI)
	}
}

func (c *viewCmd) describeTitle() string {
	switch {
	case c.file != "":
		return fmt.Sprintf("PanView - %s", c.file)
	case c.pdf != "":
		return fmt.Sprintf("PanView - %s page %d", c.pdf, c.page)
	case c.fromClipboard:
		return "PanView - clipboard"
	case c.capture:
		return "PanView - screen"
	default:
		return "PanView"
	}
}
