package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/example/panview/internal/capture"
	"github.com/example/panview/internal/clipboard"
)

// captureScreenFn is swapped out in tests.
var captureScreenFn = capture.CaptureScreen

type snapshotCmd struct {
	output      string
	stdout      bool
	toClipboard bool
	display     string
	*root
	fs *flag.FlagSet
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.output, "output", "screenshot.png", "write the capture to this file path")
	fs.StringVar(&s.display, "display", "", "monitor selector: primary, an index, or a name")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if s.toClipboard && s.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	img, err := captureScreenFn(s.display)
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	detail := "screen"
	if s.display != "" {
		detail = fmt.Sprintf("screen %s", s.display)
	}
	if s.root != nil && s.root.notifier != nil {
		s.root.notifier.Capture(detail, img)
	}
	if s.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if s.root != nil && s.root.notifier != nil {
			s.root.notifier.Copy(detail)
		}
		return nil
	}
	var w io.Writer
	if s.stdout {
		w = os.Stdout
	} else {
		f, err := os.Create(s.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", s.output, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Printf("close %s: %v", s.output, cerr)
			}
		}()
		w = f
	}
	if err := png.Encode(w, img); err != nil {
		if s.stdout {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return fmt.Errorf("write PNG to %q: %w", s.output, err)
	}
	if s.stdout {
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
		return nil
	}
	saved := s.output
	if abs, err := filepath.Abs(s.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if s.root != nil && s.root.notifier != nil {
		s.root.notifier.Save(saved)
	}
	return nil
}
