package main

import (
	"flag"
	"fmt"
	"strings"
)

// HelpData is implemented by the root command and every subcommand so usage
// errors can render themselves.
type HelpData interface {
	Program() string
	FlagSet() *flag.FlagSet
	Synopsis() string
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: %s %s\n", e.of.Program(), e.of.Synopsis())
	if fs := e.of.FlagSet(); fs != nil {
		var flags []string
		fs.VisitAll(func(f *flag.Flag) {
			line := fmt.Sprintf("  -%s", f.Name)
			if f.DefValue != "" && f.DefValue != "false" {
				line += fmt.Sprintf(" (default %s)", f.DefValue)
			}
			flags = append(flags, line+"\n        "+f.Usage)
		})
		if len(flags) > 0 {
			sb.WriteString("\nFlags:\n")
			sb.WriteString(strings.Join(flags, "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Print((&UsageError{of: h}).Error())
	}
}

func (r *root) Synopsis() string {
	return "[flags] <view|render|snapshot|config|version> [args]"
}

func (v *viewCmd) Synopsis() string {
	return "[-file path | -pdf path [-page n] | -from-clipboard | -capture [-display sel]] [flags]"
}

func (c *renderCmd) Synopsis() string {
	return "[-file path | -pdf path [-page n]] [-size WxH] [-ops operations] [-output path | -stdout]"
}

func (s *snapshotCmd) Synopsis() string {
	return "[-display sel] [-output path | -stdout | -to-clipboard]"
}

func (c *configCmd) Synopsis() string {
	return "<print|save>"
}

func (v *versionCmd) Synopsis() string {
	return ""
}
