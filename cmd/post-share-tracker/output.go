package main

import (
	"strings"

	"github.com/fatih/color"
)

var colorAttrs = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"grey":    color.FgHiBlack,
}

// paint colors text with a config color name. Unknown names print plain.
func paint(name, text string) string {
	attr, ok := colorAttrs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return text
	}
	return color.New(attr).Sprint(text)
}

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	warn  = color.New(color.FgYellow).SprintfFunc()
)

// columnWidth is the width of the longest name.
func columnWidth(names []string) int {
	w := 0
	for _, n := range names {
		if len(n) > w {
			w = len(n)
		}
	}
	return w
}
