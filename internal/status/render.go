package status

import (
	"strings"
	"unicode/utf16"

	"github.com/mattn/go-runewidth"
)

// Column widths. The prefix is measured in UTF-16 code units so that
// emoji carrying a variation selector take no padding; the other columns
// in terminal cells. Longer values are not truncated.
const (
	PrefixWidth  = 2
	ServiceWidth = 30
	StateWidth   = 12
	HealthWidth  = 10
)

// Line renders a single record as a colored, column-aligned line.
func Line(r Record) string {
	deco := Classify(r.State, r.Health)

	fields := []string{
		"",
		padPrefix(deco.Prefix),
		runewidth.FillRight(r.Service, ServiceWidth),
		runewidth.FillRight(string(r.State), StateWidth),
		runewidth.FillRight(string(r.Health), HealthWidth),
	}

	return deco.Apply(strings.Join(fields, " "))
}

func padPrefix(prefix string) string {
	units := len(utf16.Encode([]rune(prefix)))
	if units >= PrefixWidth {
		return prefix
	}

	return prefix + strings.Repeat(" ", PrefixWidth-units)
}

// Render renders every record of the snapshot, one line each, in snapshot
// order.
func Render(snapshot Snapshot) string {
	lines := make([]string, 0, len(snapshot))
	for _, r := range snapshot {
		lines = append(lines, Line(r))
	}

	return strings.Join(lines, "\n")
}
