package status

import (
	"slices"

	"github.com/fatih/color"
)

// Band names the color treatment applied to a rendered line.
type Band int

const (
	// BandNone leaves the line uncolored.
	BandNone Band = iota
	// BandYellow is a yellow background.
	BandYellow
	// BandRed is a red background.
	BandRed
	// BandYellowBlack is black text on a yellow background.
	BandYellowBlack
	// BandBrightGreenBlack is black text on a bright green background.
	BandBrightGreenBlack
	// BandGreenBlack is black text on a green background.
	BandGreenBlack
)

var bandColors = map[Band]*color.Color{
	BandYellow:           color.New(color.BgYellow),
	BandRed:              color.New(color.BgRed),
	BandYellowBlack:      color.New(color.BgYellow, color.FgBlack),
	BandBrightGreenBlack: color.New(color.BgHiGreen, color.FgBlack),
	BandGreenBlack:       color.New(color.BgGreen, color.FgBlack),
}

// Apply decorates text with the band's colors. Colors follow color.NoColor,
// so the result is plain text when color output is disabled.
func (b Band) Apply(text string) string {
	c, ok := bandColors[b]
	if !ok {
		return text
	}

	return c.Sprint(text)
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandYellow:
		return "yellow"
	case BandRed:
		return "red"
	case BandYellowBlack:
		return "yellow-on-black"
	case BandBrightGreenBlack:
		return "bright-green-on-black"
	case BandGreenBlack:
		return "green-on-black"
	default:
		return "none"
	}
}

// Glyph prefixes.
const (
	GlyphStarting = "\u23E9"       // ⏩
	GlyphDown     = "\u274C"       // ❌
	GlyphUp       = "\u2705"       // ✅
	GlyphWarning  = "\u26A0\uFE0F" // ⚠️
)

// Decoration is the visual treatment of a (state, health) pair.
type Decoration struct {
	Prefix string
	Band   Band
}

// Apply decorates text with the decoration's color band.
func (d Decoration) Apply(text string) string {
	return d.Band.Apply(text)
}

// rule matches a (state, health) pair. A nil slice matches any value.
type rule struct {
	states []State
	health []Health
	deco   Decoration
}

func (r rule) matches(state State, health Health) bool {
	if r.states != nil && !slices.Contains(r.states, state) {
		return false
	}

	return r.health == nil || slices.Contains(r.health, health)
}

var inactiveStates = []State{StateNotCreated, StateDead, StateRemoving, StatePaused, StateExited}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{states: inactiveStates, health: []Health{HealthStarting}, deco: Decoration{Prefix: GlyphStarting, Band: BandYellow}},
	{states: inactiveStates, deco: Decoration{Prefix: GlyphDown, Band: BandRed}},
	{states: []State{StateRestarting, StateCreated}, deco: Decoration{Prefix: GlyphStarting, Band: BandYellowBlack}},
	{states: []State{StateRunning}, health: []Health{HealthStarting}, deco: Decoration{Prefix: GlyphStarting, Band: BandYellowBlack}},
	{states: []State{StateRunning}, health: []Health{HealthHealthy}, deco: Decoration{Prefix: GlyphUp, Band: BandBrightGreenBlack}},
	{states: []State{StateRunning}, health: []Health{HealthUnhealthy}, deco: Decoration{Prefix: GlyphWarning, Band: BandNone}},
	{states: []State{StateRunning}, deco: Decoration{Prefix: GlyphUp, Band: BandGreenBlack}},
}

// Classify returns the decoration for a service in the given state and
// health. Unknown states get no prefix and no color.
func Classify(state State, health Health) Decoration {
	for _, r := range rules {
		if r.matches(state, health) {
			return r.deco
		}
	}

	return Decoration{}
}
