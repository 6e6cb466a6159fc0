package spotlight

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// SplitMode selects the granularity of animatable units.
type SplitMode uint8

const (
	SplitChars      SplitMode = iota // one unit per grapheme cluster
	SplitWords                       // one unit per whitespace-separated word
	SplitLines                       // one unit per laid-out line
	SplitWordsChars                  // words, then the chars inside them
)

// ParseSplitMode parses "chars", "words", "lines", and "words, chars"
// (also accepted as "words+chars" or "words,chars").
func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "chars", "":
		return SplitChars, nil
	case "words":
		return SplitWords, nil
	case "lines":
		return SplitLines, nil
	case "words,chars", "words+chars":
		return SplitWordsChars, nil
	}
	return SplitChars, fmt.Errorf("spotlight: unknown split mode %q", s)
}

// String returns the mode's config name.
func (m SplitMode) String() string {
	switch m {
	case SplitWords:
		return "words"
	case SplitLines:
		return "lines"
	case SplitWordsChars:
		return "words, chars"
	default:
		return "chars"
	}
}

// UnitKind tells what kind of fragment a Unit holds.
type UnitKind uint8

const (
	UnitChar UnitKind = iota
	UnitWord
	UnitLine
)

// Style is the animatable state of a unit: opacity plus an offset from the
// unit's layout position.
type Style struct {
	Opacity float64 `yaml:"opacity"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// Unit is one animatable fragment of a split text block. Units carry no
// identity beyond Index, their position in split order.
type Unit struct {
	Index int
	Kind  UnitKind
	Text  string
	// Home is the fragment's position in the unsplit layout, relative to
	// the node's parent (the text node, or the enclosing word for chars in
	// SplitWordsChars mode).
	Home Vec2
	Node *Node
	// WillChange is a transient hint set while the unit is being animated.
	WillChange bool

	style Style
}

// Style returns the unit's current style.
func (u *Unit) Style() Style {
	return u.style
}

// SetStyle writes s to the unit's node. Units whose node was disposed by a
// revert are left alone.
func (u *Unit) SetStyle(s Style) {
	u.style = s
	n := u.Node
	if n == nil || n.IsDisposed() {
		return
	}
	n.Alpha = s.Opacity
	n.X = u.Home.X + s.X
	n.Y = u.Home.Y + s.Y
	n.MarkDirty()
}

// ClearHints drops transient animation hints.
func (u *Unit) ClearHints() {
	u.WillChange = false
}

// Splitter decomposes a text node into unit nodes positioned exactly where
// the unsplit layout put each fragment, and reverses that on Revert.
type Splitter struct {
	target     *Node
	mode       SplitMode
	units      []*Unit
	renderable bool
}

// Split replaces target's rendering with one child node per unit and
// returns the units in split order. Splitting an already split target
// reverts it first, so repeated calls yield equivalent units. A nil or
// disposed target, or a node without text, produces no units.
func (sp *Splitter) Split(target *Node, mode SplitMode) []*Unit {
	sp.Revert()
	if target == nil || target.IsDisposed() || target.TextBlock == nil {
		debugf("split: no mount target, skipping")
		return nil
	}
	tb := target.TextBlock
	if tb.Font == nil {
		debugf("split: %q has no font, skipping", target.Name)
		return nil
	}

	sp.target = target
	sp.mode = mode
	sp.renderable = target.Renderable

	lines := tb.layout()
	switch mode {
	case SplitLines:
		for li, l := range lines {
			if l.end > l.start {
				sp.addUnit(target, UnitLine, tb.Content[l.start:l.end], tb.offsetOf(li, l.start))
			}
		}
	case SplitWords:
		sp.splitWords(target, lines, false)
	case SplitWordsChars:
		sp.splitWords(target, lines, true)
	default:
		for li, l := range lines {
			sp.splitChars(target, li, l.start, l.end, Vec2{})
		}
	}

	target.Renderable = false
	return sp.units
}

func (sp *Splitter) splitWords(target *Node, lines []textLine, withChars bool) {
	tb := target.TextBlock
	type wordRef struct {
		unit       *Unit
		li         int
		start, end int
	}
	var words []wordRef
	for li, l := range lines {
		for _, w := range scanWords(tb.Content, l.start, l.end) {
			u := sp.addUnit(target, UnitWord, tb.Content[w[0]:w[1]], tb.offsetOf(li, w[0]))
			words = append(words, wordRef{unit: u, li: li, start: w[0], end: w[1]})
		}
	}
	if !withChars {
		return
	}
	// Words become containers and their chars draw inside them.
	for _, w := range words {
		w.unit.Node.Type = NodeTypeContainer
		w.unit.Node.TextBlock = nil
		sp.splitChars(w.unit.Node, w.li, w.start, w.end, w.unit.Home)
	}
}

// splitChars adds one unit per non-space grapheme in content[start:end] of
// line li. origin is subtracted so chars nested in a word are word-local.
func (sp *Splitter) splitChars(parent *Node, li, start, end int, origin Vec2) {
	tb := sp.target.TextBlock
	g := uniseg.NewGraphemes(tb.Content[start:end])
	for g.Next() {
		from, _ := g.Positions()
		cluster := g.Str()
		if r, _ := utf8.DecodeRuneInString(cluster); unicode.IsSpace(r) {
			continue
		}
		home := tb.offsetOf(li, start+from).Sub(origin)
		sp.addUnit(parent, UnitChar, cluster, home)
	}
}

func (sp *Splitter) addUnit(parent *Node, kind UnitKind, fragment string, home Vec2) *Unit {
	tb := sp.target.TextBlock
	n := NewText(fmt.Sprintf("%s_unit_%d", sp.target.Name, len(sp.units)), fragment, tb.Font)
	n.TextBlock.Color = tb.Color
	n.TextBlock.LineHeight = tb.LineHeight
	n.X, n.Y = home.X, home.Y
	parent.AddChild(n)

	u := &Unit{
		Index:      len(sp.units),
		Kind:       kind,
		Text:       fragment,
		Home:       home,
		Node:       n,
		WillChange: true,
		style:      Style{Opacity: 1},
	}
	sp.units = append(sp.units, u)
	return u
}

// Units returns the current units. The returned slice MUST NOT be mutated.
func (sp *Splitter) Units() []*Unit {
	return sp.units
}

// Mode returns the granularity of the current split.
func (sp *Splitter) Mode() SplitMode {
	return sp.mode
}

// Revert disposes every unit node and restores the target's own text
// rendering. It returns the original text. Reverting an unsplit or already
// detached target is a no-op.
func (sp *Splitter) Revert() string {
	target := sp.target
	if target == nil {
		return ""
	}
	for _, u := range sp.units {
		// Nested chars go with their word.
		if u.Node != nil && (u.Node.Parent == target || u.Node.Parent == nil) {
			u.Node.Dispose()
		}
		u.Node = nil
	}
	sp.units = nil
	sp.target = nil

	if target.IsDisposed() || target.TextBlock == nil {
		return ""
	}
	target.Renderable = sp.renderable
	return target.TextBlock.Content
}
