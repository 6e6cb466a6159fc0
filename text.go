package spotlight

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64 // 0 = no wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine
}

// textLine is one laid-out line. start and end are byte offsets into
// Content; trailing whitespace is excluded.
type textLine struct {
	start, end int
	x          float64 // alignment offset
	width      float64
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Invalidate forces the layout to be recomputed on next use. Call it after
// changing Font, Align, WrapWidth, or LineHeight directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Measure returns the laid-out width and height.
func (tb *TextBlock) Measure() (width, height float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes line breaks if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil {
		return tb.lines
	}

	content := tb.Content
	paraStart := 0
	for {
		nl := strings.IndexByte(content[paraStart:], '\n')
		paraEnd := len(content)
		if nl >= 0 {
			paraEnd = paraStart + nl
		}
		tb.wrapParagraph(paraStart, paraEnd)
		if nl < 0 {
			break
		}
		paraStart = paraEnd + 1
	}

	var maxW float64
	for i := range tb.lines {
		maxW = max(maxW, tb.lines[i].width)
	}
	// Align against WrapWidth when set, otherwise against the widest line.
	alignW := maxW
	if tb.WrapWidth > 0 {
		alignW = tb.WrapWidth
	}
	for i := range tb.lines {
		l := &tb.lines[i]
		switch tb.Align {
		case TextAlignCenter:
			l.x = (alignW - l.width) / 2
		case TextAlignRight:
			l.x = alignW - l.width
		}
	}
	tb.measuredW = maxW
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph greedily breaks content[start:end] into lines at whitespace.
// A single word wider than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(start, end int) {
	content := tb.Content
	lineStart, lineEnd := -1, -1
	for _, w := range scanWords(content, start, end) {
		if lineStart < 0 {
			lineStart, lineEnd = w[0], w[1]
			continue
		}
		if tb.WrapWidth > 0 {
			width, _ := tb.Font.MeasureString(content[lineStart:w[1]])
			if width > tb.WrapWidth {
				tb.appendLine(lineStart, lineEnd)
				lineStart = w[0]
			}
		}
		lineEnd = w[1]
	}
	if lineStart < 0 {
		// Blank paragraph still occupies a line.
		tb.lines = append(tb.lines, textLine{start: start, end: start})
		return
	}
	tb.appendLine(lineStart, lineEnd)
}

func (tb *TextBlock) appendLine(start, end int) {
	width, _ := tb.Font.MeasureString(tb.Content[start:end])
	tb.lines = append(tb.lines, textLine{start: start, end: end, width: width})
}

// scanWords returns [start, end) byte ranges of whitespace-separated words
// in s[from:to].
func scanWords(s string, from, to int) [][2]int {
	var words [][2]int
	wordStart := -1
	for i := from; i < to; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if wordStart >= 0 {
				words = append(words, [2]int{wordStart, i})
				wordStart = -1
			}
		} else if wordStart < 0 {
			wordStart = i
		}
		i += size
	}
	if wordStart >= 0 {
		words = append(words, [2]int{wordStart, to})
	}
	return words
}

// offsetOf returns the block-local position of the byte offset pos, which
// must lie within line li. The x coordinate is the measured width of the
// line's prefix, so it includes kerning and shaping of the unsplit text.
func (tb *TextBlock) offsetOf(li, pos int) Vec2 {
	l := tb.lines[li]
	var prefix float64
	if pos > l.start {
		prefix, _ = tb.Font.MeasureString(tb.Content[l.start:pos])
	}
	return Vec2{l.x + prefix, float64(li) * tb.lineHeight()}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("spotlight: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// drawText draws a text node's lines onto dst using the node's world
// transform and alpha. Fonts other than *TTFFont only take part in layout.
func drawText(dst *ebiten.Image, n *Node, op *text.DrawOptions) {
	tb := n.TextBlock
	f, ok := tb.Font.(*TTFFont)
	if !ok || tb.Content == "" {
		return
	}
	lines := tb.layout()
	lh := tb.lineHeight()
	a := tb.Color.A * n.Color.A * n.worldAlpha
	if a <= 0 {
		return
	}
	w := n.worldTransform
	for i, l := range lines {
		if l.end <= l.start {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Translate(l.x, float64(i)*lh)
		op.GeoM.Scale(w[0], w[3])
		op.GeoM.Translate(w[4], w[5])
		op.ColorScale.Reset()
		op.ColorScale.Scale(
			float32(tb.Color.R*n.Color.R*a),
			float32(tb.Color.G*n.Color.G*a),
			float32(tb.Color.B*n.Color.B*a),
			float32(a),
		)
		op.Blend = n.BlendMode.EbitenBlend()
		op.LineSpacing = lh
		text.Draw(dst, tb.Content[l.start:l.end], f.face, op)
	}
}
