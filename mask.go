package spotlight

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cutout is the rendered geometry for one aperture: a blurred ellipse erased
// from the overlay. It is addressed by the aperture's ID.
type Cutout struct {
	ID     ApertureID
	Center Vec2
	Radius Vec2
	// Blur is the Gaussian standard deviation of the ellipse edge in pixels.
	Blur float64
	// Opacity is how much of the overlay survives inside the cutout:
	// 0 reveals the scene fully, 1 hides it.
	Opacity float64
}

// BlurSigma maps an aperture's fade to its edge blur. It is linear in fade
// and never negative.
func BlurSigma(fade float64) float64 {
	if !(fade > 0) {
		return 0
	}
	return fade / 4
}

// CutoutOpacity maps a reveal percentage in [0, 100] to the overlay opacity
// left inside the cutout.
func CutoutOpacity(revealPercentage float64) float64 {
	return clamp01(1 - revealPercentage/100)
}

type cutoutKey struct {
	w, h, blur int
}

// MaskLayer renders a full-viewport opaque overlay with one erased cutout per
// aperture. It runs no physics of its own: callers move cutouts with
// SetCenter and call Redraw once per tick after updating them.
type MaskLayer struct {
	rt       *RenderTexture
	node     *Node
	overlay  Color
	cutouts  []Cutout
	textures map[cutoutKey]*ebiten.Image
	imgOp    ebiten.DrawImageOptions
}

// NewMaskLayer creates a mask covering (w x h) pixels filled with overlay.
func NewMaskLayer(w, h int, overlay Color) *MaskLayer {
	rt := NewRenderTexture(w, h)
	return &MaskLayer{
		rt:      rt,
		node:    rt.NewSpriteNode("spotlight_mask"),
		overlay: overlay,
	}
}

// Node returns the sprite node that displays the mask. Add it above the
// revealed content in the scene graph.
func (m *MaskLayer) Node() *Node {
	return m.node
}

// Overlay returns the overlay color.
func (m *MaskLayer) Overlay() Color {
	return m.overlay
}

// AddCutout registers geometry for an aperture at its current position and
// returns the aperture's ID. The cutout texture is generated once here.
func (m *MaskLayer) AddCutout(a *Aperture) ApertureID {
	c := Cutout{
		ID:      a.ID,
		Center:  a.Position,
		Radius:  a.Radius(),
		Blur:    BlurSigma(a.Fade),
		Opacity: CutoutOpacity(a.RevealPercentage),
	}
	for len(m.cutouts) <= int(a.ID) {
		m.cutouts = append(m.cutouts, Cutout{ID: ApertureID(len(m.cutouts))})
	}
	m.cutouts[a.ID] = c
	m.texture(c)
	return a.ID
}

// SetCenter moves the cutout for id. Unknown ids are ignored.
func (m *MaskLayer) SetCenter(id ApertureID, center Vec2) {
	if id < 0 || int(id) >= len(m.cutouts) {
		return
	}
	m.cutouts[id].Center = center
}

// Cutout returns the geometry for id and whether it exists.
func (m *MaskLayer) Cutout(id ApertureID) (Cutout, bool) {
	if id < 0 || int(id) >= len(m.cutouts) {
		return Cutout{}, false
	}
	return m.cutouts[id], true
}

// Cutouts returns all cutouts indexed by ApertureID. The returned slice MUST
// NOT be mutated.
func (m *MaskLayer) Cutouts() []Cutout {
	return m.cutouts
}

// Resize resizes the overlay texture to the new viewport.
func (m *MaskLayer) Resize(w, h int) {
	if m.rt == nil {
		return
	}
	m.rt.Resize(w, h)
	if m.node != nil {
		m.node.customImage = m.rt.Image()
	}
}

// Redraw fills the overlay and erases every cutout at its current center.
// Cutouts with a non-positive radius are skipped.
func (m *MaskLayer) Redraw() {
	if m.rt == nil || m.rt.Image() == nil {
		return
	}
	m.rt.Fill(m.overlay)
	target := m.rt.Image()

	op := &m.imgOp
	for _, c := range m.cutouts {
		if !(c.Radius.X > 0 && c.Radius.Y > 0) {
			continue
		}
		erase := float32(1 - c.Opacity)
		if erase <= 0 {
			continue
		}
		img := m.texture(c)
		if img == nil {
			continue
		}
		b := img.Bounds()
		op.GeoM.Reset()
		op.GeoM.Translate(c.Center.X-float64(b.Dx())/2, c.Center.Y-float64(b.Dy())/2)
		op.ColorScale.Reset()
		op.ColorScale.Scale(erase, erase, erase, erase)
		op.Blend = BlendErase.EbitenBlend()
		target.DrawImage(img, op)
	}
}

// texture returns the cached cutout texture for c, generating it on first use.
func (m *MaskLayer) texture(c Cutout) *ebiten.Image {
	if !(c.Radius.X > 0 && c.Radius.Y > 0) {
		return nil
	}
	key := cutoutKey{
		w:    int(math.Ceil(c.Radius.X * 2)),
		h:    int(math.Ceil(c.Radius.Y * 2)),
		blur: int(math.Round(c.Blur)),
	}
	if m.textures == nil {
		m.textures = make(map[cutoutKey]*ebiten.Image)
	}
	if img, ok := m.textures[key]; ok {
		return img
	}
	pix, w, h := cutoutPixels(float64(key.w)/2, float64(key.h)/2, float64(key.blur))
	img := ebiten.NewImage(w, h)
	img.WritePixels(pix)
	m.textures[key] = img
	return img
}

// Dispose releases the overlay texture and cutout cache. Safe to call more
// than once.
func (m *MaskLayer) Dispose() {
	if m.rt != nil {
		m.rt.Dispose()
		m.rt = nil
	}
	for _, img := range m.textures {
		img.Deallocate()
	}
	m.textures = nil
	if m.node != nil {
		m.node.Dispose()
		m.node = nil
	}
	m.cutouts = nil
}

// cutoutPixels rasterizes a white ellipse with radii (rx, ry) whose edge is
// blurred with a Gaussian of standard deviation sigma. The image is padded
// by 3*sigma on every side so the falloff is not clipped. Pixels are
// premultiplied RGBA.
func cutoutPixels(rx, ry, sigma float64) (pix []byte, w, h int) {
	pad := int(math.Ceil(3 * sigma))
	w = int(math.Ceil(rx*2)) + 2*pad
	h = int(math.Ceil(ry*2)) + 2*pad
	w, h = max(w, 1), max(h, 1)
	pix = make([]byte, w*h*4)

	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := ellipseDistance(float64(x)+0.5-cx, float64(y)+0.5-cy, rx, ry)
			a := uint8(math.Round(edgeCoverage(d, sigma) * 255))
			off := (y*w + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix, w, h
}

// ellipseDistance approximates the signed distance from (dx, dy) to the edge
// of an origin-centered ellipse; negative inside.
func ellipseDistance(dx, dy, rx, ry float64) float64 {
	k := math.Sqrt((dx*dx)/(rx*rx) + (dy*dy)/(ry*ry))
	if k == 0 {
		return -min(rx, ry)
	}
	return math.Hypot(dx, dy) * (1 - 1/k)
}

// edgeCoverage is the fraction of a blurred half-plane edge covering a point
// at signed distance d.
func edgeCoverage(d, sigma float64) float64 {
	if sigma <= 0 {
		if d <= 0 {
			return 1
		}
		return 0
	}
	return 0.5 * math.Erfc(d/(sigma*math.Sqrt2))
}
