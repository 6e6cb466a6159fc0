package spotlight

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage
	CommandText                      // text/v2 Draw of a TextBlock
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
// Commands are submitted in tree order: a parent draws before its children
// and earlier siblings draw before later ones.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Color     color32
	BlendMode BlendMode
	treeOrder int

	// image is drawn by CommandSprite. Sprites without a custom image use
	// the shared white pixel scaled by the transform.
	image *ebiten.Image
	// node is the text node for CommandText.
	node *Node
}

// --- White pixel singleton (no sync.Once, the package is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible, renderable nodes.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	// A fully transparent subtree draws nothing, but its transforms must
	// stay current for intersection checks.
	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			*treeOrder++
			img := n.customImage
			if img == nil {
				img = ensureWhitePixel()
			}
			s.commands = append(s.commands, RenderCommand{
				Type:      CommandSprite,
				Transform: n.worldTransform,
				Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
				BlendMode: n.BlendMode,
				treeOrder: *treeOrder,
				image:     img,
			})
		case NodeTypeText:
			if n.TextBlock != nil && n.TextBlock.Font != nil {
				*treeOrder++
				s.commands = append(s.commands, RenderCommand{
					Type:      CommandText,
					Transform: n.worldTransform,
					BlendMode: n.BlendMode,
					treeOrder: *treeOrder,
					node:      n,
				})
			}
			// NodeTypeContainer doesn't emit commands
		}
	}

	for _, child := range n.children {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

// submitCommands draws the command list onto target in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	var textOp text.DrawOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandText:
			drawText(target, cmd.node, &textOp)
		}
	}
}

// submitSprite draws a single sprite command using DrawImage.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(cmd))

	// Premultiplied color scale.
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)

	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawImage(cmd.image, op)
}

// commandGeoM converts a command's transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}
