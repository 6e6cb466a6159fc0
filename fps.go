package spotlight

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a sprite node that shows FPS and TPS. The image is
// redrawn every ~0.5 seconds with ebitenutil.DebugPrint. Add it last so it
// draws above the mask.
func NewFPSWidget() *Node {
	// 120x32 fits "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(120, 32)
	node := NewSprite("fps_widget", img)

	var elapsed float64
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0

		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
