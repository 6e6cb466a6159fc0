package spotlight

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	wheelScrollStep = 40.0 // pixels per wheel notch
	keyScrollStep   = 12.0 // pixels per frame while an arrow key is held
)

// processInput is called from Scene.Update() to turn wheel, keyboard, and
// injected scroll into a viewport scroll offset on the ticker. Injected
// events take the frame when present, so scripted runs are deterministic.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	dy := readScrollDelta()
	if dy != 0 {
		s.ticker.ScrollTo(s.ticker.ScrollY() + dy)
	}
}

// readScrollDelta returns this frame's scroll request in pixels, positive
// meaning further down the page.
func readScrollDelta() float64 {
	_, wy := ebiten.Wheel()
	dy := -wy * wheelScrollStep
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown), ebiten.IsKeyPressed(ebiten.KeyJ):
		dy += keyScrollStep
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp), ebiten.IsKeyPressed(ebiten.KeyK):
		dy -= keyScrollStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyHome) {
		return -1e9
	}
	return dy
}
