package spotlight

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticResize
)

// syntheticEvent is one injected viewport change, consumed one per frame.
type syntheticEvent struct {
	kind          syntheticKind
	dy            float64
	width, height float64
}

// InjectScroll queues a scroll of dy pixels, positive scrolling down. The
// event is consumed on the next frame's processInput call.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticScroll, dy: dy})
}

// InjectSmoothScroll spreads a scroll of dy pixels evenly over frames
// frames. Minimum frames is 1.
func (s *Scene) InjectSmoothScroll(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for i := 0; i < frames; i++ {
		s.InjectScroll(step)
	}
}

// InjectResize queues a viewport resize, as if the window changed size.
// The next Layout call from the game loop restores the real window size.
func (s *Scene) InjectResize(width, height float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticResize, width: width, height: height})
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if an event was consumed (real input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		s.ticker.ScrollTo(s.ticker.ScrollY() + evt.dy)
	case syntheticResize:
		s.ticker.Resize(evt.width, evt.height)
	}
	return true
}
