package spotlight

import (
	"fmt"
	"strconv"
	"strings"
)

// IntersectionTrigger fires once when an element's top edge scrolls up to
// the start line: Threshold of the viewport height above the bottom edge,
// shifted by RootMargin pixels (negative moves the line up).
type IntersectionTrigger struct {
	Threshold  float64
	RootMargin float64
	fired      bool
}

// StartLine returns the viewport y at which the trigger fires.
func (tr *IntersectionTrigger) StartLine(viewportH float64) float64 {
	return viewportH*(1-tr.Threshold) + tr.RootMargin
}

// Check reports true exactly once: on the first call where top, in
// viewport coordinates, is at or above the start line.
func (tr *IntersectionTrigger) Check(top, viewportH float64) bool {
	if tr.fired || top > tr.StartLine(viewportH) {
		return false
	}
	tr.fired = true
	return true
}

// Fired reports whether the trigger has fired.
func (tr *IntersectionTrigger) Fired() bool {
	return tr.fired
}

// ParseRootMargin parses a pixel margin such as "-100px", "24px", or "0".
func ParseRootMargin(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("spotlight: root margin %q: %w", s, err)
	}
	return v, nil
}
