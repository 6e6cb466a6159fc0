package spotlight

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// DefaultEase is the curve used when a block names no ease.
const DefaultEase = "power3.out"

// easeFamilies maps a curve family to its in, out, and in-out functions.
// The powerN names count from quad, so power3 is quartic.
var easeFamilies = map[string][3]ease.TweenFunc{
	"power1":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// ParseEase resolves names like "power3.out", "sine.inOut", or
// "elastic.out(1, 0.9)". Parenthesised parameters are accepted and ignored;
// the library curves use fixed amplitude and period. An empty name returns
// DefaultEase. A bare family name ("expo") means its out variant.
func ParseEase(name string) (ease.TweenFunc, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEase
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "linear" || name == "none" {
		return ease.Linear, nil
	}
	family, variant, _ := strings.Cut(name, ".")
	fns, ok := easeFamilies[family]
	if !ok {
		return nil, fmt.Errorf("spotlight: unknown ease %q", name)
	}
	switch variant {
	case "in":
		return fns[0], nil
	case "out", "":
		return fns[1], nil
	case "inout":
		return fns[2], nil
	}
	return nil, fmt.Errorf("spotlight: unknown ease variant %q", name)
}

// MustParseEase is ParseEase that falls back to DefaultEase and logs the
// error in debug mode.
func MustParseEase(name string) ease.TweenFunc {
	fn, err := ParseEase(name)
	if err != nil {
		debugf("%v, using %s", err, DefaultEase)
		fn, _ = ParseEase(DefaultEase)
	}
	return fn
}
