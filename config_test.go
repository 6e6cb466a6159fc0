package spotlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const speakerYAML = `
overlay: {r: 0, g: 0, b: 0, a: 0.8}
chain: true
chain_base: 1
font_size: 26
page_height: 1800
apertures:
  - width: 300
    height: 200
    fade: 60
    speed: 0.5
    initial_position: {x: 120, y: 80}
    initial_velocity: {x: 1, y: -1}
    reveal_percentage: 70
  - width: 100
    height: 100
blocks:
  - text: "Hello there"
    split: words
    delay: 50
    duration: 1
    ease: elastic.out(1, 0.9)
    from: {opacity: 0, y: 20}
    align: left
    wrap_width: 400
    x: 40
    y: 60
  - text: "Second"
    root_margin: "-40px"
    threshold: 0.25
    color: {r: 1, g: 0.5, b: 0, a: 1}
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(speakerYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OverlayColor() != (Color{0, 0, 0, 0.8}) {
		t.Errorf("overlay = %v", cfg.OverlayColor())
	}
	if !cfg.Chain || cfg.ChainBase != 1 || cfg.FontSizeOrDefault() != 26 || cfg.PageHeight != 1800 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Apertures) != 2 {
		t.Fatalf("apertures = %d, want 2", len(cfg.Apertures))
	}
	a := cfg.Apertures[0]
	if a.Width != 300 || a.InitialPosition != (Vec2{120, 80}) || a.InitialVelocity != (Vec2{1, -1}) {
		t.Errorf("aperture 0 = %+v", a)
	}
	if a.RevealPercentage == nil || *a.RevealPercentage != 70 {
		t.Errorf("reveal_percentage = %v, want 70", a.RevealPercentage)
	}
	if cfg.Apertures[1].RevealPercentage != nil {
		t.Error("omitted reveal_percentage should stay nil")
	}
}

func TestBlockRevealConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(speakerYAML))
	if err != nil {
		t.Fatal(err)
	}
	rcs, err := cfg.RevealConfigs()
	if err != nil {
		t.Fatal(err)
	}

	first := rcs[0]
	if first.Split != SplitWords || first.Delay != 50 || first.Duration != 1 {
		t.Errorf("block 0 = %+v", first)
	}
	if first.Ease != "elastic.out(1, 0.9)" || first.Align != TextAlignLeft || first.WrapWidth != 400 {
		t.Errorf("block 0 layout = %+v", first)
	}
	if first.From != (Style{Y: 20}) || first.To != (Style{Opacity: 1}) {
		t.Errorf("block 0 From/To = %+v/%+v", first.From, first.To)
	}
	if first.Position != (Vec2{40, 60}) {
		t.Errorf("block 0 position = %v", first.Position)
	}

	second := rcs[1]
	def := DefaultRevealConfig("Second")
	if second.Split != SplitChars || second.Delay != def.Delay || second.Ease != DefaultEase {
		t.Errorf("block 1 should take defaults, got %+v", second)
	}
	if second.RootMargin != -40 || second.Threshold != 0.25 {
		t.Errorf("block 1 trigger = %v/%v, want -40/0.25", second.RootMargin, second.Threshold)
	}
	if second.Color != (Color{1, 0.5, 0, 1}) {
		t.Errorf("block 1 color = %v", second.Color)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("blocks:\n  - text: hi\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OverlayColor() != ColorOverlay {
		t.Errorf("overlay = %v, want default", cfg.OverlayColor())
	}
	if cfg.FontSizeOrDefault() != DefaultFontSize {
		t.Errorf("font size = %v, want %v", cfg.FontSizeOrDefault(), DefaultFontSize)
	}
	rcs, _ := cfg.RevealConfigs()
	if rcs[0].RootMargin != DefaultRevealRootMargin || rcs[0].Threshold != DefaultRevealThreshold {
		t.Errorf("trigger defaults = %v/%v", rcs[0].RootMargin, rcs[0].Threshold)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"malformed", "blocks: [", "unmarshal"},
		{"split", "blocks:\n  - split: sentences\n", "block 0"},
		{"ease", "blocks:\n  - ease: wobble.out\n", "wobble"},
		{"margin", "blocks:\n  - text: a\n  - root_margin: 10%\n", "block 1"},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.yaml))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q should mention %q", tt.name, err, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.yaml")
	if err := os.WriteFile(path, []byte(speakerYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(cfg.Blocks))
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestParseTextAlign(t *testing.T) {
	if ParseTextAlign("left") != TextAlignLeft || ParseTextAlign("right") != TextAlignRight {
		t.Error("left/right should parse")
	}
	if ParseTextAlign("justify") != TextAlignCenter {
		t.Error("unknown alignment should fall back to center")
	}
}
