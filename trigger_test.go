package spotlight

import "testing"

func TestTriggerStartLine(t *testing.T) {
	tr := IntersectionTrigger{Threshold: 0.1, RootMargin: -100}
	assertNear(t, "StartLine(800)", tr.StartLine(800), 620)

	tr = IntersectionTrigger{}
	assertNear(t, "StartLine(800) zero", tr.StartLine(800), 800)
}

func TestTriggerFiresOnce(t *testing.T) {
	tr := IntersectionTrigger{Threshold: 0.1, RootMargin: -100}
	if tr.Check(700, 800) {
		t.Error("fired below the start line")
	}
	if tr.Fired() {
		t.Error("Fired before crossing")
	}
	if !tr.Check(619, 800) {
		t.Error("should fire at the start line")
	}
	if tr.Check(0, 800) || tr.Check(620, 800) {
		t.Error("fired more than once")
	}
	if !tr.Fired() {
		t.Error("Fired = false after firing")
	}
}

func TestTriggerAlreadyVisible(t *testing.T) {
	tr := IntersectionTrigger{Threshold: 0.1, RootMargin: -100}
	if !tr.Check(-50, 800) {
		t.Error("an element above the viewport top should fire immediately")
	}
}

func TestParseRootMargin(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"-100px", -100, false},
		{" 24px ", 24, false},
		{"12.5", 12.5, false},
		{"10%", 0, true},
		{"px", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRootMargin(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRootMargin(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRootMargin(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
