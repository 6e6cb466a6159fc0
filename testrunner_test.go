package spotlight

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - action: screenshot
    label: initial
  - action: scroll
    dy: 600
    frames: 30
  - action: resize
    width: 640
    height: 480
  - action: wait
    frames: 3
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].DY != 600 || runner.steps[1].Frames != 30 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Width != 640 || runner.steps[2].Height != 480 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_JSON(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.steps[0].Frames != 2 {
		t.Error("JSON scripts should parse as YAML")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte("steps: [")); err == nil {
		t.Error("expected error for malformed script")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`steps: []`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte("steps:\n  - action: click\n")); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Scroll(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - action: scroll\n    dy: 90\n    frames: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	runner.step(s)
	if len(s.injectQueue) != 3 {
		t.Fatalf("queue = %d, want 3", len(s.injectQueue))
	}
	for i := 0; i < 3; i++ {
		s.processInjectedInput()
		runner.step(s)
	}
	assertNear(t, "ScrollY", s.Ticker().ScrollY(), 90)
	if !runner.Done() {
		t.Error("runner should be done once the scroll drains")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - action: wait\n    frames: 3\n  - action: screenshot\n    label: after\n"))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s) // wait, frame 1
	runner.step(s) // frame 2
	runner.step(s) // frame 3
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot taken before the wait finished")
	}
	runner.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("screenshotQueue = %v, want [after]", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Resize(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - action: resize\n    width: 300\n    height: 200\n"))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	s.processInjectedInput()
	if s.Ticker().Bounds() != (Vec2{300, 200}) {
		t.Errorf("Bounds = %v, want {300 200}", s.Ticker().Bounds())
	}
}

func TestRunnerDoneStopsStepping(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte("steps:\n  - action: screenshot\n"))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if !runner.Done() {
		t.Fatal("single-step runner should be done")
	}
	runner.step(s)
	if len(s.screenshotQueue) != 1 {
		t.Errorf("screenshotQueue = %d, want 1", len(s.screenshotQueue))
	}
}
