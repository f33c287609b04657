package letterbox

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "pointer", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "antialias", "enabled": true},
			{"action": "screenshot", "label": "after"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "pointer" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "antialias" || !runner.steps[3].Enabled {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": [{"action": "click"}]}`))
	if err == nil || !strings.Contains(err.Error(), `unknown action "click"`) {
		t.Errorf("err = %v, want unknown action error", err)
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	c := New(16, 16, nil)
	defer c.Dispose()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	if err := runner.step(c); err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("should not be done during wait")
	}

	// Frames 2 and 3: count down.
	runner.step(c)
	runner.step(c)
	if runner.Done() {
		t.Error("should not be done before the screenshot step")
	}

	// Frame 4: execute screenshot step, runner finishes.
	runner.step(c)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(c.screenshotQueue) != 1 || c.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", c.screenshotQueue)
	}
}

func TestRunnerStep_Pointer(t *testing.T) {
	c := New(640, 360, nil)
	defer c.Dispose()
	c.Layout(640, 360)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "pointer", "x": 640, "y": 0}]}`))
	if err != nil {
		t.Fatal(err)
	}
	c.SetTestRunner(runner)
	if err := runner.step(c); err != nil {
		t.Fatal(err)
	}
	if got := c.PointerLogicalPosition(); got != (Vec2{320, 180}) {
		t.Errorf("pointer = %v, want (320,180)", got)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Antialias(t *testing.T) {
	c := New(16, 16, nil)
	defer c.Dispose()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "antialias", "enabled": true},
		{"action": "antialias", "enabled": false}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	if err := runner.step(c); err != nil {
		t.Fatalf("enable step: %v", err)
	}
	if !c.Antialiasing() {
		t.Error("antialiasing should be enabled after step 1")
	}
	if err := runner.step(c); err != nil {
		t.Fatalf("disable step: %v", err)
	}
	if c.Antialiasing() {
		t.Error("antialiasing should be disabled after step 2")
	}
}

func TestRunnerDone(t *testing.T) {
	c := New(16, 16, nil)
	defer c.Dispose()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "only"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}
	runner.step(c)
	if !runner.Done() {
		t.Error("runner should be done after single screenshot step")
	}
	runner.step(c) // no-op once done
	if len(c.screenshotQueue) != 1 {
		t.Errorf("queue = %v, want one entry", c.screenshotQueue)
	}
}
