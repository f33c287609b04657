package letterbox

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a frame script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
}

// testScript is the top-level JSON structure for a frame script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences pointer injections, effect toggles and screenshots
// across frames for automated visual checks. Attach it to a Compositor via
// SetTestRunner; Run advances it one step per update.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON frame script and returns a TestRunner ready
// to be attached via SetTestRunner. Supported actions:
//
//	{"action": "screenshot", "label": "idle"}
//	{"action": "wait", "frames": 30}
//	{"action": "pointer", "x": 320, "y": 180}
//	{"action": "antialias", "enabled": false}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("letterbox: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("letterbox: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "pointer", "antialias":
		default:
			return nil, fmt.Errorf("letterbox: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the compositor. Pass nil to detach.
func (c *Compositor) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. The only error it returns comes
// from enabling the anti-aliasing effect.
func (r *TestRunner) step(c *Compositor) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "pointer":
		c.InjectPointer(st.X, st.Y)
	case "antialias":
		if st.Enabled {
			if err := c.EnableAntialiasing(); err != nil {
				return err
			}
		} else {
			c.DisableAntialiasing()
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}
