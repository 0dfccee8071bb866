package sprout

import (
	"encoding/json"
	"fmt"
	"time"
)

// defaultFrameMs is the clock advance per "wait" frame: one 60 Hz refresh.
const defaultFrameMs = 1000.0 / 60

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Ms      float64 `json:"ms,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	FrameMs float64 `json:"frameMs,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Value   int     `json:"value,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted session against a Page driven by a
// ManualClock: clock advances, scrolling and slider moves, one step per
// frame. Attach it with Page.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	waitMs    float64
	done      bool
	err       error
}

var knownActions = map[string]bool{
	"advance": true,
	"wait":    true,
	"scroll":  true,
	"slider":  true,
	"reload":  true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Page via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the page. The runner's step method
// is called at the start of every frame. The page must use a ManualClock.
func (p *Page) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Page.step.
func (r *TestRunner) step(p *Page) {
	if r.done {
		return
	}
	clock, ok := p.clock.(*ManualClock)
	if !ok {
		r.fail(fmt.Errorf("test runner: page clock is %T, want *ManualClock", p.clock))
		return
	}
	// Count down wait frames, moving time one frame each.
	if r.waitCount > 0 {
		r.waitCount--
		clock.Advance(msToDuration(r.waitMs))
		r.finishIfDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "advance":
		clock.Advance(msToDuration(st.Ms))
	case "wait":
		r.waitMs = st.FrameMs
		if r.waitMs <= 0 {
			r.waitMs = defaultFrameMs
		}
		clock.Advance(msToDuration(r.waitMs))
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "scroll":
		p.ScrollTo(st.Y)
	case "slider":
		if err := p.SetSlider(st.Value); err != nil {
			r.fail(err)
			return
		}
	case "reload":
		if err := p.SetContent(p.site); err != nil {
			r.fail(err)
			return
		}
	}
	r.finishIfDone()
}

func (r *TestRunner) finishIfDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

func (r *TestRunner) fail(err error) {
	r.err = err
	r.done = true
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
