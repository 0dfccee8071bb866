package sprout

import (
	"errors"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

type recordingAmbient struct {
	calls   int
	kind    AmbientKind
	density int
}

func (r *recordingAmbient) Configure(kind AmbientKind, density int) {
	r.calls++
	r.kind = kind
	r.density = density
}

type introRig struct {
	clock     *ManualClock
	sched     *Scheduler
	intro     *Intro
	completed int
	events    []StageEvent
}

func newIntroRig(cfg IntroConfig) *introRig {
	r := &introRig{clock: &ManualClock{}}
	r.sched = NewScheduler(r.clock)
	r.intro = NewIntro(r.sched, cfg, func() { r.completed++ })
	r.intro.SetObserver(StageObserverFunc(func(ev StageEvent) {
		r.events = append(r.events, ev)
	}))
	return r
}

// at moves the clock to t and ticks.
func (r *introRig) at(t time.Duration) {
	r.clock.Set(t)
	r.sched.Tick()
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestIntroScenario(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	ambient := &recordingAmbient{}
	r.intro.Mount(ambient)
	r.at(0)

	if r.intro.Stage() != StageRamping || r.intro.Progress() != 0 {
		t.Fatalf("t=0: stage %v progress %v", r.intro.Stage(), r.intro.Progress())
	}

	r.at(ms(3000))
	if r.intro.Progress() != 100 || r.intro.Percent() != 100 {
		t.Errorf("t=3000ms: progress = %v, want 100", r.intro.Progress())
	}
	if r.intro.Stage() != StageHolding {
		t.Errorf("t=3000ms: stage = %v, want holding", r.intro.Stage())
	}

	r.at(ms(3500))
	if r.intro.Stage() != StageExiting {
		t.Errorf("t=3500ms: stage = %v, want exiting", r.intro.Stage())
	}
	if r.completed != 0 {
		t.Errorf("completed early")
	}

	r.at(ms(4500))
	if r.completed != 1 {
		t.Errorf("t=4500ms: completed %d times, want 1", r.completed)
	}
	if r.intro.Stage() != StageDone || r.intro.Mounted() {
		t.Errorf("t=4500ms: stage %v mounted %v, want done and unmounted", r.intro.Stage(), r.intro.Mounted())
	}
	if r.sched.Pending() != 0 {
		t.Errorf("Pending = %d after done, want 0", r.sched.Pending())
	}

	for i := 1; i <= 100; i++ {
		r.at(ms(4500 + 16*i))
	}
	if r.completed != 1 {
		t.Errorf("completed %d times after extra ticks, want 1", r.completed)
	}
	if ambient.calls != 1 || ambient.kind != AmbientLeaves || ambient.density != 70 {
		t.Errorf("ambient configured %d times with %v/%d", ambient.calls, ambient.kind, ambient.density)
	}
}

func TestIntroObserverEvents(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	r.intro.Mount(nil)
	r.at(0)
	for n := 16; n <= 5000; n += 16 {
		r.at(ms(n))
	}

	want := []StageEvent{
		{From: StageRamping, To: StageHolding, At: ms(3008)},
		{From: StageHolding, To: StageExiting, At: ms(3520)},
		{From: StageExiting, To: StageDone, At: ms(4528)},
	}
	if len(r.events) != len(want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, r.events[i], want[i])
		}
	}
	if r.completed != 1 {
		t.Errorf("completed = %d, want 1", r.completed)
	}
}

func TestIntroProgressTracksRamp(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	r.intro.Mount(nil)
	r.at(0)
	r.at(ms(1500))
	if r.intro.Progress() != 50 || r.intro.Percent() != 50 {
		t.Errorf("t=1500ms: progress = %v, want 50", r.intro.Progress())
	}
	prev := r.intro.Fraction()
	for n := 1516; n <= 3000; n += 16 {
		r.at(ms(n))
		if f := r.intro.Fraction(); f < prev {
			t.Fatalf("fraction went backwards at %dms: %v < %v", n, f, prev)
		}
		prev = r.intro.Fraction()
	}
}

func TestIntroRevealIsIndependent(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	r.intro.Mount(nil)
	r.at(0)
	r.at(ms(499))
	if r.intro.TextVisible() {
		t.Fatal("text visible before reveal delay")
	}
	r.at(ms(500))
	if !r.intro.TextVisible() {
		t.Fatal("text hidden at reveal delay")
	}
	if r.intro.Stage() != StageRamping {
		t.Errorf("reveal changed stage to %v", r.intro.Stage())
	}
}

func TestIntroRevealAfterRamp(t *testing.T) {
	cfg := DefaultIntroConfig()
	cfg.RevealDelay = ms(4000)
	r := newIntroRig(cfg)
	r.intro.Mount(nil)
	r.at(0)
	r.at(ms(3500))
	if r.intro.TextVisible() {
		t.Fatal("text visible before its own delay")
	}
	r.at(ms(4000))
	if !r.intro.TextVisible() {
		t.Error("reveal did not fire while exiting")
	}
}

func TestIntroUnmountDuringEachStage(t *testing.T) {
	tests := []struct {
		name  string
		until time.Duration
		stage Stage
	}{
		{"ramping", ms(1000), StageRamping},
		{"holding", ms(3200), StageHolding},
		{"exiting", ms(4000), StageExiting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newIntroRig(DefaultIntroConfig())
			r.intro.Mount(nil)
			r.at(0)
			for n := 16; time.Duration(n)*time.Millisecond <= tt.until; n += 16 {
				r.at(ms(n))
			}
			if r.intro.Stage() != tt.stage {
				t.Fatalf("stage = %v, want %v", r.intro.Stage(), tt.stage)
			}

			r.intro.Unmount()
			if r.sched.Pending() != 0 {
				t.Errorf("Pending = %d after unmount, want 0", r.sched.Pending())
			}
			events := len(r.events)
			fraction := r.intro.Fraction()
			for n := 1; n <= 400; n++ {
				r.at(tt.until + ms(16*n))
			}
			if r.completed != 0 {
				t.Errorf("onComplete called %d times after unmount", r.completed)
			}
			if r.intro.Stage() != tt.stage || len(r.events) != events {
				t.Errorf("stage moved to %v after unmount", r.intro.Stage())
			}
			if r.intro.Fraction() != fraction {
				t.Errorf("fraction changed after unmount: %v -> %v", fraction, r.intro.Fraction())
			}
		})
	}
}

func TestIntroObserverUnmountsOnTransition(t *testing.T) {
	for _, target := range []Stage{StageHolding, StageExiting} {
		t.Run(target.String(), func(t *testing.T) {
			r := newIntroRig(DefaultIntroConfig())
			r.intro.SetObserver(StageObserverFunc(func(ev StageEvent) {
				r.events = append(r.events, ev)
				if ev.To == target {
					r.intro.Unmount()
				}
			}))
			r.intro.Mount(nil)
			r.at(0)
			for n := 16; r.intro.Stage() != target; n += 16 {
				if n > 6000 {
					t.Fatalf("never reached %v; stage %v", target, r.intro.Stage())
				}
				r.at(ms(n))
			}
			if r.intro.Mounted() {
				t.Fatal("observer did not unmount the intro")
			}
			if r.sched.Pending() != 0 {
				t.Errorf("Pending = %d after unmount in %v, want 0", r.sched.Pending(), target)
			}
			for n := 1; n <= 200; n++ {
				r.at(ms(5000 + 16*n))
			}
			if r.completed != 0 || r.intro.Stage() != target {
				t.Errorf("completed %d, stage %v; want 0 and %v", r.completed, r.intro.Stage(), target)
			}
		})
	}
}

func TestIntroOvershootingEasingStaysInRange(t *testing.T) {
	cfg := DefaultIntroConfig()
	cfg.Easing = ease.OutBack
	r := newIntroRig(cfg)
	r.intro.Mount(nil)
	r.at(0)
	for n := 16; n <= 3000; n += 16 {
		r.at(ms(n))
		if f := r.intro.Fraction(); f < 0 || f > 1 {
			t.Fatalf("t=%dms: fraction = %v, want within [0, 1]", n, f)
		}
		if p := r.intro.Percent(); p > 100 {
			t.Fatalf("t=%dms: percent = %d, want <= 100", n, p)
		}
	}
}

func TestIntroUnmountBeforeReveal(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	r.intro.Mount(nil)
	r.at(0)
	r.at(ms(100))
	r.intro.Unmount()
	r.at(ms(600))
	if r.intro.TextVisible() {
		t.Error("reveal fired after unmount")
	}
}

func TestIntroRunsOnce(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	ambient := &recordingAmbient{}
	r.intro.Mount(ambient)
	r.intro.Mount(ambient)
	r.at(0)
	r.intro.Unmount()
	r.intro.Mount(ambient)
	if r.intro.Mounted() || r.sched.Pending() != 0 {
		t.Error("remount after unmount restarted the intro")
	}
	if ambient.calls != 1 {
		t.Errorf("ambient configured %d times, want 1", ambient.calls)
	}
}

func TestIntroZeroDurations(t *testing.T) {
	r := newIntroRig(IntroConfig{})
	r.intro.Mount(nil)
	r.at(0)
	r.at(0)
	if r.completed != 1 || r.intro.Stage() != StageDone {
		t.Errorf("completed = %d stage = %v, want 1 and done", r.completed, r.intro.Stage())
	}
	if r.intro.Progress() != 100 {
		t.Errorf("progress = %v, want 100", r.intro.Progress())
	}
}

func TestIntroLongFrameGap(t *testing.T) {
	r := newIntroRig(DefaultIntroConfig())
	r.intro.Mount(nil)
	r.at(0)
	// Long frame gaps still walk every stage in order, one per tick.
	r.at(ms(10000))
	r.at(ms(20000))
	if r.completed != 0 {
		t.Fatal("completed before exit wait")
	}
	r.at(ms(30000))
	if r.completed != 1 {
		t.Errorf("completed = %d, want 1", r.completed)
	}
	if len(r.events) != 3 {
		t.Errorf("events = %v, want 3 transitions", r.events)
	}
}

func TestIntroConfigValidate(t *testing.T) {
	if err := DefaultIntroConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []IntroConfig{
		{RampDuration: -1},
		{RevealDelay: -1},
		{HoldDuration: -1},
		{ExitDuration: -1},
		{Density: -1},
	}
	for i, cfg := range bad {
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidIntroConfig) {
			t.Errorf("case %d: err = %v, want ErrInvalidIntroConfig", i, err)
		}
	}
}

func TestIntroExitMotionDuration(t *testing.T) {
	cfg := DefaultIntroConfig()
	cfg.ExitDuration = ms(750)
	in := NewIntro(NewScheduler(&ManualClock{}), cfg, nil)
	if got := in.ExitMotion().Duration; got != ms(750) {
		t.Errorf("ExitMotion().Duration = %v, want 750ms", got)
	}
}

func TestStageString(t *testing.T) {
	names := map[Stage]string{
		StageRamping: "ramping",
		StageHolding: "holding",
		StageExiting: "exiting",
		StageDone:    "done",
		Stage(9):     "Stage(9)",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
