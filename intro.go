package sprout

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Stage is a phase of the intro sequence. Stages only move forward.
type Stage uint8

const (
	StageRamping Stage = iota // progress driven from 0 to 100
	StageHolding              // progress pinned at 100 before the exit
	StageExiting              // exit transition playing
	StageDone                 // completion callback delivered; overlay gone
)

func (s Stage) String() string {
	switch s {
	case StageRamping:
		return "ramping"
	case StageHolding:
		return "holding"
	case StageExiting:
		return "exiting"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// StageEvent describes one intro transition.
type StageEvent struct {
	From Stage
	To   Stage
	// At is the scheduler time of the transition.
	At time.Duration
}

// StageObserver is notified of intro transitions. Observers cannot influence
// the sequence.
type StageObserver interface {
	StageChanged(ev StageEvent)
}

// StageObserverFunc adapts a function to StageObserver.
type StageObserverFunc func(ev StageEvent)

// StageChanged calls f(ev).
func (f StageObserverFunc) StageChanged(ev StageEvent) { f(ev) }

// IntroConfig holds the intro's fixed durations.
type IntroConfig struct {
	RampDuration time.Duration
	RevealDelay  time.Duration
	HoldDuration time.Duration
	// ExitDuration must cover the exit transition's visual length.
	ExitDuration time.Duration
	Ambient      AmbientKind
	Density      int
	// Easing shapes the progress ramp. Nil is linear.
	Easing Easing
}

// DefaultIntroConfig returns the reference timings: a 3 s ramp, text reveal
// at 500 ms, 500 ms hold and a 1 s exit over a dense leaf field.
func DefaultIntroConfig() IntroConfig {
	return IntroConfig{
		RampDuration: 3000 * time.Millisecond,
		RevealDelay:  500 * time.Millisecond,
		HoldDuration: 500 * time.Millisecond,
		ExitDuration: 1000 * time.Millisecond,
		Ambient:      AmbientLeaves,
		Density:      70,
	}
}

// ErrInvalidIntroConfig is wrapped by IntroConfig.Validate failures.
var ErrInvalidIntroConfig = errors.New("invalid intro config")

// Validate reports negative durations or density.
func (c IntroConfig) Validate() error {
	switch {
	case c.RampDuration < 0:
		return fmt.Errorf("%w: negative ramp duration %v", ErrInvalidIntroConfig, c.RampDuration)
	case c.RevealDelay < 0:
		return fmt.Errorf("%w: negative reveal delay %v", ErrInvalidIntroConfig, c.RevealDelay)
	case c.HoldDuration < 0:
		return fmt.Errorf("%w: negative hold duration %v", ErrInvalidIntroConfig, c.HoldDuration)
	case c.ExitDuration < 0:
		return fmt.Errorf("%w: negative exit duration %v", ErrInvalidIntroConfig, c.ExitDuration)
	case c.Density < 0:
		return fmt.Errorf("%w: negative density %d", ErrInvalidIntroConfig, c.Density)
	}
	return nil
}

// Intro is the full-screen loading sequence. It ramps a progress value over
// RampDuration, reveals its text after RevealDelay, holds at 100%, plays the
// exit, and finally calls onComplete exactly once.
type Intro struct {
	sched      *Scheduler
	cfg        IntroConfig
	onComplete func()
	observer   StageObserver

	stage       Stage
	fraction    float64
	start       time.Duration
	started     bool
	textVisible bool
	mounted     bool
	used        bool

	// stageWork holds the handles scheduled by the current stage; reveal is
	// independent of the stage machine and only dies on unmount.
	stageWork HandleSet
	reveal    Handle
}

// NewIntro creates an unmounted intro.
func NewIntro(sched *Scheduler, cfg IntroConfig, onComplete func()) *Intro {
	if sched == nil {
		panic("sprout: NewIntro with nil scheduler")
	}
	return &Intro{sched: sched, cfg: cfg, onComplete: onComplete}
}

// SetObserver installs the transition observer. Nil removes it.
func (in *Intro) SetObserver(o StageObserver) {
	in.observer = o
}

// Mount starts the sequence. The ambient collaborator, if any, is configured
// once here and never hears from the intro again. An Intro runs once:
// mounting it a second time, even after Unmount, does nothing.
func (in *Intro) Mount(ambient AmbientEffects) {
	if in.used {
		return
	}
	in.used = true
	in.mounted = true
	if ambient != nil {
		ambient.Configure(in.cfg.Ambient, in.cfg.Density)
	}
	in.reveal = in.sched.After(in.cfg.RevealDelay, func() {
		if in.mounted {
			in.textVisible = true
		}
	})
	in.stageWork.Add(in.sched.RequestFrame(in.ramp))
}

// Unmount tears the instance down. Nothing scheduled by it runs afterwards
// and onComplete is never called from then on.
func (in *Intro) Unmount() {
	if !in.mounted {
		return
	}
	in.mounted = false
	in.stageWork.CancelAll()
	if in.reveal != nil {
		in.reveal.Cancel()
		in.reveal = nil
	}
}

// ramp is the RAMPING frame callback.
func (in *Intro) ramp(now time.Duration) {
	if !in.mounted || in.stage != StageRamping {
		return
	}
	if !in.started {
		in.start = now
		in.started = true
	}
	f := Interpolate(0, 1, now-in.start, in.cfg.RampDuration, in.cfg.Easing)
	if f > in.fraction {
		in.fraction = f
	}
	if now-in.start < in.cfg.RampDuration {
		in.stageWork.Add(in.sched.RequestFrame(in.ramp))
		return
	}
	in.fraction = 1
	if !in.advance(StageHolding) {
		return
	}
	in.stageWork.Add(in.sched.After(in.cfg.HoldDuration, in.expect(StageHolding, func() {
		if !in.advance(StageExiting) {
			return
		}
		in.stageWork.Add(in.sched.After(in.cfg.ExitDuration, in.expect(StageExiting, in.finish)))
	})))
}

// expect wraps a timer callback so it only runs while the intro is mounted
// and still in stage s.
func (in *Intro) expect(s Stage, fn func()) func() {
	return func() {
		if in.mounted && in.stage == s {
			fn()
		}
	}
}

// advance moves to the next stage, cancelling everything the previous stage
// scheduled. It reports whether the intro is still mounted in stage to once
// the observer has run; observers may unmount it.
func (in *Intro) advance(to Stage) bool {
	if to <= in.stage {
		return false
	}
	in.stageWork.CancelAll()
	from := in.stage
	in.stage = to
	if in.observer != nil {
		in.observer.StageChanged(StageEvent{From: from, To: to, At: in.sched.Now()})
	}
	return in.mounted && in.stage == to
}

// finish enters DONE, unmounts and delivers the completion callback.
func (in *Intro) finish() {
	in.advance(StageDone)
	in.Unmount()
	if in.onComplete != nil {
		in.onComplete()
	}
}

// Stage returns the current stage.
func (in *Intro) Stage() Stage {
	return in.stage
}

// Fraction returns the elapsed fraction of the ramp in [0, 1].
func (in *Intro) Fraction() float64 {
	return in.fraction
}

// Progress returns the ramp as a percentage in [0, 100].
func (in *Intro) Progress() float64 {
	return in.fraction * 100
}

// Percent returns Progress rounded for the ring label.
func (in *Intro) Percent() int {
	return int(math.Round(in.Progress()))
}

// TextVisible reports whether the reveal delay has elapsed.
func (in *Intro) TextVisible() bool {
	return in.textVisible
}

// Mounted reports whether the intro is mounted.
func (in *Intro) Mounted() bool {
	return in.mounted
}

// Config returns the intro's configuration.
func (in *Intro) Config() IntroConfig {
	return in.cfg
}

// ExitMotion describes the exit transition the overlay should play when the
// intro enters StageExiting.
func (in *Intro) ExitMotion() ExitMotion {
	m := DefaultExitMotion()
	m.Duration = in.cfg.ExitDuration
	return m
}
