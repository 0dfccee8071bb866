package sprout

import "time"

// CounterConfig describes one animated statistic.
type CounterConfig struct {
	// From is where every ramp starts, including ramps caused by SetTarget.
	From float64
	// To is the initial target.
	To float64
	// Duration of a full ramp. Non-positive durations show To immediately.
	Duration time.Duration
	// Decimals is the display precision. Negative values are treated as 0.
	Decimals int
	// Easing shapes the ramp. Nil is linear.
	Easing Easing
}

// Counter animates a displayed number toward a target once per display
// refresh. It starts on Mount, restarts whenever the target changes while
// mounted, and stops touching its state on Unmount.
type Counter struct {
	sched *Scheduler
	cfg   CounterConfig

	value      float64
	activeFrom float64
	activeTo   float64
	start      time.Duration
	started    bool
	frames     int

	frame   Handle
	mounted bool

	// OnUpdate, if set, receives the formatted value after every render.
	OnUpdate func(text string)
}

// NewCounter creates an unmounted counter showing cfg.From.
func NewCounter(sched *Scheduler, cfg CounterConfig) *Counter {
	if sched == nil {
		panic("sprout: NewCounter with nil scheduler")
	}
	if cfg.Decimals < 0 {
		cfg.Decimals = 0
	}
	return &Counter{
		sched:      sched,
		cfg:        cfg,
		value:      cfg.From,
		activeFrom: cfg.From,
		activeTo:   cfg.To,
	}
}

// Mount starts a ramp toward the current target. Mounting an already mounted
// counter does nothing.
func (c *Counter) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.activate()
}

// Unmount cancels the pending frame. After it returns the counter's value
// no longer changes until the next Mount.
func (c *Counter) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.cancel()
}

// SetTarget retargets the counter. A mounted counter restarts its ramp from
// From; an unmounted one just remembers the target for the next Mount.
func (c *Counter) SetTarget(to float64) {
	if to == c.cfg.To {
		return
	}
	c.cfg.To = to
	if c.mounted {
		c.activate()
	}
}

// activate (re)creates the ramp state and schedules the first frame.
func (c *Counter) activate() {
	c.cancel()
	c.activeFrom = c.cfg.From
	c.activeTo = c.cfg.To
	c.started = false
	c.frames = 0

	if c.cfg.Duration <= 0 || c.activeFrom == c.activeTo {
		c.render(c.activeTo)
		return
	}
	c.render(c.activeFrom)
	c.frame = c.sched.RequestFrame(c.step)
}

// step is the per-frame callback.
func (c *Counter) step(now time.Duration) {
	c.frame = nil
	if !c.mounted {
		return
	}
	if !c.started {
		c.start = now
		c.started = true
	}
	c.frames++

	elapsed := now - c.start
	if elapsed >= c.cfg.Duration {
		c.render(c.activeTo)
		return
	}
	c.render(Interpolate(c.activeFrom, c.activeTo, elapsed, c.cfg.Duration, c.cfg.Easing))
	c.frame = c.sched.RequestFrame(c.step)
}

func (c *Counter) render(v float64) {
	c.value = v
	if c.OnUpdate != nil {
		c.OnUpdate(c.Text())
	}
}

func (c *Counter) cancel() {
	if c.frame != nil {
		c.frame.Cancel()
		c.frame = nil
	}
}

// Value returns the unrounded driver value.
func (c *Counter) Value() float64 {
	return c.value
}

// Text returns the value rounded to the configured decimals.
func (c *Counter) Text() string {
	return FormatFixed(c.value, c.cfg.Decimals)
}

// Target returns the value the counter is heading to.
func (c *Counter) Target() float64 {
	return c.cfg.To
}

// Decimals returns the display precision.
func (c *Counter) Decimals() int {
	return c.cfg.Decimals
}

// Mounted reports whether the counter is mounted.
func (c *Counter) Mounted() bool {
	return c.mounted
}

// Running reports whether a frame is scheduled.
func (c *Counter) Running() bool {
	return c.frame != nil && c.frame.Active()
}

// Frames returns the number of frame callbacks run in the current ramp.
func (c *Counter) Frames() int {
	return c.frames
}
