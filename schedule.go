package sprout

import (
	"sort"
	"time"
)

// Handle is a cancellable reference to scheduled work. Both frame callbacks
// and fixed-delay timers are returned as Handles so teardown is uniform.
type Handle interface {
	// Cancel prevents the work from running. Cancelling fired or already
	// cancelled work is a no-op.
	Cancel()
	// Active reports whether the work is still waiting to run.
	Active() bool
}

type taskState uint8

const (
	taskPending taskState = iota
	taskFired
	taskCancelled
)

// task is the single Handle implementation shared by both primitives.
type task struct {
	seq   uint64
	due   time.Duration
	frame func(now time.Duration)
	delay func()
	state taskState
	sched *Scheduler
}

func (t *task) Cancel() {
	if t.state != taskPending {
		return
	}
	t.state = taskCancelled
	t.sched.live--
}

func (t *task) Active() bool {
	return t.state == taskPending
}

// fire marks the task as run and invokes its callback.
func (t *task) fire(now time.Duration) {
	t.state = taskFired
	t.sched.live--
	if t.frame != nil {
		t.frame(now)
		return
	}
	t.delay()
}

// Scheduler is the host loop's queue of display-refresh callbacks and
// fixed-delay timers. Call Tick once per frame from the game's Update.
//
// A Scheduler is not safe for concurrent use; like the rest of sprout it
// lives on the game goroutine.
type Scheduler struct {
	clock  Clock
	frames []*task
	timers []*task
	ready  []*task
	seq    uint64
	live   int
	ticks  uint64
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		panic("sprout: NewScheduler with nil clock")
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Duration {
	return s.clock.Now()
}

// Pending returns the number of callbacks that are neither fired nor cancelled.
func (s *Scheduler) Pending() int {
	return s.live
}

// Ticks returns how many times Tick has run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// RequestFrame schedules fn for the next Tick. Frames requested while a Tick
// is running are deferred to the following Tick, so a callback that
// reschedules itself runs once per frame.
func (s *Scheduler) RequestFrame(fn func(now time.Duration)) Handle {
	t := &task{seq: s.nextSeq(), frame: fn, sched: s}
	s.frames = append(s.frames, t)
	s.live++
	return t
}

// After schedules fn to run on the first Tick at or after d from now.
// Non-positive delays fire on the next Tick.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	t := &task{seq: s.nextSeq(), due: s.clock.Now() + d, delay: fn, sched: s}
	s.timers = append(s.timers, t)
	s.live++
	return t
}

// Tick runs one host frame: every frame callback queued before the tick,
// then every timer that has come due, ordered by due time and then by
// registration order.
func (s *Scheduler) Tick() {
	s.ticks++
	now := s.clock.Now()

	frames := s.frames
	s.frames = nil
	for _, t := range frames {
		if t.state == taskPending {
			t.fire(now)
		}
	}

	timers := s.timers
	s.timers = nil
	s.ready = s.ready[:0]
	for _, t := range timers {
		switch {
		case t.state != taskPending:
		case t.due <= now:
			s.ready = append(s.ready, t)
		default:
			s.timers = append(s.timers, t)
		}
	}
	sort.SliceStable(s.ready, func(i, j int) bool {
		if s.ready[i].due != s.ready[j].due {
			return s.ready[i].due < s.ready[j].due
		}
		return s.ready[i].seq < s.ready[j].seq
	})
	for _, t := range s.ready {
		// An earlier callback in this tick may have cancelled it.
		if t.state == taskPending {
			t.fire(now)
		}
	}
	s.ready = s.ready[:0]
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// HandleSet collects the handles one owner has scheduled so they can be torn
// down together.
type HandleSet struct {
	handles []Handle
}

// Add records h, dropping handles that already ran. Nil handles are ignored.
func (hs *HandleSet) Add(h Handle) Handle {
	if h == nil {
		return nil
	}
	live := hs.handles[:0]
	for _, old := range hs.handles {
		if old.Active() {
			live = append(live, old)
		}
	}
	hs.handles = append(live, h)
	return h
}

// CancelAll cancels every recorded handle and forgets them.
func (hs *HandleSet) CancelAll() {
	for _, h := range hs.handles {
		h.Cancel()
	}
	hs.handles = hs.handles[:0]
}

// Active returns how many recorded handles are still waiting to run.
func (hs *HandleSet) Active() int {
	n := 0
	for _, h := range hs.handles {
		if h.Active() {
			n++
		}
	}
	return n
}
