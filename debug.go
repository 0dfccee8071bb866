package sprout

import (
	"fmt"
	"io"
	"os"
)

// debugInterval is how often, in seconds of page time, frame stats are
// printed in debug mode.
const debugInterval = 1.0

// debugOut is where debug lines go. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// frameStats accumulates per-frame metrics between debug prints.
type frameStats struct {
	fromTick  uint64
	elapsed   float64
	pending   int
	tweens    int
	particles int
	running   int
}

// observe records one frame and prints a summary once per debugInterval.
func (st *frameStats) observe(p *Page, dt float64) {
	if !p.debug {
		return
	}
	if st.fromTick == 0 {
		st.fromTick = p.sched.Ticks()
	}
	st.elapsed += dt
	st.pending = p.sched.Pending()
	st.tweens = p.tweens.Len()
	st.particles = 0
	if !p.overlay.disposed() {
		st.particles = p.overlay.emitter.AliveCount()
		st.tweens += p.overlay.tweens.Len()
	}
	st.running = 0
	for _, c := range p.Counters() {
		if c.Running() {
			st.running++
		}
	}
	if st.elapsed < debugInterval {
		return
	}
	p.debugLogf("frames: %d | pending callbacks: %d | tweens: %d | particles: %d | running counters: %d",
		p.sched.Ticks()-st.fromTick+1, st.pending, st.tweens, st.particles, st.running)
	*st = frameStats{}
}

// SetDebugMode enables or disables debug mode. When enabled, intro
// transitions, section reveals, slider changes and once-per-second frame
// stats are logged to stderr.
func (p *Page) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// debugLogf prints one line prefixed with [sprout] when debug mode is on.
func (p *Page) debugLogf(format string, args ...any) {
	if !p.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[sprout] "+format+"\n", args...)
}
