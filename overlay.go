package sprout

import (
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

const (
	ringRadius     = 90
	ringWidth      = 14
	orbitPeriod    = 4.0 // seconds per orbit of the decorative dots
	pulsePeriod    = 2.0 // seconds per dot pulse
	revealDuration = 1.0
	revealOffset   = 20
	spinInDuration = 0.8
)

// introOverlay draws an Intro: background, leaves, title, ring and label.
// It reads the intro's state and never writes it.
type introOverlay struct {
	intro   *Intro
	emitter *ParticleEmitter

	root  *Node
	title *Node
	ring  *Node

	tweens   Tweens
	revealed bool
	exiting  bool
	clock    float64

	w, h float64
}

func newIntroOverlay(intro *Intro, w, h float64) *introOverlay {
	o := &introOverlay{
		intro:   intro,
		emitter: NewParticleEmitter(EmitterConfig{Area: Rect{Width: w, Height: h}}),
		root:    NewNode("intro"),
		title:   NewNode("intro-title"),
		ring:    NewNode("intro-ring"),
		w:       w,
		h:       h,
	}
	o.root.AddChild(o.title)
	o.root.AddChild(o.ring)

	o.title.Alpha = 0
	o.title.Y = revealOffset
	o.title.Visible = false

	o.ring.ScaleX, o.ring.ScaleY = 0, 0
	o.ring.Rotation = -math.Pi
	o.tweens.Add(
		TweenScale(o.ring, 1, 1, spinInDuration, ease.OutBack),
		TweenRotation(o.ring, 0, spinInDuration, ease.OutBack),
	)
	return o
}

// update advances the overlay's own animations by dt seconds.
func (o *introOverlay) update(dt float64) {
	if o.root.IsDisposed() {
		return
	}
	o.clock += dt
	o.emitter.Update(dt)
	if !o.revealed && o.intro.TextVisible() {
		o.revealed = true
		o.title.Visible = true
		o.tweens.Add(
			TweenAlpha(o.title, 1, revealDuration, ease.OutQuad),
			TweenPosition(o.title, o.title.X, 0, revealDuration, ease.OutCubic),
		)
	}
	o.tweens.Update(float32(dt))
}

// exit starts the exit transition described by m.
func (o *introOverlay) exit(m ExitMotion) {
	if o.exiting || o.root.IsDisposed() {
		return
	}
	o.exiting = true
	// Leaves already in flight ride out with the overlay.
	o.emitter.Stop()
	o.tweens.Add(m.Apply(o.root, o.w, o.h)...)
}

func (o *introOverlay) dispose() {
	o.root.Dispose()
	o.emitter.Reset()
	o.tweens = nil
}

func (o *introOverlay) disposed() bool {
	return o.root.IsDisposed()
}

func (o *introOverlay) draw(dst *ebiten.Image, company, tagline string) {
	if o.root.IsDisposed() || !o.root.Visible {
		return
	}
	ox, oy := o.root.X, o.root.Y
	alpha := o.root.Alpha
	fillRect(dst, Rect{X: ox, Y: oy, Width: o.w, Height: o.h}, ColorForest.WithAlpha(alpha))
	drawParticles(dst, o.emitter, ox, oy, alpha)

	cx := o.w/2 + ox
	if o.title.WorldVisible() {
		tx, ty := o.title.WorldPosition()
		titleAlpha := o.title.WorldAlpha()
		drawText(dst, company, cx+tx-ox, o.h/2-200+ty, textStyle{size: 52, bold: true, color: ColorWhite.WithAlpha(titleAlpha), align: text.AlignCenter})
		drawText(dst, tagline, cx+tx-ox, o.h/2-130+ty, textStyle{size: 22, color: ColorMint.WithAlpha(titleAlpha), align: text.AlignCenter})
	}

	cy := o.h/2 + 80 + oy
	scale := o.ring.ScaleX
	r := ringRadius * scale
	ringAlpha := o.ring.WorldAlpha()
	drawRing(dst, cx, cy, r, ringWidth*scale, o.intro.Fraction(), o.ring.Rotation,
		ColorTrack.WithAlpha(ringAlpha), ColorProgress.WithAlpha(ringAlpha))

	label := strconv.Itoa(o.intro.Percent()) + "%"
	drawText(dst, label, cx, cy-20*scale, textStyle{size: 34 * math.Max(scale, 0.01), bold: true, color: ColorWhite.WithAlpha(ringAlpha), align: text.AlignCenter})

	// Two dots orbit the ring in opposite directions with offset pulses.
	orbit := 2 * math.Pi * o.clock / orbitPeriod
	for i, dir := range [2]float64{1, -1} {
		a := -math.Pi/4 + float64(i)*math.Pi + dir*orbit
		pulse := 1 + 0.2*math.Abs(math.Sin(math.Pi*(o.clock+float64(i))/pulsePeriod))
		dx := cx + (r+28)*math.Cos(a)
		dy := cy + (r+28)*math.Sin(a)
		fillCircle(dst, dx, dy, 16*pulse*scale, ColorAccent.WithAlpha(0.75*ringAlpha))
	}
}
