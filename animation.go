package sprout

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenRotation) and call Update(dt) each frame. The group
// writes values straight into the node. If the target node is disposed, the
// group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenRotation animates node.Rotation.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation), float32(to), duration, fn)
	g.fields[0] = &node.Rotation
	return g
}

// Tweens is a list of groups updated together and pruned once done.
type Tweens []*TweenGroup

// Add appends groups to the list.
func (ts *Tweens) Add(groups ...*TweenGroup) {
	*ts = append(*ts, groups...)
}

// Update advances every group by dt seconds and drops finished ones.
func (ts *Tweens) Update(dt float32) {
	live := (*ts)[:0]
	for _, g := range *ts {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(*ts); i++ {
		(*ts)[i] = nil
	}
	*ts = live
}

// Len returns the number of groups still running.
func (ts Tweens) Len() int {
	return len(ts)
}

// ExitDirection is where the overlay leaves the screen.
type ExitDirection uint8

const (
	ExitDown  ExitDirection = iota // slide toward +Y
	ExitUp                         // slide toward -Y
	ExitLeft                       // slide toward -X
	ExitRight                      // slide toward +X
	ExitFade                       // fade in place
)

// ExitMotion is a declarative description of the intro's exit transition.
type ExitMotion struct {
	Direction ExitDirection
	// Distance is the travel as a fraction of the viewport extent along the
	// direction (1 = a full screen).
	Distance float64
	// FadeTo is the final alpha.
	FadeTo   float64
	Duration time.Duration
	Easing   Easing
}

// DefaultExitMotion slides a full screen down while fading out over one
// second with a symmetric cubic ease.
func DefaultExitMotion() ExitMotion {
	return ExitMotion{
		Direction: ExitDown,
		Distance:  1,
		FadeTo:    0,
		Duration:  time.Second,
		Easing:    ease.InOutCubic,
	}
}

// Apply builds the tweens that play m on node inside a w×h viewport.
func (m ExitMotion) Apply(node *Node, w, h float64) []*TweenGroup {
	d := float32(m.Duration.Seconds())
	fn := m.Easing
	if fn == nil {
		fn = ease.Linear
	}
	x, y := node.X, node.Y
	switch m.Direction {
	case ExitDown:
		y += h * m.Distance
	case ExitUp:
		y -= h * m.Distance
	case ExitLeft:
		x -= w * m.Distance
	case ExitRight:
		x += w * m.Distance
	}
	groups := []*TweenGroup{TweenAlpha(node, m.FadeTo, d, fn)}
	if m.Direction != ExitFade {
		groups = append(groups, TweenPosition(node, x, y, d, fn))
	}
	return groups
}
