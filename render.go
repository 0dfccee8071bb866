package sprout

import (
	"bytes"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularFace *text.GoTextFaceSource
	boldFace    *text.GoTextFaceSource
)

func loadFonts() {
	fontOnce.Do(func() {
		var err error
		regularFace, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("sprout: load regular font: " + err.Error())
		}
		boldFace, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			panic("sprout: load bold font: " + err.Error())
		}
	})
}

// fontFace returns a Go font face of the given size.
func fontFace(size float64, bold bool) *text.GoTextFace {
	loadFonts()
	src := regularFace
	if bold {
		src = boldFace
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// textStyle bundles the parameters of one drawText call.
type textStyle struct {
	size  float64
	bold  bool
	color Color
	align text.Align
}

func drawText(dst *ebiten.Image, s string, x, y float64, st textStyle) {
	if s == "" || st.color.A <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(st.color.RGBA())
	op.PrimaryAlign = st.align
	text.Draw(dst, s, fontFace(st.size, st.bold), op)
}

// drawWrapped draws s word-wrapped to maxW and returns the height used.
func drawWrapped(dst *ebiten.Image, s string, x, y, maxW float64, st textStyle) float64 {
	lineH := st.size * 1.4
	lines := wrapText(s, maxW, func(line string) float64 {
		return text.Advance(line, fontFace(st.size, st.bold))
	})
	for i, line := range lines {
		drawText(dst, line, x, y+float64(i)*lineH, st)
	}
	return float64(len(lines)) * lineH
}

// wrapText greedily breaks s into lines no wider than maxW as measured by
// width. A single word wider than maxW gets a line of its own.
func wrapText(s string, maxW float64, width func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if width(candidate) > maxW {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if c.A <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), false)
}

func fillCircle(dst *ebiten.Image, cx, cy, r float64, c Color) {
	if c.A <= 0 || r <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c.RGBA(), true)
}

// ringSegments is the number of chords used for a full progress circle.
const ringSegments = 96

// drawRing draws a circular track and, over it, an arc covering fraction of
// the circle clockwise from 12 o'clock rotated by rotation radians.
func drawRing(dst *ebiten.Image, cx, cy, r, width, fraction, rotation float64, track, arc Color) {
	if r <= 0 {
		return
	}
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(width), track.RGBA(), true)

	fraction = clamp01(fraction)
	if fraction == 0 || arc.A <= 0 {
		return
	}
	start := -math.Pi/2 + rotation
	sweep := 2 * math.Pi * fraction
	n := int(math.Ceil(ringSegments * fraction))
	clr := arc.RGBA()
	px, py := cx+r*math.Cos(start), cy+r*math.Sin(start)
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		vector.StrokeLine(dst, float32(px), float32(py), float32(x), float32(y), float32(width), clr, true)
		px, py = x, y
	}
	// Round caps.
	fillCircle(dst, cx+r*math.Cos(start), cy+r*math.Sin(start), width/2, arc)
	fillCircle(dst, px, py, width/2, arc)
}

// drawParticles renders every alive particle of e as a filled circle offset by
// (ox, oy) and faded by alpha.
func drawParticles(dst *ebiten.Image, e *ParticleEmitter, ox, oy, alpha float64) {
	c := e.config.Color
	e.eachParticle(func(x, y, r, a float64) {
		fillCircle(dst, x+ox, y+oy, r, c.WithAlpha(a*alpha))
	})
}
