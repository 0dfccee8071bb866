package sprout

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/sprout/content"
)

type sectionKind uint8

const (
	sectionAbout sectionKind = iota
	sectionLeaders
	sectionValues
	sectionStats
	sectionEconomics
)

const (
	sectionGap    = 40.0
	sectionMargin = 64.0
	cardGap       = 24.0
)

// statCounter is a counter plus the copy around it.
type statCounter struct {
	label       string
	prefix      string
	suffix      string
	description string
	counter     *Counter
}

func (sc *statCounter) text() string {
	return sc.prefix + sc.counter.Text() + sc.suffix
}

// section is one block of the page. Its counters mount the first time it
// scrolls into view.
type section struct {
	kind     sectionKind
	title    string
	top      float64
	height   float64
	node     *Node
	counters []*statCounter
	seen     bool
	site     *content.Site
}

func (s *section) bounds(w float64) Rect {
	return Rect{Y: s.top, Width: w, Height: s.height}
}

func (s *section) mount() {
	for _, sc := range s.counters {
		sc.counter.Mount()
	}
}

func (s *section) unmount() {
	for _, sc := range s.counters {
		sc.counter.Unmount()
	}
}

// layoutSections stacks the site's sections top to bottom.
func layoutSections(sched *Scheduler, site *content.Site, roi []float64) []*section {
	var out []*section
	y := 0.0
	add := func(kind sectionKind, title string, height float64) *section {
		s := &section{kind: kind, title: title, top: y, height: height, node: NewNode(title), site: site}
		s.node.Visible = false
		out = append(out, s)
		y += height + sectionGap
		return s
	}

	add(sectionAbout, site.About.Heading, 140+110*float64(len(site.About.Story)))
	if len(site.Leaders) > 0 {
		add(sectionLeaders, "Leadership Team", 300)
	}
	if len(site.Values) > 0 {
		add(sectionValues, "Our Values", 260)
	}
	if len(site.Stats.Items) > 0 {
		s := add(sectionStats, "By the Numbers", 260)
		for _, st := range site.Stats.Items {
			s.counters = append(s.counters, &statCounter{
				label:       st.Title,
				suffix:      st.Suffix,
				description: st.Description,
				counter: NewCounter(sched, CounterConfig{
					To:       st.Value,
					Duration: site.Stats.Duration,
					Decimals: st.Decimals(),
				}),
			})
		}
	}
	if len(site.Economics.Metrics) > 0 {
		s := add(sectionEconomics, site.Economics.Heading, 420)
		for i, m := range site.Economics.Metrics {
			s.counters = append(s.counters, &statCounter{
				label:  m.Label,
				prefix: m.Prefix,
				suffix: m.Suffix,
				counter: NewCounter(sched, CounterConfig{
					To:       roi[i],
					Duration: site.Economics.Duration,
					Decimals: site.Economics.Decimals,
				}),
			})
		}
	}
	return out
}

var (
	headingStyle = textStyle{size: 36, bold: true, color: ColorInk, align: text.AlignCenter}
	titleStyle   = textStyle{size: 20, bold: true, color: ColorInk}
	bodyStyle    = textStyle{size: 16, color: ColorMuted}
	roleStyle    = textStyle{size: 16, color: ColorLeaf}
	figureStyle  = textStyle{size: 32, bold: true, color: ColorLeaf, align: text.AlignCenter}
)

// sliderTrack returns the economics slider track in screen coordinates.
func (s *section) sliderTrack(p *Page) Rect {
	top := s.top - p.scrollY + s.node.Y
	return Rect{X: sectionMargin, Y: top + 76 + 190 + 34, Width: p.w - 2*sectionMargin, Height: 8}
}

// draw renders the section shifted by dy (the negated scroll offset).
// Sections stay hidden until they are revealed.
func (s *section) draw(dst *ebiten.Image, p *Page, dy float64) {
	if !s.node.WorldVisible() {
		return
	}
	top := s.top + dy + s.node.Y
	if top > p.h || top+s.height < 0 {
		return
	}
	a := s.node.WorldAlpha()
	if a <= 0 {
		return
	}
	with := func(st textStyle) textStyle {
		st.color = st.color.WithAlpha(a)
		return st
	}
	w := p.w
	drawText(dst, s.title, w/2, top, with(headingStyle))
	fillRect(dst, Rect{X: w/2 - 48, Y: top + 52, Width: 96, Height: 4}, ColorLeaf.WithAlpha(a))
	y := top + 76
	inner := w - 2*sectionMargin

	switch s.kind {
	case sectionAbout:
		y += drawWrapped(dst, s.site.About.Summary, sectionMargin, y, inner, with(bodyStyle)) + 16
		for _, para := range s.site.About.Story {
			y += drawWrapped(dst, para, sectionMargin, y, inner, with(bodyStyle)) + 12
		}

	case sectionLeaders:
		n := len(s.site.Leaders)
		cw := (inner - cardGap*float64(n-1)) / float64(n)
		for i, l := range s.site.Leaders {
			x := sectionMargin + float64(i)*(cw+cardGap)
			fillRect(dst, Rect{X: x, Y: y, Width: cw, Height: 200}, ColorPanel.WithAlpha(a))
			drawText(dst, l.Name, x+20, y+20, with(titleStyle))
			drawText(dst, l.Role, x+20, y+50, with(roleStyle))
			drawWrapped(dst, l.Bio, x+20, y+84, cw-40, with(bodyStyle))
		}

	case sectionValues:
		n := len(s.site.Values)
		cw := (inner - cardGap*float64(n-1)) / float64(n)
		for i, v := range s.site.Values {
			x := sectionMargin + float64(i)*(cw+cardGap)
			fillRect(dst, Rect{X: x, Y: y, Width: cw, Height: 150}, ColorPanel.WithAlpha(a))
			drawText(dst, v.Title, x+20, y+20, with(titleStyle))
			drawWrapped(dst, v.Description, x+20, y+54, cw-40, with(bodyStyle))
		}

	case sectionStats, sectionEconomics:
		n := len(s.counters)
		cw := (inner - cardGap*float64(n-1)) / float64(n)
		for i, sc := range s.counters {
			x := sectionMargin + float64(i)*(cw+cardGap)
			fillRect(dst, Rect{X: x, Y: y, Width: cw, Height: 160}, ColorPanel.WithAlpha(a))
			center := with(bodyStyle)
			center.align = text.AlignCenter
			drawText(dst, sc.label, x+cw/2, y+20, center)
			drawText(dst, sc.text(), x+cw/2, y+56, with(figureStyle))
			if sc.description != "" {
				drawWrapped(dst, sc.description, x+16, y+104, cw-32, with(bodyStyle))
			}
		}
		if s.kind == sectionEconomics {
			s.drawSlider(dst, p, y+190, a)
		}
	}
}

// drawSlider renders the investment simulator: the slider track, its label
// and the raw metric values for the current position.
func (s *section) drawSlider(dst *ebiten.Image, p *Page, y, a float64) {
	e := s.site.Economics
	inner := p.w - 2*sectionMargin
	drawText(dst, e.Slider.Label+"  (arrow keys)", sectionMargin, y, textStyle{size: 16, bold: true, color: ColorInk.WithAlpha(a)})
	track := s.sliderTrack(p)
	fillRect(dst, track, ColorPanel.WithAlpha(a))
	filled := track
	filled.Width = inner * float64(p.slider) / 100
	fillRect(dst, filled, ColorLeaf.WithAlpha(a))
	fillCircle(dst, track.X+filled.Width, track.Y+4, 10, ColorLeaf.WithAlpha(a))
	drawText(dst, e.Slider.MinLabel, sectionMargin, y+52, textStyle{size: 13, color: ColorMuted.WithAlpha(a)})
	drawText(dst, e.Slider.MaxLabel, sectionMargin+inner, y+52, textStyle{size: 13, color: ColorMuted.WithAlpha(a), align: text.AlignEnd})

	n := len(e.Metrics)
	if n == 0 {
		return
	}
	cw := (inner - cardGap*float64(n-1)) / float64(n)
	for i, m := range e.Metrics {
		x := sectionMargin + float64(i)*(cw+cardGap)
		drawText(dst, m.Label, x, y+90, textStyle{size: 14, color: ColorMuted.WithAlpha(a)})
		v := m.Prefix + FormatFixed(p.roi[i], e.Decimals) + m.Suffix
		drawText(dst, v, x, y+112, textStyle{size: 20, bold: true, color: ColorLeaf.WithAlpha(a)})
	}
}
