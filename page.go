package sprout

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/sprout/content"
)

const (
	scrollStep    = 60.0
	sliderStep    = 5
	sliderGrab    = 12.0 // pointer slack around the slider track
	maxFrameDelta = 0.1 // seconds; longer gaps are clamped for visual updates
	fadeInOffset  = 20.0
	fadeInSeconds = 0.6
)

// PageConfig sizes the page and times its intro.
type PageConfig struct {
	Width, Height int
	Intro         IntroConfig
}

// SiteIntroConfig returns base with the document's ambient kind and density
// applied when the document sets them.
func SiteIntroConfig(base IntroConfig, site *content.Site) (IntroConfig, error) {
	if site == nil {
		return base, nil
	}
	if site.Intro.Ambient != "" {
		kind, err := ParseAmbientKind(site.Intro.Ambient)
		if err != nil {
			return base, fmt.Errorf("sprout: site intro: %w", err)
		}
		base.Ambient = kind
	}
	if site.Intro.Density > 0 {
		base.Density = site.Intro.Density
	}
	return base, nil
}

// Page is the whole site: the intro overlay gating a scrollable column of
// sections. It implements ebiten.Game.
type Page struct {
	clock Clock
	sched *Scheduler
	w, h  float64

	site *content.Site
	calc *content.Calculator

	intro    *Intro
	overlay  *introOverlay
	ready    bool
	observer StageObserver

	sections []*section
	scrollY  float64
	height   float64
	slider   int
	roi      []float64
	tweens   Tweens

	lastStep time.Duration
	stepped  bool

	debug      bool
	stats      frameStats
	testRunner *TestRunner

	// OnReady is called once, right after the intro completes.
	OnReady func()
}

// NewPage builds the page for site and mounts its intro. Time is read from
// clock; pass a ManualClock to drive the page deterministically.
func NewPage(clock Clock, site *content.Site, cfg PageConfig) (*Page, error) {
	if site == nil {
		return nil, fmt.Errorf("sprout: new page: nil site")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sprout: new page: size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if err := cfg.Intro.Validate(); err != nil {
		return nil, fmt.Errorf("sprout: new page: %w", err)
	}
	p := &Page{
		clock: clock,
		sched: NewScheduler(clock),
		w:     float64(cfg.Width),
		h:     float64(cfg.Height),
	}
	if err := p.build(site); err != nil {
		return nil, err
	}
	p.intro = NewIntro(p.sched, cfg.Intro, p.introComplete)
	p.intro.SetObserver(p)
	p.overlay = newIntroOverlay(p.intro, p.w, p.h)
	p.intro.Mount(p.overlay.emitter)
	return p, nil
}

// build lays out sections for a fresh page.
func (p *Page) build(site *content.Site) error {
	calc, roi, err := compileSite(site)
	if err != nil {
		return err
	}
	p.apply(site, calc, roi)
	return nil
}

// compileSite prepares the economics calculator and the slider's initial
// metrics without touching any page state.
func compileSite(site *content.Site) (*content.Calculator, []float64, error) {
	calc, err := content.NewCalculator(site.Economics)
	if err != nil {
		return nil, nil, fmt.Errorf("sprout: build page: %w", err)
	}
	roi, err := calc.Evaluate(float64(site.Economics.Slider.Value()))
	if err != nil {
		return nil, nil, fmt.Errorf("sprout: build page: %w", err)
	}
	return calc, roi, nil
}

func (p *Page) apply(site *content.Site, calc *content.Calculator, roi []float64) {
	p.site = site
	p.calc = calc
	p.slider = site.Economics.Slider.Value()
	p.roi = roi
	p.sections = layoutSections(p.sched, site, roi)

	p.height = 0
	for _, s := range p.sections {
		p.height = math.Max(p.height, s.top+s.height)
	}
	p.scrollY = p.clampScroll(p.scrollY)
}

// SetContent swaps in a new site document, e.g. after the file on disk was
// edited. A document that fails to compile leaves the current layout and its
// running counters untouched. Otherwise every old counter is unmounted and
// sections that are on screen mount their new counters immediately.
func (p *Page) SetContent(site *content.Site) error {
	if site == nil {
		return fmt.Errorf("sprout: set content: nil site")
	}
	calc, roi, err := compileSite(site)
	if err != nil {
		return err
	}
	for _, s := range p.sections {
		s.unmount()
	}
	p.apply(site, calc, roi)
	p.debugLogf("content reloaded: %d sections", len(p.sections))
	p.revealVisible()
	return nil
}

// StageChanged forwards intro transitions to the overlay, the debug log and
// any observer installed with SetObserver.
func (p *Page) StageChanged(ev StageEvent) {
	p.debugLogf("intro: %s -> %s at %v", ev.From, ev.To, ev.At)
	if ev.To == StageExiting {
		p.overlay.exit(p.intro.ExitMotion())
	}
	if p.observer != nil {
		p.observer.StageChanged(ev)
	}
}

// SetObserver installs an additional intro stage observer.
func (p *Page) SetObserver(o StageObserver) {
	p.observer = o
}

func (p *Page) introComplete() {
	p.ready = true
	p.overlay.dispose()
	p.revealVisible()
	if p.OnReady != nil {
		p.OnReady()
	}
}

// Update implements ebiten.Game.
func (p *Page) Update() error {
	p.pollInput()
	p.step()
	return nil
}

// step runs one frame: scripted actions, scheduled callbacks, then visual
// updates.
func (p *Page) step() {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}

	now := p.clock.Now()
	dt := 0.0
	if p.stepped {
		dt = math.Min((now - p.lastStep).Seconds(), maxFrameDelta)
	}
	p.lastStep = now
	p.stepped = true

	p.sched.Tick()
	if !p.overlay.disposed() {
		p.overlay.update(dt)
	}
	p.tweens.Update(float32(dt))
	p.stats.observe(p, dt)
}

func (p *Page) pollInput() {
	if !p.ready {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.ScrollBy(-dy * scrollStep)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		p.ScrollBy(p.h / 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		p.ScrollBy(-p.h / 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p.nudgeSlider(sliderStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p.nudgeSlider(-sliderStep)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.sliderAt(float64(x), float64(y))
	}
}

// sliderAt moves the slider under the pointer when (x, y) is on a revealed
// economics track, and reports whether it was.
func (p *Page) sliderAt(x, y float64) bool {
	if !p.ready {
		return false
	}
	for _, s := range p.sections {
		if s.kind != sectionEconomics || !s.seen {
			continue
		}
		track := s.sliderTrack(p)
		hit := Rect{
			X:      track.X - sliderGrab,
			Y:      track.Y - sliderGrab,
			Width:  track.Width + 2*sliderGrab,
			Height: track.Height + 2*sliderGrab,
		}
		if !hit.Contains(x, y) {
			continue
		}
		v := int(math.Round(clamp01((x-track.X)/track.Width) * 100))
		if err := p.SetSlider(v); err != nil {
			p.debugLogf("%v", err)
		}
		return true
	}
	return false
}

func (p *Page) nudgeSlider(delta int) {
	if err := p.SetSlider(p.slider + delta); err != nil {
		p.debugLogf("%v", err)
	}
}

// Ready reports whether the intro has completed and the sections are
// interactive.
func (p *Page) Ready() bool {
	return p.ready
}

// Intro returns the page's intro sequencer.
func (p *Page) Intro() *Intro {
	return p.intro
}

// Scheduler returns the page's frame scheduler.
func (p *Page) Scheduler() *Scheduler {
	return p.sched
}

// ScrollBy scrolls the page by dy pixels. Ignored until the page is ready.
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.scrollY + dy)
}

// ScrollTo scrolls to y, clamped to the content height. Ignored until the
// page is ready.
func (p *Page) ScrollTo(y float64) {
	if !p.ready {
		return
	}
	p.scrollY = p.clampScroll(y)
	p.revealVisible()
}

// ScrollY returns the current scroll offset.
func (p *Page) ScrollY() float64 {
	return p.scrollY
}

func (p *Page) clampScroll(y float64) float64 {
	return math.Max(0, math.Min(y, math.Max(0, p.height-p.h)))
}

// Slider returns the economics slider position.
func (p *Page) Slider() int {
	return p.slider
}

// SetSlider moves the economics slider to v (clamped to [0, 100]) and
// retargets the metric counters. Ignored until the page is ready.
func (p *Page) SetSlider(v int) error {
	if !p.ready {
		return nil
	}
	v = max(0, min(100, v))
	if v == p.slider {
		return nil
	}
	roi, err := p.calc.Evaluate(float64(v))
	if err != nil {
		return fmt.Errorf("sprout: set slider: %w", err)
	}
	p.slider = v
	p.roi = roi
	for _, s := range p.sections {
		if s.kind != sectionEconomics {
			continue
		}
		for i, sc := range s.counters {
			sc.counter.SetTarget(roi[i])
		}
	}
	p.debugLogf("slider %d: metrics %v", v, roi)
	return nil
}

// Metrics returns the current (unanimated) economics metric values.
func (p *Page) Metrics() []float64 {
	return p.roi
}

// Counters returns the counters of every section, in layout order.
func (p *Page) Counters() []*Counter {
	var out []*Counter
	for _, s := range p.sections {
		for _, sc := range s.counters {
			out = append(out, sc.counter)
		}
	}
	return out
}

// revealVisible mounts the counters of sections that have scrolled into view.
// Each section triggers once.
func (p *Page) revealVisible() {
	if !p.ready {
		return
	}
	view := Rect{Y: p.scrollY, Width: p.w, Height: p.h}
	for _, s := range p.sections {
		if s.seen || !view.Intersects(s.bounds(p.w)) {
			continue
		}
		s.seen = true
		s.node.Visible = true
		s.node.Alpha = 0
		s.node.Y = fadeInOffset
		p.tweens.Add(
			TweenAlpha(s.node, 1, fadeInSeconds, ease.OutQuad),
			TweenPosition(s.node, 0, 0, fadeInSeconds, ease.OutQuad),
		)
		s.mount()
		p.debugLogf("section %q in view: %d counters mounted", s.title, len(s.counters))
	}
}

// Close unmounts the intro and every counter. The page must not be used
// afterwards.
func (p *Page) Close() {
	p.intro.Unmount()
	p.overlay.dispose()
	for _, s := range p.sections {
		s.unmount()
	}
}

// Draw implements ebiten.Game.
func (p *Page) Draw(screen *ebiten.Image) {
	fillRect(screen, Rect{Width: p.w, Height: p.h}, ColorPaper)
	for _, s := range p.sections {
		s.draw(screen, p, -p.scrollY)
	}
	if !p.overlay.disposed() {
		p.overlay.draw(screen, p.site.Company, p.site.Tagline)
	}
}

// Layout implements ebiten.Game.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(p.w), int(p.h)
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	TPS           int
}

// Run opens a window and runs game until the window closes. game is usually a
// *Page or a type embedding one; it is closed when the loop ends.
func Run(game ebiten.Game, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if c, ok := game.(interface{ Close() }); ok {
		defer c.Close()
	}
	return ebiten.RunGame(game)
}
