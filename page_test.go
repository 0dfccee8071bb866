package sprout

import (
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/sprout/content"
)

func newTestPage(t *testing.T) (*Page, *ManualClock) {
	t.Helper()
	clock := &ManualClock{}
	p, err := NewPage(clock, content.Default(), PageConfig{Width: 1280, Height: 800, Intro: DefaultIntroConfig()})
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p, clock
}

// stepAt moves the clock to at and runs one frame.
func stepAt(p *Page, clock *ManualClock, at time.Duration) {
	clock.Set(at)
	p.step()
}

// finishIntro runs the default intro to completion.
func finishIntro(t *testing.T, p *Page, clock *ManualClock) {
	t.Helper()
	for _, n := range []int{0, 3000, 3500, 4500} {
		stepAt(p, clock, ms(n))
	}
	if !p.Ready() {
		t.Fatalf("page not ready after intro; stage %v", p.Intro().Stage())
	}
}

func TestNewPageValidation(t *testing.T) {
	clock := &ManualClock{}
	if _, err := NewPage(clock, nil, PageConfig{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for nil site")
	}
	if _, err := NewPage(clock, content.Default(), PageConfig{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	_, err := NewPage(clock, content.Default(), PageConfig{Width: 10, Height: 10, Intro: IntroConfig{RampDuration: -1}})
	if !errors.Is(err, ErrInvalidIntroConfig) {
		t.Errorf("err = %v, want ErrInvalidIntroConfig", err)
	}
}

func TestPageIntroGatesSections(t *testing.T) {
	p, clock := newTestPage(t)
	readyCalls := 0
	p.OnReady = func() { readyCalls++ }

	if p.Intro().Stage() != StageRamping || p.Ready() {
		t.Fatal("page should start in the intro")
	}
	if p.overlay.emitter.Kind() != AmbientLeaves || !p.overlay.emitter.IsActive() {
		t.Error("intro did not configure the leaf emitter")
	}
	for _, c := range p.Counters() {
		if c.Mounted() {
			t.Fatal("counter mounted during intro")
		}
	}

	stepAt(p, clock, 0)
	stepAt(p, clock, ms(3000))
	stepAt(p, clock, ms(3500))
	if !p.overlay.exiting {
		t.Error("overlay did not start its exit when the intro entered EXITING")
	}
	if p.overlay.emitter.IsActive() {
		t.Error("emitter still spawning during the exit")
	}
	for _, s := range p.sections {
		if s.node.Visible {
			t.Errorf("section %q visible before the intro completed", s.title)
		}
	}
	if p.Ready() {
		t.Fatal("ready before exit wait elapsed")
	}
	stepAt(p, clock, ms(4500))
	if !p.Ready() || readyCalls != 1 {
		t.Fatalf("ready = %v OnReady calls = %d", p.Ready(), readyCalls)
	}
	if !p.overlay.disposed() {
		t.Error("overlay not disposed after intro")
	}
	if !p.sections[0].node.Visible {
		t.Error("first section not revealed when the page became ready")
	}
	for n := 1; n <= 10; n++ {
		stepAt(p, clock, ms(4500+16*n))
	}
	if readyCalls != 1 {
		t.Errorf("OnReady called %d times", readyCalls)
	}
}

func TestPageInputIgnoredBeforeReady(t *testing.T) {
	p, _ := newTestPage(t)
	p.ScrollTo(500)
	if p.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0 before ready", p.ScrollY())
	}
	if err := p.SetSlider(90); err != nil {
		t.Fatal(err)
	}
	if p.Slider() != 50 {
		t.Errorf("Slider = %d, want 50 before ready", p.Slider())
	}
}

func TestPageCountersMountWhenScrolledIntoView(t *testing.T) {
	p, clock := newTestPage(t)
	finishIntro(t, p, clock)

	var stats *section
	for _, s := range p.sections {
		if s.kind == sectionStats {
			stats = s
		}
	}
	if stats == nil {
		t.Fatal("no stats section")
	}
	if stats.seen || stats.counters[0].counter.Mounted() {
		t.Fatal("stats section below the fold already mounted")
	}

	p.ScrollTo(stats.top)
	if !stats.seen {
		t.Fatal("stats section not revealed after scrolling")
	}
	now := clock.Now()
	stepAt(p, clock, now)
	stepAt(p, clock, now+ms(1000))
	if got := stats.counters[0].text(); got != "12500 tons" {
		t.Errorf("half way: %q, want %q", got, "12500 tons")
	}
	stepAt(p, clock, now+ms(2000))
	want := []string{"25000 tons", "75", "12", "5"}
	for i, sc := range stats.counters {
		if got := sc.text(); got != want[i] {
			t.Errorf("counter %d = %q, want %q", i, got, want[i])
		}
	}

	// Scrolling away and back does not restart the counters.
	p.ScrollTo(0)
	p.ScrollTo(stats.top)
	if stats.counters[0].counter.Running() {
		t.Error("revealed section restarted its counters")
	}
}

func TestPageScrollClamped(t *testing.T) {
	p, clock := newTestPage(t)
	finishIntro(t, p, clock)
	p.ScrollTo(-100)
	if p.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0", p.ScrollY())
	}
	p.ScrollTo(1e9)
	if limit := p.height - p.h; p.ScrollY() != limit {
		t.Errorf("ScrollY = %v, want %v", p.ScrollY(), limit)
	}
	p.ScrollBy(-10)
	if p.ScrollY() != p.height-p.h-10 {
		t.Errorf("ScrollBy did not move relative to current offset")
	}
}

func TestPageSliderRetargetsEconomics(t *testing.T) {
	p, clock := newTestPage(t)
	finishIntro(t, p, clock)
	p.ScrollTo(1e9)

	var econ *section
	for _, s := range p.sections {
		if s.kind == sectionEconomics {
			econ = s
		}
	}
	if econ == nil || !econ.seen {
		t.Fatal("economics section not revealed at the bottom")
	}
	now := clock.Now()
	stepAt(p, clock, now)
	stepAt(p, clock, now+ms(1500))
	if got := econ.counters[0].text(); got != "20.0%" {
		t.Errorf("irr at 50 = %q, want 20.0%%", got)
	}

	if err := p.SetSlider(150); err != nil {
		t.Fatal(err)
	}
	if p.Slider() != 100 {
		t.Errorf("Slider = %d, want clamped 100", p.Slider())
	}
	want := []float64{22, 5, 100, 2}
	for i, v := range p.Metrics() {
		if v != want[i] {
			t.Errorf("metric %d = %v, want %v", i, v, want[i])
		}
		if econ.counters[i].counter.Target() != want[i] {
			t.Errorf("counter %d target = %v, want %v", i, econ.counters[i].counter.Target(), want[i])
		}
	}

	now = clock.Now()
	stepAt(p, clock, now)
	stepAt(p, clock, now+ms(1500))
	if got := econ.counters[2].text(); got != "$100.0M" {
		t.Errorf("investment at 100 = %q, want $100.0M", got)
	}
}

func TestPageSliderFollowsPointer(t *testing.T) {
	p, clock := newTestPage(t)
	var econ *section
	for _, s := range p.sections {
		if s.kind == sectionEconomics {
			econ = s
		}
	}
	if econ == nil {
		t.Fatal("no economics section")
	}
	track := econ.sliderTrack(p)
	if p.sliderAt(track.X, track.Y) {
		t.Error("pointer accepted before the page is ready")
	}

	finishIntro(t, p, clock)
	p.ScrollTo(1e9)
	track = econ.sliderTrack(p)
	if !p.sliderAt(track.X+track.Width*0.8, track.Y+track.Height/2) {
		t.Fatal("pointer on the track missed")
	}
	if p.Slider() != 80 {
		t.Errorf("Slider = %d, want 80", p.Slider())
	}
	if !p.sliderAt(track.X-5, track.Y) || p.Slider() != 0 {
		t.Errorf("left of the track: Slider = %d, want 0", p.Slider())
	}
	if p.sliderAt(track.X+10, track.Y-100) || p.Slider() != 0 {
		t.Error("pointer above the track moved the slider")
	}
}

func TestPageSetContent(t *testing.T) {
	p, clock := newTestPage(t)
	finishIntro(t, p, clock)
	p.ScrollTo(1e9)
	old := p.Counters()
	if !old[0].Mounted() {
		t.Fatal("stats counters not mounted at the bottom of the page")
	}

	site := content.Default()
	site.Stats.Items = site.Stats.Items[:2]
	if err := p.SetContent(site); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	for _, c := range old {
		if c.Mounted() {
			t.Fatal("old counter still mounted after SetContent")
		}
	}
	for _, s := range p.sections {
		if s.kind == sectionStats && len(s.counters) != 2 {
			t.Errorf("stats counters = %d, want 2", len(s.counters))
		}
	}
}

func TestPageSetContentErrorKeepsLayout(t *testing.T) {
	p, clock := newTestPage(t)
	finishIntro(t, p, clock)
	p.ScrollTo(1e9)
	before := p.sections
	now := clock.Now()
	stepAt(p, clock, now)
	stepAt(p, clock, now+ms(3000))
	shown := make(map[*Counter]string)
	for _, c := range p.Counters() {
		shown[c] = c.Text()
	}

	bad := content.Default()
	bad.Economics.Metrics = []content.Metric{{Key: "broken", Expr: "v +* 2"}}
	if err := p.SetContent(bad); err == nil {
		t.Fatal("expected compile error")
	}
	if len(p.sections) != len(before) || p.sections[0] != before[0] {
		t.Error("failed reload replaced the layout")
	}
	for _, s := range before {
		for _, sc := range s.counters {
			if s.seen && !sc.counter.Mounted() {
				t.Errorf("counter %q left unmounted after failed reload", sc.label)
			}
			if sc.counter.Running() || sc.counter.Text() != shown[sc.counter] {
				t.Errorf("counter %q restarted after failed reload: %q, was %q", sc.label, sc.counter.Text(), shown[sc.counter])
			}
		}
	}
	if err := p.SetContent(nil); err == nil {
		t.Error("expected error for nil site")
	}
}

func TestPageCloseCancelsEverything(t *testing.T) {
	p, clock := newTestPage(t)
	stepAt(p, clock, 0)
	stepAt(p, clock, ms(1000))
	p.Close()
	if n := p.Scheduler().Pending(); n != 0 {
		t.Errorf("Pending = %d after Close, want 0", n)
	}
	stepAt(p, clock, ms(10000))
	if p.Ready() {
		t.Error("closed page completed its intro")
	}
}

func TestPageObserver(t *testing.T) {
	p, clock := newTestPage(t)
	var got []Stage
	p.SetObserver(StageObserverFunc(func(ev StageEvent) { got = append(got, ev.To) }))
	finishIntro(t, p, clock)
	want := []Stage{StageHolding, StageExiting, StageDone}
	if len(got) != len(want) {
		t.Fatalf("observed %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPageLayout(t *testing.T) {
	p, _ := newTestPage(t)
	if w, h := p.Layout(1920, 1080); w != 1280 || h != 800 {
		t.Errorf("Layout = %dx%d, want 1280x800", w, h)
	}
}

func TestSiteIntroConfig(t *testing.T) {
	site := content.Default()
	site.Intro.Ambient = "bubbles"
	site.Intro.Density = 25
	got, err := SiteIntroConfig(DefaultIntroConfig(), site)
	if err != nil {
		t.Fatal(err)
	}
	if got.Ambient != AmbientBubbles || got.Density != 25 {
		t.Errorf("got %v/%d, want bubbles/25", got.Ambient, got.Density)
	}

	site.Intro = content.Intro{}
	got, err = SiteIntroConfig(DefaultIntroConfig(), site)
	if err != nil || got.Ambient != AmbientLeaves || got.Density != 70 {
		t.Errorf("unset site intro changed base: %v/%d, %v", got.Ambient, got.Density, err)
	}

	site.Intro.Ambient = "snow"
	if _, err := SiteIntroConfig(DefaultIntroConfig(), site); err == nil {
		t.Error("expected unknown ambient error")
	}
	if got, err := SiteIntroConfig(DefaultIntroConfig(), nil); err != nil || got != DefaultIntroConfig() {
		t.Error("nil site should return base")
	}
}

func TestWrapText(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }
	got := wrapText("the quick brown fox jumps", 10, width)
	want := []string{"the quick", "brown fox", "jumps"}
	if len(got) != len(want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := wrapText("extraordinarily long", 5, width); len(got) != 2 {
		t.Errorf("overlong words = %q, want one per line", got)
	}
	if got := wrapText("   ", 5, width); len(got) != 0 {
		t.Errorf("blank = %q, want no lines", got)
	}
}
