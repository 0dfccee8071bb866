// Package sprout renders an animated company landing page with [Ebitengine].
//
// A [Page] is an [ebiten.Game]: a full-screen intro overlay with a progress
// ring and drifting leaves, followed by a scrollable column of sections whose
// statistics count up the first time they scroll into view.
//
// # Quick start
//
// Load a site document and hand it to [Run]:
//
//	site := content.Default()
//	page, err := sprout.NewPage(sprout.NewSystemClock(), site, sprout.PageConfig{
//		Width: 1280, Height: 800, Intro: sprout.DefaultIntroConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sprout.Run(page, sprout.RunConfig{Title: "Sprout", Width: 1280, Height: 800})
//
// # Scheduling
//
// All animation is driven by a [Scheduler] ticked once per frame. It offers
// two kinds of deferred work, both returned as a cancellable [Handle]:
//
//   - [Scheduler.RequestFrame] runs a callback on the next tick, with the
//     frame timestamp.
//   - [Scheduler.After] runs a callback once a fixed delay has elapsed.
//
// Components that own several handles keep them in a [HandleSet] and cancel
// them together on teardown. Time comes from a [Clock]; tests use a
// [ManualClock] and step the scheduler by hand.
//
// # Counters
//
// A [Counter] animates a number from [CounterConfig].From to its target over
// a fixed duration and formats it with a fixed number of decimals. It only
// runs while mounted, and [Counter.SetTarget] restarts the ramp.
//
//	c := sprout.NewCounter(sched, sprout.CounterConfig{To: 25000, Duration: 2 * time.Second})
//	c.Mount()
//
// # Intro
//
// An [Intro] walks RAMPING → HOLDING → EXITING → DONE exactly once and then
// calls its completion callback. The [ExitMotion] it exposes is applied to
// the overlay as tweens (via [gween]).
//
// # Content
//
// Page copy lives in a YAML document (see package sprout/content). Economics
// metrics are tengo expressions of the slider position, and the document can
// be hot-reloaded with [Page.SetContent].
//
// # Debugging
//
// [Page.SetDebugMode] logs intro transitions and frame stats to stderr.
// [LoadTestScript] builds a [TestRunner] that replays clock advances,
// scrolling and slider moves against a page on a [ManualClock].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sprout
