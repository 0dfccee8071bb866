package sprout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// AmbientKind selects a decorative particle preset.
type AmbientKind uint8

const (
	AmbientLeaves  AmbientKind = iota // drifting leaves, falling with sway
	AmbientBubbles                    // rising bubbles
	AmbientPollen                     // slow floating specks
)

func (k AmbientKind) String() string {
	switch k {
	case AmbientLeaves:
		return "leaves"
	case AmbientBubbles:
		return "bubbles"
	case AmbientPollen:
		return "pollen"
	default:
		return fmt.Sprintf("AmbientKind(%d)", uint8(k))
	}
}

// ParseAmbientKind maps a preset name ("leaves", "bubbles", "pollen") to its
// kind. Matching ignores case and surrounding space.
func ParseAmbientKind(s string) (AmbientKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leaves":
		return AmbientLeaves, nil
	case "bubbles":
		return AmbientBubbles, nil
	case "pollen":
		return AmbientPollen, nil
	}
	return 0, fmt.Errorf("unknown ambient kind %q", s)
}

// AmbientEffects is the decorative collaborator the intro configures once at
// mount. It owns its own loop and never reports back.
type AmbientEffects interface {
	Configure(kind AmbientKind, density int)
}

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in seconds
	maxLife    float64 // initial lifetime (for computing t)
	phase      float64 // sway phase offset
	size       float64
	startScale float64
	endScale   float64
	scale      float64
	startAlpha float64
	endAlpha   float64
	alpha      float64
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second.
	EmitRate float64
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// Size is the range of particle radii in pixels at scale 1.
	Size Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2
	// Sway is the horizontal oscillation amplitude in pixels per second.
	Sway float64
	// Area is the spawn rectangle. Particles start at a random point inside it.
	Area Rect
	// Color tints every particle.
	Color Color
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
	kind      AmbientKind
	elapsed   float64
}

// NewParticleEmitter creates a ParticleEmitter with a preallocated pool.
func NewParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, max),
	}
}

// Configure replaces the emitter's config with the preset for kind, scaled by
// density, and starts emitting. It keeps the current spawn area.
func (e *ParticleEmitter) Configure(kind AmbientKind, density int) {
	cfg := AmbientPreset(kind, density)
	cfg.Area = e.config.Area
	e.kind = kind
	e.config = cfg
	if len(e.particles) != cfg.MaxParticles {
		e.particles = make([]particle, cfg.MaxParticles)
	}
	e.alive = 0
	e.emitAccum = 0
	e.active = false
	if density > 0 {
		e.Start()
	}
}

// Kind returns the preset last passed to Configure.
func (e *ParticleEmitter) Kind() AmbientKind {
	return e.kind
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Update advances particle simulation by dt seconds.
func (e *ParticleEmitter) Update(dt float64) {
	e.elapsed += dt
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy

		sway := e.config.Sway * math.Sin(e.elapsed*2+p.phase)
		p.x += (p.vx + sway) * dt
		p.y += p.vy * dt

		t := 1.0 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)

		i++
	}

	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := &e.particles[e.alive]

	angle := e.config.Angle.Random()
	speed := e.config.Speed.Random()
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed

	a := e.config.Area
	p.x = a.X + rand.Float64()*a.Width
	p.y = a.Y + rand.Float64()*a.Height
	p.phase = rand.Float64() * 2 * math.Pi

	p.life = e.config.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.size = e.config.Size.Random()
	p.startScale = e.config.StartScale.Random()
	p.endScale = e.config.EndScale.Random()
	p.scale = p.startScale
	p.startAlpha = e.config.StartAlpha.Random()
	p.endAlpha = e.config.EndAlpha.Random()
	p.alpha = p.startAlpha

	e.alive++
}

// eachParticle calls fn with the position, radius and alpha of every alive
// particle.
func (e *ParticleEmitter) eachParticle(fn func(x, y, r, alpha float64)) {
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		fn(p.x, p.y, p.size*p.scale, p.alpha)
	}
}

// AmbientPreset returns the emitter config for kind. Density is the number of
// particles alive at steady state; the emit rate is derived from it and the
// preset's mean lifetime.
func AmbientPreset(kind AmbientKind, density int) EmitterConfig {
	if density < 0 {
		density = 0
	}
	var cfg EmitterConfig
	switch kind {
	case AmbientBubbles:
		cfg = EmitterConfig{
			Lifetime:   Range{4, 7},
			Speed:      Range{20, 50},
			Angle:      Range{-math.Pi/2 - 0.2, -math.Pi/2 + 0.2},
			Size:       Range{2, 6},
			StartScale: Range{0.6, 0.8},
			EndScale:   Range{1, 1.3},
			StartAlpha: Range{0.5, 0.7},
			EndAlpha:   Range{0, 0},
			Sway:       10,
			Color:      Color{R: 0.75, G: 0.95, B: 0.85, A: 1},
		}
	case AmbientPollen:
		cfg = EmitterConfig{
			Lifetime:   Range{5, 9},
			Speed:      Range{5, 15},
			Angle:      Range{0, 2 * math.Pi},
			Size:       Range{1, 2.5},
			StartScale: Range{1, 1},
			EndScale:   Range{0.5, 0.8},
			StartAlpha: Range{0.4, 0.8},
			EndAlpha:   Range{0, 0.1},
			Sway:       6,
			Color:      Color{R: 0.98, G: 0.9, B: 0.5, A: 1},
		}
	default:
		cfg = EmitterConfig{
			Lifetime:   Range{5, 8},
			Speed:      Range{30, 70},
			Angle:      Range{math.Pi/2 - 0.3, math.Pi/2 + 0.3},
			Size:       Range{4, 8},
			StartScale: Range{0.8, 1.2},
			EndScale:   Range{0.6, 1},
			StartAlpha: Range{0.6, 0.9},
			EndAlpha:   Range{0, 0.2},
			Gravity:    Vec2{X: 0, Y: 4},
			Sway:       25,
			Color:      Color{R: 0.29, G: 0.87, B: 0.5, A: 1},
		}
	}
	cfg.MaxParticles = density
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = 1
	}
	meanLife := (cfg.Lifetime.Min + cfg.Lifetime.Max) / 2
	cfg.EmitRate = float64(density) / meanLife
	return cfg
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
