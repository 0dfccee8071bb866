// Package content loads the site's copy and figures from YAML documents.
//
// The embedded site.yaml is the default document. A document on disk can be
// loaded with LoadFile and watched for edits with Watcher.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid site document")

const (
	defaultStatsDuration     = 2 * time.Second
	defaultEconomicsDuration = 1500 * time.Millisecond
	defaultSliderValue       = 50
)

// Site is one complete site document.
type Site struct {
	Company   string    `yaml:"company"`
	Tagline   string    `yaml:"tagline"`
	Intro     Intro     `yaml:"intro"`
	About     About     `yaml:"about"`
	Leaders   []Leader  `yaml:"leaders"`
	Values    []Value   `yaml:"values"`
	Stats     Stats     `yaml:"stats"`
	Economics Economics `yaml:"economics"`
}

// Intro configures the loader's ambient effect.
type Intro struct {
	Ambient string `yaml:"ambient"`
	Density int    `yaml:"density"`
}

type About struct {
	Heading string   `yaml:"heading"`
	Summary string   `yaml:"summary"`
	Story   []string `yaml:"story"`
}

type Leader struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	Bio  string `yaml:"bio"`
}

type Value struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Stats is the animated figures row.
type Stats struct {
	Duration time.Duration `yaml:"duration"`
	Items    []Stat        `yaml:"items"`
}

type Stat struct {
	Title       string  `yaml:"title"`
	Value       float64 `yaml:"value"`
	Suffix      string  `yaml:"suffix"`
	Description string  `yaml:"description"`
}

// Decimals is 1 for fractional values and 0 for whole ones.
func (s Stat) Decimals() int {
	if s.Value != math.Trunc(s.Value) {
		return 1
	}
	return 0
}

// Economics is the ROI section: a slider driving derived metrics.
type Economics struct {
	Heading  string        `yaml:"heading"`
	Slider   Slider        `yaml:"slider"`
	Duration time.Duration `yaml:"duration"`
	Decimals int           `yaml:"decimals"`
	Metrics  []Metric      `yaml:"metrics"`
}

type Slider struct {
	Label    string `yaml:"label"`
	Default  *int   `yaml:"default"`
	MinLabel string `yaml:"min_label"`
	MaxLabel string `yaml:"max_label"`
}

// Value returns the slider's starting position.
func (s Slider) Value() int {
	if s.Default == nil {
		return defaultSliderValue
	}
	return *s.Default
}

// Metric is one derived figure. Expr is a tengo expression over the slider
// position v in [0, 100].
type Metric struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Expr   string `yaml:"expr"`
}

// Parse decodes and validates a site document, filling unset durations.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("content: unmarshal: %w", err)
	}
	if site.Stats.Duration == 0 {
		site.Stats.Duration = defaultStatsDuration
	}
	if site.Economics.Duration == 0 {
		site.Economics.Duration = defaultEconomicsDuration
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}
	return site, nil
}

// Default returns the embedded document.
func Default() *Site {
	site, err := Parse(defaultSite)
	if err != nil {
		panic(fmt.Sprintf("content: embedded site.yaml: %v", err))
	}
	return site
}

// Validate reports the first structural problem in the document.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Company) == "" {
		return fmt.Errorf("%w: company is empty", ErrInvalid)
	}
	if s.Intro.Density < 0 {
		return fmt.Errorf("%w: intro density %d is negative", ErrInvalid, s.Intro.Density)
	}
	if s.Stats.Duration < 0 {
		return fmt.Errorf("%w: stats duration %v is negative", ErrInvalid, s.Stats.Duration)
	}
	for i, st := range s.Stats.Items {
		if strings.TrimSpace(st.Title) == "" {
			return fmt.Errorf("%w: stat %d has no title", ErrInvalid, i)
		}
	}
	e := s.Economics
	if e.Duration < 0 {
		return fmt.Errorf("%w: economics duration %v is negative", ErrInvalid, e.Duration)
	}
	if e.Decimals < 0 {
		return fmt.Errorf("%w: economics decimals %d is negative", ErrInvalid, e.Decimals)
	}
	if v := e.Slider.Value(); v < 0 || v > 100 {
		return fmt.Errorf("%w: slider default %d outside [0, 100]", ErrInvalid, v)
	}
	seen := make(map[string]bool, len(e.Metrics))
	for i, m := range e.Metrics {
		if m.Key == "" {
			return fmt.Errorf("%w: metric %d has no key", ErrInvalid, i)
		}
		if seen[m.Key] {
			return fmt.Errorf("%w: duplicate metric key %q", ErrInvalid, m.Key)
		}
		seen[m.Key] = true
		if strings.TrimSpace(m.Expr) == "" {
			return fmt.Errorf("%w: metric %q has no expression", ErrInvalid, m.Key)
		}
	}
	return nil
}
