package content

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
)

// Calculator evaluates a section's metric expressions for a slider position.
// The expressions are compiled into one tengo program up front; Evaluate only
// rebinds v and runs it.
type Calculator struct {
	metrics  []Metric
	decimals int
	compiled *tengo.Compiled
}

func metricVar(i int) string {
	return fmt.Sprintf("__metric_%d", i)
}

// NewCalculator compiles the economics metrics.
func NewCalculator(e Economics) (*Calculator, error) {
	src := ""
	for i, m := range e.Metrics {
		src += fmt.Sprintf("%s := (%s)\n", metricVar(i), m.Expr)
	}
	script := tengo.NewScript([]byte(src))
	if err := script.Add("v", 0.0); err != nil {
		return nil, fmt.Errorf("content: bind slider: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("content: compile metrics: %w", err)
	}
	return &Calculator{metrics: e.Metrics, decimals: e.Decimals, compiled: compiled}, nil
}

// Metrics returns the metrics in evaluation order.
func (c *Calculator) Metrics() []Metric {
	return c.metrics
}

// Evaluate returns each metric's value at slider position v, rounded to the
// section's decimals. v is clamped to [0, 100].
func (c *Calculator) Evaluate(v float64) ([]float64, error) {
	v = math.Max(0, math.Min(100, v))
	if err := c.compiled.Set("v", v); err != nil {
		return nil, fmt.Errorf("content: bind slider: %w", err)
	}
	if err := c.compiled.Run(); err != nil {
		return nil, fmt.Errorf("content: evaluate metrics: %w", err)
	}
	out := make([]float64, len(c.metrics))
	for i, m := range c.metrics {
		val := c.compiled.Get(metricVar(i))
		switch val.ValueType() {
		case "int", "float":
		default:
			return nil, fmt.Errorf("content: metric %q evaluated to %s", m.Key, val.ValueType())
		}
		out[i] = round(val.Float(), c.decimals)
	}
	return out, nil
}

// round is sprout.Round for the calculator; content sits below sprout and
// cannot import it.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
