// Package dpi adapts cell-based sizes to a display's scaling factor. Any
// failure to read the factor degrades to 1.0 rather than surfacing.
package dpi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var ErrUnknownScale = errors.New("scaling factor not configured")

// Scaler is implemented by roots that know their scaling factor.
type Scaler interface {
	ScalingFactor() (float64, error)
}

var logger = log.Default().WithPrefix("dpi")

func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// ScalingFactor returns root's scaling factor. A root that is not a
// Scaler, returns an error, panics or reports a non-positive or
// non-finite factor yields 1.0.
func ScalingFactor(root any) (f float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("scaling factor lookup panicked, using 1.0", "panic", r)
			f = 1
		}
	}()
	s, ok := root.(Scaler)
	if !ok || s == nil {
		logger.Debug("root has no scaling factor, using 1.0", "root", fmt.Sprintf("%T", root))
		return 1
	}
	v, err := s.ScalingFactor()
	if err != nil {
		logger.Debug("scaling factor unavailable, using 1.0", "err", err)
		return 1
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		logger.Debug("scaling factor out of range, using 1.0", "factor", v)
		return 1
	}
	return v
}

// Scale multiplies n by f and rounds to the nearest cell. Non-positive
// factors leave n unchanged.
func Scale(n int, f float64) int {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return n
	}
	return int(math.Round(float64(n) * f))
}

// Parse reads a factor written as "1.5" or "150%".
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse scale %q: %w", s, err)
	}
	if pct {
		v /= 100
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("scale %v: %w", v, ErrUnknownScale)
	}
	return v, nil
}
