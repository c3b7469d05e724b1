// Package main fits spectrum and foam parameters so that a headless ocean
// reaches a target sea state.
package main

import (
	"github.com/pthm-cable/fftocean/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "amplitude", Path: "spectrum.amplitude", Min: 0.1, Max: 100, Default: 10},
			{Name: "wind_speed", Path: "spectrum.wind_speed", Min: 0.5, Max: 20, Default: 2},
			{Name: "bubbles_scale", Path: "surface.bubbles_scale", Min: 0.1, Max: 10, Default: 1},
			{Name: "bubbles_threshold", Path: "surface.bubbles_threshold", Min: 0, Max: 0.9, Default: 0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromConfig reads the current parameter values, clamped to their bounds.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	return pv.Clamp([]float64{
		cfg.Spectrum.Amplitude,
		cfg.Spectrum.WindSpeed,
		cfg.Surface.BubblesScale,
		cfg.Surface.BubblesThreshold,
	})
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Spectrum.Amplitude = c[0]
	cfg.Spectrum.WindSpeed = c[1]
	cfg.Surface.BubblesScale = c[2]
	cfg.Surface.BubblesThreshold = c[3]
}
