package models

import (
	"time"
)

// WindowType categorizes a release window
type WindowType string

const (
	WindowTheatrical WindowType = "theatrical"
	WindowPVOD       WindowType = "pvod"
	WindowStreaming  WindowType = "streaming"
	WindowLicensing  WindowType = "licensing"
)

// Window is one slot in a release strategy. StartOffsetDays is measured
// from the title's initial release.
type Window struct {
	Type            WindowType `json:"type" toml:"type" validate:"required,oneof=theatrical pvod streaming licensing"`
	StartOffsetDays int        `json:"start_offset_days" toml:"start_offset_days" validate:"gte=0"`
	DurationDays    int        `json:"duration_days" toml:"duration_days" validate:"gte=0"`

	// LicenseFee is a lump-sum payment, licensing windows only
	LicenseFee float64 `json:"license_fee,omitempty" toml:"license_fee"`

	// CannibalizationOverride replaces the assumptions-level factor for
	// this window when set
	CannibalizationOverride *float64 `json:"cannibalization_override,omitempty" toml:"cannibalization_override"`
}

// StartWeek converts the day offset to a weekly period index
func (w Window) StartWeek() int {
	return w.StartOffsetDays / 7
}

// DurationWeeks converts the window duration to whole weeks, minimum 1
// for any window with a positive duration
func (w Window) DurationWeeks() int {
	weeks := w.DurationDays / 7
	if weeks == 0 && w.DurationDays > 0 {
		return 1
	}
	return weeks
}

// WindowingScenario is a named, caller-constructed release strategy.
// Validated before simulation; a scenario without windows is rejected.
type WindowingScenario struct {
	Name    string   `json:"scenario_name" toml:"name" validate:"required"`
	TitleID string   `json:"title_id" toml:"title_id" validate:"required"`
	Windows []Window `json:"windows" toml:"windows" validate:"required,min=1,dive"`
}

// Window returns the first window of the given type, or nil
func (s WindowingScenario) Window(t WindowType) *Window {
	for i := range s.Windows {
		if s.Windows[i].Type == t {
			return &s.Windows[i]
		}
	}
	return nil
}

// StreamingOffsetDays returns the start offset of the streaming window,
// or the fallback when the scenario has none
func (s WindowingScenario) StreamingOffsetDays(fallback int) int {
	if w := s.Window(WindowStreaming); w != nil {
		return w.StartOffsetDays
	}
	return fallback
}

// CashflowPoint is one weekly net cashflow in a simulation
type CashflowPoint struct {
	Week int     `json:"week"`
	Net  float64 `json:"net"`
}

// WindowContribution is the per-window value breakdown of a simulation
type WindowContribution struct {
	Type            WindowType `json:"type"`
	StartWeek       int        `json:"start_week"`
	DurationWeeks   int        `json:"duration_weeks"`
	GrossValue      float64    `json:"gross_value"`
	DiscountedValue float64    `json:"discounted_value"`

	// Cannibalized marks a window whose value was reduced because the
	// scenario streams earlier than the baseline reference ordering
	Cannibalized bool `json:"cannibalized,omitempty"`
}

// SimulationResult is the immutable outcome of one scenario run
type SimulationResult struct {
	ID           string               `json:"id"`
	ScenarioName string               `json:"scenario_name"`
	TitleID      string               `json:"title_id"`
	Windows      []WindowContribution `json:"windows"`
	Cashflows    []CashflowPoint      `json:"cashflows"`
	GrossValue   float64              `json:"gross_value"`
	NPV          float64              `json:"npv"`
	DiscountRate float64              `json:"discount_rate"`
	Narrative    string               `json:"narrative,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	ComputedAt   time.Time            `json:"computed_at"`
}
