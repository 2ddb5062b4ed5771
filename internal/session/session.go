// Package session holds the inputs of one interactive proposal and recomputes
// the simulation after every change.
package session

import (
	"errors"
	"sync"

	"solar-proposal/internal/finance"
	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"
)

// ErrNoPendingCalibration is returned by Confirm and Decline when nothing awaits the user.
var ErrNoPendingCalibration = errors.New("no maintenance rate change awaiting confirmation")

// Snapshot is what a client sees after a change.
type Snapshot struct {
	Input   simulation.Input     `json:"input"`
	Result  *simulation.Result   `json:"result"`
	Pending *finance.Calibration `json:"pending_calibration,omitempty"`
}

type Options struct {
	// SuppressAlerts applies ceiling corrections without asking in manual mode.
	SuppressAlerts bool
}

// Session is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	engine *simulation.Engine
	opts   Options

	input     simulation.Input
	lastModel model.BusinessModel
	pending   *finance.Calibration
	result    *simulation.Result
}

// New runs the first computation for in.
func New(engine *simulation.Engine, in simulation.Input, opts Options) (*Session, error) {
	s := &Session{engine: engine, opts: opts}
	if _, err := s.apply(func(cur *simulation.Input) { *cur = in }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) SetInput(in simulation.Input) (Snapshot, error) {
	return s.apply(func(cur *simulation.Input) { *cur = in })
}

func (s *Session) SetRecords(records []model.MonthlyRecord) (Snapshot, error) {
	return s.apply(func(cur *simulation.Input) { cur.Records = records })
}

func (s *Session) SetSettings(settings model.Settings) (Snapshot, error) {
	return s.apply(func(cur *simulation.Input) { cur.Settings = settings })
}

func (s *Session) SetRationalization(r model.RationalizationInputs) (Snapshot, error) {
	return s.apply(func(cur *simulation.Input) { cur.Rationalization = r })
}

func (s *Session) SetPricing(p model.PricingConfig) (Snapshot, error) {
	return s.apply(func(cur *simulation.Input) { cur.Pricing = p })
}

// Confirm applies the pending ideal maintenance rate.
func (s *Session) Confirm() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Snapshot{}, ErrNoPendingCalibration
	}
	next := s.input
	next.Settings.MaintenanceRate = s.pending.IdealRate
	res, err := s.engine.Run(next)
	if err != nil {
		return Snapshot{}, err
	}
	s.input = next
	s.result = res
	s.pending = nil
	return s.snapshotLocked(), nil
}

// Decline keeps the user's maintenance rate and drops the pending change.
func (s *Session) Decline() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Snapshot{}, ErrNoPendingCalibration
	}
	s.pending = nil
	return s.snapshotLocked(), nil
}

// apply mutates a copy of the input, recomputes and calibrates, and commits only on success.
func (s *Session) apply(mutate func(*simulation.Input)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.input
	mutate(&next)

	res, err := s.engine.Run(next)
	if err != nil {
		return Snapshot{}, err
	}

	bm := res.Settings.BusinessModel
	var pending *finance.Calibration
	if res.Settings.CostCeiling > 0 {
		cal := finance.CalibrateMaintenanceRate(finance.CalibrationInput{
			GrossRevenue:   res.GrossRevenue,
			LaborCost:      res.LaborCost,
			CurrentRate:    res.Settings.MaintenanceRate,
			CostCeiling:    res.Settings.CostCeiling,
			AutoMode:       res.Settings.AutoMaintenance,
			ModelChanged:   s.lastModel != "" && s.lastModel != bm,
			SuppressAlerts: s.opts.SuppressAlerts,
		})
		if cal.Changed {
			next.Settings.MaintenanceRate = cal.Rate
			if res, err = s.engine.Run(next); err != nil {
				return Snapshot{}, err
			}
		}
		if cal.NeedsConfirmation {
			pending = &cal
		}
	}

	s.input = next
	s.result = res
	s.lastModel = bm
	s.pending = pending
	return s.snapshotLocked(), nil
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Input: s.input, Result: s.result}
	snap.Input.Records = append([]model.MonthlyRecord(nil), s.input.Records...)
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}
