package strategy

import (
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
)

const (
	dualProbaComponentName = "strategy.dual_proba"

	// Applied when no per-symbol threshold was configured.
	defaultThreshold = 0.6
)

// Proba holds one timestamp's calibrated up/down probabilities.
type Proba struct {
	Up   float64
	Down float64
}

// ProbaSeries keys probabilities by exact bar timestamp (UnixNano).
type ProbaSeries map[int64]Proba

// DualProba trades a precomputed model artifact: per-symbol probability
// tables and per-side entry thresholds. The model pipeline that produced
// them is an external collaborator; this strategy only does lookups.
//
// When both sides clear their threshold the larger margin over threshold
// wins. An exact tie goes to the long side: it is the first candidate
// evaluated, and the short side must strictly beat its margin.
type DualProba struct {
	feeds map[string]ProbaSeries
	thrUp map[string]float64
	thrDn map[string]float64
}

func NewDualProba(feeds map[string]ProbaSeries, thrUp, thrDn map[string]float64) *DualProba {
	return &DualProba{
		feeds: feeds,
		thrUp: thrUp,
		thrDn: thrDn,
	}
}

func (s *DualProba) Name() string {
	return dualProbaComponentName
}

func (s *DualProba) OnBar(bar common.Bar) []common.Signal {
	series, ok := s.feeds[bar.Symbol]
	if !ok {
		return nil
	}
	proba, ok := series[bar.TimeStamp.UnixNano()]
	if !ok {
		return nil
	}

	thrUp := s.threshold(s.thrUp, bar.Symbol)
	thrDn := s.threshold(s.thrDn, bar.Symbol)

	direction := common.SignalExit
	bestMargin := 0.0
	found := false

	if proba.Up >= thrUp {
		direction = common.SignalLong
		bestMargin = proba.Up - thrUp
		found = true
	}
	if proba.Down >= thrDn && (!found || proba.Down-thrDn > bestMargin) {
		direction = common.SignalShort
		found = true
	}

	if !found {
		return nil
	}

	strength := proba.Up
	if direction == common.SignalShort {
		strength = proba.Down
	}

	return []common.Signal{{
		Source:    dualProbaComponentName,
		Symbol:    bar.Symbol,
		RunID:     utility.GetRunID(),
		TraceID:   utility.CreateTraceID(),
		TimeStamp: bar.TimeStamp,
		Direction: direction,
		Strength:  strength,
	}}
}

func (s *DualProba) threshold(thresholds map[string]float64, symbol string) float64 {
	if t, ok := thresholds[symbol]; ok {
		return t
	}
	return defaultThreshold
}
