package strategy

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility"
	"github.com/mpetrik/apogee/pkg/utility/circular"
)

const smaRsiComponentName = "strategy.sma_rsi"

type marketState int

const (
	stateNeutral marketState = iota
	stateLong
	stateShort
)

// SmaRsi is a technical crossover strategy: long when the short SMA is
// above the long SMA and RSI confirms upward momentum, short on the mirror
// condition. A signal is emitted only when the desired state changes, so a
// persistent trend produces one entry instead of a signal per bar.
type SmaRsi struct {
	shortWindow int
	longWindow  int
	rsiPeriod   int
	rsiLongTh   float64
	rsiShortTh  float64

	closes    map[string]*circular.Buffer[float64]
	lastState map[string]marketState
}

func NewSmaRsi(shortWindow, longWindow, rsiPeriod int, rsiLongTh, rsiShortTh float64) *SmaRsi {
	if shortWindow >= longWindow {
		panic("short window must be less than long window")
	}
	return &SmaRsi{
		shortWindow: shortWindow,
		longWindow:  longWindow,
		rsiPeriod:   rsiPeriod,
		rsiLongTh:   rsiLongTh,
		rsiShortTh:  rsiShortTh,
		closes:      make(map[string]*circular.Buffer[float64]),
		lastState:   make(map[string]marketState),
	}
}

func (s *SmaRsi) Name() string {
	return smaRsiComponentName
}

func (s *SmaRsi) OnBar(bar common.Bar) []common.Signal {
	history, ok := s.closes[bar.Symbol]
	if !ok {
		// History is bounded: enough for the long SMA and the RSI warm-up.
		capacity := uint(s.longWindow + s.rsiPeriod + 1)
		history = circular.NewBuffer[float64](capacity)
		s.closes[bar.Symbol] = history
	}

	close, _ := bar.Close.Float64()
	history.Push(close)

	closes := history.Values()
	if len(closes) < s.longWindow || len(closes) < s.rsiPeriod+1 {
		return nil
	}

	smaShort := last(talib.Sma(closes, s.shortWindow))
	smaLong := last(talib.Sma(closes, s.longWindow))
	rsi := last(talib.Rsi(closes, s.rsiPeriod))
	if math.IsNaN(smaShort) || math.IsNaN(smaLong) || math.IsNaN(rsi) {
		return nil
	}

	desired := stateNeutral
	if smaShort > smaLong && rsi >= s.rsiLongTh {
		desired = stateLong
	} else if smaShort < smaLong && rsi <= s.rsiShortTh {
		desired = stateShort
	}

	if desired == s.lastState[bar.Symbol] {
		return nil
	}
	s.lastState[bar.Symbol] = desired

	direction := common.SignalExit
	switch desired {
	case stateLong:
		direction = common.SignalLong
	case stateShort:
		direction = common.SignalShort
	}

	return []common.Signal{{
		Source:    smaRsiComponentName,
		Symbol:    bar.Symbol,
		RunID:     utility.GetRunID(),
		TraceID:   utility.CreateTraceID(),
		TimeStamp: bar.TimeStamp,
		Direction: direction,
		Strength:  1.0,
	}}
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
