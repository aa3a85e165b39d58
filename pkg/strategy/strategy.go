package strategy

import (
	"github.com/mpetrik/apogee/pkg/common"
)

// Strategy turns one market bar into zero or more signals. Implementations
// may keep bounded per-symbol history but must never read a bar timestamped
// later than the one received.
type Strategy interface {
	Name() string
	OnBar(bar common.Bar) []common.Signal
}
