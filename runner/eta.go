package runner

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// ETADurationCap is the longest ETA shown as a number, anything at or above it is unbounded
const ETADurationCap = 99 * time.Hour

// UnboundedETA is what an unbounded ETA prints as
const UnboundedETA = "∞"

// ETAMagnitudeLimit is the remaining count above which we don't even try converting to a float.
// 1e15 attempts is centuries at any speed the UI offers.
var ETAMagnitudeLimit = new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)

type ETA struct {
	Duration  time.Duration
	Unbounded bool
}

// EstimateETA is the time to work through remaining attempts at speed*BaseRate attempts per second
func EstimateETA(remaining *big.Int, speed int) ETA {
	if remaining.Cmp(ETAMagnitudeLimit) > 0 {
		return ETA{Unbounded: true}
	}
	if speed < 1 {
		speed = 1
	}

	seconds := math.Ceil(float64(remaining.Int64()) / (float64(speed) * BaseRate))
	if seconds >= ETADurationCap.Seconds() {
		return ETA{Unbounded: true}
	}

	return ETA{Duration: time.Duration(seconds) * time.Second}
}

func (eta ETA) String() string {
	if eta.Unbounded {
		return UnboundedETA
	}

	total := int64(eta.Duration / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
