// Package runner turns wall clock time into enumeration steps and owns the run state machine
// around an engine.Engine.
//
// A runner is driven from a single loop: something (a frame ticker, a test) calls Tick with
// non-decreasing timestamps, and commands (Start, Pause, Reset, Configure, SetSpeed) are applied
// from the same goroutine between ticks. Tick does nothing unless the runner is Running, so a
// pause or reset that lands between frames keeps the next frame from touching the counter.
package runner

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/regginator/bruteviz/charset"
	"github.com/regginator/bruteviz/engine"
)

// BaseRate is the number of attempts per second at speed 1
const BaseRate = 20

var (
	ErrInvalidSpeed = errors.New("speed must be at least 1")
	ErrNotIdle      = errors.New("runner is not idle")
)

type Runner struct {
	engine *engine.Engine
	state  State
	speed  int

	lastTick time.Time
	runID    uuid.UUID

	logger *pterm.Logger
}

// New builds an idle runner at speed 1. A nil logger discards log output.
func New(target string, setName string, logger *pterm.Logger) (*Runner, error) {
	set, err := charset.Lookup(setName)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}

	r := &Runner{
		engine: engine.New(target, set),
		speed:  1,
		logger: logger,
	}

	return r, nil
}

func (r *Runner) State() State {
	return r.state
}

func (r *Runner) Speed() int {
	return r.speed
}

// Engine exposes the engine for read-only queries. Mutating it directly bypasses the state
// machine.
func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Configure swaps the target and character set and drops back to Idle
func (r *Runner) Configure(target string, setName string) error {
	set, err := charset.Lookup(setName)
	if err != nil {
		return err
	}

	r.engine.Configure(target, set)
	r.state = Idle
	r.runID = uuid.Nil

	r.logger.Debug("configured", r.logger.Args(
		"set", set.Name,
		"target_len", r.engine.TargetLen(),
		"total", r.engine.Total().String(),
	))

	return nil
}

// SetSpeed changes the speed multiplier, taking effect from the next tick
func (r *Runner) SetSpeed(speed int) error {
	if speed < 1 {
		return fmt.Errorf("set speed %d: %w", speed, ErrInvalidSpeed)
	}

	if speed != r.speed {
		r.logger.Debug("speed changed", r.logger.Args("from", r.speed, "to", speed))
	}

	r.speed = speed
	return nil
}

// Seek moves the counter before a run starts
func (r *Runner) Seek(index *big.Int) error {
	if r.state != Idle {
		return fmt.Errorf("seek while %s: %w", r.state, ErrNotIdle)
	}

	return r.engine.Seek(index)
}

// Start begins or resumes a run, anchoring step timing at now. Starting while already running,
// after a finished run, or with an empty target does nothing.
func (r *Runner) Start(now time.Time) {
	switch {
	case r.state == Running || r.state.Finished():
		return
	case r.engine.TargetLen() == 0:
		r.logger.Debug("start ignored, target is empty")
		return
	}

	if r.state == Idle {
		r.runID = uuid.New()
		r.logger.Info("run started", r.logger.Args(
			"run", r.runID.String(),
			"set", r.engine.Set().Name,
			"start", r.engine.Attempts().String(),
			"total", r.engine.Total().String(),
		))
	} else {
		r.logger.Debug("run resumed", r.logger.Args("run", r.runID.String(), "attempts", r.engine.Attempts().String()))
	}

	r.state = Running
	r.lastTick = now
}

// Pause stops a running run in place
func (r *Runner) Pause() {
	if r.state != Running {
		return
	}

	r.state = Paused
	r.logger.Debug("run paused", r.logger.Args("run", r.runID.String(), "attempts", r.engine.Attempts().String()))
}

// Reset returns to Idle with the counter at 0, from any state
func (r *Runner) Reset() {
	r.engine.Reset()
	r.state = Idle
	r.runID = uuid.Nil
	r.logger.Debug("reset")
}

// StepsFor is how many attempts a tick covering elapsed gets at speed. Every tick gets at least
// one.
func StepsFor(elapsed time.Duration, speed int) int {
	if elapsed < 0 {
		elapsed = 0
	}

	steps := math.Floor(elapsed.Seconds() * float64(speed) * BaseRate)
	if steps >= math.MaxInt32 {
		return math.MaxInt32
	}

	return max(1, int(steps))
}

// Tick advances the run by however many steps the time since the last tick is worth. The
// candidate is compared after every single step so a big batch can't skip over the target.
func (r *Runner) Tick(now time.Time) Snapshot {
	if r.state != Running {
		return r.Snapshot()
	}

	steps := StepsFor(now.Sub(r.lastTick), r.speed)
	r.lastTick = now

	if !r.settle() {
		for i := 0; i < steps; i++ {
			r.engine.Advance()
			if r.settle() {
				break
			}
		}
	}

	return r.Snapshot()
}

// settle moves to Success or Complete if the current counter ends the run
func (r *Runner) settle() bool {
	switch {
	case r.engine.IsMatch():
		r.state = Success
		r.logger.Info("target found", r.logger.Args("run", r.runID.String(), "attempts", r.engine.Attempts().String()))
	case r.engine.IsExhausted():
		r.state = Complete
		r.logger.Info("space exhausted without a match", r.logger.Args("run", r.runID.String(), "attempts", r.engine.Attempts().String()))
	default:
		return false
	}

	return true
}

// ETA for the rest of the space at the current speed
func (r *Runner) ETA() ETA {
	return EstimateETA(r.engine.Remaining(), r.speed)
}
