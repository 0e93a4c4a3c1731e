package main

import (
	"fmt"
	"time"

	"github.com/regginator/bruteviz/pool"
	"github.com/regginator/bruteviz/runner"
)

// Speed range reachable with the +/- keys
const (
	minSpeed = 1
	maxSpeed = 10
)

type command uint8

const (
	cmdToggle   command = iota // start/pause
	cmdReset                   // back to idle
	cmdFaster                  // speed +1
	cmdSlower                  // speed -1
	cmdCycleSet                // next character set preset
	cmdDetach                  // input went away, exit once the run finishes
	cmdQuit
)

// The animation owns the runner, nothing else touches it while run() is going. Input arrives over
// a channel and gets applied between frames.
type animation struct {
	runner *runner.Runner
	front  Frontend
	clock  runner.Clock
	sets   *pool.Pool[string]

	frameInterval time.Duration
	exitOnFinish  bool
}

// Runs until quit (or the run finishes when exitOnFinish is set), returns the final state.
// A nil cmds channel means no input at all.
func (a *animation) run(cmds <-chan command) (runner.State, error) {
	// Frames get requested one at a time, and only while running
	frame := time.NewTimer(a.frameInterval)
	frame.Stop()
	defer frame.Stop()
	framePending := false

	if err := a.front.Render(a.runner.Snapshot()); err != nil {
		return a.runner.State(), err
	}

	for {
		state := a.runner.State()

		if a.exitOnFinish && state.Finished() {
			return state, nil
		}

		if state == runner.Running && !framePending {
			frame.Reset(a.frameInterval)
			framePending = true
		} else if !framePending && cmds == nil {
			// Nothing left that could ever wake us up
			return state, nil
		}

		select {
		case cmd, ok := <-cmds:
			if !ok || cmd == cmdQuit {
				return a.runner.State(), nil
			}

			if err := a.apply(cmd); err != nil {
				return a.runner.State(), err
			}
		case <-frame.C:
			framePending = false
			// A pause/reset that landed since this was scheduled makes this a no-op
			a.runner.Tick(a.clock.Now())
		}

		if err := a.front.Render(a.runner.Snapshot()); err != nil {
			return a.runner.State(), err
		}
	}
}

func (a *animation) apply(cmd command) error {
	r := a.runner

	switch cmd {
	case cmdToggle:
		if r.State() == runner.Running {
			r.Pause()
		} else {
			r.Start(a.clock.Now())
		}
	case cmdReset:
		r.Reset()
	case cmdFaster:
		if r.Speed() >= maxSpeed {
			return nil
		}
		return r.SetSpeed(r.Speed() + 1)
	case cmdSlower:
		return r.SetSpeed(max(r.Speed()-1, minSpeed))
	case cmdCycleSet:
		next := a.sets.Next()
		if err := r.Configure(r.Engine().Target(), next); err != nil {
			return fmt.Errorf("failed to switch character set: %w", err)
		}
	case cmdDetach:
		a.exitOnFinish = true
	}

	return nil
}
