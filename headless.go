package main

import (
	"github.com/pterm/pterm"
	"github.com/regginator/bruteviz/runner"
)

// Plain line output for when there's no terminal to draw on (pipes, CI). Prints on state changes
// and every 10 percent.
type headlessFrontend struct {
	lastState  runner.State
	lastDecile int
	started    bool
}

func (front *headlessFrontend) Start() error {
	return nil
}

func (front *headlessFrontend) Render(snap runner.Snapshot) error {
	decile := snap.Percent / 10

	if front.started && snap.State == front.lastState && decile == front.lastDecile {
		return nil
	}

	switch {
	case !front.started || snap.State != front.lastState:
		pterm.Info.Printf("%s at attempt %s/%s (%s)\n", snap.State, snap.Attempts, snap.Total, snap.Candidate)
	default:
		pterm.Info.Printf("%3d%% attempt %s/%s, ETA %s\n", snap.Percent, snap.Attempts, snap.Total, snap.ETA)
	}

	front.started = true
	front.lastState = snap.State
	front.lastDecile = decile

	return nil
}

func (front *headlessFrontend) Stop() error {
	return nil
}
