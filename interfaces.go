package main

import "github.com/regginator/bruteviz/runner"

// Interface that the different outputs (live dashboard, headless) must implement
type Frontend interface {
	Start() error

	Render(snap runner.Snapshot) error // Called after every command and frame

	Stop() error
}
