package main

import (
	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/pterm/pterm"
)

// Translates a key press into a command, ok is false for keys we don't care about
func keyCommand(key keys.Key) (cmd command, ok bool) {
	switch key.Code {
	case keys.CtrlC, keys.Escape:
		return cmdQuit, true
	case keys.Space, keys.Enter:
		return cmdToggle, true
	case keys.RuneKey:
		switch key.String() {
		case "q", "Q":
			return cmdQuit, true
		case "r", "R":
			return cmdReset, true
		case "+", "=":
			return cmdFaster, true
		case "-", "_":
			return cmdSlower, true
		case "c", "C":
			return cmdCycleSet, true
		case " ":
			return cmdToggle, true
		}
	}

	return 0, false
}

// Blocks reading keys and forwards them as commands. The loop may have stopped reading by the
// time a key arrives, so sends never block.
func listenKeys(cmds chan<- command, logger *pterm.Logger) {
	send := func(cmd command) {
		select {
		case cmds <- cmd:
		default:
		}
	}

	err := keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		cmd, ok := keyCommand(key)
		if !ok {
			return false, nil
		}

		send(cmd)
		return cmd == cmdQuit, nil
	})
	if err != nil {
		logger.Warn("keyboard input unavailable", logger.Args("error", err.Error()))
		send(cmdDetach)
	}
}
