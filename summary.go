package main

import (
	"fmt"
	"slices"

	"github.com/pterm/pterm"
	"github.com/regginator/bruteviz/runner"
)

// Prints what we're about to walk through before the animation takes over the screen
func printSummary(r *runner.Runner) {
	e := r.Engine()
	set := e.Set()

	summaryList := []pterm.BulletListItem{
		{
			Level:       0,
			Text:        fmt.Sprintf("Character set: %s (%d symbols: %s)", set.Name, set.Len(), set),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		},
		{
			Level:       0,
			Text:        fmt.Sprintf("Target length: %d", e.TargetLen()),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		},
		{
			Level:       0,
			Text:        fmt.Sprintf("Total combinations: %s", e.Total()),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		},
	}

	if index := e.TargetIndex(); index != nil {
		summaryList = append(summaryList, pterm.BulletListItem{
			Level:       0,
			Text:        fmt.Sprintf("Target comes up at attempt #%s", index),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		})
	} else {
		summaryList = append(summaryList, pterm.BulletListItem{
			Level:       0,
			Text:        "Target uses symbols outside the set, it will never match",
			BulletStyle: pterm.NewStyle(pterm.FgYellow),
		})
	}

	if start := e.Attempts(); start.Sign() > 0 {
		summaryList = append(summaryList, pterm.BulletListItem{
			Level:       0,
			Text:        fmt.Sprintf("Starting at attempt #%s", start),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		})
	}

	summaryList = append(summaryList,
		pterm.BulletListItem{
			Level:       0,
			Text:        "Time to exhaust the space:",
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
		},
	)

	speeds := []int{minSpeed, r.Speed(), maxSpeed}
	slices.Sort(speeds)

	for _, speed := range slices.Compact(speeds) {
		summaryList = append(summaryList, pterm.BulletListItem{
			Level:       1,
			Text:        fmt.Sprintf("at %dx: %s", speed, runner.EstimateETA(e.Remaining(), speed)),
			BulletStyle: pterm.NewStyle(pterm.FgCyan),
			Bullet:      ">",
		})
	}

	fmt.Println()
	err := pterm.DefaultBulletList.WithItems(summaryList).Render()
	_ = err
}
