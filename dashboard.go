package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/regginator/bruteviz/runner"
)

const progressWidth = 40

// One spoke glyph per 45 degrees, a gear looks the same every half turn
var gearGlyphs = []string{"|", "/", "─", "\\"}

// Live dashboard, redraws a pterm area in place every frame
type liveFrontend struct {
	area *pterm.AreaPrinter
}

func (front *liveFrontend) Start() error {
	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}

	front.area = area
	return nil
}

func (front *liveFrontend) Render(snap runner.Snapshot) error {
	frame, err := renderFrame(snap)
	if err != nil {
		return err
	}

	front.area.Update(frame)
	return nil
}

func (front *liveFrontend) Stop() error {
	if front.area == nil {
		return nil
	}

	return front.area.Stop()
}

func renderFrame(snap runner.Snapshot) (string, error) {
	var sb strings.Builder

	if snap.Candidate != "" {
		candidate, err := pterm.DefaultBigText.WithLetters(
			putils.LettersFromStringWithStyle(snap.Candidate, stateStyle(snap.State)),
		).Srender()
		if err != nil {
			return "", err
		}
		sb.WriteString(candidate)
	}

	sb.WriteString(renderGears(snap))
	sb.WriteString("\n\n")
	sb.WriteString(renderProgress(snap.Percent))
	sb.WriteString("\n\n")

	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"State", stateStyle(snap.State).Sprint(strings.ToUpper(snap.State.String()))},
		{"Attempt", fmt.Sprintf("%s / %s", snap.Attempts, snap.Total)},
		{"ETA", snap.ETA.String()},
		{"Speed", fmt.Sprintf("%dx (%d/s)", snap.Speed, snap.Speed*runner.BaseRate)},
		{"Set", fmt.Sprintf("%s (%d)", snap.SetName, snap.SetSize)},
		{"Run", runLabel(snap.RunID)},
	}).Srender()
	if err != nil {
		return "", err
	}
	sb.WriteString(table)
	sb.WriteString("\n\n")

	sb.WriteString(pterm.FgGray.Sprint("space start/pause | r reset | +/- speed | c charset | q quit"))

	return sb.String(), nil
}

// Gears are drawn left to right in string order, so the highest digit comes first
func renderGears(snap runner.Snapshot) string {
	n := len(snap.Digits)
	if n == 0 {
		return pterm.FgGray.Sprint("(empty target, nothing to enumerate)")
	}

	cells := make([]string, 0, n)
	labels := make([]string, 0, n)
	candidate := []rune(snap.Candidate)

	for pos := n - 1; pos >= 0; pos-- {
		glyph := gearGlyph(snap.Angles[pos])
		cells = append(cells, fmt.Sprintf("[%s]", pterm.FgCyan.Sprint(glyph)))

		char := " "
		if idx := n - 1 - pos; idx < len(candidate) {
			char = string(candidate[idx])
		}
		labels = append(labels, fmt.Sprintf(" %s ", char))
	}

	return strings.Join(cells, " ") + "\n" + strings.Join(labels, " ")
}

func gearGlyph(angle float64) string {
	step := int(math.Round(angle/45)) % len(gearGlyphs)
	return gearGlyphs[step]
}

func renderProgress(percent int) string {
	filled := percent * progressWidth / 100
	bar := pterm.FgGreen.Sprint(strings.Repeat("█", filled)) + pterm.FgGray.Sprint(strings.Repeat("░", progressWidth-filled))

	return fmt.Sprintf("%s %3d%%", bar, percent)
}

func stateStyle(state runner.State) *pterm.Style {
	switch state {
	case runner.Running:
		return pterm.NewStyle(pterm.FgCyan)
	case runner.Paused:
		return pterm.NewStyle(pterm.FgYellow)
	case runner.Success:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case runner.Complete:
		return pterm.NewStyle(pterm.FgRed)
	}

	return pterm.NewStyle(pterm.FgGray)
}

func runLabel(id string) string {
	if id == "" {
		return "-"
	}

	// The first block is plenty to tell runs apart on screen
	short, _, _ := strings.Cut(id, "-")
	return short
}
