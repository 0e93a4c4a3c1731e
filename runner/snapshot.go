package runner

import "github.com/google/uuid"

// Snapshot is everything the presentation side needs to draw one frame
type Snapshot struct {
	RunID   string
	State   State
	SetName string
	SetSize int
	Speed   int

	Target    string
	Candidate string
	Attempts  string // decimal, can be way past int64
	Total     string
	Percent   int
	ETA       ETA

	Digits []int     // least significant first
	Angles []float64 // degrees per gear, same order as Digits
}

func (r *Runner) Snapshot() Snapshot {
	snap := Snapshot{
		State:     r.state,
		SetName:   r.engine.Set().Name,
		SetSize:   r.engine.Set().Len(),
		Speed:     r.speed,
		Target:    r.engine.Target(),
		Candidate: r.engine.Candidate(),
		Attempts:  r.engine.Attempts().String(),
		Total:     r.engine.Total().String(),
		Percent:   r.engine.ProgressPercent(),
		ETA:       r.ETA(),
		Digits:    r.engine.Digits(),
		Angles:    r.engine.GearAngles(),
	}

	if r.runID != uuid.Nil {
		snap.RunID = r.runID.String()
	}

	return snap
}
