package runner

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regginator/bruteviz/charset"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// one step per tick at speed 1
const stepTick = time.Second / BaseRate

func newRunner(t *testing.T, target, set string) (*Runner, *ManualClock) {
	t.Helper()

	r, err := New(target, set, nil)
	require.NoError(t, err)
	return r, NewManualClock(epoch)
}

func TestNewUnknownSet(t *testing.T) {
	_, err := New("AB", "emoji", nil)
	assert.ErrorIs(t, err, charset.ErrUnknownSet)
}

func TestStepsFor(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		speed   int
		want    int
	}{
		{0, 1, 1},
		{-time.Second, 5, 1},
		{stepTick, 1, 1},
		{time.Second, 1, BaseRate},
		{time.Second, 10, 10 * BaseRate},
		{500 * time.Millisecond, 3, 3 * BaseRate / 2},
		{time.Millisecond, 1, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StepsFor(tt.elapsed, tt.speed), "elapsed %s speed %d", tt.elapsed, tt.speed)
	}
}

func TestDemoRunFindsTarget(t *testing.T) {
	r, clock := newRunner(t, "AB", charset.Demo)

	r.Start(clock.Now())
	require.Equal(t, Running, r.State())

	// first tick checks AA, steps to AB and matches
	snap := r.Tick(clock.Advance(stepTick))
	assert.Equal(t, Success, snap.State)
	assert.Equal(t, "AB", snap.Candidate)
	assert.Equal(t, "1", snap.Attempts)
	assert.NotEmpty(t, snap.RunID)
}

func TestTargetAtIndexZero(t *testing.T) {
	r, clock := newRunner(t, "AAA", charset.Demo)

	r.Start(clock.Now())
	snap := r.Tick(clock.Advance(stepTick))

	assert.Equal(t, Success, snap.State)
	assert.Equal(t, "0", snap.Attempts)
}

func TestBatchDoesNotSkipTarget(t *testing.T) {
	r, clock := newRunner(t, "BCA", charset.Demo)
	index := r.Engine().TargetIndex().Int64()

	require.NoError(t, r.SetSpeed(10))
	r.Start(clock.Now())

	// one tick worth far more steps than the space holds
	snap := r.Tick(clock.Advance(time.Hour))
	assert.Equal(t, Success, snap.State)
	assert.Equal(t, big.NewInt(index).String(), snap.Attempts)
	assert.Equal(t, "BCA", snap.Candidate)
}

func TestUnreachableTargetCompletes(t *testing.T) {
	r, clock := newRunner(t, "A1", charset.Demo)

	r.Start(clock.Now())
	for range 20 {
		r.Tick(clock.Advance(stepTick))
	}

	snap := r.Snapshot()
	assert.Equal(t, Complete, snap.State)
	assert.Equal(t, "9", snap.Attempts)
	assert.Equal(t, 100, snap.Percent)
	assert.Equal(t, "00:00:00", snap.ETA.String())
}

func TestOneStepPerTickVisitsTargetAtItsIndex(t *testing.T) {
	r, clock := newRunner(t, "CAB", charset.Demo)
	index := r.Engine().TargetIndex().Int64()

	r.Start(clock.Now())

	ticks := int64(0)
	for r.State() == Running {
		r.Tick(clock.Advance(stepTick))
		ticks++
	}

	require.Equal(t, Success, r.State())
	// the first tick checks index 0 and then steps once
	assert.Equal(t, index, ticks)
	assert.Equal(t, index, r.Engine().Attempts().Int64())
}

func TestPauseResumeKeepsCounter(t *testing.T) {
	r, clock := newRunner(t, "ZZZ", charset.Alpha)

	r.Start(clock.Now())
	r.Tick(clock.Advance(time.Second))
	before := r.Engine().Attempts().String()

	r.Pause()
	require.Equal(t, Paused, r.State())

	// ticks while paused do nothing, however long the gap
	r.Tick(clock.Advance(time.Minute))
	r.Tick(clock.Advance(time.Minute))
	assert.Equal(t, before, r.Engine().Attempts().String())

	r.Start(clock.Now())
	require.Equal(t, Running, r.State())
	assert.Equal(t, before, r.Engine().Attempts().String())

	// the anchor moved to the resume time, so only one step is owed
	r.Tick(clock.Advance(stepTick))
	got := r.Engine().Attempts()
	want, _ := new(big.Int).SetString(before, 10)
	assert.Equal(t, new(big.Int).Add(want, big.NewInt(1)).String(), got.String())
}

func TestPauseKeepsRunID(t *testing.T) {
	r, clock := newRunner(t, "ZZ", charset.Alpha)

	r.Start(clock.Now())
	id := r.Snapshot().RunID
	require.NotEmpty(t, id)

	r.Pause()
	r.Start(clock.Now())
	assert.Equal(t, id, r.Snapshot().RunID)

	r.Reset()
	assert.Empty(t, r.Snapshot().RunID)
}

func TestPauseWhenNotRunning(t *testing.T) {
	r, _ := newRunner(t, "AB", charset.Demo)

	r.Pause()
	assert.Equal(t, Idle, r.State())
}

func TestStartRules(t *testing.T) {
	t.Run("empty target", func(t *testing.T) {
		r, clock := newRunner(t, "", charset.Demo)
		r.Start(clock.Now())
		assert.Equal(t, Idle, r.State())
	})

	t.Run("already running keeps anchor", func(t *testing.T) {
		r, clock := newRunner(t, "ZZZ", charset.Alpha)
		r.Start(clock.Now())
		r.Start(clock.Advance(time.Second))

		r.Tick(clock.Advance(time.Second))
		// anchor is still the first start, two seconds back
		assert.Equal(t, int64(2*BaseRate), r.Engine().Attempts().Int64())
	})

	t.Run("finished", func(t *testing.T) {
		r, clock := newRunner(t, "A", charset.Demo)
		r.Start(clock.Now())
		r.Tick(clock.Advance(stepTick))
		require.Equal(t, Success, r.State())

		r.Start(clock.Now())
		assert.Equal(t, Success, r.State())
		r.Pause()
		assert.Equal(t, Success, r.State())
	})
}

func TestResetFromAnyState(t *testing.T) {
	drive := map[State]func(t *testing.T, r *Runner, c *ManualClock){
		Idle: func(t *testing.T, r *Runner, c *ManualClock) {},
		Running: func(t *testing.T, r *Runner, c *ManualClock) {
			r.Start(c.Now())
			r.Tick(c.Advance(time.Second))
		},
		Paused: func(t *testing.T, r *Runner, c *ManualClock) {
			r.Start(c.Now())
			r.Tick(c.Advance(time.Second))
			r.Pause()
		},
		Success: func(t *testing.T, r *Runner, c *ManualClock) {
			require.NoError(t, r.Configure("B", charset.Demo))
			r.Start(c.Now())
			r.Tick(c.Advance(time.Second))
		},
		Complete: func(t *testing.T, r *Runner, c *ManualClock) {
			require.NoError(t, r.Configure("9", charset.Demo))
			r.Start(c.Now())
			r.Tick(c.Advance(time.Second))
		},
	}

	for state, setup := range drive {
		t.Run(state.String(), func(t *testing.T) {
			r, clock := newRunner(t, "ZZZZ", charset.Alpha)
			setup(t, r, clock)
			require.Equal(t, state, r.State())

			r.Reset()
			assert.Equal(t, Idle, r.State())
			assert.Zero(t, r.Engine().Attempts().Sign())
		})
	}
}

func TestTickOutsideRunningIsNoop(t *testing.T) {
	r, clock := newRunner(t, "AB", charset.Demo)

	snap := r.Tick(clock.Advance(time.Hour))
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, "0", snap.Attempts)
}

func TestResetBetweenFramesStopsNextTick(t *testing.T) {
	r, clock := newRunner(t, "ZZZ", charset.Alpha)

	r.Start(clock.Now())
	r.Tick(clock.Advance(time.Second))
	r.Reset()

	snap := r.Tick(clock.Advance(time.Second))
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, "0", snap.Attempts)
}

func TestConfigureResets(t *testing.T) {
	r, clock := newRunner(t, "ZZZ", charset.Alpha)
	r.Start(clock.Now())
	r.Tick(clock.Advance(time.Second))

	require.NoError(t, r.Configure("42", charset.Numeric))
	snap := r.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, "0", snap.Attempts)
	assert.Equal(t, "100", snap.Total)
	assert.Equal(t, charset.Numeric, snap.SetName)
	assert.Equal(t, 10, snap.SetSize)
}

func TestConfigureUnknownSetKeepsState(t *testing.T) {
	r, clock := newRunner(t, "ZZZ", charset.Alpha)
	r.Start(clock.Now())

	err := r.Configure("ZZZ", "klingon")
	assert.ErrorIs(t, err, charset.ErrUnknownSet)
	assert.Equal(t, Running, r.State())
}

func TestSetSpeed(t *testing.T) {
	r, _ := newRunner(t, "AB", charset.Demo)

	require.NoError(t, r.SetSpeed(7))
	assert.Equal(t, 7, r.Speed())

	assert.ErrorIs(t, r.SetSpeed(0), ErrInvalidSpeed)
	assert.Equal(t, 7, r.Speed())
}

func TestSeek(t *testing.T) {
	r, clock := newRunner(t, "CC", charset.Demo)

	require.NoError(t, r.Seek(big.NewInt(7)))
	r.Start(clock.Now())
	snap := r.Tick(clock.Advance(stepTick))
	assert.Equal(t, Success, snap.State)
	assert.Equal(t, "8", snap.Attempts)

	assert.ErrorIs(t, r.Seek(big.NewInt(0)), ErrNotIdle)

	r.Reset()
	assert.Error(t, r.Seek(big.NewInt(9)))
}

func TestSnapshotGears(t *testing.T) {
	r, _ := newRunner(t, "AAA", charset.Demo)
	require.NoError(t, r.Seek(big.NewInt(5)))

	snap := r.Snapshot()
	assert.Equal(t, "ABC", snap.Candidate)
	assert.Equal(t, []int{2, 1, 0}, snap.Digits)
	assert.InDeltaSlice(t, []float64{240, 240, 0}, snap.Angles, 1e-9)
}

func TestLogsRunLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := pterm.DefaultLogger.WithWriter(&buf).WithLevel(pterm.LogLevelDebug).WithFormatter(pterm.LogFormatterJSON)

	r, err := New("B", charset.Demo, logger)
	require.NoError(t, err)

	clock := NewManualClock(epoch)
	r.Start(clock.Now())
	r.Tick(clock.Advance(stepTick))
	require.Equal(t, Success, r.State())

	out := buf.String()
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "target found")
	assert.Contains(t, out, r.Snapshot().RunID)
}
