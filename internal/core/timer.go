package core

import "time"

// StageTiming records how long a named generation stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// StageTimer measures consecutive pipeline stages.
type StageTimer struct {
	now     func() time.Time
	started time.Time
	stage   string
	done    []StageTiming
}

// NewStageTimer constructs a StageTimer using the wall clock.
func NewStageTimer() *StageTimer {
	return &StageTimer{now: time.Now}
}

// Begin closes the running stage, if any, and starts timing the next one.
func (t *StageTimer) Begin(stage string) {
	t.End()
	t.stage = stage
	t.started = t.now()
}

// End closes the running stage and returns its timing. It is a no-op when
// no stage is running.
func (t *StageTimer) End() StageTiming {
	if t.stage == "" {
		return StageTiming{}
	}
	st := StageTiming{Stage: t.stage, Duration: t.now().Sub(t.started)}
	t.done = append(t.done, st)
	t.stage = ""
	return st
}

// Timings returns the completed stages in order.
func (t *StageTimer) Timings() []StageTiming {
	out := make([]StageTiming, len(t.done))
	copy(out, t.done)
	return out
}

// Total sums the recorded stage durations.
func (t *StageTimer) Total() time.Duration {
	var total time.Duration
	for _, st := range t.done {
		total += st.Duration
	}
	return total
}
