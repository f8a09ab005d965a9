package utils

import "time"

type Timer struct {
	start time.Time
	last  time.Time
	laps  []Lap
}

type Lap struct {
	Stage    string
	Duration time.Duration
}

func NewTimer() *Timer {
	now := time.Now()
	return &Timer{start: now, last: now}
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Lap cierra la etapa actual y devuelve su duración.
func (t *Timer) Lap(stage string) time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	t.laps = append(t.laps, Lap{Stage: stage, Duration: d})
	return d
}

func (t *Timer) Laps() []Lap {
	out := make([]Lap, len(t.laps))
	copy(out, t.laps)
	return out
}
