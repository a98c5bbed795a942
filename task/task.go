// Package task provides the periodic-task primitive used to pace the
// flight loop. A Task never reads a clock itself; callers pass in the
// current monotonic time in microseconds.
package task

// Task tracks the next deadline for a fixed-interval activity.
// The zero deadline makes a freshly created Task due immediately.
type Task struct {
	intervalMicros uint64
	nextMicros     uint64
}

// New creates a Task that fires every intervalMicros microseconds.
func New(intervalMicros uint64) Task {
	return Task{intervalMicros: intervalMicros}
}

// Due reports whether the deadline has passed without advancing it.
func (t *Task) Due(nowMicros uint64) bool {
	return nowMicros >= t.nextMicros
}

// Advance moves the deadline one interval past now.
func (t *Task) Advance(nowMicros uint64) {
	t.nextMicros = nowMicros + t.intervalMicros
}

// DueAndAdvance reports whether the deadline has passed, advancing it
// when it has.
func (t *Task) DueAndAdvance(nowMicros uint64) bool {
	due := t.Due(nowMicros)
	if due {
		t.Advance(nowMicros)
	}
	return due
}
