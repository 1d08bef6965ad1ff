// internal/status/tracker.go
package status

import "errors"

// Tracker owns the link status state of one device.
// Poll outcomes move health and error code; the 1 Hz tick moves seconds-in-error.
// Not safe for concurrent use: the orchestrator goroutine owns it.
type Tracker struct {
	snap Snapshot
}

// NewTracker starts in the unknown state.
func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown}}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// Observe folds one poll outcome in and reports whether anything changed.
func (t *Tracker) Observe(err error) (Snapshot, bool) {
	next := t.snap

	if err == nil {
		// Recovery / OK: error code and duration reset.
		next = Snapshot{Health: HealthOK}
	} else {
		next.Health = HealthError
		next.LastErrorCode = CodeOf(err)
		// NOTE: seconds_in_error increments on the 1Hz ticker only.
	}

	changed := next != t.snap
	t.snap = next
	return next, changed
}

// Tick advances seconds-in-error while not OK. It saturates.
func (t *Tracker) Tick() (Snapshot, bool) {
	if t.snap.Health == HealthOK || t.snap.SecondsInError >= SecondsInErrorMax {
		return t.snap, false
	}
	t.snap.SecondsInError++
	return t.snap, true
}

// CodeOf extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns CodeGeneric.
func CodeOf(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeGeneric
}
