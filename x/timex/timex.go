package timex

import "time"

// ResetTimer safely re-arms a timer that may or may not have fired.
// The caller must not be concurrently receiving from t.C.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

// DrainTimer empties a fired timer's channel without blocking.
func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}

// NewStopped returns a stopped timer ready for ResetTimer. Loops that arm
// a deadline only when work is pending start from this.
func NewStopped() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		DrainTimer(t)
	}
	return t
}
