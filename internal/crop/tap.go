package crop

import "time"

// DoubleTapWindow is the longest gap between two taps that still counts as a
// double tap.
const DoubleTapWindow = 500 * time.Millisecond

// TapTracker recognises two pointer-ups on the same box within
// DoubleTapWindow.
type TapTracker struct {
	boxID int
	at    time.Time
}

// Register records a tap on boxID (0 for empty space) and reports whether it
// completes a double tap. A completed double tap resets the tracker.
func (t *TapTracker) Register(boxID int, now time.Time) bool {
	if boxID != 0 && boxID == t.boxID && !t.at.IsZero() {
		if d := now.Sub(t.at); d >= 0 && d <= DoubleTapWindow {
			t.Reset()
			return true
		}
	}
	t.boxID = boxID
	t.at = now
	return false
}

func (t *TapTracker) Reset() {
	t.boxID = 0
	t.at = time.Time{}
}
