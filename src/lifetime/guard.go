package lifetime

import "time"

// Guard is the idle watchdog: if no activation arrives before the deadline,
// the coordinator exits cleanly instead of lingering as an orphaned
// background process.
type Guard struct {
	timer *time.Timer
}

// Arm starts the countdown from now.
func Arm(d time.Duration) *Guard {
	return &Guard{timer: time.NewTimer(d)}
}

// Expired fires once when the idle window elapses.
func (g *Guard) Expired() <-chan time.Time { return g.timer.C }

// Cancel stops the countdown. Must be called the instant any activation
// source fires so the timer cannot race a dispatch already underway.
func (g *Guard) Cancel() {
	g.timer.Stop()
}
