package watchdog

import (
	"fmt"
	"time"

	"github.com/fxjung/pushover-watchdog/internal/domain"
)

// Params are the knobs Evaluate needs. Immutable for the process lifetime.
type Params struct {
	Threshold float64       // usage fraction in (0,1]
	Cooldown  time.Duration // 0 disables repeat alerts while still above
	HostLabel string        // shown in the message body
}

// TargetState tracks one monitored resource across samples. Created once at
// startup and mutated only by Evaluate; a restart resets it.
type TargetState struct {
	Name string

	lastAbove   bool
	lastAlertAt time.Time
}

func NewTargetState(name string) *TargetState {
	return &TargetState{Name: name}
}

// LastAbove reports whether the most recent sample was at/over threshold.
func (s *TargetState) LastAbove() bool { return s.lastAbove }

// LastAlertAt reports when the last alert was dispatched (zero = never).
func (s *TargetState) LastAlertAt() time.Time { return s.lastAlertAt }

// Decision is the outcome of one evaluation.
type Decision struct {
	Alert   bool
	Title   string
	Message string
}

// Evaluate decides whether a sample warrants an alert and updates state.
//
// An alert fires on the crossing edge (below -> at/above threshold), or while
// sustained above threshold once the cooldown has elapsed since the last
// alert. Cooldown 0 means edge-only: no repeats until usage drops below
// threshold and crosses again.
//
// The alert timestamp is stamped here, before the caller attempts delivery,
// so a broken notification channel does not turn into an alert storm when it
// recovers. lastAbove is updated last, unconditionally: it must reflect this
// sample, and the crossing check above needs its prior value.
func Evaluate(state *TargetState, sample domain.Sample, now time.Time, p Params) Decision {
	above := sample.Fraction >= p.Threshold
	crossedUp := !state.lastAbove && above
	cooled := now.Sub(state.lastAlertAt) >= p.Cooldown

	var d Decision
	if crossedUp || (above && p.Cooldown > 0 && cooled) {
		d = Decision{
			Alert:   true,
			Title:   alertTitle(state.Name, p.Threshold),
			Message: alertMessage(state.Name, p.HostLabel, sample, p.Threshold),
		}
		state.lastAlertAt = now
	}

	state.lastAbove = above
	return d
}

func alertTitle(name string, threshold float64) string {
	return fmt.Sprintf("Watchdog alert: %s >= %.0f%%", name, threshold*100)
}

func alertMessage(name, host string, sample domain.Sample, threshold float64) string {
	return fmt.Sprintf(
		"%s usage on %s is high.\nUsage: %.1f%% (%s / %s)\nThreshold: %.0f%%",
		name,
		host,
		sample.Fraction*100,
		FmtBytes(sample.UsedBytes),
		FmtBytes(sample.TotalBytes),
		threshold*100,
	)
}
