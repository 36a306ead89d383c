package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fxjung/pushover-watchdog/internal/domain"
	"github.com/fxjung/pushover-watchdog/internal/metrics"
	"github.com/fxjung/pushover-watchdog/internal/notify"
	"github.com/fxjung/pushover-watchdog/internal/status"
	"github.com/fxjung/pushover-watchdog/internal/watchdog"
)

// Watcher drives the watch loop: each tick it samples every source, runs the
// alert engine, and sends whatever the engine decided. One target's failure
// never blocks the others.
type Watcher struct {
	Logger      *zap.Logger
	Sources     []metrics.Source
	Notifier    notify.Notifier
	Status      *status.Store
	Params      watchdog.Params
	Interval    time.Duration
	SendTimeout time.Duration

	states map[string]*watchdog.TargetState
	now    func() time.Time
}

func NewWatcher(
	logger *zap.Logger,
	sources []metrics.Source,
	notifier notify.Notifier,
	store *status.Store,
	params watchdog.Params,
	interval time.Duration,
) *Watcher {
	states := make(map[string]*watchdog.TargetState, len(sources))
	for _, src := range sources {
		states[src.Name()] = watchdog.NewTargetState(src.Name())
	}
	return &Watcher{
		Logger:      logger,
		Sources:     sources,
		Notifier:    notifier,
		Status:      store,
		Params:      params,
		Interval:    interval,
		SendTimeout: 10 * time.Second,
		states:      states,
		now:         time.Now,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// immediate pass
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watcher_stopped")
			return
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	for _, src := range w.Sources {
		w.checkTarget(ctx, src)
	}
}

func (w *Watcher) checkTarget(ctx context.Context, src metrics.Source) {
	name := src.Name()
	now := w.now()

	sample, err := src.Sample(ctx)
	if err != nil {
		// skip this target for the tick; alert state stays untouched
		w.Logger.Warn("sample_error",
			zap.String("target", name),
			zap.Error(err),
		)
		prev, _ := w.Status.Get(name)
		prev.Name = name
		prev.SampledAt = now
		prev.LastError = err.Error()
		w.Status.Set(prev)
		return
	}

	st := w.states[name]
	d := watchdog.Evaluate(st, sample, now, w.Params)

	if d.Alert {
		sctx, cancel := context.WithTimeout(ctx, w.SendTimeout)
		sendErr := w.Notifier.Send(sctx, d.Title, d.Message)
		cancel()
		if sendErr != nil {
			// lastAlertAt was already stamped by Evaluate: no storm when
			// the channel recovers, at the cost of this alert being lost
			w.Logger.Error("alert_send_error",
				zap.String("target", name),
				zap.Error(sendErr),
			)
		} else {
			w.Logger.Info("alert_sent",
				zap.String("target", name),
				zap.Float64("fraction", sample.Fraction),
				zap.String("title", d.Title),
			)
		}
	} else {
		w.Logger.Debug("checked",
			zap.String("target", name),
			zap.Float64("fraction", sample.Fraction),
			zap.Bool("above", st.LastAbove()),
		)
	}

	w.Status.Set(domain.TargetStatus{
		Name:        name,
		Fraction:    sample.Fraction,
		UsedBytes:   sample.UsedBytes,
		TotalBytes:  sample.TotalBytes,
		Above:       st.LastAbove(),
		LastAlertAt: st.LastAlertAt(),
		SampledAt:   now,
	})
}
