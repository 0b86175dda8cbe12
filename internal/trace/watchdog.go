package trace

import (
	"sync"
	"time"
)

// Stall describes a call stack that stayed open while the turn did not move.
type Stall struct {
	Turn  int
	Depth int
	Since time.Time
	For   time.Duration
}

// Watchdog periodically samples a Tracker and reports stalls. A wrapped call
// that never returns keeps the stack non-empty and blocks every later turn;
// the watchdog makes that visible. It does not unwind anything.
type Watchdog struct {
	tracker   *Tracker
	interval  time.Duration
	threshold time.Duration
	report    func(Stall)
	now       func() time.Time

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// StartWatchdog creates and starts a watchdog goroutine sampling t every
// interval. report is called once per turn whose stack stays open for at
// least threshold.
func StartWatchdog(t *Tracker, interval, threshold time.Duration, report func(Stall)) *Watchdog {
	if t == nil || report == nil || interval <= 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = interval
	}

	w := &Watchdog{
		tracker:   t,
		interval:  interval,
		threshold: threshold,
		report:    report,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()

	return w
}

// run is the sampling loop.
func (w *Watchdog) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var p probe
	for {
		select {
		case <-ticker.C:
			if s, ok := p.observe(w.tracker.Snapshot(), w.now(), w.threshold); ok {
				w.report(s)
			}
		case <-w.stopCh:
			return
		}
	}
}

// Stop gracefully stops the watchdog goroutine and waits for it to finish.
func (w *Watchdog) Stop() {
	if w == nil {
		return
	}

	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	w.mu.Unlock()

	close(w.stopCh)
	w.wg.Wait()
}

// probe holds the stall detection state between samples.
type probe struct {
	turn     int
	since    time.Time
	open     bool
	reported bool
}

// observe folds one sample into the probe and returns a stall the first time
// the same open turn crosses threshold.
func (p *probe) observe(st TraceState, now time.Time, threshold time.Duration) (Stall, bool) {
	if len(st.CallStack) == 0 {
		*p = probe{}
		return Stall{}, false
	}
	if !p.open || p.turn != st.CurrentTurn {
		*p = probe{turn: st.CurrentTurn, since: now, open: true}
		return Stall{}, false
	}
	elapsed := now.Sub(p.since)
	if p.reported || elapsed < threshold {
		return Stall{}, false
	}
	p.reported = true
	return Stall{
		Turn:  st.CurrentTurn,
		Depth: len(st.CallStack),
		Since: p.since,
		For:   elapsed,
	}, true
}
