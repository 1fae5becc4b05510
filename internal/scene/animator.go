package scene

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TickFunc is invoked on every animation tick.
type TickFunc func(ctx context.Context) error

type animation struct {
	cancel    context.CancelFunc
	startedAt time.Time
}

// Animator regenerates scenes on a fixed-rate timer. Each session has at most
// one timer; it runs until stopped, until the maximum duration elapses, or
// until StopAll.
type Animator struct {
	interval    time.Duration
	maxDuration time.Duration
	runs        map[string]*animation
	closed      bool
	mu          sync.Mutex
	wg          sync.WaitGroup
	logger      *slog.Logger
}

func NewAnimator(tickRate int, maxDuration time.Duration, logger *slog.Logger) *Animator {
	if tickRate <= 0 {
		tickRate = 1
	}

	logger.Debug("Initializing scene animator", "tick_rate", tickRate, "max_duration", maxDuration)

	return &Animator{
		interval:    time.Second / time.Duration(tickRate),
		maxDuration: maxDuration,
		runs:        make(map[string]*animation),
		logger:      logger,
	}
}

// Start arms the timer for sessionID. It reports false when a timer is
// already running for the session or the animator has been shut down.
func (a *Animator) Start(sessionID string, tick TickFunc) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}
	if _, running := a.runs[sessionID]; running {
		return false
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if a.maxDuration > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), a.maxDuration)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	run := &animation{cancel: cancel, startedAt: time.Now()}
	a.runs[sessionID] = run

	a.wg.Add(1)
	go a.loop(ctx, sessionID, run, tick)

	return true
}

// Stop cancels the session's timer and reports whether one was running.
func (a *Animator) Stop(sessionID string) bool {
	a.mu.Lock()
	run, running := a.runs[sessionID]
	delete(a.runs, sessionID)
	a.mu.Unlock()

	if !running {
		return false
	}
	run.cancel()
	return true
}

func (a *Animator) Running(sessionID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, running := a.runs[sessionID]
	return running
}

// Active reports how many sessions are animating.
func (a *Animator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.runs)
}

// StopAll cancels every timer, waits for the loops to exit and refuses new starts.
func (a *Animator) StopAll() {
	a.mu.Lock()
	a.closed = true
	for id, run := range a.runs {
		run.cancel()
		delete(a.runs, id)
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Animator) loop(ctx context.Context, sessionID string, run *animation, tick TickFunc) {
	defer a.wg.Done()

	logger := a.logger.With("component", "scene_animator", "interval", a.interval)
	logger.Debug("Animation started")

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	ticks := 0
	defer func() {
		a.mu.Lock()
		if a.runs[sessionID] == run {
			delete(a.runs, sessionID)
		}
		a.mu.Unlock()
		run.cancel()

		logger.Debug("Animation stopped",
			"ticks", ticks,
			"elapsed", time.Since(run.startedAt),
			"reason", context.Cause(ctx))
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ticks++
			if err := tick(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("Animation tick failed", "error", err)
			}
		}
	}
}
