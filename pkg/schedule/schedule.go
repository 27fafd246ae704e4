// Package schedule runs recurring background tasks on cron expressions.
// It wraps robfig/cron with panic isolation and an overlap guard, so a
// slow sweep can never stack on top of itself.
package schedule

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/shashiranjanraj/bhandar/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	id      string
	spec    string
	running bool
	mu      sync.Mutex
}

var (
	regMu   sync.Mutex
	c       = cron.New()
	entries []*entry
	started bool
)

// Register schedules fn under a 5-field cron expression. The id appears in
// log lines. Overlapping runs of the same task are skipped.
func Register(id, spec string, fn Task) error {
	e := &entry{id: id, spec: spec}

	_, err := c.AddFunc(spec, func() { dispatch(e, fn) })
	if err != nil {
		return fmt.Errorf("schedule: register %q: %w", id, err)
	}

	regMu.Lock()
	entries = append(entries, e)
	regMu.Unlock()
	return nil
}

// Start begins dispatching registered tasks. Safe to call once at boot.
func Start() {
	regMu.Lock()
	defer regMu.Unlock()
	if started {
		return
	}
	started = true
	c.Start()
	logger.Info("schedule: scheduler started", "tasks", len(entries))
}

// Stop halts the scheduler, waiting for running tasks to finish.
func Stop() {
	regMu.Lock()
	defer regMu.Unlock()
	if !started {
		return
	}
	started = false
	<-c.Stop().Done()
	logger.Info("schedule: scheduler stopped")
}

// List returns "id [spec]" for every registered task (for CLI display).
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, e.spec))
	}
	return out
}

func dispatch(e *entry, fn Task) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		if r := recover(); r != nil {
			logger.Error("schedule: task panicked", "id", e.id, "panic", r)
		}
	}()

	logger.Info("schedule: running task", "id", e.id)
	fn()
}
