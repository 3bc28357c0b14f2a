package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"reminderio/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Engine errors.
var (
	ErrInvalidExpression = errors.New("invalid schedule expression")
	ErrPastFireTime      = errors.New("schedule fire time is in the past")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleExists    = errors.New("schedule already exists")
)

// retryBackoff separates bounded invocation attempts after a target failure.
var retryBackoff = 15 * time.Second

// State is the enabled flag of a schedule.
type State string

const (
	StateEnabled  State = "ENABLED"
	StateDisabled State = "DISABLED"
)

// Target identifies the delivery endpoint a schedule invokes at fire time,
// together with the caller-supplied payload and the bounded retry policy.
type Target struct {
	Name       string
	Payload    json.RawMessage
	RetryLimit int
}

// Schedule is a named one-shot trigger bound to an absolute fire instant.
type Schedule struct {
	Name        string
	Expression  string
	Description string
	Target      Target
	State       State
}

// Invoker executes a schedule's target at fire time.
type Invoker func(ctx context.Context, target Target) error

// Client is the scheduler contract consumed by the application layer:
// one named at-time trigger per reminder, created, replaced, disabled or
// deleted independently of the persisted store.
type Client interface {
	Create(ctx context.Context, sched Schedule) error
	Update(ctx context.Context, sched Schedule) error
	Disable(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*Schedule, error)
}

// Engine keeps the named schedule registry and fires targets through a cron
// runner at seconds precision. Firing and the registry are deliberately not
// linked to the persisted store; the delivery target re-validates state.
type Engine struct {
	cron    *cron.Cron
	log     logger.Logger
	invoker Invoker

	mu        sync.Mutex
	schedules map[string]*Schedule
	entries   map[string]cron.EntryID
}

// NewEngine creates and starts a schedule engine.
func NewEngine(log logger.Logger) *Engine {
	c := cron.New(cron.WithSeconds())
	c.Start()
	return &Engine{
		cron:      c,
		log:       log,
		schedules: make(map[string]*Schedule),
		entries:   make(map[string]cron.EntryID),
	}
}

// SetInvoker registers the function executed at fire time. Called once during
// wiring, before any schedule can fire.
func (e *Engine) SetInvoker(inv Invoker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invoker = inv
}

// formatCronSpec generates a one-shot cron spec for a specific instant.
func formatCronSpec(t time.Time) string {
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", t.Second(), t.Minute(), t.Hour(), t.Day(), t.Month())
}

// Create registers a new named schedule. The expression is validated against
// the at() grammar and the past-tolerance rule.
func (e *Engine) Create(ctx context.Context, sched Schedule) error {
	fireAt, err := ValidateExpression(sched.Expression, time.Now())
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.schedules[sched.Name]; ok {
		return fmt.Errorf("%w: %s", ErrScheduleExists, sched.Name)
	}
	stored := sched
	e.schedules[sched.Name] = &stored
	if stored.State == StateEnabled {
		if err := e.armLocked(stored.Name, fireAt); err != nil {
			delete(e.schedules, sched.Name)
			return err
		}
	}
	e.log.Info(fmt.Sprintf("Created schedule %s firing at %s", sched.Name, fireAt.Format(time.RFC3339)))
	return nil
}

// Update replaces an existing schedule's expression, target and state.
func (e *Engine) Update(ctx context.Context, sched Schedule) error {
	fireAt, err := ValidateExpression(sched.Expression, time.Now())
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.schedules[sched.Name]; !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, sched.Name)
	}
	e.disarmLocked(sched.Name)
	stored := sched
	e.schedules[sched.Name] = &stored
	if stored.State == StateEnabled {
		if err := e.armLocked(stored.Name, fireAt); err != nil {
			return err
		}
	}
	e.log.Info(fmt.Sprintf("Updated schedule %s firing at %s", sched.Name, fireAt.Format(time.RFC3339)))
	return nil
}

// Disable flips the schedule to DISABLED, preserving its configuration.
func (e *Engine) Disable(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	sched, ok := e.schedules[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, name)
	}
	e.disarmLocked(name)
	sched.State = StateDisabled
	e.log.Info(fmt.Sprintf("Disabled schedule %s", name))
	return nil
}

// Delete removes the schedule entirely.
func (e *Engine) Delete(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.schedules[name]; !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, name)
	}
	e.disarmLocked(name)
	delete(e.schedules, name)
	e.log.Info(fmt.Sprintf("Deleted schedule %s", name))
	return nil
}

// Get returns a copy of the named schedule.
func (e *Engine) Get(ctx context.Context, name string) (*Schedule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sched, ok := e.schedules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, name)
	}
	cp := *sched
	return &cp, nil
}

// Stop stops the cron runner and waits for in-flight jobs.
func (e *Engine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
	e.log.Info("Schedule engine stopped.")
}

// armLocked registers the cron entry for a schedule. A fire instant already
// past (but within tolerance) fires immediately instead. Caller holds e.mu.
func (e *Engine) armLocked(name string, fireAt time.Time) error {
	if !fireAt.After(time.Now()) {
		go e.fire(name)
		return nil
	}
	id, err := e.cron.AddFunc(formatCronSpec(fireAt), func() { e.fire(name) })
	if err != nil {
		return fmt.Errorf("failed to add cron entry for %s: %w", name, err)
	}
	e.entries[name] = id
	return nil
}

// disarmLocked removes the cron entry for a schedule, if any. Caller holds e.mu.
func (e *Engine) disarmLocked(name string) {
	if id, ok := e.entries[name]; ok {
		e.cron.Remove(id)
		delete(e.entries, name)
	}
}

// fire invokes the schedule's target with its bounded retry policy. The
// schedule object itself is left in place; deleting it after a successful
// delivery is the target's responsibility.
func (e *Engine) fire(name string) {
	e.mu.Lock()
	sched, ok := e.schedules[name]
	if !ok || sched.State != StateEnabled {
		e.mu.Unlock()
		return
	}
	target := sched.Target
	invoker := e.invoker
	e.disarmLocked(name)
	e.mu.Unlock()

	if invoker == nil {
		e.log.Error(fmt.Sprintf("No invoker set, dropping fired schedule %s", name), nil)
		return
	}

	attempts := target.RetryLimit
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err := invoker(context.Background(), target)
		if err == nil {
			return
		}
		e.log.Error(fmt.Sprintf("Invocation attempt %d/%d failed for schedule %s", attempt, attempts, name), err)
		if attempt < attempts {
			time.Sleep(retryBackoff)
		}
	}
	e.log.Warn(fmt.Sprintf("Abandoning schedule %s after %d failed attempts", name, attempts))
}
