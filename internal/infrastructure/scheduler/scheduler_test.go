package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"reminderio/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureInstant() time.Time {
	return time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
}

func testSchedule(name string, fireAt time.Time) Schedule {
	return Schedule{
		Name:       name,
		Expression: AtExpression(fireAt),
		Target: Target{
			Name:       "delivery",
			Payload:    json.RawMessage(`{"reminderId":"reminder_1"}`),
			RetryLimit: 3,
		},
		State: StateEnabled,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(logger.New("error"))
	t.Cleanup(e.Stop)
	return e
}

func TestAtExpressionRoundtrip(t *testing.T) {
	fireAt := time.Date(2026, 12, 24, 18, 30, 5, 0, time.UTC)
	expr := AtExpression(fireAt)
	assert.Equal(t, "at(2026-12-24T18:30:05)", expr)

	parsed, err := ParseExpression(expr)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fireAt))
}

func TestParseExpressionRejectsMalformedInput(t *testing.T) {
	for _, expr := range []string{
		"",
		"2026-12-24T18:30:05",
		"at(2026-12-24)",
		"at(2026-12-24 18:30:05)",
		"cron(0 0 * * *)",
		"at(2026-13-40T99:99:99)",
	} {
		_, err := ParseExpression(expr)
		assert.ErrorIs(t, err, ErrInvalidExpression, "expression %q", expr)
	}
}

func TestValidateExpressionPastTolerance(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// 30 seconds in the past is inside the tolerance window.
	_, err := ValidateExpression(AtExpression(now.Add(-30*time.Second)), now)
	assert.NoError(t, err)

	// Two minutes in the past is not.
	_, err = ValidateExpression(AtExpression(now.Add(-2*time.Minute)), now)
	assert.ErrorIs(t, err, ErrPastFireTime)
}

func TestEngineCreateAndGet(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-a", futureInstant())
	require.NoError(t, e.Create(context.Background(), sched))

	got, err := e.Get(context.Background(), sched.Name)
	require.NoError(t, err)
	assert.Equal(t, sched.Expression, got.Expression)
	assert.Equal(t, StateEnabled, got.State)
	assert.Equal(t, 3, got.Target.RetryLimit)
}

func TestEngineRejectsDuplicateName(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-dup", futureInstant())
	require.NoError(t, e.Create(context.Background(), sched))
	assert.ErrorIs(t, e.Create(context.Background(), sched), ErrScheduleExists)
}

func TestEngineRejectsPastFireTime(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-past", time.Now().UTC().Add(-time.Hour))
	assert.ErrorIs(t, e.Create(context.Background(), sched), ErrPastFireTime)
}

func TestEngineDisablePreservesConfiguration(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-off", futureInstant())
	require.NoError(t, e.Create(context.Background(), sched))
	require.NoError(t, e.Disable(context.Background(), sched.Name))

	got, err := e.Get(context.Background(), sched.Name)
	require.NoError(t, err)
	assert.Equal(t, StateDisabled, got.State)
	assert.Equal(t, sched.Expression, got.Expression)
	assert.Equal(t, sched.Target.Payload, got.Target.Payload)
}

func TestEngineDelete(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-gone", futureInstant())
	require.NoError(t, e.Create(context.Background(), sched))
	require.NoError(t, e.Delete(context.Background(), sched.Name))

	_, err := e.Get(context.Background(), sched.Name)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.ErrorIs(t, e.Delete(context.Background(), sched.Name), ErrScheduleNotFound)
}

func TestEngineUpdateUnknownSchedule(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-missing", futureInstant())
	assert.ErrorIs(t, e.Update(context.Background(), sched), ErrScheduleNotFound)
}

func TestEngineUpdateReplacesExpression(t *testing.T) {
	e := newTestEngine(t)

	sched := testSchedule("reminder-schedule-move", futureInstant())
	require.NoError(t, e.Create(context.Background(), sched))

	later := futureInstant().Add(time.Hour)
	sched.Expression = AtExpression(later)
	require.NoError(t, e.Update(context.Background(), sched))

	got, err := e.Get(context.Background(), sched.Name)
	require.NoError(t, err)
	assert.Equal(t, AtExpression(later), got.Expression)
}

func TestEngineFiresImmediatelyWithinTolerance(t *testing.T) {
	e := newTestEngine(t)

	fired := make(chan Target, 1)
	e.SetInvoker(func(ctx context.Context, target Target) error {
		fired <- target
		return nil
	})

	// A fire instant just inside the past tolerance fires right away.
	sched := testSchedule("reminder-schedule-now", time.Now().UTC().Add(-10*time.Second))
	require.NoError(t, e.Create(context.Background(), sched))

	select {
	case target := <-fired:
		assert.Equal(t, "delivery", target.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("schedule did not fire")
	}
}

func TestEngineDisabledScheduleDoesNotFire(t *testing.T) {
	e := newTestEngine(t)

	fired := make(chan Target, 1)
	e.SetInvoker(func(ctx context.Context, target Target) error {
		fired <- target
		return nil
	})

	sched := testSchedule("reminder-schedule-quiet", time.Now().UTC().Add(-10*time.Second))
	sched.State = StateDisabled
	require.NoError(t, e.Create(context.Background(), sched))

	select {
	case <-fired:
		t.Fatal("disabled schedule fired")
	case <-time.After(200 * time.Millisecond):
	}
}
