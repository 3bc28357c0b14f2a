package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"reminderio/internal/application/dto"
	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
	"reminderio/internal/infrastructure/scheduler"
	apperrors "reminderio/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID int64 = 1000

type reminderFixture struct {
	userRepo     *memUserRepo
	reminderRepo *memReminderRepo
	client       *fakeSchedulerClient
	syncSvc      ScheduleSyncService
	svc          ReminderService
}

func newReminderFixture(t *testing.T) *reminderFixture {
	t.Helper()
	userRepo := newMemUserRepo()
	reminderRepo := newMemReminderRepo()
	client := newFakeSchedulerClient()

	require.NoError(t, userRepo.Create(context.Background(), &entity.User{
		ID:    testUserID,
		Email: "owner@example.com",
		Name:  "Owner",
	}))

	quotaSvc := NewQuotaService(userRepo, reminderRepo, 5, 10, testLog)
	syncSvc := NewScheduleSyncService(client, reminderRepo, userRepo, testLog)
	svc := NewReminderService(reminderRepo, quotaSvc, syncSvc, testLog)
	return &reminderFixture{
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		client:       client,
		syncSvc:      syncSvc,
		svc:          svc,
	}
}

func futureDate() int64 {
	return time.Now().Add(24 * time.Hour).UnixMilli()
}

func TestCreateReminderRegistersTrigger(t *testing.T) {
	f := newReminderFixture(t)

	result, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Dentist",
		Description:  "Bring insurance card",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	assert.Equal(t, "SCHEDULED", result.Reminder.Status)
	assert.Equal(t, testUserID, result.Reminder.UserID)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, ScheduleName(result.Reminder.ID), result.Schedule.Name)
	assert.Equal(t, string(scheduler.StateEnabled), result.Schedule.State)

	stored, err := f.reminderRepo.FindByID(context.Background(), result.Reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.StatusScheduled, stored.Status)
}

func TestCreateReminderValidatesInput(t *testing.T) {
	f := newReminderFixture(t)

	_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		ReminderDate: futureDate(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title: "No date",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateReminderTriggerFailureKeepsRow(t *testing.T) {
	f := newReminderFixture(t)
	f.client.createErr = errors.New("registry unavailable")

	_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Orphaned",
		ReminderDate: futureDate(),
	})
	require.ErrorIs(t, err, apperrors.ErrScheduler)

	// The row survives the trigger failure for reconciliation to find.
	reminders, err := f.reminderRepo.FindByUserID(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, constant.StatusScheduled, reminders[0].Status)
}

func TestCreateReminderEnforcesQuota(t *testing.T) {
	f := newReminderFixture(t)

	for i := 0; i < 10; i++ {
		_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
			Title:        fmt.Sprintf("Reminder %d", i),
			ReminderDate: futureDate(),
		})
		require.NoError(t, err)
	}

	_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "One too many",
		ReminderDate: futureDate(),
	})
	assert.ErrorIs(t, err, apperrors.ErrCapacity)

	reminders, err := f.reminderRepo.FindByUserID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Len(t, reminders, 10)
}

func TestQuotaFailsClosedOnStoreError(t *testing.T) {
	f := newReminderFixture(t)
	f.reminderRepo.countErr = errors.New("disk gone")

	_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Should not exist",
		ReminderDate: futureDate(),
	})
	assert.ErrorIs(t, err, apperrors.ErrStore)
}

func TestGetReminderHidesForeignRows(t *testing.T) {
	f := newReminderFixture(t)

	created, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Private",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	_, err = f.svc.GetReminder(context.Background(), testUserID+1, created.Reminder.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.GetReminder(context.Background(), testUserID, "reminder_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateReminderKeepsOmittedFields(t *testing.T) {
	f := newReminderFixture(t)

	created, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Original",
		Description:  "Keep me",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	newDate := time.Now().Add(48 * time.Hour).UnixMilli()
	updated, err := f.svc.UpdateReminder(context.Background(), testUserID, created.Reminder.ID, dto.UpdateReminderRequest{
		ReminderDate: newDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Reminder.Title)
	assert.Equal(t, "Keep me", updated.Reminder.Description)
	assert.Equal(t, newDate, updated.Reminder.ReminderDate)
	require.NotNil(t, updated.Schedule)
	assert.Equal(t, scheduler.AtExpression(time.UnixMilli(newDate)), updated.Schedule.Expression)
}

func TestUpdateRejectsTerminalReminder(t *testing.T) {
	f := newReminderFixture(t)

	created, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Done deal",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	_, err = f.svc.CancelReminder(context.Background(), testUserID, created.Reminder.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateReminder(context.Background(), testUserID, created.Reminder.ID, dto.UpdateReminderRequest{
		Title: "Too late",
	})
	assert.ErrorIs(t, err, apperrors.ErrTerminalState)

	_, err = f.svc.CancelReminder(context.Background(), testUserID, created.Reminder.ID)
	assert.ErrorIs(t, err, apperrors.ErrTerminalState)
}

func TestCancelReminderDisablesTrigger(t *testing.T) {
	f := newReminderFixture(t)

	created, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Changed my mind",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	cancelled, err := f.svc.CancelReminder(context.Background(), testUserID, created.Reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	// The trigger stays in the registry, disabled.
	sched, err := f.syncSvc.GetReminderSchedule(context.Background(), created.Reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.StateDisabled, sched.State)
}

func TestFindOrphansReportsPastDueWithoutTrigger(t *testing.T) {
	f := newReminderFixture(t)

	// A past-due scheduled row with no trigger, as left behind by a
	// registration failure.
	orphan := &entity.Reminder{
		ID:           "reminder_orphan",
		UserID:       testUserID,
		Title:        "Lost",
		ReminderDate: time.Now().Add(-time.Hour).UnixMilli(),
		Status:       constant.StatusScheduled,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	require.NoError(t, f.reminderRepo.Create(context.Background(), orphan))

	// A healthy future reminder with its trigger in place.
	_, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Healthy",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	orphans, err := f.svc.FindOrphans(context.Background())
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "reminder_orphan", orphans[0].ID)
}

func TestResyncRestoresMissingTriggers(t *testing.T) {
	f := newReminderFixture(t)

	created, err := f.svc.CreateReminder(context.Background(), testUserID, dto.CreateReminderRequest{
		Title:        "Survivor",
		ReminderDate: futureDate(),
	})
	require.NoError(t, err)

	// Simulate a restart that lost the registry.
	require.NoError(t, f.client.Delete(context.Background(), ScheduleName(created.Reminder.ID)))
	require.NoError(t, f.syncSvc.ResyncSchedules(context.Background()))

	sched, err := f.syncSvc.GetReminderSchedule(context.Background(), created.Reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.StateEnabled, sched.State)
}
