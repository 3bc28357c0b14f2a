package service

import (
	"context"
	"fmt"
	"sync"

	"reminderio/internal/domain/constant"
	"reminderio/internal/domain/entity"
	"reminderio/internal/infrastructure/scheduler"
	"reminderio/internal/pkg/logger"

	"gorm.io/gorm"
)

type nopLogger struct{}

func (nopLogger) Error(msg string, err error) {}
func (nopLogger) Warn(msg string)             {}
func (nopLogger) Info(msg string)             {}
func (nopLogger) Debug(msg string)            {}

var testLog logger.Logger = nopLogger{}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu       sync.Mutex
	users    map[int64]*entity.User
	countErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entity.User)}
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// memReminderRepo is an in-memory ReminderRepository preserving insert order.
type memReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]*entity.Reminder
	order     []string
	countErr  error
	createErr error
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{reminders: make(map[string]*entity.Reminder)}
}

func (r *memReminderRepo) FindByID(ctx context.Context, id string) (*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rem
	return &cp, nil
}

func (r *memReminderRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, id := range r.order {
		if rem := r.reminders[id]; rem.UserID == userID {
			cp := *rem
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memReminderRepo) FindByStatus(ctx context.Context, status constant.ReminderStatus) ([]*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, id := range r.order {
		if rem := r.reminders[id]; rem.Status == status {
			cp := *rem
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memReminderRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	r.order = append(r.order, reminder.ID)
	return nil
}

func (r *memReminderRepo) Update(ctx context.Context, reminder *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[reminder.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	return nil
}

// fakeSchedulerClient is an in-memory scheduler.Client with error injection.
type fakeSchedulerClient struct {
	mu        sync.Mutex
	schedules map[string]scheduler.Schedule
	createErr error
	updateErr error
}

func newFakeSchedulerClient() *fakeSchedulerClient {
	return &fakeSchedulerClient{schedules: make(map[string]scheduler.Schedule)}
}

func (f *fakeSchedulerClient) Create(ctx context.Context, sched scheduler.Schedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schedules[sched.Name]; ok {
		return fmt.Errorf("%w: %s", scheduler.ErrScheduleExists, sched.Name)
	}
	f.schedules[sched.Name] = sched
	return nil
}

func (f *fakeSchedulerClient) Update(ctx context.Context, sched scheduler.Schedule) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schedules[sched.Name]; !ok {
		return fmt.Errorf("%w: %s", scheduler.ErrScheduleNotFound, sched.Name)
	}
	f.schedules[sched.Name] = sched
	return nil
}

func (f *fakeSchedulerClient) Disable(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.schedules[name]
	if !ok {
		return fmt.Errorf("%w: %s", scheduler.ErrScheduleNotFound, name)
	}
	sched.State = scheduler.StateDisabled
	f.schedules[name] = sched
	return nil
}

func (f *fakeSchedulerClient) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.schedules[name]; !ok {
		return fmt.Errorf("%w: %s", scheduler.ErrScheduleNotFound, name)
	}
	delete(f.schedules, name)
	return nil
}

func (f *fakeSchedulerClient) Get(ctx context.Context, name string) (*scheduler.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.schedules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scheduler.ErrScheduleNotFound, name)
	}
	cp := sched
	return &cp, nil
}

// fakeSender records sent messages.
type fakeSender struct {
	mu        sync.Mutex
	sent      []string
	sendErr   error
	verifyErr error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeSender) VerifyIdentity(ctx context.Context, address string) error {
	return f.verifyErr
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
