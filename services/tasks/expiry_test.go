package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "expire:" + string(task.Payload())}, nil
}

func TestExpireAttemptTaskRoundTrip(t *testing.T) {
	task, opts, err := NewExpireAttemptTask("a1", time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("NewExpireAttemptTask: %v", err)
	}
	if task.Type() != TypeExpireAttempt || len(opts) != 3 {
		t.Errorf("task %s with %d options", task.Type(), len(opts))
	}
	p, err := ParseExpireAttemptPayload(task)
	if err != nil || p.AttemptID != "a1" {
		t.Errorf("payload: %+v, %v", p, err)
	}
	if _, err := ParseExpireAttemptPayload(asynq.NewTask(TypeExpireAttempt, []byte(`{}`))); err == nil {
		t.Error("expected missing attemptId to be rejected")
	}
}

func TestScheduleExpiry(t *testing.T) {
	q := &fakeEnqueuer{}
	s := NewExpiryScheduler(q)
	if err := s.ScheduleExpiry(context.Background(), "a1", time.Now()); err != nil {
		t.Fatalf("ScheduleExpiry: %v", err)
	}
	if len(q.tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(q.tasks))
	}

	q.err = asynq.ErrTaskIDConflict
	if err := s.ScheduleExpiry(context.Background(), "a1", time.Now()); err != nil {
		t.Errorf("duplicate schedule should be ignored, got %v", err)
	}
	q.err = errors.New("redis down")
	if err := s.ScheduleExpiry(context.Background(), "a1", time.Now()); err == nil {
		t.Error("expected enqueue failure to surface")
	}
}
