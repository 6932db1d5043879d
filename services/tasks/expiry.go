package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeExpireAttempt = "booking:expire-attempt"

// ExpireAttemptPayload names the booking attempt to expire.
type ExpireAttemptPayload struct {
	AttemptID string `json:"attemptId"`
}

// NewExpireAttemptTask builds a task that fires at fireAt. The task id is derived
// from the attempt so scheduling the same attempt twice enqueues it once.
func NewExpireAttemptTask(attemptID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpireAttemptPayload{AttemptID: attemptID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExpireAttempt, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("expire:" + attemptID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ParseExpireAttemptPayload decodes a task payload.
func ParseExpireAttemptPayload(task *asynq.Task) (ExpireAttemptPayload, error) {
	var p ExpireAttemptPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid expire payload: %w", err)
	}
	if p.AttemptID == "" {
		return p, fmt.Errorf("invalid expire payload: missing attemptId")
	}
	return p, nil
}

// Enqueuer is the part of asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExpiryScheduler queues attempt expiry on asynq.
type ExpiryScheduler struct {
	client Enqueuer
}

func NewExpiryScheduler(client Enqueuer) *ExpiryScheduler {
	return &ExpiryScheduler{client: client}
}

func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, attemptID string, at time.Time) error {
	task, opts, err := NewExpireAttemptTask(attemptID, at)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue expiry for %s: %w", attemptID, err)
	}
	return nil
}
