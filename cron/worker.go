package cron

import (
	"context"
	"time"

	"courtbook/config"
	"courtbook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Expirer expires abandoned booking attempts.
type Expirer interface {
	Expire(ctx context.Context, attemptID string) error
	SweepExpired(ctx context.Context) (int, error)
}

// QueueRedisOpt is the asynq connection for the expiry queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitExpiryWorker runs the asynq worker in the background and returns the server
// so the caller can shut it down.
func InitExpiryWorker(ctx context.Context, expirer Expirer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpireAttempt, handleExpireTask(expirer, logger))

	go monitorQueueConnection(ctx, logger)

	go func() {
		logger.Info("Starting expiry worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Expiry worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Expiry worker gave up; abandoned bookings are swept locally only")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

func handleExpireTask(expirer Expirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseExpireAttemptPayload(task)
		if err != nil {
			logger.Error("Dropping malformed expiry task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := expirer.Expire(ctx, p.AttemptID); err != nil {
			logger.Warn("Attempt expiry failed", zap.String("attemptId", p.AttemptID), zap.Error(err))
			return err
		}
		return nil
	}
}

// StartSweeper periodically expires overdue attempts. It backs up the queue and is
// the only reaper when no redis is configured. It stops when ctx is done.
func StartSweeper(ctx context.Context, expirer Expirer, every time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := expirer.SweepExpired(ctx)
				if err != nil {
					logger.Warn("Expiry sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Info("Expired abandoned booking attempts", zap.Int("count", n))
				}
			}
		}
	}()
}

// monitorQueueConnection pings the queue's redis periodically to detect failures at runtime.
func monitorQueueConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Queue redis connection lost", zap.Error(err))
			}
		}
	}
}
