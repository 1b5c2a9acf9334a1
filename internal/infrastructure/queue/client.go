package queue

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer abstracts task submission so services can be tested
// without a running redis.
type Enqueuer interface {
	EnqueueConfirmationEmail(ctx context.Context, p ConfirmationEmailPayload) error
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddr, redisPassword string, redisDB int) (Enqueuer, *asynq.Client) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &asynqEnqueuer{client: client}, client
}

func (e *asynqEnqueuer) EnqueueConfirmationEmail(ctx context.Context, p ConfirmationEmailPayload) error {
	task, err := NewConfirmationEmailTask(p)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}
