package handlers

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"yamdb-backend/internal/infrastructure/email"
	"yamdb-backend/internal/infrastructure/queue"
)

// ConfirmationEmailHandler delivers signup confirmation codes over
// SMTP. Transport errors are returned so asynq retries; malformed
// payloads are skipped.
func ConfirmationEmailHandler(emailSvc email.EmailService) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p queue.ConfirmationEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		data := email.ConfirmationCodeData{
			Email:     p.Email,
			Username:  p.Username,
			Code:      p.Code,
			ExpiresIn: "24 hours",
		}

		if err := emailSvc.SendConfirmationCode(ctx, data); err != nil {
			return err // network/SMTP error, retry
		}
		return nil
	}
}
