package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeConfirmationEmail delivers a signup confirmation code.
	TypeConfirmationEmail = "email:confirmation_code"
)

// ConfirmationEmailPayload is the task payload for confirmation
// code delivery.
type ConfirmationEmailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Code     string `json:"code"`
}

// NewConfirmationEmailTask builds the asynq task for a confirmation
// code email.
func NewConfirmationEmailTask(p ConfirmationEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal confirmation email payload: %w", err)
	}
	return asynq.NewTask(TypeConfirmationEmail, payload, asynq.MaxRetry(3)), nil
}
