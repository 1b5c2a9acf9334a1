package email

import (
	"context"
	"fmt"
	"net/smtp"

	"yamdb-backend/pkg/logger"
)

// ConfirmationCodeData carries everything the confirmation email
// template needs.
type ConfirmationCodeData struct {
	Email     string
	Username  string
	Code      string
	ExpiresIn string
}

type EmailService interface {
	SendConfirmationCode(ctx context.Context, data ConfirmationCodeData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendConfirmationCode(ctx context.Context, data ConfirmationCodeData) error {
	subject := "YamDB confirmation code"
	body := fmt.Sprintf(`Hello %s,

Your confirmation code is:
%s

Exchange it for an access token at /api/v1/auth/token.
The code expires in %s. Requesting a new code invalidates this one.

If you did not sign up for YamDB, ignore this message.`,
		data.Username, data.Code, data.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
