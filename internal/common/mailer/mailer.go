// internal/common/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"

	"talenthub/internal/common/aws"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
)

// Sender delivers a plain text email.
type Sender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) error
}

// Mailer renders and sends the transactional emails the auth flows need.
// When disabled it logs instead of sending, so local setups work without SES.
type Mailer struct {
	sender  Sender
	from    string
	baseURL string
	enabled bool
	logger  logger.Logger
}

func New(ses *aws.SESClient, from, baseURL string, enabled bool, log logger.Logger) *Mailer {
	return &Mailer{
		sender:  ses,
		from:    from,
		baseURL: baseURL,
		enabled: enabled,
		logger:  log,
	}
}

// NewWithSender wires a custom sender, used by tests.
func NewWithSender(sender Sender, from, baseURL string, log logger.Logger) *Mailer {
	return &Mailer{
		sender:  sender,
		from:    from,
		baseURL: baseURL,
		enabled: true,
		logger:  log,
	}
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.enabled || m.sender == nil {
		m.logger.Info("Email sending disabled, skipping", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}
	if err := m.sender.SendPlainEmail(ctx, m.from, to, subject, body); err != nil {
		return apperrors.NewEmailSendFailedError(err)
	}
	return nil
}

// SendResetCode mails the 6-digit password reset code.
func (m *Mailer) SendResetCode(ctx context.Context, to, code string, expiryMinutes int) error {
	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Hello,\n\nYour password reset code is: %s\n\nIt expires in %d minutes. If you did not request a reset, you can ignore this email.\n",
		code, expiryMinutes,
	)
	return m.send(ctx, to, subject, body)
}

// SendInvite mails an invited user their temporary password and the
// set-password link.
func (m *Mailer) SendInvite(ctx context.Context, to, fullName, tempPassword, inviteToken string) error {
	subject := "You have been invited to the recruiting portal"
	link := fmt.Sprintf("%s/set-password?token=%s", m.baseURL, inviteToken)
	body := fmt.Sprintf(
		"Hello %s,\n\nAn administrator has created an account for you.\n\nTemporary password: %s\n\nSet your own password here: %s\n",
		fullName, tempPassword, link,
	)
	return m.send(ctx, to, subject, body)
}

// SendApplicationReceived confirms a job application to the candidate.
func (m *Mailer) SendApplicationReceived(ctx context.Context, to, jobTitle string) error {
	subject := fmt.Sprintf("Application received: %s", jobTitle)
	body := fmt.Sprintf(
		"Hello,\n\nWe received your application for %s. Our team will review your profile and reach out if there is a match.\n",
		jobTitle,
	)
	return m.send(ctx, to, subject, body)
}
