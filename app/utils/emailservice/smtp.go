package emailservice

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/openpl-dev/powerlifting-api/app/domain/mailer"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

type SMTPMailer struct{}

func NewSMTPMailer() mailer.Mailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	envs := environment_variables.EnvironmentVariables
	auth := smtp.PlainAuth(
		"", envs.SMTP_USERNAME, envs.SMTP_PASSWORD, envs.SMTP_HOST,
	)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		envs.SENDER_EMAIL, to, subject, body,
	)
	addr := net.JoinHostPort(envs.SMTP_HOST, envs.SMTP_PORT)
	return smtp.SendMail(addr, auth, envs.SENDER_EMAIL, []string{to}, []byte(msg))
}
