// Package mail delivers transactional email through Postmark.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keighl/postmark"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"shopsmart/config"
	"shopsmart/internal/domain/service"
)

const defaultSubject = "Your verification code"

// postmarkMailer is a concrete implementation of the Mailer interface backed
// by the Postmark transactional API.
type postmarkMailer struct {
	client  *postmark.Client
	from    string
	subject string
	logger  *slog.Logger
}

// Params holds dependencies for the mailer, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPostmarkMailer is the constructor for postmarkMailer.
func NewPostmarkMailer(params Params) (service.Mailer, error) {
	cfg := params.Config.Mail
	if cfg == nil || cfg.ServerToken == "" {
		return nil, errors.New("postmark server token must be provided")
	}
	if cfg.From == "" {
		return nil, errors.New("mail sender address must be provided")
	}

	subject := cfg.Subject
	if subject == "" {
		subject = defaultSubject
	}

	return &postmarkMailer{
		client:  postmark.NewClient(cfg.ServerToken, ""),
		from:    cfg.From,
		subject: subject,
		logger:  params.Logger,
	}, nil
}

// SendVerificationCode dispatches the verification code to the address.
func (m *postmarkMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "context cancelled before send")
	}

	msg := postmark.Email{
		From:     m.from,
		To:       email,
		Subject:  m.subject,
		TextBody: fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code),
		HtmlBody: fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 15 minutes.</p>", code),
	}

	resp, err := m.client.SendEmail(msg)
	if err != nil {
		return errors.Wrap(err, "postmark send failed")
	}
	if resp.ErrorCode != 0 {
		return errors.Errorf("postmark rejected message: %s (code %d)", resp.Message, resp.ErrorCode)
	}

	m.logger.Debug("Verification email dispatched", slog.String("email", email), slog.String("messageID", resp.MessageID))

	return nil
}
