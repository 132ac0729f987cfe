package mail

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// logSender stands in for SendGrid in local setups.
type logSender struct{}

func (logSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	to := ""
	if len(email.Personalizations) > 0 && len(email.Personalizations[0].To) > 0 {
		to = email.Personalizations[0].To[0].Address
	}
	body := ""
	if len(email.Content) > 0 {
		body = email.Content[0].Value
	}
	slog.Default().InfoContext(ctx, "mail",
		slog.String("to", to),
		slog.String("subject", email.Subject),
		slog.String("body", body),
	)
	return &rest.Response{StatusCode: http.StatusAccepted}, nil
}
