package mail

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"strings"
	"time"

	"log/slog"

	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	ReplyTo        string        `mapstructure:"reply_to"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	SandboxMode    bool          `mapstructure:"sandbox_mode"`
}

type Mailer struct {
	cli            dependency.Sender
	mailRepository dependency.Mail
	from           *mail.Email
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[string]*template.Template
}

// New returns a SendGrid backed mailer. Without an API key mail is written
// to the log instead of being sent.
func New(c *Config, mailRepository dependency.Mail) (*Mailer, error) {
	var cli dependency.Sender
	if c.APIKey != "" {
		cli = sendgrid.NewSendClient(c.APIKey)
	} else {
		slog.Default().Warn("mailer api key is not set, mail will be logged only")
		cli = logSender{}
	}
	return newMailer(c, cli, mailRepository)
}

func newMailer(c *Config, cli dependency.Sender, mailRepository dependency.Mail) (*Mailer, error) {
	if c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete config: from_email and from_email_name are required")
	}
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = time.Minute
	}

	m := &Mailer{
		cli:            cli,
		mailRepository: mailRepository,
		from:           mail.NewEmail(c.FromName, c.FromEmail),
		c:              c,
		templates:      make(map[string]*template.Template),
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		tmpl, err := template.ParseFS(templatesFS, path.Join(templateDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		m.templates[entry.Name()] = tmpl
	}

	return nil
}

func (m *Mailer) buildSendMailRequest(to, tn string, data any) (*entity.SendEmailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	subject, ok := templateSubjects[tn]
	if !ok {
		return nil, fmt.Errorf("subject not found for template: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	replyTo := m.c.ReplyTo
	if replyTo == "" {
		replyTo = m.c.FromEmail
	}

	return &entity.SendEmailRequest{
		From:     m.c.FromEmail,
		FromName: m.c.FromName,
		To:       to,
		Html:     body.String(),
		Subject:  subject,
		ReplyTo:  replyTo,
	}, nil
}

func (m *Mailer) toSendGrid(ser *entity.SendEmailRequest) *mail.SGMailV3 {
	from := mail.NewEmail(ser.FromName, ser.From)
	msg := mail.NewV3MailInit(from, ser.Subject, mail.NewEmail("", ser.To), mail.NewContent("text/html", ser.Html))
	if ser.ReplyTo != "" {
		msg.SetReplyTo(mail.NewEmail("", ser.ReplyTo))
	}
	if m.c.SandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	return msg
}

func (m *Mailer) sendRaw(ctx context.Context, ser *entity.SendEmailRequest) error {
	resp, err := m.cli.SendWithContext(ctx, m.toSendGrid(ser))
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.MailApiLimitReached
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("error sending email bad status code: %s, status code: %d", resp.Body, resp.StatusCode)
	}
	return nil
}

// sendWithInsert stores the mail in the outbox and tries to send it right
// away. Mail that fails here is picked up again by the worker.
func (m *Mailer) sendWithInsert(ctx context.Context, ser *entity.SendEmailRequest) error {
	id, err := m.mailRepository.AddMail(ctx, ser)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}
	ser.Id = id

	if err := m.sendRaw(ctx, ser); err != nil {
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("err", err.Error()),
			slog.Int("mail_id", id),
		)
		return err
	}

	if err := m.mailRepository.UpdateSent(ctx, id); err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}
	return nil
}
