package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	Waitlist interface {
		// AddEntry inserts a pending entry. A unique violation on email or phone
		// is returned as gerr.ErrDuplicateRegistration.
		AddEntry(ctx context.Context, e *entity.WaitlistEntryInsert, createdAt time.Time) (*entity.WaitlistEntry, error)
		// GetEntryByEmail returns gerr.ErrEntryNotFound when there is no entry.
		GetEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error)
		// SetVerificationCode overwrites the code of a pending entry. It returns
		// false when the entry is missing or already verified.
		SetVerificationCode(ctx context.Context, email, code string, expiresAt, at time.Time) (bool, error)
		// MarkVerified verifies a pending entry holding code. It returns false
		// when no pending entry with that code exists.
		MarkVerified(ctx context.Context, email, code string, at time.Time) (bool, error)
		SetStatus(ctx context.Context, email string, status entity.EntryStatus, at time.Time) error
		// ListEntries returns every entry read from a single snapshot, oldest first.
		ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error)
	}

	Admin interface {
		AddAdmin(ctx context.Context, a *entity.AdminInsert) (string, error)
		GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
		GetAdminByID(ctx context.Context, id string) (*entity.Admin, error)
		ListAdmins(ctx context.Context) ([]entity.Admin, error)
		SetAdminActive(ctx context.Context, id string, active bool) error
		SetLastLogin(ctx context.Context, id string, at time.Time) error
		ChangePassword(ctx context.Context, id, newHash string) error
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Waitlist() Waitlist
		Admin() Admin
		Mail() Mail
		Now() time.Time
		Ping(ctx context.Context) error
		Close()
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// CodeSender delivers a verification code to the applicant.
	CodeSender interface {
		SendVerificationCode(ctx context.Context, to *entity.WaitlistEntry, code string, expiresAt time.Time) error
	}

	// WelcomeSender greets an applicant once the entry is verified.
	WelcomeSender interface {
		SendWelcome(ctx context.Context, to *entity.WaitlistEntry) error
	}

	Mailer interface {
		CodeSender
		WelcomeSender
		Start(ctx context.Context) error
		Stop() error
	}

	// Sender is the email provider client.
	Sender interface {
		SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
	}

	// SMSClient is the SMS provider client.
	SMSClient interface {
		CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
	}

	FileStore interface {
		// UploadExport stores a CSV export and returns its public URL.
		UploadExport(ctx context.Context, name string, body []byte) (string, error)
	}
)
