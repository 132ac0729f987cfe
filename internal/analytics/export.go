package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"time"

	"log/slog"

	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

const exportFolder = "exports"

var exportHeader = []string{
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Company",
	"Role",
	"Company Size",
	"Industry",
	"Current Tools",
	"Pain Points",
	"How They Heard About Us",
	"Newsletter Subscribed",
	"Verified",
	"Registration Date",
}

// ErrArchiveDisabled is returned by ArchiveExport without a file store.
var ErrArchiveDisabled = gerr.New(gerr.KindInternal, "export archive is not configured")

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("waitlist-export-%s.csv", now.UTC().Format("2006-01-02-15-04"))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func exportRow(e *entity.WaitlistEntry) []string {
	return []string{
		e.FirstName,
		e.LastName,
		e.Email,
		e.Phone.String,
		e.Company,
		e.Role,
		e.CompanySize,
		e.Industry,
		e.CurrentTools.String,
		e.PainPoints,
		e.HearAbout,
		yesNo(e.Newsletter),
		yesNo(e.IsVerified),
		e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeCSV(w io.Writer, entries []entity.WaitlistEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("can't write export header: %w", err)
	}
	for i := range entries {
		if err := cw.Write(exportRow(&entries[i])); err != nil {
			return fmt.Errorf("can't write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSnapshot writes every entry as CSV, oldest first. The entries come
// from a single snapshot read. It returns gerr.ErrNoDataToExport when the
// waitlist is empty and nothing is written.
func (a *Aggregator) ExportSnapshot(ctx context.Context, w io.Writer) error {
	entries, err := a.entries.ListEntries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return gerr.ErrNoDataToExport
	}
	return writeCSV(w, entries)
}

// ArchiveExport uploads a fresh export to the file store and returns its URL.
func (a *Aggregator) ArchiveExport(ctx context.Context) (string, error) {
	if a.files == nil {
		return "", ErrArchiveDisabled
	}

	var buf bytes.Buffer
	if err := a.ExportSnapshot(ctx, &buf); err != nil {
		return "", err
	}

	name := path.Join(exportFolder, ExportFilename(a.now()))
	url, err := a.files.UploadExport(ctx, name, buf.Bytes())
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload export archive",
			slog.String("err", err.Error()),
			slog.String("name", name),
		)
		return "", fmt.Errorf("can't upload export archive: %w", err)
	}
	return url, nil
}
