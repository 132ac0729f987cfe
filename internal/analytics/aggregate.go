// Package analytics computes read-only summaries over waitlist entries and
// produces the CSV export.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWindowDays = 30
	MaxWindowDays     = 365

	dayLayout = "2006-01-02"
)

type Aggregator struct {
	entries dependency.Waitlist
	files   dependency.FileStore
	now     func() time.Time
}

// New returns an aggregator reading from entries. files may be nil, in
// which case ArchiveExport is unavailable.
func New(entries dependency.Waitlist, files dependency.FileStore) *Aggregator {
	return &Aggregator{
		entries: entries,
		files:   files,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func windowDays(days int) (int, error) {
	if days <= 0 {
		return DefaultWindowDays, nil
	}
	if days > MaxWindowDays {
		return 0, gerr.Validation([]gerr.FieldViolation{{
			Field:   "days",
			Message: fmt.Sprintf("Must be between 1 and %d.", MaxWindowDays),
		}})
	}
	return days, nil
}

// Growth buckets entries created within the last days*24h of now by UTC
// calendar day. Days without registrations are omitted.
func Growth(entries []entity.WaitlistEntry, now time.Time, days int) []entity.GrowthPoint {
	since := now.Add(-time.Duration(days) * 24 * time.Hour)

	byDay := map[string]*entity.GrowthPoint{}
	for _, e := range entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		day := e.CreatedAt.UTC().Format(dayLayout)
		p, ok := byDay[day]
		if !ok {
			p = &entity.GrowthPoint{Day: day}
			byDay[day] = p
		}
		p.Count++
		if e.IsVerified {
			p.Verified++
		}
	}

	points := make([]entity.GrowthPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points
}

// Breakdown groups all entries by field, most common value first.
func Breakdown(entries []entity.WaitlistEntry, field entity.CategoryField) []entity.CategoryCount {
	value := categoryValue(field)
	if value == nil {
		return nil
	}

	groups := map[string]*entity.CategoryCount{}
	for i := range entries {
		v := value(&entries[i])
		g, ok := groups[v]
		if !ok {
			g = &entity.CategoryCount{Value: v}
			groups[v] = g
		}
		g.Count++
		if entries[i].IsVerified {
			g.VerifiedCount++
		}
	}

	out := make([]entity.CategoryCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func categoryValue(field entity.CategoryField) func(*entity.WaitlistEntry) string {
	switch field {
	case entity.CategoryIndustry:
		return func(e *entity.WaitlistEntry) string { return e.Industry }
	case entity.CategoryCompanySize:
		return func(e *entity.WaitlistEntry) string { return e.CompanySize }
	default:
		return nil
	}
}

func (a *Aggregator) GrowthSeries(ctx context.Context, days int) ([]entity.GrowthPoint, error) {
	days, err := windowDays(days)
	if err != nil {
		return nil, err
	}
	entries, err := a.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return Growth(entries, a.now(), days), nil
}

func (a *Aggregator) CategoryBreakdown(ctx context.Context, field entity.CategoryField) ([]entity.CategoryCount, error) {
	if categoryValue(field) == nil {
		return nil, gerr.Validation([]gerr.FieldViolation{{
			Field:   "field",
			Message: fmt.Sprintf("Unknown category %q.", field),
		}})
	}
	entries, err := a.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return Breakdown(entries, field), nil
}

func (a *Aggregator) PainPointKeywords(ctx context.Context) (*entity.PainPointSummary, error) {
	entries, err := a.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	s := Keywords(entries)
	return &s, nil
}

// Summary computes the whole dashboard from a single snapshot read.
func (a *Aggregator) Summary(ctx context.Context, days int) (*entity.AnalyticsSummary, error) {
	days, err := windowDays(days)
	if err != nil {
		return nil, err
	}
	entries, err := a.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	now := a.now()

	s := &entity.AnalyticsSummary{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Growth = Growth(entries, now, days)
		return ctx.Err()
	})
	g.Go(func() error {
		s.Industry = Breakdown(entries, entity.CategoryIndustry)
		return ctx.Err()
	})
	g.Go(func() error {
		s.CompanySize = Breakdown(entries, entity.CategoryCompanySize)
		return ctx.Err()
	})
	g.Go(func() error {
		s.PainPoints = Keywords(entries)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("can't compute analytics summary: %w", err)
	}
	return s, nil
}
