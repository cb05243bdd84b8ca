package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"bghomes-backend/internal/config"
	"bghomes-backend/internal/domains/home/model"
	"bghomes-backend/pkg/cache"
)

// Event is one calendar match: a birth or death anniversary.
type Event struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Type     string `json:"type"` // "birth" or "death"
	FullDate string `json:"full_date"`
	YearsAgo int    `json:"years_ago"`
}

// RowSource supplies the candidate rows. The month argument ("01".."12")
// is a narrow SQL pre-filter only; the authoritative match happens here.
type RowSource interface {
	CalendarRows(ctx context.Context, mm string) ([]model.CalendarRow, error)
}

// Service matches stored birth/death dates against a target month or
// month-day. Matching is done on the raw "YYYY-MM-DD" string — never by
// parsing into a date type — so no timezone or locale conversion can shift
// a date across midnight.
type Service struct {
	rows  RowSource
	cache cache.Cache
	ttl   config.CacheConfig
	now   func() time.Time
}

// NewService wires the matcher. The clock is injectable for tests; pass
// nil for time.Now.
func NewService(rows RowSource, c cache.Cache, ttl config.CacheConfig, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{rows: rows, cache: c, ttl: ttl, now: clock}
}

var validDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Month returns every event in the given month (1..12), grouped by "MM-DD".
// referenceYear of 0 defaults to the current year.
func (s *Service) Month(ctx context.Context, month, referenceYear int) (map[string][]Event, error) {
	if referenceYear == 0 {
		referenceYear = s.now().Year()
	}
	mm := fmt.Sprintf("%02d", month)

	key := fmt.Sprintf("calendar:month:%s:%d", mm, referenceYear)
	var cached map[string][]Event
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.rows.CalendarRows(ctx, mm)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]Event)
	for _, row := range rows {
		for _, ev := range matchRow(row, referenceYear, func(monthDay string) bool {
			return monthDay[:2] == mm
		}) {
			monthDay := ev.FullDate[5:10]
			grouped[monthDay] = append(grouped[monthDay], ev)
		}
	}

	s.cache.Set(ctx, key, grouped, s.ttl.CalendarTTL)
	return grouped, nil
}

// Today returns a flat list of events whose month-day equals today's.
// referenceYear of 0 defaults to the current year.
func (s *Service) Today(ctx context.Context, referenceYear int) ([]Event, error) {
	now := s.now()
	if referenceYear == 0 {
		referenceYear = now.Year()
	}
	target := now.Format("01-02")

	key := fmt.Sprintf("calendar:today:%s:%d", target, referenceYear)
	var cached []Event
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.rows.CalendarRows(ctx, target[:2])
	if err != nil {
		return nil, err
	}

	events := []Event{}
	for _, row := range rows {
		events = append(events, matchRow(row, referenceYear, func(monthDay string) bool {
			return monthDay == target
		})...)
	}

	s.cache.Set(ctx, key, events, s.ttl.TodayTTL)
	return events, nil
}

// matchRow tests birth_date and death_date independently: a record whose
// birth and death share a month-day emits two events. Malformed or missing
// dates are silently skipped.
func matchRow(row model.CalendarRow, referenceYear int, match func(monthDay string) bool) []Event {
	var events []Event

	for _, d := range []struct {
		date    string
		evtType string
	}{
		{row.BirthDate, "birth"},
		{row.DeathDate, "death"},
	} {
		if !validDate.MatchString(d.date) {
			continue
		}
		if !match(d.date[5:10]) {
			continue
		}

		year, err := strconv.Atoi(d.date[:4])
		if err != nil {
			continue
		}

		events = append(events, Event{
			Name:     row.Name,
			Slug:     row.Slug,
			Type:     d.evtType,
			FullDate: d.date,
			YearsAgo: referenceYear - year,
		})
	}

	return events
}
