// Package seed creates test therapy-session events so calendar-driven
// pipelines have realistic data to exercise.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/epmk/stackflow/internal/workspace"
)

// Calendar is the slice of the workspace stack the seeder needs.
type Calendar interface {
	CreateEvent(ctx context.Context, ev workspace.Event) (string, error)
	ListEvents(ctx context.Context, timeMin time.Time, maxResults int64) ([]workspace.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// clients rotates through the generated sessions.
var clients = []string{
	"Sarah Johnson",
	"Michael Chen",
	"Emily Rodriguez",
	"David Thompson",
	"Jennifer Williams",
}

// Session is one planned therapy session.
type Session struct {
	Client   string
	Summary  string
	Start    time.Time
	Duration time.Duration
	Location string
}

// Plan lays out n sessions spread over the past daysBack days. The layout
// is deterministic for a fixed now: durations lean on 45 minute sessions,
// every third session is telehealth, and titles rotate through four
// formats so title parsing gets varied input.
func Plan(now time.Time, n, daysBack int) []Session {
	if n <= 0 {
		return nil
	}
	sessions := make([]Session, 0, n)
	for i := 0; i < n; i++ {
		client := clients[i%len(clients)]

		var duration time.Duration
		switch {
		case i%5 == 0:
			duration = 60 * time.Minute
		case i%7 == 0:
			duration = 30 * time.Minute
		default:
			duration = 45 * time.Minute
		}

		daysAgo := daysBack - i*(daysBack/n)
		day := now.AddDate(0, 0, -daysAgo)
		start := time.Date(day.Year(), day.Month(), day.Day(), 9+i%8, 0, 0, 0, day.Location())

		location := "In-Person"
		if i%3 == 0 {
			location = "Zoom - Telehealth"
		}

		var summary string
		switch i % 4 {
		case 0:
			summary = client + " Therapy Session"
		case 1:
			summary = client + " Appointment"
		case 2:
			summary = client
		default:
			summary = client + " Counseling"
		}

		sessions = append(sessions, Session{
			Client:   client,
			Summary:  summary,
			Start:    start,
			Duration: duration,
			Location: location,
		})
	}
	return sessions
}

// PlanWeek lays out one 45 minute session per weekday of the current week
// at 10am, alternating in-person and telehealth.
func PlanWeek(now time.Time) []Session {
	monday := now.AddDate(0, 0, -int((now.Weekday()+6)%7))
	sessions := make([]Session, 0, 5)
	for day := 0; day < 5; day++ {
		d := monday.AddDate(0, 0, day)
		client := clients[day%len(clients)]
		location := "In-Person"
		if day%2 != 0 {
			location = "Zoom - Telehealth"
		}
		sessions = append(sessions, Session{
			Client:   client,
			Summary:  client + " Session",
			Start:    time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, d.Location()),
			Duration: 45 * time.Minute,
			Location: location,
		})
	}
	return sessions
}

// Seeder creates and cleans test sessions on a calendar.
type Seeder struct {
	Calendar Calendar
}

// Create inserts the planned sessions and returns the created event IDs.
// It stops at the first failure, returning the IDs created so far.
func (s *Seeder) Create(ctx context.Context, sessions []Session) ([]string, error) {
	ids := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		id, err := s.Calendar.CreateEvent(ctx, workspace.Event{
			Summary:     sess.Summary,
			Description: fmt.Sprintf("Therapy session - %dmin", int(sess.Duration.Minutes())),
			Location:    sess.Location,
			Start:       sess.Start,
			End:         sess.Start.Add(sess.Duration),
		})
		if err != nil {
			return ids, fmt.Errorf("creating session for %s: %w", sess.Client, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListRecent returns events from the past days that look like therapy
// sessions.
func (s *Seeder) ListRecent(ctx context.Context, now time.Time, days int) ([]workspace.Event, error) {
	events, err := s.Calendar.ListEvents(ctx, now.AddDate(0, 0, -days), 100)
	if err != nil {
		return nil, err
	}
	matches := make([]workspace.Event, 0, len(events))
	for _, ev := range events {
		if looksLikeSession(ev.Summary) {
			matches = append(matches, ev)
		}
	}
	return matches, nil
}

// Delete removes the given events, returning how many were deleted before
// the first failure.
func (s *Seeder) Delete(ctx context.Context, ids []string) (int, error) {
	for i, id := range ids {
		if err := s.Calendar.DeleteEvent(ctx, id); err != nil {
			return i, fmt.Errorf("deleting event %s: %w", id, err)
		}
	}
	return len(ids), nil
}

// sessionWords mark an event title as a therapy session.
var sessionWords = []string{"session", "therapy", "counseling", "appointment"}

// looksLikeSession matches session keywords or a bare "First Last" title.
func looksLikeSession(summary string) bool {
	lower := strings.ToLower(summary)
	for _, w := range sessionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return len(strings.Fields(summary)) == 2
}
