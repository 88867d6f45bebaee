package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/epmk/stackflow/internal/workspace"
)

type fakeCalendar struct {
	events  []workspace.Event
	created []workspace.Event
	deleted []string
	failAt  int // 1-based index of the create call that fails, 0 = never
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, ev workspace.Event) (string, error) {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return "", errors.New("quota exceeded")
	}
	f.created = append(f.created, ev)
	return fmt.Sprintf("evt-%d", len(f.created)), nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, timeMin time.Time, maxResults int64) ([]workspace.Event, error) {
	return f.events, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func TestPlan(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	sessions := Plan(now, 10, 30)

	if len(sessions) != 10 {
		t.Fatalf("expected 10 sessions, got %d", len(sessions))
	}

	tests := []struct {
		i        int
		client   string
		summary  string
		duration time.Duration
		location string
		hour     int
		daysAgo  int
	}{
		{i: 0, client: "Sarah Johnson", summary: "Sarah Johnson Therapy Session",
			duration: 60 * time.Minute, location: "Zoom - Telehealth", hour: 9, daysAgo: 30},
		{i: 1, client: "Michael Chen", summary: "Michael Chen Appointment",
			duration: 45 * time.Minute, location: "In-Person", hour: 10, daysAgo: 27},
		{i: 2, client: "Emily Rodriguez", summary: "Emily Rodriguez",
			duration: 45 * time.Minute, location: "In-Person", hour: 11, daysAgo: 24},
		{i: 3, client: "David Thompson", summary: "David Thompson Counseling",
			duration: 45 * time.Minute, location: "Zoom - Telehealth", hour: 12, daysAgo: 21},
		{i: 5, client: "Sarah Johnson", summary: "Sarah Johnson Appointment",
			duration: 60 * time.Minute, location: "In-Person", hour: 14, daysAgo: 15},
		{i: 7, client: "Emily Rodriguez", summary: "Emily Rodriguez Counseling",
			duration: 30 * time.Minute, location: "In-Person", hour: 16, daysAgo: 9},
		{i: 8, client: "David Thompson", summary: "David Thompson Therapy Session",
			duration: 45 * time.Minute, location: "In-Person", hour: 9, daysAgo: 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("session %d", tt.i), func(t *testing.T) {
			s := sessions[tt.i]
			if s.Client != tt.client {
				t.Errorf("client = %q, want %q", s.Client, tt.client)
			}
			if s.Summary != tt.summary {
				t.Errorf("summary = %q, want %q", s.Summary, tt.summary)
			}
			if s.Duration != tt.duration {
				t.Errorf("duration = %v, want %v", s.Duration, tt.duration)
			}
			if s.Location != tt.location {
				t.Errorf("location = %q, want %q", s.Location, tt.location)
			}
			if s.Start.Hour() != tt.hour {
				t.Errorf("hour = %d, want %d", s.Start.Hour(), tt.hour)
			}
			wantDay := now.AddDate(0, 0, -tt.daysAgo)
			if s.Start.Year() != wantDay.Year() || s.Start.YearDay() != wantDay.YearDay() {
				t.Errorf("start day = %v, want %d days ago", s.Start, tt.daysAgo)
			}
		})
	}
}

func TestPlanDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	a := Plan(now, 20, 60)
	b := Plan(now, 20, 60)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("plans differ at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlanZero(t *testing.T) {
	if got := Plan(time.Now(), 0, 30); got != nil {
		t.Errorf("Plan(0) = %v, want nil", got)
	}
}

func TestPlanWeek(t *testing.T) {
	// A Tuesday; the week starts the day before.
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	sessions := PlanWeek(now)

	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions, got %d", len(sessions))
	}
	if sessions[0].Start.Weekday() != time.Monday {
		t.Errorf("first session on %v, want Monday", sessions[0].Start.Weekday())
	}
	for i, s := range sessions {
		if s.Start.Hour() != 10 {
			t.Errorf("session %d at hour %d, want 10", i, s.Start.Hour())
		}
		wantLocation := "In-Person"
		if i%2 != 0 {
			wantLocation = "Zoom - Telehealth"
		}
		if s.Location != wantLocation {
			t.Errorf("session %d location = %q, want %q", i, s.Location, wantLocation)
		}
	}
}

func TestSeederCreate(t *testing.T) {
	cal := &fakeCalendar{}
	s := &Seeder{Calendar: cal}
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	ids, err := s.Create(context.Background(), Plan(now, 3, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	if cal.created[0].Description != "Therapy session - 60min" {
		t.Errorf("description = %q", cal.created[0].Description)
	}
	if got := cal.created[0].End.Sub(cal.created[0].Start); got != 60*time.Minute {
		t.Errorf("event span = %v, want 60m", got)
	}
}

func TestSeederCreateStopsOnError(t *testing.T) {
	cal := &fakeCalendar{failAt: 2}
	s := &Seeder{Calendar: cal}
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	ids, err := s.Create(context.Background(), Plan(now, 3, 30))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(ids) != 1 {
		t.Errorf("expected 1 id before failure, got %d", len(ids))
	}
}

func TestListRecentFilters(t *testing.T) {
	cal := &fakeCalendar{events: []workspace.Event{
		{ID: "1", Summary: "Sarah Johnson Therapy Session"},
		{ID: "2", Summary: "Quarterly planning offsite"},
		{ID: "3", Summary: "Michael Chen"},
		{ID: "4", Summary: "Dentist appointment"},
		{ID: "5", Summary: "Lunch"},
	}}
	s := &Seeder{Calendar: cal}

	got, err := s.ListRecent(context.Background(), time.Now(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	want := []string{"1", "3", "4"}
	if len(ids) != len(want) {
		t.Fatalf("matched %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("matched %v, want %v", ids, want)
			break
		}
	}
}

func TestDelete(t *testing.T) {
	cal := &fakeCalendar{}
	s := &Seeder{Calendar: cal}

	n, err := s.Delete(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 || len(cal.deleted) != 3 {
		t.Errorf("deleted %d (recorded %d), want 3", n, len(cal.deleted))
	}
}

func TestLooksLikeSession(t *testing.T) {
	tests := []struct {
		summary string
		want    bool
	}{
		{"Sarah Johnson Therapy Session", true},
		{"Emily Rodriguez", true},
		{"Dentist appointment", true},
		{"Weekly counseling check-in", true},
		// Any bare two-word title reads as a client name.
		{"Team standup", true},
		{"Lunch", false},
		{"Quarterly planning offsite", false},
	}
	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			if got := looksLikeSession(tt.summary); got != tt.want {
				t.Errorf("looksLikeSession(%q) = %v, want %v", tt.summary, got, tt.want)
			}
		})
	}
}
