package workspace

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// Event is a calendar event reduced to the fields the stack touches.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// CalendarInfo identifies one calendar visible to the account.
type CalendarInfo struct {
	ID      string
	Summary string
}

// CreateEvent inserts an event into the configured calendar and returns
// its ID.
func (s *Stack) CreateEvent(ctx context.Context, ev Event) (string, error) {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return "", err
	}
	item := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: s.cfg.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: s.cfg.Timezone,
		},
	}
	created, err := svc.Events.Insert(s.calendarID(), item).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}
	return created.Id, nil
}

// ListEvents returns events starting after timeMin, oldest first.
// maxResults caps the page size; zero keeps the API default.
func (s *Stack) ListEvents(ctx context.Context, timeMin time.Time, maxResults int64) ([]Event, error) {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}
	call := svc.Events.List(s.calendarID()).
		TimeMin(timeMin.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Location:    item.Location,
			Start:       parseEventTime(item.Start),
			End:         parseEventTime(item.End),
		})
	}
	return events, nil
}

// DeleteEvent removes an event without notifying attendees.
func (s *Stack) DeleteEvent(ctx context.Context, eventID string) error {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete(s.calendarID(), eventID).SendUpdates("none").Context(ctx).Do(); err != nil {
		return fmt.Errorf("deleting event %s: %w", eventID, err)
	}
	return nil
}

// ListCalendars returns the calendars visible to the account.
func (s *Stack) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	cals := make([]CalendarInfo, 0, len(resp.Items))
	for _, item := range resp.Items {
		cals = append(cals, CalendarInfo{ID: item.Id, Summary: item.Summary})
	}
	return cals, nil
}

// parseEventTime handles both timed and all-day events.
func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
