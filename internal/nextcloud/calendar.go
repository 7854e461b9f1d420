package nextcloud

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// calendarsPath builds the CalDAV path for the user's calendar home.
func (c *Client) calendarsPath(ctx context.Context, segments ...string) (string, error) {
	username, err := c.Username(ctx)
	if err != nil {
		return "", err
	}
	return path.Join(append([]string{"calendars", username}, segments...)...), nil
}

// ListCalendars lists the calendar collections of the authenticated user.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	davPath, err := c.calendarsPath(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := c.dav.ReadDir(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []Calendar
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		calendars = append(calendars, Calendar{
			Name: e.Name(),
			Path: path.Join(davPath, e.Name()),
		})
	}
	return calendars, nil
}

// ListEvents lists the events of a calendar by reading its iCalendar
// objects from the collection.
func (c *Client) ListEvents(ctx context.Context, calendar string) ([]Event, error) {
	davPath, err := c.calendarsPath(ctx, calendar)
	if err != nil {
		return nil, err
	}

	entries, err := c.dav.ReadDir(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar %q: %w", calendar, err)
	}

	var events []Event
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ics") {
			continue
		}

		data, err := c.dav.Read(path.Join(davPath, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read event %q: %w", e.Name(), err)
		}

		parsed, err := parseEvents(data)
		if err != nil {
			// Skip objects this client cannot parse; the calendar may
			// contain journal or todo components from other apps.
			continue
		}
		events = append(events, parsed...)
	}
	return events, nil
}

// CreateEvent creates an event in the named calendar and returns it with
// its generated UID.
func (c *Client) CreateEvent(ctx context.Context, calendar string, input EventInput) (*Event, error) {
	if input.Summary == "" {
		return nil, fmt.Errorf("event summary is required")
	}
	start, err := time.Parse(time.RFC3339, input.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid event start time %q: %w", input.Start, err)
	}
	end, err := time.Parse(time.RFC3339, input.End)
	if err != nil {
		return nil, fmt.Errorf("invalid event end time %q: %w", input.End, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("event end time must be after start time")
	}

	uid := uuid.NewString()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//nextcloud-mcp//calendar//EN")

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetText(ical.PropSummary, input.Summary)
	if input.Description != "" {
		event.Props.SetText(ical.PropDescription, input.Description)
	}
	if input.Location != "" {
		event.Props.SetText(ical.PropLocation, input.Location)
	}
	event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	davPath, err := c.calendarsPath(ctx, calendar, uid+".ics")
	if err != nil {
		return nil, err
	}
	if err := c.dav.Write(davPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	return &Event{
		UID:      uid,
		Summary:  input.Summary,
		Location: input.Location,
		Start:    start.UTC().Format(time.RFC3339),
		End:      end.UTC().Format(time.RFC3339),
	}, nil
}

// DeleteEvent removes an event from a calendar by UID.
func (c *Client) DeleteEvent(ctx context.Context, calendar, uid string) error {
	davPath, err := c.calendarsPath(ctx, calendar, uid+".ics")
	if err != nil {
		return err
	}
	if err := c.dav.Remove(davPath); err != nil {
		return fmt.Errorf("failed to delete event %q: %w", uid, err)
	}
	return nil
}

// parseEvents extracts the VEVENT components of an iCalendar object.
func parseEvents(data []byte) ([]Event, error) {
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, e := range cal.Events() {
		var event Event
		if uid, err := e.Props.Text(ical.PropUID); err == nil {
			event.UID = uid
		}
		if summary, err := e.Props.Text(ical.PropSummary); err == nil {
			event.Summary = summary
		}
		if location, err := e.Props.Text(ical.PropLocation); err == nil {
			event.Location = location
		}
		if start, err := e.DateTimeStart(time.UTC); err == nil && !start.IsZero() {
			event.Start = start.UTC().Format(time.RFC3339)
		}
		if end, err := e.DateTimeEnd(time.UTC); err == nil && !end.IsZero() {
			event.End = end.UTC().Format(time.RFC3339)
		}
		events = append(events, event)
	}
	return events, nil
}
