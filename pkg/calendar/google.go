package calendar

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is a calendar-ready record. Start and end are local timestamps
// interpreted in TimeZone by the calendar service.
type Event struct {
	Summary     string
	Location    string
	Description string
	StartTime   string
	EndTime     string
	TimeZone    string
}

// Client represents the single capability the pipeline needs from a
// calendar backend: create one event, return its web link.
type Client interface {
	Insert(ctx context.Context, ev Event) (string, error)
}

// GoogleConfig configures the Google Calendar backend.
type GoogleConfig struct {
	// CredentialsJSON is a service-account key with calendar read-write scope.
	CredentialsJSON []byte
	// CalendarID is the destination calendar. One calendar per process.
	CalendarID string
}

type googleClient struct {
	service    *gcal.Service
	calendarID string
	logger     *zap.Logger
}

// NewGoogleClient builds an authenticated Google Calendar client from
// service-account key material.
func NewGoogleClient(ctx context.Context, cfg GoogleConfig, logger *zap.Logger) (Client, error) {
	jwtConf, err := google.JWTConfigFromJSON(cfg.CredentialsJSON, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse service-account credentials: %w", err)
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &googleClient{service: service, calendarID: cfg.CalendarID, logger: logger}, nil
}

// Insert creates the event and returns its canonical web link.
func (c *googleClient) Insert(ctx context.Context, ev Event) (string, error) {
	entry := &gcal.Event{
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.StartTime, TimeZone: ev.TimeZone},
		End:         &gcal.EventDateTime{DateTime: ev.EndTime, TimeZone: ev.TimeZone},
	}

	created, err := c.service.Events.Insert(c.calendarID, entry).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event into calendar %s: %w", c.calendarID, err)
	}

	c.logger.Info("calendar event created",
		zap.String("calendar_id", c.calendarID),
		zap.String("summary", ev.Summary),
		zap.String("start", ev.StartTime),
	)
	return created.HtmlLink, nil
}
