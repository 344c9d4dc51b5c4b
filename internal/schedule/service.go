package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/your-org/snapcal/pkg/calendar"
)

var tracer = otel.Tracer("snapcal/schedule")

// Announcer publishes created-event notifications. Optional; a nil
// announcer disables announcements.
type Announcer interface {
	Publish(ctx context.Context, key, value []byte, headers map[string]string) error
}

// Service runs the pipeline: normalize input, ground the prompt in the
// current time, extract, repair, insert, announce. Strictly sequential;
// the calendar call depends on the extraction result.
type Service struct {
	extractor       Extractor
	calendar        calendar.Client
	announcer       Announcer
	normalizer      *Normalizer
	clock           Clock
	location        *time.Location
	extractTimeout  time.Duration
	calendarTimeout time.Duration
	logger          *zap.Logger
}

type Params struct {
	Extractor Extractor
	Calendar  calendar.Client
	Announcer Announcer
	// Clock defaults to time.Now when nil.
	Clock Clock
	// Location is the reference timezone for both the temporal context
	// and the created event.
	Location        *time.Location
	ExtractTimeout  time.Duration
	CalendarTimeout time.Duration
	Logger          *zap.Logger
}

// NewService constructs the pipeline service.
func NewService(p Params) *Service {
	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		extractor:       p.Extractor,
		calendar:        p.Calendar,
		announcer:       p.Announcer,
		normalizer:      NewNormalizer(loc.String()),
		clock:           clock,
		location:        loc,
		extractTimeout:  p.ExtractTimeout,
		calendarTimeout: p.CalendarTimeout,
		logger:          p.Logger,
	}
}

// Process takes one classified payload through the whole pipeline and
// returns the created event's link. Every failure wraps a taxonomy error.
func (s *Service) Process(ctx context.Context, payload Payload) (string, error) {
	parts, err := payload.Parts()
	if err != nil {
		return "", err
	}

	currentTime := TemporalContext(s.clock, s.location)

	raw, err := s.extract(ctx, parts, currentTime)
	if err != nil {
		return "", err
	}

	event, err := s.normalizer.Normalize(raw)
	if err != nil {
		return "", err
	}

	link, err := s.insert(ctx, event)
	if err != nil {
		return "", err
	}

	s.announce(ctx, event, link)

	s.logger.Info("schedule created",
		zap.String("summary", event.Summary),
		zap.String("start", event.StartTime),
		zap.String("end", event.EndTime),
		zap.String("link", link),
	)
	return link, nil
}

func (s *Service) extract(ctx context.Context, parts []Part, currentTime string) (RawEvent, error) {
	ctx, span := tracer.Start(ctx, "schedule.extract")
	defer span.End()

	if s.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.extractTimeout)
		defer cancel()
	}

	raw, err := s.extractor.Extract(ctx, parts, currentTime)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return RawEvent{}, fmt.Errorf("%w: extraction timed out", ErrUpstream)
		}
		return RawEvent{}, err
	}
	return raw, nil
}

func (s *Service) insert(ctx context.Context, event calendar.Event) (string, error) {
	ctx, span := tracer.Start(ctx, "schedule.calendar_insert")
	defer span.End()

	if s.calendarTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.calendarTimeout)
		defer cancel()
	}

	link, err := s.calendar.Insert(ctx, event)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: calendar insert timed out", ErrUpstream)
		}
		return "", fmt.Errorf("%w: %v", ErrCalendarRejected, err)
	}
	return link, nil
}

// announce is best-effort: the calendar entry already exists, so a failed
// announcement is logged and swallowed.
func (s *Service) announce(ctx context.Context, event calendar.Event, link string) {
	if s.announcer == nil {
		return
	}

	msg := CreatedAnnouncement{
		ID:        uuid.NewString(),
		Summary:   event.Summary,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
		TimeZone:  event.TimeZone,
		Link:      link,
		CreatedAt: s.clock().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal created announcement", zap.Error(err))
		return
	}

	headers := map[string]string{"event_type": "schedule.created"}
	if err := s.announcer.Publish(ctx, []byte(msg.ID), payload, headers); err != nil {
		s.logger.Error("publish created announcement", zap.Error(err))
	}
}
