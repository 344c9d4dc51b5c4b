package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/snapcal/pkg/calendar"
)

const defaultSummary = "AI schedule"

// Timestamp layouts the model is instructed to produce, in preference
// order. The zone-less layout comes first because the prompt asks for it.
var eventTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Normalizer repairs a RawEvent into a calendar-ready record. It is the
// only path from model output to the calendar sink.
type Normalizer struct {
	timeZone string
}

func NewNormalizer(timeZone string) *Normalizer {
	return &Normalizer{timeZone: timeZone}
}

// Normalize applies the field-repair policy:
//   - summary defaults to a fixed placeholder when empty
//   - location and description default to empty strings
//   - start_time is required and must parse, otherwise ErrMissingStartTime
//   - end_time is derived as start+1h whenever it is empty or unparsable;
//     a derived end uses the same layout the start parsed with
func (n *Normalizer) Normalize(raw RawEvent) (calendar.Event, error) {
	start, layout, err := parseEventTime(raw.StartTime)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("%w: start_time %q", ErrMissingStartTime, raw.StartTime)
	}

	end := raw.EndTime
	if _, _, err := parseEventTime(raw.EndTime); err != nil {
		end = start.Add(time.Hour).Format(layout)
	}

	summary := raw.Summary
	if summary == "" {
		summary = defaultSummary
	}

	return calendar.Event{
		Summary:     summary,
		Location:    raw.Location,
		Description: raw.Description,
		StartTime:   raw.StartTime,
		EndTime:     end,
		TimeZone:    n.timeZone,
	}, nil
}

func parseEventTime(value string) (time.Time, string, error) {
	if value == "" {
		return time.Time{}, "", errors.New("empty timestamp")
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognized timestamp %q", value)
}
