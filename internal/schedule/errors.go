package schedule

import "errors"

// Pipeline failure taxonomy. Every error leaving the service wraps exactly
// one of these, so the HTTP boundary can map kind to status with errors.Is.
var (
	// ErrNoInput means the request carried neither text nor image bytes.
	ErrNoInput = errors.New("no usable text or image in request")

	// ErrMalformedExtraction means the model's answer was not valid JSON.
	ErrMalformedExtraction = errors.New("extraction output is not valid JSON")

	// ErrMissingStartTime means no parsable start time survived extraction.
	// An event with no anchor time is never created.
	ErrMissingStartTime = errors.New("extracted event has no valid start time")

	// ErrUpstream covers transport failures and timeouts against the
	// extraction model or the calendar service.
	ErrUpstream = errors.New("upstream service unavailable")

	// ErrCalendarRejected means the calendar service refused the event.
	ErrCalendarRejected = errors.New("calendar service rejected the event")
)
