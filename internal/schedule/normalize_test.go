package schedule

import (
	"errors"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	n := NewNormalizer("Asia/Seoul")

	tests := []struct {
		name        string
		raw         RawEvent
		wantSummary string
		wantEnd     string
	}{
		{
			name:        "empty end derives one hour default",
			raw:         RawEvent{Summary: "Standup", StartTime: "2025-06-01T10:00:00"},
			wantSummary: "Standup",
			wantEnd:     "2025-06-01T11:00:00",
		},
		{
			name:        "valid end preserved",
			raw:         RawEvent{Summary: "Standup", StartTime: "2025-06-01T10:00:00", EndTime: "2025-06-01T12:30:00"},
			wantSummary: "Standup",
			wantEnd:     "2025-06-01T12:30:00",
		},
		{
			name:        "unparsable end derives default",
			raw:         RawEvent{Summary: "Standup", StartTime: "2025-06-01T10:00:00", EndTime: "sometime later"},
			wantSummary: "Standup",
			wantEnd:     "2025-06-01T11:00:00",
		},
		{
			name:        "empty summary gets placeholder",
			raw:         RawEvent{StartTime: "2025-06-01T10:00:00"},
			wantSummary: "AI schedule",
			wantEnd:     "2025-06-01T11:00:00",
		},
		{
			name:        "zoned start derives zoned end",
			raw:         RawEvent{Summary: "Call", StartTime: "2025-06-01T10:00:00+09:00"},
			wantSummary: "Call",
			wantEnd:     "2025-06-01T11:00:00+09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := n.Normalize(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", event.Summary, tt.wantSummary)
			}
			if event.EndTime != tt.wantEnd {
				t.Errorf("EndTime = %q, want %q", event.EndTime, tt.wantEnd)
			}
			if event.StartTime != tt.raw.StartTime {
				t.Errorf("StartTime = %q, want %q unchanged", event.StartTime, tt.raw.StartTime)
			}
			if event.TimeZone != "Asia/Seoul" {
				t.Errorf("TimeZone = %q, want Asia/Seoul", event.TimeZone)
			}
		})
	}
}

func TestNormalizeMissingStart(t *testing.T) {
	n := NewNormalizer("Asia/Seoul")

	tests := []struct {
		name string
		raw  RawEvent
	}{
		{name: "absent", raw: RawEvent{Summary: "Standup"}},
		{name: "unparsable", raw: RawEvent{Summary: "Standup", StartTime: "next week sometime"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := n.Normalize(tt.raw); !errors.Is(err, ErrMissingStartTime) {
				t.Errorf("err = %v, want ErrMissingStartTime", err)
			}
		})
	}
}

func TestNormalizeKeepsOptionalFields(t *testing.T) {
	n := NewNormalizer("Asia/Seoul")

	event, err := n.Normalize(RawEvent{
		Summary:     "Team offsite",
		Location:    "Busan",
		Description: "Annual planning",
		StartTime:   "2025-06-01T10:00:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Location != "Busan" {
		t.Errorf("Location = %q, want Busan", event.Location)
	}
	if event.Description != "Annual planning" {
		t.Errorf("Description = %q, want Annual planning", event.Description)
	}
}
