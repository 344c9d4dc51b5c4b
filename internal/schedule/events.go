package schedule

import "time"

// RawEvent is the model's structured answer. Every field is optional and
// untrusted; nothing here reaches the calendar without normalization.
type RawEvent struct {
	Summary     string `json:"summary"`
	Location    string `json:"location"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// CreatedAnnouncement is published after a calendar entry is created.
type CreatedAnnouncement struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	TimeZone  string    `json:"time_zone"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}
