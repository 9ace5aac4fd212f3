package calls

import "time"

// Call is the reporting view of one placed call. The execution backend owns
// every field; the console reads, renders and rates, never mutates.
type Call struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	CampaignID string `json:"campaign_id,omitempty"`
	LeadID     string `json:"lead_id,omitempty"`

	PhoneNumber string `json:"phone_number"`

	Status Status `json:"status"`

	DurationSeconds int `json:"duration"`

	// Attempt counts retries of the same lead within a campaign, 1-based.
	Attempt int `json:"attempt,omitempty"`

	RecordingURL string `json:"recording_url,omitempty"`

	// Rating is the operator quality score 1..5, 0 when unrated.
	Rating  int    `json:"rating,omitempty"`
	Comment string `json:"comment,omitempty"`

	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Status string

const (
	StatusQueued     Status = "queued"
	StatusRinging    Status = "ringing"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusNoAnswer   Status = "no_answer"
	StatusBusy       Status = "busy"
	StatusCanceled   Status = "canceled"
)

// TranscriptEntry is one utterance in a call transcript, in spoken order.
type TranscriptEntry struct {
	Speaker  string  `json:"speaker"` // "agent" or "lead"
	Text     string  `json:"text"`
	OffsetMs int64   `json:"offset_ms"`
	Score    float64 `json:"score,omitempty"`
}

// FieldError pinpoints one failing rating field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Rating bounds for operator call scoring.
const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
