package campaign

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Campaign is a scheduled, rate-limited execution of a skillbase against a
// lead set.
//
// Counters are owned by the backend and only ever move forward there; the
// console never decrements or recomputes them. The invariant
// completed + failed <= total holds at all observed times.
type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`
	SkillbaseID string `json:"skillbase_id"`

	Status Status `json:"status"`

	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`

	// Daily calling window, HH:MM in the campaign timezone.
	DailyStartTime string `json:"daily_start_time"`
	DailyEndTime   string `json:"daily_end_time"`
	Timezone       string `json:"timezone"`

	DialPolicy

	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	FailedTasks    int `json:"failed_tasks"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Statuses enumerates every lifecycle state.
var Statuses = []Status{
	StatusDraft,
	StatusScheduled,
	StatusRunning,
	StatusPaused,
	StatusCompleted,
	StatusFailed,
}

func (s Status) Known() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle action is legal.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// FieldError pinpoints one failing campaign field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateSchedule checks the daily window and timezone fields shared by
// create and update payloads.
func ValidateSchedule(dailyStart, dailyEnd, timezone string) []FieldError {
	var errs []FieldError
	if !hhmmRe.MatchString(dailyStart) {
		errs = append(errs, FieldError{"daily_start_time", fmt.Sprintf("must be HH:MM, got %q", dailyStart)})
	}
	if !hhmmRe.MatchString(dailyEnd) {
		errs = append(errs, FieldError{"daily_end_time", fmt.Sprintf("must be HH:MM, got %q", dailyEnd)})
	}
	if strings.TrimSpace(timezone) == "" {
		errs = append(errs, FieldError{"timezone", "timezone is required"})
	} else if _, err := time.LoadLocation(timezone); err != nil {
		errs = append(errs, FieldError{"timezone", fmt.Sprintf("unknown timezone %q", timezone)})
	}
	return errs
}
