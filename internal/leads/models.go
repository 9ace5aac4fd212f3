package leads

import (
	"strings"
	"time"
)

// Lead is a contact record targeted or produced by campaigns. File parsing
// for CSV/XLSX import happens in the backend; the console only proxies the
// raw upload.
type Lead struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	CampaignID string `json:"campaign_id,omitempty"`

	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`

	// Attributes carries import-time columns the backend preserved verbatim.
	Attributes map[string]string `json:"attributes,omitempty"`

	Status string `json:"status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldError pinpoints one failing lead field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Validate covers the console-side minimum before a create/update is sent.
// The backend applies full E.164 normalization; this check only stops the
// obviously empty submissions.
func (l *Lead) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(l.PhoneNumber) == "" {
		errs = append(errs, FieldError{"phone_number", "phone number is required"})
	}
	return errs
}
