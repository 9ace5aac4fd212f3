package platform

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"voiceops-console/internal/campaign"
)

type CampaignFilter struct {
	CompanyID   string
	SkillbaseID string
	Status      campaign.Status
	Page        PageQuery
}

func (f CampaignFilter) query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("company_id", f.CompanyID)
	}
	if f.SkillbaseID != "" {
		q.Set("skillbase_id", f.SkillbaseID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	f.Page.apply(q)
	return q
}

type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`
	SkillbaseID string `json:"skillbase_id"`

	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`

	DailyStartTime string `json:"daily_start_time"`
	DailyEndTime   string `json:"daily_end_time"`
	Timezone       string `json:"timezone"`

	campaign.DialPolicy
}

// UpdateCampaignRequest is a partial patch; nil means "leave unchanged".
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`

	DailyStartTime *string `json:"daily_start_time,omitempty"`
	DailyEndTime   *string `json:"daily_end_time,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`

	campaign.DialPolicyPatch
}

// CampaignStats is the derived reporting block for one campaign.
type CampaignStats struct {
	CampaignID     string `json:"campaign_id"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	FailedTasks    int    `json:"failed_tasks"`
	ActiveCalls    int    `json:"active_calls"`

	AverageDurationSeconds int `json:"average_duration_seconds"`
	SuccessRate            int `json:"success_rate"`
}

// CallListUploadResult reports a lead-file attachment to a campaign.
type CallListUploadResult struct {
	CampaignID string `json:"campaign_id"`
	Accepted   int    `json:"accepted"`
	Rejected   int    `json:"rejected"`
}

func (c *Client) ListCampaigns(ctx context.Context, f CampaignFilter) (Page[campaign.Campaign], error) {
	var out Page[campaign.Campaign]
	err := c.do(ctx, http.MethodGet, "/campaigns", f.query(), nil, &out)
	return out, err
}

func (c *Client) GetCampaign(ctx context.Context, id string) (campaign.Campaign, error) {
	var out campaign.Campaign
	err := c.do(ctx, http.MethodGet, "/campaigns/"+id, nil, nil, &out)
	return out, err
}

func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (campaign.Campaign, error) {
	var out campaign.Campaign
	err := c.do(ctx, http.MethodPost, "/campaigns", nil, req, &out)
	return out, err
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, req UpdateCampaignRequest) (campaign.Campaign, error) {
	var out campaign.Campaign
	err := c.do(ctx, http.MethodPut, "/campaigns/"+id, nil, req, &out)
	return out, err
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/campaigns/"+id, nil, nil, nil)
}

// ApplyCampaignAction requests a lifecycle transition. No body is sent; the
// backend returns the updated campaign and its status is authoritative; it
// may differ from the optimistic target even when the request succeeds.
func (c *Client) ApplyCampaignAction(ctx context.Context, id string, action campaign.Action) (campaign.Campaign, error) {
	var out campaign.Campaign
	err := c.do(ctx, http.MethodPost, "/campaigns/"+id+"/"+string(action), nil, nil, &out)
	return out, err
}

func (c *Client) CampaignStats(ctx context.Context, id string) (CampaignStats, error) {
	var out CampaignStats
	err := c.do(ctx, http.MethodGet, "/campaigns/"+id+"/stats", nil, nil, &out)
	return out, err
}

// UploadCallList attaches a raw lead file (CSV/XLSX) to a campaign. Parsing
// happens in the backend.
func (c *Client) UploadCallList(ctx context.Context, id, filename string, file io.Reader) (CallListUploadResult, error) {
	var out CallListUploadResult
	err := c.upload(ctx, "/campaigns/"+id+"/call-list", "file", filename, file, nil, &out)
	return out, err
}
