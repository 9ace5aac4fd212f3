package platform

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"voiceops-console/internal/leads"
)

type LeadFilter struct {
	CompanyID  string
	CampaignID string
	Status     string
	Search     string
	Page       PageQuery
}

func (f LeadFilter) query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("company_id", f.CompanyID)
	}
	if f.CampaignID != "" {
		q.Set("campaign_id", f.CampaignID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	f.Page.apply(q)
	return q
}

type CreateLeadRequest struct {
	CompanyID   string            `json:"company_id"`
	CampaignID  string            `json:"campaign_id,omitempty"`
	PhoneNumber string            `json:"phone_number"`
	Name        string            `json:"name,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type UpdateLeadRequest struct {
	PhoneNumber *string           `json:"phone_number,omitempty"`
	Name        *string           `json:"name,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Status      *string           `json:"status,omitempty"`
}

type LeadImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (c *Client) ListLeads(ctx context.Context, f LeadFilter) (Page[leads.Lead], error) {
	var out Page[leads.Lead]
	err := c.do(ctx, http.MethodGet, "/leads", f.query(), nil, &out)
	return out, err
}

func (c *Client) GetLead(ctx context.Context, id string) (leads.Lead, error) {
	var out leads.Lead
	err := c.do(ctx, http.MethodGet, "/leads/"+id, nil, nil, &out)
	return out, err
}

func (c *Client) CreateLead(ctx context.Context, req CreateLeadRequest) (leads.Lead, error) {
	var out leads.Lead
	err := c.do(ctx, http.MethodPost, "/leads", nil, req, &out)
	return out, err
}

func (c *Client) UpdateLead(ctx context.Context, id string, req UpdateLeadRequest) (leads.Lead, error) {
	var out leads.Lead
	err := c.do(ctx, http.MethodPut, "/leads/"+id, nil, req, &out)
	return out, err
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leads/"+id, nil, nil, nil)
}

// ImportLeads uploads a raw CSV/XLSX file; the backend parses it.
func (c *Client) ImportLeads(ctx context.Context, campaignID, filename string, file io.Reader) (LeadImportResult, error) {
	extra := map[string]string{}
	if campaignID != "" {
		extra["campaign_id"] = campaignID
	}
	var out LeadImportResult
	err := c.upload(ctx, "/leads/import", "file", filename, file, extra, &out)
	return out, err
}

// ExportLeads streams the backend-rendered export blob.
func (c *Client) ExportLeads(ctx context.Context, f LeadFilter) (io.ReadCloser, string, error) {
	return c.download(ctx, "/leads/export", f.query())
}
