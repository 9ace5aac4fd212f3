package platform

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"voiceops-console/internal/calls"
)

type CallFilter struct {
	CompanyID  string
	CampaignID string
	Status     calls.Status
	From       time.Time
	To         time.Time
	Page       PageQuery
}

func (f CallFilter) query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("company_id", f.CompanyID)
	}
	if f.CampaignID != "" {
		q.Set("campaign_id", f.CampaignID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	f.Page.apply(q)
	return q
}

type RateCallRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (c *Client) ListCalls(ctx context.Context, f CallFilter) (Page[calls.Call], error) {
	var out Page[calls.Call]
	err := c.do(ctx, http.MethodGet, "/calls", f.query(), nil, &out)
	return out, err
}

func (c *Client) GetCall(ctx context.Context, id string) (calls.Call, error) {
	var out calls.Call
	err := c.do(ctx, http.MethodGet, "/calls/"+id, nil, nil, &out)
	return out, err
}

func (c *Client) CallTranscript(ctx context.Context, id string) ([]calls.TranscriptEntry, error) {
	var out []calls.TranscriptEntry
	err := c.do(ctx, http.MethodGet, "/calls/"+id+"/transcript", nil, nil, &out)
	return out, err
}

// CallRecording streams the audio blob. The caller owns the returned body.
func (c *Client) CallRecording(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return c.download(ctx, "/calls/"+id+"/recording", nil)
}

func (c *Client) RateCall(ctx context.Context, id string, req RateCallRequest) (calls.Call, error) {
	var out calls.Call
	err := c.do(ctx, http.MethodPost, "/calls/"+id+"/rate", nil, req, &out)
	return out, err
}
