package platform

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voiceops-console/internal/campaign"
	"voiceops-console/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.PlatformConfig{BaseURL: srv.URL, APIKey: "test-key", RequestTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c
}

func TestListCampaigns_PaginationAndFilters(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/campaigns" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing backend auth header, got %q", got)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(Page[campaign.Campaign]{
			Items: []campaign.Campaign{{ID: "c-1", Status: campaign.StatusDraft}},
			Total: 41,
		})
	}))

	page, err := c.ListCampaigns(context.Background(), CampaignFilter{
		CompanyID: "co-1",
		Status:    campaign.StatusDraft,
		Page:      PageQuery{Skip: 20, Limit: 10},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 41 || len(page.Items) != 1 || page.Items[0].ID != "c-1" {
		t.Fatalf("unexpected page: %+v", page)
	}
	want := map[string]string{"company_id": "co-1", "status": "draft", "skip": "20", "limit": "10"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s: got %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGetCampaign_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.GetCampaign(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDo_SurfacesBackendError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "campaign already running"})
	}))

	_, err := c.ApplyCampaignAction(context.Background(), "c-1", campaign.ActionStart)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "campaign already running" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestApplyCampaignAction_NoBodyReturnsUpdatedCampaign(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/campaigns/c-1/start" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Errorf("control endpoints must send no body, got %q", body)
		}
		// Backend chose scheduled, not the optimistic running.
		json.NewEncoder(w).Encode(campaign.Campaign{ID: "c-1", Status: campaign.StatusScheduled})
	}))

	got, err := c.ApplyCampaignAction(context.Background(), "c-1", campaign.ActionStart)
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if got.Status != campaign.StatusScheduled {
		t.Fatalf("client must adopt the backend status verbatim, got %s", got.Status)
	}
}

func TestUploadCallList_Multipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart expected: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file field: %v", err)
			return
		}
		defer f.Close()
		if hdr.Filename != "leads.csv" {
			t.Errorf("filename: %q", hdr.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "phone\n+155500\n" {
			t.Errorf("file content: %q", data)
		}
		json.NewEncoder(w).Encode(CallListUploadResult{CampaignID: "c-1", Accepted: 1})
	}))

	res, err := c.UploadCallList(context.Background(), "c-1", "leads.csv", strings.NewReader("phone\n+155500\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.Accepted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExportLeads_StreamsBlob(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("phone\n+155500\n"))
	}))

	body, ct, err := c.ExportLeads(context.Background(), LeadFilter{CompanyID: "co-1"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer body.Close()
	if ct != "text/csv" {
		t.Fatalf("content type: %q", ct)
	}
	data, _ := io.ReadAll(body)
	if string(data) != "phone\n+155500\n" {
		t.Fatalf("blob content: %q", data)
	}
}
