package platform

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"voiceops-console/internal/skillbase"
)

type SkillbaseFilter struct {
	CompanyID string
	Page      PageQuery
}

func (f SkillbaseFilter) query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("company_id", f.CompanyID)
	}
	f.Page.apply(q)
	return q
}

type CreateSkillbaseRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	CompanyID       string `json:"company_id"`
	KnowledgeBaseID string `json:"knowledge_base_id,omitempty"`

	// Config is optional; skillbases may be created as drafts.
	Config *skillbase.Config `json:"config,omitempty"`
}

type UpdateSkillbaseRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	KnowledgeBaseID *string `json:"knowledge_base_id,omitempty"`
}

// Voice is one entry of the backend TTS voice catalog.
type Voice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Language   string `json:"language"`
	Gender     string `json:"gender,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

type TTSPreviewRequest struct {
	VoiceID string `json:"voice_id"`
	Text    string `json:"text"`
}

type TestCallRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type TestCallResult struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

func (c *Client) ListSkillbases(ctx context.Context, f SkillbaseFilter) (Page[skillbase.Skillbase], error) {
	var out Page[skillbase.Skillbase]
	err := c.do(ctx, http.MethodGet, "/skillbases", f.query(), nil, &out)
	return out, err
}

func (c *Client) GetSkillbase(ctx context.Context, id string) (skillbase.Skillbase, error) {
	var out skillbase.Skillbase
	err := c.do(ctx, http.MethodGet, "/skillbases/"+id, nil, nil, &out)
	return out, err
}

func (c *Client) CreateSkillbase(ctx context.Context, req CreateSkillbaseRequest) (skillbase.Skillbase, error) {
	var out skillbase.Skillbase
	err := c.do(ctx, http.MethodPost, "/skillbases", nil, req, &out)
	return out, err
}

func (c *Client) UpdateSkillbase(ctx context.Context, id string, req UpdateSkillbaseRequest) (skillbase.Skillbase, error) {
	var out skillbase.Skillbase
	err := c.do(ctx, http.MethodPut, "/skillbases/"+id, nil, req, &out)
	return out, err
}

func (c *Client) DeleteSkillbase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/skillbases/"+id, nil, nil, nil)
}

func (c *Client) GetSkillbaseConfig(ctx context.Context, id string) (skillbase.Config, error) {
	var out skillbase.Config
	err := c.do(ctx, http.MethodGet, "/skillbases/"+id+"/config", nil, nil, &out)
	return out, err
}

// PutSkillbaseConfig replaces the configuration document. The returned copy
// is the persisted one, carrying the backend-assigned version and updated_at;
// callers must adopt it wholesale.
func (c *Client) PutSkillbaseConfig(ctx context.Context, id string, cfg skillbase.Config) (skillbase.Config, error) {
	var out skillbase.Config
	err := c.do(ctx, http.MethodPut, "/skillbases/"+id+"/config", nil, cfg, &out)
	return out, err
}

func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	var out []Voice
	err := c.do(ctx, http.MethodGet, "/skillbases/voices/list", nil, nil, &out)
	return out, err
}

// TTSPreview synthesizes a short sample. The caller owns the returned audio
// stream.
func (c *Client) TTSPreview(ctx context.Context, req TTSPreviewRequest) (io.ReadCloser, string, error) {
	return c.downloadPost(ctx, "/skillbases/tts-preview", req)
}

func (c *Client) TestCall(ctx context.Context, id string, req TestCallRequest) (TestCallResult, error) {
	var out TestCallResult
	err := c.do(ctx, http.MethodPost, "/skillbases/"+id+"/test-call", nil, req, &out)
	return out, err
}
