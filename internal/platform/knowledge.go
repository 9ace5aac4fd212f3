package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"voiceops-console/internal/knowledge"
)

type KnowledgeBaseFilter struct {
	CompanyID string
	Page      PageQuery
}

func (f KnowledgeBaseFilter) query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("company_id", f.CompanyID)
	}
	f.Page.apply(q)
	return q
}

type CreateKnowledgeBaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`
}

type UpdateKnowledgeBaseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ListKnowledgeBases(ctx context.Context, f KnowledgeBaseFilter) (Page[knowledge.Base], error) {
	var out Page[knowledge.Base]
	err := c.do(ctx, http.MethodGet, "/knowledge-bases", f.query(), nil, &out)
	return out, err
}

func (c *Client) GetKnowledgeBase(ctx context.Context, id string) (knowledge.Base, error) {
	var out knowledge.Base
	err := c.do(ctx, http.MethodGet, "/knowledge-bases/"+id, nil, nil, &out)
	return out, err
}

func (c *Client) CreateKnowledgeBase(ctx context.Context, req CreateKnowledgeBaseRequest) (knowledge.Base, error) {
	var out knowledge.Base
	err := c.do(ctx, http.MethodPost, "/knowledge-bases", nil, req, &out)
	return out, err
}

func (c *Client) UpdateKnowledgeBase(ctx context.Context, id string, req UpdateKnowledgeBaseRequest) (knowledge.Base, error) {
	var out knowledge.Base
	err := c.do(ctx, http.MethodPut, "/knowledge-bases/"+id, nil, req, &out)
	return out, err
}

func (c *Client) DeleteKnowledgeBase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/knowledge-bases/"+id, nil, nil, nil)
}

func (c *Client) ListDocuments(ctx context.Context, baseID string) ([]knowledge.Document, error) {
	var out []knowledge.Document
	err := c.do(ctx, http.MethodGet, "/knowledge-bases/"+baseID+"/documents", nil, nil, &out)
	return out, err
}

// AddDocument uploads a raw file for backend-side indexing.
func (c *Client) AddDocument(ctx context.Context, baseID, filename string, file io.Reader) (knowledge.Document, error) {
	var out knowledge.Document
	err := c.upload(ctx, "/knowledge-bases/"+baseID+"/documents", "file", filename, file, nil, &out)
	return out, err
}

func (c *Client) DeleteDocument(ctx context.Context, baseID, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/knowledge-bases/"+baseID+"/documents/"+documentID, nil, nil, nil)
}

// SearchKnowledgeBase runs a retrieval query. topK <= 0 falls back to the
// backend default.
func (c *Client) SearchKnowledgeBase(ctx context.Context, baseID, query string, topK int) ([]knowledge.SearchHit, error) {
	q := url.Values{}
	q.Set("query", query)
	if topK > 0 {
		q.Set("top_k", fmt.Sprintf("%d", topK))
	}
	var out []knowledge.SearchHit
	err := c.do(ctx, http.MethodGet, "/knowledge-bases/"+baseID+"/search", q, nil, &out)
	return out, err
}
