package knowledge

import "time"

// Base is a knowledge base a skillbase may attach for retrieval. Document
// indexing is backend-owned; the console uploads raw files and queries.
type Base struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CompanyID   string `json:"company_id"`

	DocumentCount int `json:"document_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is one indexed file inside a base.
type Document struct {
	ID       string `json:"id"`
	BaseID   string `json:"knowledge_base_id"`
	Filename string `json:"filename"`
	Status   string `json:"status,omitempty"` // indexing, ready, failed

	SizeBytes int64     `json:"size_bytes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchHit is one retrieval result, highest score first.
type SearchHit struct {
	DocumentID string  `json:"document_id"`
	Chunk      string  `json:"chunk"`
	Score      float64 `json:"score"`
}

// DefaultTopK is used when a search request leaves top_k unset.
const DefaultTopK = 5
