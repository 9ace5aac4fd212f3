package httpapi

import (
	"net/http"
	"strings"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/knowledge"
	"voiceops-console/internal/platform"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListKnowledgeBases(c *gin.Context) {
	companyID, _ := auth.CompanyID(c.Request.Context())
	page, err := h.Platform.ListKnowledgeBases(c.Request.Context(), platform.KnowledgeBaseFilter{
		CompanyID: companyID,
		Page:      pageQuery(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetKnowledgeBase(c *gin.Context) {
	base, err := h.Platform.GetKnowledgeBase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, base)
}

func (h Handlers) CreateKnowledgeBase(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	companyID, _ := auth.CompanyID(c.Request.Context())
	created, err := h.Platform.CreateKnowledgeBase(c.Request.Context(), platform.CreateKnowledgeBaseRequest{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   companyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handlers) UpdateKnowledgeBase(c *gin.Context) {
	var req platform.UpdateKnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updated, err := h.Platform.UpdateKnowledgeBase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h Handlers) DeleteKnowledgeBase(c *gin.Context) {
	if err := h.Platform.DeleteKnowledgeBase(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) ListKnowledgeDocuments(c *gin.Context) {
	docs, err := h.Platform.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h Handlers) AddKnowledgeDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	doc, err := h.Platform.AddDocument(c.Request.Context(), c.Param("id"), fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h Handlers) DeleteKnowledgeDocument(c *gin.Context) {
	if err := h.Platform.DeleteDocument(c.Request.Context(), c.Param("id"), c.Param("docID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) SearchKnowledgeBase(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	topK := intQuery(c, "top_k")
	if topK <= 0 {
		topK = knowledge.DefaultTopK
	}
	hits, err := h.Platform.SearchKnowledgeBase(c.Request.Context(), c.Param("id"), query, topK)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}
