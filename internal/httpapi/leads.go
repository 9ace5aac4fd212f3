package httpapi

import (
	"net/http"
	"strings"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/leads"
	"voiceops-console/internal/platform"

	"github.com/gin-gonic/gin"
)

func (h Handlers) leadFilter(c *gin.Context) platform.LeadFilter {
	companyID, _ := auth.CompanyID(c.Request.Context())
	return platform.LeadFilter{
		CompanyID:  companyID,
		CampaignID: c.Query("campaign_id"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		Page:       pageQuery(c),
	}
}

func (h Handlers) ListLeads(c *gin.Context) {
	page, err := h.Platform.ListLeads(c.Request.Context(), h.leadFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetLead(c *gin.Context) {
	lead, err := h.Platform.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h Handlers) CreateLead(c *gin.Context) {
	var req struct {
		CampaignID  string            `json:"campaign_id"`
		PhoneNumber string            `json:"phone_number"`
		Name        string            `json:"name"`
		Attributes  map[string]string `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	probe := leads.Lead{PhoneNumber: req.PhoneNumber}
	if errs := probe.Validate(); len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	companyID, _ := auth.CompanyID(c.Request.Context())
	created, err := h.Platform.CreateLead(c.Request.Context(), platform.CreateLeadRequest{
		CompanyID:   companyID,
		CampaignID:  req.CampaignID,
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Attributes:  req.Attributes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handlers) UpdateLead(c *gin.Context) {
	var req platform.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.PhoneNumber != nil && strings.TrimSpace(*req.PhoneNumber) == "" {
		respondFieldErrors(c, []leads.FieldError{{Field: "phone_number", Message: "phone number must not be blank"}})
		return
	}
	updated, err := h.Platform.UpdateLead(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h Handlers) DeleteLead(c *gin.Context) {
	if err := h.Platform.DeleteLead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportLeads proxies the raw file; CSV/XLSX parsing is backend-owned.
func (h Handlers) ImportLeads(c *gin.Context) {
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

	res, err := h.Platform.ImportLeads(c.Request.Context(), c.PostForm("campaign_id"), fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) ExportLeads(c *gin.Context) {
	body, contentType, err := h.Platform.ExportLeads(c.Request.Context(), h.leadFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Content-Disposition": `attachment; filename="leads-export"`,
	})
}
