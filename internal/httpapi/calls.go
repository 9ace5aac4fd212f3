package httpapi

import (
	"net/http"
	"time"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/calls"
	"voiceops-console/internal/platform"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListCalls(c *gin.Context) {
	companyID, _ := auth.CompanyID(c.Request.Context())
	f := platform.CallFilter{
		CompanyID:  companyID,
		CampaignID: c.Query("campaign_id"),
		Status:     calls.Status(c.Query("status")),
		Page:       pageQuery(c),
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		f.To = t
	}

	page, err := h.Platform.ListCalls(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetCall(c *gin.Context) {
	call, err := h.Platform.GetCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, call)
}

func (h Handlers) CallTranscript(c *gin.Context) {
	entries, err := h.Platform.CallTranscript(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h Handlers) CallRecording(c *gin.Context) {
	body, contentType, err := h.Platform.CallRecording(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}

func (h Handlers) RateCall(c *gin.Context) {
	var req platform.RateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !calls.ValidRating(req.Rating) {
		respondFieldErrors(c, []calls.FieldError{{Field: "rating", Message: "rating must be between 1 and 5"}})
		return
	}
	rated, err := h.Platform.RateCall(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rated)
}
