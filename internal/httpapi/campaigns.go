package httpapi

import (
	"net/http"
	"time"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/campaign"
	"voiceops-console/internal/platform"

	"github.com/gin-gonic/gin"
)

type createCampaignRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SkillbaseID string `json:"skillbase_id"`

	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	DailyStartTime string `json:"daily_start_time"`
	DailyEndTime   string `json:"daily_end_time"`
	Timezone       string `json:"timezone"`

	// Policy fields are optional on create; unset fields take the defaults.
	campaign.DialPolicyPatch
}

type updateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`

	DailyStartTime *string `json:"daily_start_time"`
	DailyEndTime   *string `json:"daily_end_time"`
	Timezone       *string `json:"timezone"`

	campaign.DialPolicyPatch
}

func (h Handlers) ListCampaigns(c *gin.Context) {
	companyID, _ := auth.CompanyID(c.Request.Context())
	page, err := h.Platform.ListCampaigns(c.Request.Context(), platform.CampaignFilter{
		CompanyID:   companyID,
		SkillbaseID: c.Query("skillbase_id"),
		Status:      campaign.Status(c.Query("status")),
		Page:        pageQuery(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetCampaign(c *gin.Context) {
	cmp, err := h.Platform.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (h Handlers) CreateCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var errs []campaign.FieldError
	if req.Name == "" {
		errs = append(errs, campaign.FieldError{Field: "name", Message: "name is required"})
	}
	if req.SkillbaseID == "" {
		errs = append(errs, campaign.FieldError{Field: "skillbase_id", Message: "skillbase_id is required"})
	}
	errs = append(errs, campaign.ValidateSchedule(req.DailyStartTime, req.DailyEndTime, req.Timezone)...)

	policy := req.DialPolicyPatch.ApplyTo(campaign.DefaultDialPolicy())
	errs = append(errs, policy.Validate()...)

	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	companyID, _ := auth.CompanyID(c.Request.Context())
	created, err := h.Platform.CreateCampaign(c.Request.Context(), platform.CreateCampaignRequest{
		Name:           req.Name,
		Description:    req.Description,
		CompanyID:      companyID,
		SkillbaseID:    req.SkillbaseID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		DailyStartTime: req.DailyStartTime,
		DailyEndTime:   req.DailyEndTime,
		Timezone:       req.Timezone,
		DialPolicy:     policy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handlers) UpdateCampaign(c *gin.Context) {
	var req updateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	// Patch semantics: validate only what the request sets.
	var errs []campaign.FieldError
	if req.DailyStartTime != nil || req.DailyEndTime != nil || req.Timezone != nil {
		start, end, tz := "00:00", "00:00", "UTC"
		if req.DailyStartTime != nil {
			start = *req.DailyStartTime
		}
		if req.DailyEndTime != nil {
			end = *req.DailyEndTime
		}
		if req.Timezone != nil {
			tz = *req.Timezone
		}
		errs = append(errs, campaign.ValidateSchedule(start, end, tz)...)
	}
	errs = append(errs, req.DialPolicyPatch.Validate()...)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	updated, err := h.Platform.UpdateCampaign(c.Request.Context(), c.Param("id"), platform.UpdateCampaignRequest{
		Name:            req.Name,
		Description:     req.Description,
		StartAt:         req.StartAt,
		EndAt:           req.EndAt,
		DailyStartTime:  req.DailyStartTime,
		DailyEndTime:    req.DailyEndTime,
		Timezone:        req.Timezone,
		DialPolicyPatch: req.DialPolicyPatch,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h Handlers) DeleteCampaign(c *gin.Context) {
	if err := h.Platform.DeleteCampaign(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CampaignAction handles start/pause/resume/stop.
//
// Legality is checked against the last-observed status before any control
// request goes out, so an illegal action costs no backend round-trip. The
// local status can be stale, which is why the backend's answer (including a
// rejection) is always adopted verbatim afterwards: the response status is
// the truth, never the optimistic target.
func (h Handlers) CampaignAction(action campaign.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		current, err := h.Platform.GetCampaign(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := campaign.CanApply(current.Status, action); err != nil {
			respondError(c, err)
			return
		}

		// Draft-skillbase invariant: a campaign whose skillbase has no
		// complete configuration must not start.
		if action == campaign.ActionStart {
			sb, err := h.Platform.GetSkillbase(c.Request.Context(), current.SkillbaseID)
			if err != nil {
				respondError(c, err)
				return
			}
			if ferrs := sb.CanStartCampaign(); len(ferrs) > 0 {
				respondFieldErrors(c, ferrs)
				return
			}
		}

		updated, err := h.Platform.ApplyCampaignAction(c.Request.Context(), id, action)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// CampaignLegalActions reports what the lifecycle permits from the current
// status, plus the derived success rate, for rendering action buttons.
func (h Handlers) CampaignLegalActions(c *gin.Context) {
	cmp, err := h.Platform.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	actions := campaign.LegalActions(cmp.Status)
	if actions == nil {
		actions = []campaign.Action{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        cmp.Status,
		"legal_actions": actions,
		"success_rate":  cmp.SuccessRate(),
	})
}

func (h Handlers) CampaignStats(c *gin.Context) {
	stats, err := h.Platform.CampaignStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UploadCallList proxies a raw lead file to the backend; parsing is not a
// console concern.
func (h Handlers) UploadCallList(c *gin.Context) {
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

	res, err := h.Platform.UploadCallList(c.Request.Context(), c.Param("id"), fh.Filename, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
