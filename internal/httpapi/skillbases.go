package httpapi

import (
	"net/http"
	"strings"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/platform"
	"voiceops-console/internal/skillbase"

	"github.com/gin-gonic/gin"
)

type createSkillbaseRequest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	KnowledgeBaseID string            `json:"knowledge_base_id"`
	Config          *skillbase.Config `json:"config"`
}

func (h Handlers) ListSkillbases(c *gin.Context) {
	companyID, _ := auth.CompanyID(c.Request.Context())
	page, err := h.Platform.ListSkillbases(c.Request.Context(), platform.SkillbaseFilter{
		CompanyID: companyID,
		Page:      pageQuery(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h Handlers) GetSkillbase(c *gin.Context) {
	sb, err := h.Platform.GetSkillbase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sb)
}

func (h Handlers) CreateSkillbase(c *gin.Context) {
	var req createSkillbaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	// An initial config, when given, may be a draft: completeness is only
	// required to start campaigns, not to exist.

	companyID, _ := auth.CompanyID(c.Request.Context())
	created, err := h.Platform.CreateSkillbase(c.Request.Context(), platform.CreateSkillbaseRequest{
		Name:            req.Name,
		Description:     req.Description,
		CompanyID:       companyID,
		KnowledgeBaseID: req.KnowledgeBaseID,
		Config:          req.Config,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handlers) UpdateSkillbase(c *gin.Context) {
	var req platform.UpdateSkillbaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updated, err := h.Platform.UpdateSkillbase(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h Handlers) DeleteSkillbase(c *gin.Context) {
	if err := h.Platform.DeleteSkillbase(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) GetSkillbaseConfig(c *gin.Context) {
	cfg, err := h.Platform.GetSkillbaseConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PutSkillbaseConfig replaces the config document directly, outside an edit
// session. Drafts are saveable; completeness is only demanded by the
// dry-run check and by campaign start.
func (h Handlers) PutSkillbaseConfig(c *gin.Context) {
	var cfg skillbase.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	saved, err := h.Platform.PutSkillbaseConfig(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ValidateSkillbaseConfig is the explicit commit check: it validates the
// submitted document without saving anything, returning per-section states
// and every field error at once.
func (h Handlers) ValidateSkillbaseConfig(c *gin.Context) {
	var cfg skillbase.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	errs := cfg.Validate()
	if errs == nil {
		errs = []skillbase.FieldError{}
	}
	states := make(map[skillbase.SectionName]string, len(skillbase.SectionNames))
	for _, name := range skillbase.SectionNames {
		states[name] = cfg.SectionState(name).String()
	}

	c.JSON(http.StatusOK, gin.H{
		"complete": len(errs) == 0,
		"errors":   errs,
		"sections": states,
	})
}

// ListVoices serves the voice catalog through a short TTL cache.
func (h Handlers) ListVoices(c *gin.Context) {
	if h.VoiceCache != nil {
		if cached, ok := h.VoiceCache.Get(voiceCacheKey); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	voices, err := h.Platform.ListVoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if h.VoiceCache != nil {
		h.VoiceCache.Set(voiceCacheKey, voices, VoiceCacheTTL)
	}
	c.JSON(http.StatusOK, voices)
}

func (h Handlers) TTSPreview(c *gin.Context) {
	var req platform.TTSPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.VoiceID == "" || strings.TrimSpace(req.Text) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "voice_id and text are required"})
		return
	}

	body, contentType, err := h.Platform.TTSPreview(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}

func (h Handlers) TestCall(c *gin.Context) {
	var req platform.TestCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "phone_number is required"})
		return
	}
	res, err := h.Platform.TestCall(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
