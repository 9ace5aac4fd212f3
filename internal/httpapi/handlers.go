// Package httpapi is the operator-facing HTTP surface. Handlers stay thin:
// parse and validate input, run the local checks that must happen before any
// backend round-trip (field validation, transition legality, dirty-state
// rules), delegate to the platform client, and render exactly what the
// backend returned. No handler ever assumes an optimistic post-state.
package httpapi

import (
	"net/http"
	"time"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/platform"
	"voiceops-console/internal/session"
	"voiceops-console/internal/skillbase"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// Handlers groups HTTP handlers for dependency injection.
type Handlers struct {
	Auth     *auth.Manager
	Platform *platform.Client

	// ConfigSessions enforces one edit session per skillbase config.
	ConfigSessions *session.Registry[skillbase.Config]

	// VoiceCache holds the backend voice catalog; the catalog changes rarely
	// and the picker queries it on every editor open.
	VoiceCache *gocache.Cache
}

const voiceCacheKey = "voices"

// VoiceCacheTTL bounds how stale the voice picker may be.
const VoiceCacheTTL = 5 * time.Minute

// --- Auth ---

type loginRequest struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Login issues an operator session token.
//
// NOTE: placeholder endpoint; the console is not a security boundary and does
// not validate credentials. Real identity lives in front of this service.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.CompanyID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, company_id, role required"})
		return
	}
	tok, err := h.Auth.Issue(time.Now(), req.UserID, req.CompanyID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": tok})
}
