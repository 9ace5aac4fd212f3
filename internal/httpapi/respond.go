package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"voiceops-console/internal/campaign"
	"voiceops-console/internal/platform"
	"voiceops-console/internal/session"
	"voiceops-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain and backend errors onto operator-visible HTTP
// responses. Not-found is presented distinctly, conflicts (illegal
// transitions, held sessions, duplicate saves) as 409, backend rejections
// with the backend's own status, transport failures as 502. Nothing is
// swallowed into a fabricated success.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, platform.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, campaign.ErrIllegalTransition),
		errors.Is(err, session.ErrHeld),
		errors.Is(err, session.ErrSaveInFlight),
		errors.Is(err, session.ErrNotDirty),
		errors.Is(err, session.ErrClosed):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) {
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		logger.FromGin(c).Error("backend request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "platform backend unavailable"})
	}
}

// respondFieldErrors renders local validation failures. These never reach the
// network; the offending fields are named so the UI can mark each control.
func respondFieldErrors(c *gin.Context, errs any) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

func pageQuery(c *gin.Context) platform.PageQuery {
	return platform.PageQuery{
		Skip:  intQuery(c, "skip"),
		Limit: intQuery(c, "limit"),
	}
}

func intQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
