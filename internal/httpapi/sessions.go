package httpapi

import (
	"errors"
	"net/http"

	"voiceops-console/internal/platform"
	"voiceops-console/internal/session"
	"voiceops-console/internal/skillbase"

	"github.com/gin-gonic/gin"
)

// Config edit sessions. The console snapshots the server copy, edits apply to
// a working copy, and the save/cancel rules of the dirty tracker are enforced
// here so no UI variant can bypass them.

type configSessionView struct {
	SkillbaseID     string                          `json:"skillbase_id"`
	SnapshotVersion int                             `json:"snapshot_version"`
	Working         skillbase.Config                `json:"working"`
	Dirty           bool                            `json:"dirty"`
	Saving          bool                            `json:"saving"`
	Sections        map[skillbase.SectionName]string `json:"sections"`
}

func (h Handlers) sessionView(id string, s *session.Session[skillbase.Config]) configSessionView {
	working := s.Working()
	states := make(map[skillbase.SectionName]string, len(skillbase.SectionNames))
	for _, name := range skillbase.SectionNames {
		states[name] = working.SectionState(name).String()
	}
	return configSessionView{
		SkillbaseID:     id,
		SnapshotVersion: s.Snapshot().Version,
		Working:         working,
		Dirty:           s.Dirty(),
		Saving:          s.Saving(),
		Sections:        states,
	}
}

// BeginConfigSession snapshots the authoritative config and opens a session.
// A skillbase without a config starts from an empty draft document.
func (h Handlers) BeginConfigSession(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	cfg, err := h.Platform.GetSkillbaseConfig(ctx, id)
	if errors.Is(err, platform.ErrNotFound) {
		// Distinguish "skillbase has no config yet" from "no such skillbase".
		if _, sbErr := h.Platform.GetSkillbase(ctx, id); sbErr != nil {
			respondError(c, sbErr)
			return
		}
		cfg = skillbase.Config{}
	} else if err != nil {
		respondError(c, err)
		return
	}

	s, err := h.ConfigSessions.Begin(ctx, id, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.sessionView(id, s))
}

func (h Handlers) GetConfigSession(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.ConfigSessions.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no open session"})
		return
	}
	c.JSON(http.StatusOK, h.sessionView(id, s))
}

// StageConfigSession replaces the working copy with the submitted document.
// The snapshot is untouched; nothing goes to the backend.
func (h Handlers) StageConfigSession(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.ConfigSessions.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no open session"})
		return
	}

	var working skillbase.Config
	if err := c.ShouldBindJSON(&working); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.Replace(working); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(id, s))
}

// SaveConfigSession submits the working copy. Clean sessions and sessions
// with a save already outstanding are refused before any network traffic.
// The persisted copy the backend returns becomes the new snapshot; on backend
// failure the working copy is retained and the session stays dirty.
func (h Handlers) SaveConfigSession(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.ConfigSessions.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no open session"})
		return
	}

	working, err := s.BeginSave()
	if err != nil {
		respondError(c, err)
		return
	}
	working.Version = s.Snapshot().Version + 1

	saved, err := h.Platform.PutSkillbaseConfig(c.Request.Context(), id, working)
	s.Resolve(saved, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(id, s))
}

// CancelConfigSession discards local edits and restores the snapshot, keeping
// the session open for further editing.
func (h Handlers) CancelConfigSession(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.ConfigSessions.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no open session"})
		return
	}
	if err := s.Cancel(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(id, s))
}

// EndConfigSession ends the session and releases the aggregate lock. Ending
// is always allowed, even with a save outstanding; a late backend response
// resolves against the closed session and is discarded.
func (h Handlers) EndConfigSession(c *gin.Context) {
	if err := h.ConfigSessions.End(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
