package main

import (
	"net/http"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/campaign"
	"voiceops-console/internal/httpapi"
	"voiceops-console/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, m *auth.Manager, h httpapi.Handlers) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api")
	public.POST("/auth/login", h.Login)

	// protected API group
	api := r.Group("/api")
	api.Use(auth.RequireSession(m), rbac.RequireCompany())

	api.GET("/me", func(c *gin.Context) {
		uid, _ := auth.UserID(c.Request.Context())
		cid, _ := auth.CompanyID(c.Request.Context())
		role, _ := auth.Role(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": uid, "company_id": cid, "role": role})
	})

	// Viewers get every read; mutating routes need operator (admin bypasses).
	operate := rbac.RequireAnyRole(rbac.RoleOperator)

	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.POST("", operate, h.CreateCampaign)
		campaigns.GET("/:id", h.GetCampaign)
		campaigns.PUT("/:id", operate, h.UpdateCampaign)
		campaigns.DELETE("/:id", operate, h.DeleteCampaign)

		campaigns.GET("/:id/actions", h.CampaignLegalActions)
		campaigns.POST("/:id/start", operate, h.CampaignAction(campaign.ActionStart))
		campaigns.POST("/:id/pause", operate, h.CampaignAction(campaign.ActionPause))
		campaigns.POST("/:id/resume", operate, h.CampaignAction(campaign.ActionResume))
		campaigns.POST("/:id/stop", operate, h.CampaignAction(campaign.ActionStop))

		campaigns.GET("/:id/stats", h.CampaignStats)
		campaigns.POST("/:id/call-list", operate, h.UploadCallList)
	}

	skillbases := api.Group("/skillbases")
	{
		skillbases.GET("", h.ListSkillbases)
		skillbases.POST("", operate, h.CreateSkillbase)
		skillbases.GET("/voices/list", h.ListVoices)
		skillbases.POST("/tts-preview", operate, h.TTSPreview)
		skillbases.GET("/:id", h.GetSkillbase)
		skillbases.PUT("/:id", operate, h.UpdateSkillbase)
		skillbases.DELETE("/:id", operate, h.DeleteSkillbase)

		skillbases.GET("/:id/config", h.GetSkillbaseConfig)
		skillbases.PUT("/:id/config", operate, h.PutSkillbaseConfig)
		skillbases.POST("/:id/config/validate", h.ValidateSkillbaseConfig)

		skillbases.POST("/:id/config/session", operate, h.BeginConfigSession)
		skillbases.GET("/:id/config/session", h.GetConfigSession)
		skillbases.PUT("/:id/config/session", operate, h.StageConfigSession)
		skillbases.POST("/:id/config/session/save", operate, h.SaveConfigSession)
		skillbases.POST("/:id/config/session/cancel", operate, h.CancelConfigSession)
		skillbases.DELETE("/:id/config/session", operate, h.EndConfigSession)

		skillbases.POST("/:id/test-call", operate, h.TestCall)
	}

	leads := api.Group("/leads")
	{
		leads.GET("", h.ListLeads)
		leads.POST("", operate, h.CreateLead)
		leads.POST("/import", operate, h.ImportLeads)
		leads.GET("/export", h.ExportLeads)
		leads.GET("/:id", h.GetLead)
		leads.PUT("/:id", operate, h.UpdateLead)
		leads.DELETE("/:id", operate, h.DeleteLead)
	}

	knowledgeBases := api.Group("/knowledge-bases")
	{
		knowledgeBases.GET("", h.ListKnowledgeBases)
		knowledgeBases.POST("", operate, h.CreateKnowledgeBase)
		knowledgeBases.GET("/:id", h.GetKnowledgeBase)
		knowledgeBases.PUT("/:id", operate, h.UpdateKnowledgeBase)
		knowledgeBases.DELETE("/:id", operate, h.DeleteKnowledgeBase)

		knowledgeBases.GET("/:id/documents", h.ListKnowledgeDocuments)
		knowledgeBases.POST("/:id/documents", operate, h.AddKnowledgeDocument)
		knowledgeBases.DELETE("/:id/documents/:docID", operate, h.DeleteKnowledgeDocument)
		knowledgeBases.GET("/:id/search", h.SearchKnowledgeBase)
	}

	calls := api.Group("/calls")
	{
		calls.GET("", h.ListCalls)
		calls.GET("/:id", h.GetCall)
		calls.GET("/:id/transcript", h.CallTranscript)
		calls.GET("/:id/recording", h.CallRecording)
		calls.POST("/:id/rate", operate, h.RateCall)
	}
}
