package ai

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/shared/server/respond"
)

// Handler exposes the generation operations over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/cover-letter", h.coverLetter)
	rg.POST("/ai/resume", h.tailorResume)
	rg.POST("/ai/match-score", h.matchScore)
	rg.POST("/ai/extract", h.extractJobs)
	rg.POST("/ai/extract-url", h.extractURL)
	rg.POST("/jobs/nearby", h.nearby)
	rg.POST("/utils/clean-url", h.cleanURL)
}

type generateRequest struct {
	Job     JobInput     `json:"job"`
	Profile ProfileInput `json:"profile"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	content := h.Svc.CoverLetter(c.Request.Context(), req.Job, req.Profile)
	respond.OK(c, gin.H{"content": content})
}

type tailorRequest struct {
	Job        JobInput `json:"job"`
	ResumeText string   `json:"resumeText"`
}

func (h *Handler) tailorResume(c *gin.Context) {
	var req tailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	content := h.Svc.TailorResume(c.Request.Context(), req.Job, req.ResumeText)
	respond.OK(c, gin.H{"content": content})
}

func (h *Handler) matchScore(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	score := h.Svc.MatchScore(c.Request.Context(), req.Job, req.Profile)
	respond.OK(c, gin.H{"score": score})
}

type extractRequest struct {
	Text string `json:"text"`
}

func (h *Handler) extractJobs(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}
	found := h.Svc.ExtractJobs(c.Request.Context(), req.Text)
	respond.OK(c, gin.H{"jobs": found})
}

type urlRequest struct {
	URL string `json:"url"`
}

func (h *Handler) extractURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	job, found := h.Svc.ExtractJobFromURL(c.Request.Context(), req.URL)
	respond.OK(c, gin.H{"job": job, "found": found})
}

type nearbyRequest struct {
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Role string   `json:"role"`
}

func (h *Handler) nearby(c *gin.Context) {
	var req nearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Lat == nil || req.Lng == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "lat and lng are required", nil)
		return
	}
	found := h.Svc.NearbyJobs(c.Request.Context(), *req.Lat, *req.Lng, req.Role)
	respond.OK(c, gin.H{"jobs": found})
}

func (h *Handler) cleanURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	respond.OK(c, gin.H{"url": CleanTrackingParams(req.URL)})
}
