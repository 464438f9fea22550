package ghsync

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/jobs"
	"jobpilot-backend/internal/shared/metrics"
	"jobpilot-backend/internal/shared/server/middleware"
	"jobpilot-backend/internal/shared/server/respond"
)

// Handler exposes GitHub sync over HTTP.
type Handler struct {
	Client *Client
	Jobs   jobs.Repo
}

// NewHandler constructs a Handler.
func NewHandler(client *Client, jobsRepo jobs.Repo) *Handler {
	return &Handler{Client: client, Jobs: jobsRepo}
}

// RegisterRoutes attaches sync routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync/github", h.push)
	rg.POST("/sync/github/check", h.check)
}

type syncRequest struct {
	Token string `json:"token"`
	Repo  string `json:"repo"`
}

func (h *Handler) push(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token is required", nil)
		return
	}

	list, err := h.Jobs.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load jobs", nil)
		return
	}

	metrics.IncSyncPush()
	if err := h.Client.Push(c.Request.Context(), req.Token, req.Repo, jobs.ToResponses(list)); err != nil {
		metrics.IncSyncPushFailed()
		switch {
		case errors.Is(err, ErrBadRepo):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "sync_failed", err.Error(), nil)
		}
		return
	}

	respond.OK(c, gin.H{"synced": len(list), "path": SyncPath})
}

func (h *Handler) check(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	accessible, err := h.Client.CheckAccess(c.Request.Context(), req.Token, req.Repo)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadRepo):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "sync_failed", err.Error(), nil)
		}
		return
	}

	respond.OK(c, gin.H{"accessible": accessible})
}
