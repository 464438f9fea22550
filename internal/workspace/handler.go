package workspace

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/shared/server/respond"
)

// Handler exposes the workspace store over HTTP.
type Handler struct {
	Store Store
}

// NewHandler constructs a Handler.
func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches workspace routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspace/files/:name", h.read)
	rg.PUT("/workspace/files/:name", h.write)
}

type writeRequest struct {
	Content string `json:"content"`
}

func (h *Handler) read(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	content, err := h.Store.Read(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}

	respond.OK(c, gin.H{"name": name, "content": content})
}

func (h *Handler) write(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Store.Write(c.Request.Context(), name, req.Content); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			respond.Error(c, http.StatusInsufficientStorage, "quota_exceeded", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to write file", nil)
		return
	}

	respond.OK(c, gin.H{"name": name})
}
