package profiles

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/extract"
	"jobpilot-backend/internal/shared/server/middleware"
	"jobpilot-backend/internal/shared/server/respond"
	"jobpilot-backend/internal/shared/telemetry"
	"jobpilot-backend/internal/workspace"
)

const maxResumeSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the profiles repo and workspace store.
type Handler struct {
	Repo      Repo
	Workspace workspace.Store
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, ws workspace.Store) *Handler {
	return &Handler{Repo: repo, Workspace: ws}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.POST("/profile", h.upsert)
	rg.POST("/profile/resume", h.uploadResume)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	profile, err := h.Repo.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.OK(c, toResponse(profile))
}

func (h *Handler) upsert(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	stored, err := h.Repo.Upsert(c.Request.Context(), toModel(userID, req))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	respond.OK(c, toResponse(stored))
}

func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	if len(data) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is empty", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := extract.Text(data, mimeType, fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to extract resume text", err.Error())
		return
	}

	ctx := c.Request.Context()
	profile, err := h.Repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	profile.ID = userID
	profile.ResumeText = text
	profile.ResumeFileName = fileHeader.Filename

	stored, err := h.Repo.Upsert(ctx, profile)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	// Keep a copy of the raw upload in the workspace. Losing it is not
	// fatal; the extracted text already lives on the profile.
	if err := h.Workspace.Write(ctx, fileHeader.Filename, string(data)); err != nil {
		telemetry.Warn("resume.workspace_write_failed", map[string]any{
			"user_id": userID,
			"file":    fileHeader.Filename,
			"err":     err.Error(),
		})
	}

	respond.OK(c, toResponse(stored))
}
