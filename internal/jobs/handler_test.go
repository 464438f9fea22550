package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(repo Repo, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(repo).RegisterRoutes(api)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUpsertAppliesDefaultsAndRoundTrips(t *testing.T) {
	repo := NewMemoryRepo()
	router := newTestRouter(repo, "user-1")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", `{"id":"job-1","title":"Backend Engineer"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var stored JobResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode upsert response: %v", err)
	}
	if stored.Source != string(SourceImported) {
		t.Fatalf("expected default source %q, got %q", SourceImported, stored.Source)
	}
	if stored.Status != string(StatusDetected) {
		t.Fatalf("expected default status %q, got %q", StatusDetected, stored.Status)
	}
	if stored.DetectedAt.IsZero() {
		t.Fatalf("expected detectedAt default")
	}
	if stored.Requirements == nil {
		t.Fatalf("requirements must serialize as an empty list, not null")
	}

	listResp := doJSON(t, router, http.MethodGet, "/api/v1/jobs", "")
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.Code)
	}
	var list []JobResponse
	if err := json.Unmarshal(listResp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 job, got %d", len(list))
	}
	if list[0].ID != stored.ID || list[0].Title != stored.Title || !list[0].DetectedAt.Equal(stored.DetectedAt) {
		t.Fatalf("listed job does not match stored job: %+v vs %+v", list[0], stored)
	}
}

func TestUpsertRequiresID(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), "user-1")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", `{"title":"no id"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpsertForeignIDConflicts(t *testing.T) {
	repo := NewMemoryRepo()
	ownerRouter := newTestRouter(repo, "owner")
	intruderRouter := newTestRouter(repo, "intruder")

	if resp := doJSON(t, ownerRouter, http.MethodPost, "/api/v1/jobs", `{"id":"job-1"}`); resp.Code != http.StatusOK {
		t.Fatalf("owner upsert failed: %d", resp.Code)
	}

	resp := doJSON(t, intruderRouter, http.MethodPost, "/api/v1/jobs", `{"id":"job-1","title":"stolen"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := NewMemoryRepo()
	ownerRouter := newTestRouter(repo, "owner")
	intruderRouter := newTestRouter(repo, "intruder")

	if resp := doJSON(t, ownerRouter, http.MethodPost, "/api/v1/jobs", `{"id":"job-1"}`); resp.Code != http.StatusOK {
		t.Fatalf("owner upsert failed: %d", resp.Code)
	}

	// Someone else's delete must not remove the row.
	if resp := doJSON(t, intruderRouter, http.MethodDelete, "/api/v1/jobs?id=job-1", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", resp.Code)
	}

	listResp := doJSON(t, ownerRouter, http.MethodGet, "/api/v1/jobs", "")
	var list []JobResponse
	if err := json.Unmarshal(listResp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("foreign delete removed the row")
	}

	if resp := doJSON(t, ownerRouter, http.MethodDelete, "/api/v1/jobs?id=job-1", ""); resp.Code != http.StatusOK {
		t.Fatalf("owner delete failed: %d", resp.Code)
	}
	if resp := doJSON(t, ownerRouter, http.MethodDelete, "/api/v1/jobs?id=job-1", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), "user-1")

	resp := doJSON(t, router, http.MethodDelete, "/api/v1/jobs", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
