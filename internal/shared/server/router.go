package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/ai"
	"jobpilot-backend/internal/ghsync"
	"jobpilot-backend/internal/identity"
	"jobpilot-backend/internal/jobs"
	"jobpilot-backend/internal/profiles"
	"jobpilot-backend/internal/shared/config"
	"jobpilot-backend/internal/shared/metrics"
	"jobpilot-backend/internal/shared/server/middleware"
	"jobpilot-backend/internal/shared/server/respond"
	"jobpilot-backend/internal/workspace"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	Verifier         identity.Verifier
	JobsHandler      *jobs.Handler
	ProfilesHandler  *profiles.Handler
	AIHandler        *ai.Handler
	SyncHandler      *ghsync.Handler
	WorkspaceHandler *workspace.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(deps.Verifier, deps.Config.DevMode))
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATION": {Rate: 1, Burst: 10},
			"DEFAULT":    {Rate: 20, Burst: 60},
		},
		GroupFor: rateLimitGroup,
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.ProfilesHandler.RegisterRoutes(api)
	deps.AIHandler.RegisterRoutes(api)
	deps.SyncHandler.RegisterRoutes(api)
	deps.WorkspaceHandler.RegisterRoutes(api)

	return r
}

// rateLimitGroup classifies generation-backed routes, which are far more
// expensive than plain persistence calls.
func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	if strings.HasPrefix(path, "/api/v1/ai/") || path == "/api/v1/jobs/nearby" {
		return "GENERATION"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
