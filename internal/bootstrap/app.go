package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot-backend/internal/ai"
	"jobpilot-backend/internal/ghsync"
	"jobpilot-backend/internal/identity"
	"jobpilot-backend/internal/jobs"
	"jobpilot-backend/internal/profiles"
	"jobpilot-backend/internal/shared/config"
	"jobpilot-backend/internal/shared/server"
	"jobpilot-backend/internal/shared/storage/db"
	"jobpilot-backend/internal/shared/telemetry"
	"jobpilot-backend/internal/workspace"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	JobsRepo         jobs.Repo
	ProfilesRepo     profiles.Repo
	Workspace        workspace.Store
	Verifier         identity.Verifier
	AIService        *ai.Service
	SyncClient       *ghsync.Client
	JobsHandler      *jobs.Handler
	ProfilesHandler  *profiles.Handler
	AIHandler        *ai.Handler
	SyncHandler      *ghsync.Handler
	WorkspaceHandler *workspace.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return nil, err
	}

	store := buildWorkspace(cfg)

	generator, err := buildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Workspace: store,
		Verifier:  verifier,
		AIService: ai.NewService(generator),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Verifier:         app.Verifier,
		JobsHandler:      app.JobsHandler,
		ProfilesHandler:  app.ProfilesHandler,
		AIHandler:        app.AIHandler,
		SyncHandler:      app.SyncHandler,
		WorkspaceHandler: app.WorkspaceHandler,
	})

	return app, nil
}

// Close releases held resources. Safe to call on a partially built App.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.AIService != nil {
		a.AIService.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.db", map[string]any{"mode": "memory", "reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{"mode": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db", map[string]any{"mode": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildVerifier(cfg config.Config) (identity.Verifier, error) {
	if cfg.DevMode {
		telemetry.Info("bootstrap.auth", map[string]any{"mode": "dev", "userId": identity.DevUserID})
		return identity.DevVerifier{}, nil
	}
	return identity.NewProviderVerifier(cfg.AuthVerifyURL, cfg.AuthSecret)
}

// buildWorkspace prefers a directory-backed store and falls back to the
// in-memory variant when the directory cannot be written, or when the
// deployment asks for virtual mode outright.
func buildWorkspace(cfg config.Config) workspace.Store {
	if cfg.WorkspaceMode == "virtual" {
		telemetry.Info("bootstrap.workspace", map[string]any{"mode": "virtual"})
		return workspace.NewVirtualStore(workspace.DefaultVirtualQuota)
	}

	store, err := workspace.NewDirStore(cfg.WorkspaceDir)
	if err != nil {
		telemetry.Warn("bootstrap.workspace", map[string]any{"mode": "virtual", "dir": cfg.WorkspaceDir, "error": err.Error()})
		return workspace.NewVirtualStore(workspace.DefaultVirtualQuota)
	}
	telemetry.Info("bootstrap.workspace", map[string]any{"mode": "dir", "dir": cfg.WorkspaceDir})
	return store
}

func buildGenerator(ctx context.Context, cfg config.Config) (ai.Generator, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Info("bootstrap.ai", map[string]any{"mode": "disabled", "reason": "GEMINI_API_KEY empty"})
		return ai.DisabledGenerator{}, nil
	}
	gen, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return gen, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
	}

	app.SyncClient = ghsync.NewClient(app.Config.GitHubAPIURL)

	app.JobsHandler = jobs.NewHandler(app.JobsRepo)
	app.ProfilesHandler = profiles.NewHandler(app.ProfilesRepo, app.Workspace)
	app.AIHandler = ai.NewHandler(app.AIService)
	app.SyncHandler = ghsync.NewHandler(app.SyncClient, app.JobsRepo)
	app.WorkspaceHandler = workspace.NewHandler(app.Workspace)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
