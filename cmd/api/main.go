package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/cors"

	"github.com/zhilongzheng/friday-tasks/internal/agents"
	"github.com/zhilongzheng/friday-tasks/internal/auth"
	"github.com/zhilongzheng/friday-tasks/internal/config"
	"github.com/zhilongzheng/friday-tasks/internal/cronjobs"
	"github.com/zhilongzheng/friday-tasks/internal/database"
	"github.com/zhilongzheng/friday-tasks/internal/handlers"
	"github.com/zhilongzheng/friday-tasks/internal/inbox"
	"github.com/zhilongzheng/friday-tasks/internal/middleware"
	"github.com/zhilongzheng/friday-tasks/internal/repository"
	"github.com/zhilongzheng/friday-tasks/internal/router"
	"github.com/zhilongzheng/friday-tasks/internal/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := database.Open(cfg.DataDir)
	if err != nil {
		slog.Error("Unable to open task database", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Task database ready", "dir", cfg.DataDir)

	taskRepo := repository.NewTaskRepo(db)
	subtaskRepo := repository.NewSubtaskRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	artifactRepo := repository.NewArtifactRepo(db)

	inboxSyncer := inbox.NewSyncer(cfg.DataDir, taskRepo, logger)
	// Rebuild the snapshot at startup so it reflects any offline edits.
	inboxSyncer.SyncLogged(context.Background())

	tokens := auth.NewMemoryTokenStore(cfg.TokenTTL)
	authSvc := auth.NewService(cfg.AdminPassword, cfg.AdminPasswordHash, tokens)
	authHandler := auth.NewHandler(authSvc, logger)

	jobsSource := cronjobs.NewSource(cronJobsPath(cfg), logger)
	stopWatch := jobsSource.Watch()
	defer stopWatch()

	agentTable := agents.Builtin()
	if cfg.AgentsFile != "" {
		agentTable, err = agents.LoadFile(cfg.AgentsFile)
		if err != nil {
			slog.Error("Failed to load agents file", "path", cfg.AgentsFile, "error", err)
			os.Exit(1)
		}
	}

	usageLoader := usage.NewLoader(usageLogDir(cfg), logger)
	usageCache := usage.NewCache(cfg.UsageCacheTTL, usageLoader.Load)

	api := router.New(router.Deps{
		Tasks:     &handlers.TaskHandler{Repo: taskRepo, Inbox: inboxSyncer, Logger: logger},
		Subtasks:  &handlers.SubtaskHandler{Repo: subtaskRepo, Logger: logger},
		Comments:  &handlers.CommentHandler{Repo: commentRepo, Logger: logger},
		Artifacts: &handlers.ArtifactHandler{Repo: artifactRepo, Logger: logger},
		Auth:      authHandler,
		CronJobs:  cronjobs.NewHandler(jobsSource, logger),
		Agents:    agents.NewHandler(agentTable, taskRepo, jobsSource, logger),
		Usage:     usage.NewHandler(usageCache),
		Tokens:    tokens,
	})

	handler := middleware.RequestID(api)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", auth.HeaderToken},
	}).Handler(handler)

	slog.Info("Starting HTTP server", "addr", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		slog.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}

// cronJobsPath defaults to the scheduler tool's own state file.
func cronJobsPath(cfg *config.Config) string {
	if cfg.CronJobsPath != "" {
		return cfg.CronJobsPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clawdbot", "cron", "jobs.json")
}

// usageLogDir defaults to the per-agent session log tree.
func usageLogDir(cfg *config.Config) string {
	if cfg.UsageLogDir != "" {
		return cfg.UsageLogDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".clawdbot", "sessions")
}
