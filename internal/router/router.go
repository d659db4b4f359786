package router

import (
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/agents"
	"github.com/zhilongzheng/friday-tasks/internal/auth"
	"github.com/zhilongzheng/friday-tasks/internal/cronjobs"
	"github.com/zhilongzheng/friday-tasks/internal/handlers"
	"github.com/zhilongzheng/friday-tasks/internal/middleware"
	"github.com/zhilongzheng/friday-tasks/internal/usage"
)

// Deps carries every handler the route table mounts.
type Deps struct {
	Tasks     *handlers.TaskHandler
	Subtasks  *handlers.SubtaskHandler
	Comments  *handlers.CommentHandler
	Artifacts *handlers.ArtifactHandler
	Auth      *auth.Handler
	CronJobs  *cronjobs.Handler
	Agents    *agents.Handler
	Usage     *usage.Handler
	Tokens    middleware.TokenVerifier
}

// New returns the API route table. Reads are open; mutations sit behind the
// token gate.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(d.Tokens)
	guard := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux.HandleFunc("POST /api/auth/login", d.Auth.Login)
	mux.HandleFunc("POST /api/auth/verify", d.Auth.Verify)
	mux.HandleFunc("POST /api/auth/logout", d.Auth.Logout)

	mux.HandleFunc("GET /api/tasks", d.Tasks.List)
	mux.HandleFunc("GET /api/tasks/{id}", d.Tasks.Get)
	mux.Handle("POST /api/tasks", guard(d.Tasks.Create))
	mux.Handle("PUT /api/tasks/{id}", guard(d.Tasks.Update))
	mux.Handle("DELETE /api/tasks/{id}", guard(d.Tasks.Delete))
	mux.Handle("PUT /api/tasks/{id}/approve", guard(d.Tasks.Approve))
	mux.Handle("PUT /api/tasks/{id}/reject", guard(d.Tasks.Reject))

	mux.HandleFunc("GET /api/tasks/{id}/subtasks", d.Subtasks.List)
	mux.Handle("POST /api/tasks/{id}/subtasks", guard(d.Subtasks.Create))
	mux.Handle("PUT /api/subtasks/{id}", guard(d.Subtasks.Update))
	mux.Handle("DELETE /api/subtasks/{id}", guard(d.Subtasks.Delete))

	mux.HandleFunc("GET /api/tasks/{id}/comments", d.Comments.List)
	mux.Handle("POST /api/tasks/{id}/comments", guard(d.Comments.Create))
	mux.HandleFunc("GET /api/comments/unread", d.Comments.Unread)
	mux.Handle("PUT /api/comments/{id}/read", guard(d.Comments.MarkRead))

	mux.HandleFunc("GET /api/artifacts", d.Artifacts.ListAll)
	mux.HandleFunc("GET /api/tasks/{id}/artifacts", d.Artifacts.List)
	mux.Handle("POST /api/tasks/{id}/artifacts", guard(d.Artifacts.Create))
	mux.Handle("DELETE /api/artifacts/{id}", guard(d.Artifacts.Delete))

	mux.HandleFunc("GET /api/cron-jobs", d.CronJobs.List)
	mux.HandleFunc("GET /api/agents/status", d.Agents.Status)
	mux.HandleFunc("GET /api/agents/{id}/crons", d.Agents.Crons)
	mux.HandleFunc("GET /api/usage", d.Usage.Summary)
	mux.HandleFunc("GET /api/usage/chart", d.Usage.Chart)

	return mux
}
