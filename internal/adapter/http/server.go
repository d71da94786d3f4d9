package adapthttp

import (
	"net/http"

	"wellness/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	logs   *app.LogService
	trends *app.TrendsService
	auth   *app.AuthService
	oidc   OIDCConfig
}

// New creates a Server wired to the given application services.
func New(ls *app.LogService, ts *app.TrendsService, as *app.AuthService, oidc OIDCConfig) *Server {
	return &Server{logs: ls, trends: ts, auth: as, oidc: oidc}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/signup", s.handleSignup)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/user/account", s.handleAccount)
	protected.HandleFunc("/user/logs", s.handleLogs)
	protected.HandleFunc("/user/trends", s.handleTrends)
	api.Handle("/user/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
