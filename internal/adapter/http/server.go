package adapthttp

import (
	"net/http"

	"weighttracker/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO provider wiring.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries     *app.EntryService
	charts      *app.ChartsService
	imports     *app.ImportService
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, cs *app.ChartsService, is *app.ImportService, as *app.AuthService, oc OIDCConfig, webDir string) *Server {
	return &Server{entries: es, charts: cs, imports: is, authSvc: as, oidcConfig: oc, webDir: webDir}
}

// WithoutAuth disables session validation; requests run as a fixed test
// user. Only for tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/auth/me", s.handleMe)
	protected.HandleFunc("/entries", s.handleEntries)
	protected.HandleFunc("/entries/import", s.handleImport)
	protected.HandleFunc("/entries/import/status", s.handleImportStatus)
	protected.HandleFunc("/charts/series", s.handleChartSeries)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
