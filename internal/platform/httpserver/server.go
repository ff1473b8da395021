package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	delegateaccess "jobdeck/contexts/identity-access/delegate-access-service"
	membership "jobdeck/contexts/identity-access/membership-service"
	organization "jobdeck/contexts/organizations/organization-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "jobdeck/internal/platform/httpserver/docs"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	addr           string
	delegateAccess delegateaccess.Module
	membership     membership.Module
	organizations  organization.Module
}

func New(
	delegateAccessModule delegateaccess.Module,
	membershipModule membership.Module,
	organizationModule organization.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		delegateAccess: delegateAccessModule,
		membership:     membershipModule,
		organizations:  organizationModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /account/delegate-access/requests", s.handleDelegateAccessList)
	s.mux.HandleFunc("POST /account/delegate-access/request", s.handleDelegateAccessRequest)
	s.mux.HandleFunc("POST /account/delegate-access/accept", s.handleDelegateAccessAccept)
	s.mux.HandleFunc("POST /account/delegate-access/revoke", s.handleDelegateAccessRevoke)

	s.mux.HandleFunc("GET /organizations", s.handleListOrganizations)
	s.mux.HandleFunc("GET /organizations/{org_id}", s.handleGetOrganization)
	s.mux.HandleFunc("GET /organizations/{org_id}/members", s.handleListOrgMembers)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
