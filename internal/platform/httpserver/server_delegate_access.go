package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	delegateerrors "jobdeck/contexts/identity-access/delegate-access-service/domain/errors"
	delegateports "jobdeck/contexts/identity-access/delegate-access-service/ports"
	delegatehttp "jobdeck/contexts/identity-access/delegate-access-service/transport/http"
)

// sessionHeader stands in for the upstream session layer. Only this
// gate and the capability gate answer 401/403; every failure past them
// reports through the HTTP 200 success/message envelope.
const sessionHeader = "X-Actor-Address"

func (s *Server) sessionPrincipal(w http.ResponseWriter, r *http.Request) (delegateports.Principal, bool) {
	address := strings.TrimSpace(r.Header.Get(sessionHeader))
	if address == "" {
		writeJSON(w, http.StatusUnauthorized, delegatehttp.StatusResponse{
			Success: false,
			Message: "authentication required",
		})
		return delegateports.Principal{}, false
	}

	capabilities, err := s.membership.Service.CapabilitiesFor(r.Context(), address)
	if err != nil {
		s.logger.Error("capability resolution failed",
			"event", "http_session_capabilities_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"actor", address,
			"error", err.Error(),
		)
		writeDelegateFailure(w, err)
		return delegateports.Principal{}, false
	}
	return delegateports.Principal{
		Address:      address,
		Capabilities: capabilities,
	}, true
}

func requireCapability(
	w http.ResponseWriter,
	principal delegateports.Principal,
	capabilities ...string,
) bool {
	for _, capability := range capabilities {
		if principal.HasCapability(capability) {
			return true
		}
	}
	writeJSON(w, http.StatusForbidden, delegatehttp.StatusResponse{
		Success: false,
		Message: "not authorized",
	})
	return false
}

func decodeDelegateJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSON(w, http.StatusOK, delegatehttp.StatusResponse{
			Success: false,
			Message: delegateerrors.ErrInvalidRequest.Error(),
		})
		return false
	}
	return true
}

// writeDelegateFailure keeps the wire contract: known workflow errors
// surface their own message, anything else collapses to a generic one.
// Either way the transport status is 200.
func writeDelegateFailure(w http.ResponseWriter, err error) {
	message := "error performing operation"
	switch {
	case errors.Is(err, delegateerrors.ErrInvalidRequest),
		errors.Is(err, delegateerrors.ErrNotAuthorized),
		errors.Is(err, delegateerrors.ErrSelfDelegation),
		errors.Is(err, delegateerrors.ErrOrganizationNotFound),
		errors.Is(err, delegateerrors.ErrSubscriptionInactive),
		errors.Is(err, delegateerrors.ErrDelegationExists),
		errors.Is(err, delegateerrors.ErrNotFoundOrExpired),
		errors.Is(err, delegateerrors.ErrNotFoundOrNotActive):
		message = err.Error()
	}
	writeJSON(w, http.StatusOK, delegatehttp.StatusResponse{
		Success: false,
		Message: message,
	})
}

func (s *Server) handleDelegateAccessList(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.sessionPrincipal(w, r)
	if !ok {
		return
	}
	if !requireCapability(w, principal,
		delegateports.CapabilityMember,
		delegateports.CapabilityOrgMember,
		delegateports.CapabilityEcosystemManager,
	) {
		return
	}

	orgID := strings.TrimSpace(r.URL.Query().Get("orgId"))
	resp, err := s.delegateAccess.Handler.ListHandler(r.Context(), principal, orgID)
	if err != nil {
		writeDelegateFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelegateAccessRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.sessionPrincipal(w, r)
	if !ok {
		return
	}
	if !requireCapability(w, principal,
		delegateports.CapabilityMember,
		delegateports.CapabilityOrgMember,
		delegateports.CapabilityEcosystemManager,
	) {
		return
	}

	var req delegatehttp.RequestDelegationRequest
	if !decodeDelegateJSON(w, r, &req) {
		return
	}
	resp, err := s.delegateAccess.Handler.RequestHandler(r.Context(), principal, req)
	if err != nil {
		writeDelegateFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelegateAccessAccept(w http.ResponseWriter, r *http.Request) {
	// Any authenticated session may attempt acceptance; the workflow
	// verifies the identity proof against the target org.
	principal, ok := s.sessionPrincipal(w, r)
	if !ok {
		return
	}

	var req delegatehttp.AcceptDelegationRequest
	if !decodeDelegateJSON(w, r, &req) {
		return
	}
	resp, err := s.delegateAccess.Handler.AcceptHandler(r.Context(), principal, req)
	if err != nil {
		writeDelegateFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelegateAccessRevoke(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.sessionPrincipal(w, r)
	if !ok {
		return
	}
	if !requireCapability(w, principal,
		delegateports.CapabilityMember,
		delegateports.CapabilityOrgMember,
	) {
		return
	}

	var req delegatehttp.RevokeDelegationRequest
	if !decodeDelegateJSON(w, r, &req) {
		return
	}
	resp, err := s.delegateAccess.Handler.RevokeHandler(r.Context(), principal, req)
	if err != nil {
		writeDelegateFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
