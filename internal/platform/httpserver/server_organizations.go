package httpserver

import (
	"errors"
	"net/http"
	"strings"

	membererrors "jobdeck/contexts/identity-access/membership-service/domain/errors"
	memberhttp "jobdeck/contexts/identity-access/membership-service/transport/http"
	orgerrors "jobdeck/contexts/organizations/organization-service/domain/errors"
	orghttp "jobdeck/contexts/organizations/organization-service/transport/http"
)

func writeOrganizationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, orghttp.ErrorResponse{Code: code, Message: message})
}

func writeOrganizationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orgerrors.ErrOrganizationNotFound):
		writeOrganizationError(w, http.StatusNotFound, "organization_not_found", err.Error())
	case errors.Is(err, orgerrors.ErrInvalidRequest):
		writeOrganizationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeOrganizationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, memberhttp.ErrorResponse{Code: code, Message: message})
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membererrors.ErrNotAuthorized):
		writeMembershipError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, membererrors.ErrInvalidRequest):
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, membererrors.ErrMemberNotFound):
		writeMembershipError(w, http.StatusNotFound, "member_not_found", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.organizations.Handler.ListOrganizationsHandler(r.Context())
	if err != nil {
		writeOrganizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := strings.TrimSpace(r.PathValue("org_id"))
	if orgID == "" {
		writeOrganizationError(w, http.StatusBadRequest, "invalid_request", "org_id is required")
		return
	}
	resp, err := s.organizations.Handler.GetOrganizationHandler(r.Context(), orgID)
	if err != nil {
		writeOrganizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListOrgMembers(w http.ResponseWriter, r *http.Request) {
	actorAddress := strings.TrimSpace(r.Header.Get(sessionHeader))
	if actorAddress == "" {
		writeMembershipError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	orgID := strings.TrimSpace(r.PathValue("org_id"))
	resp, err := s.membership.Handler.ListOrgMembersHandler(r.Context(), actorAddress, orgID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
