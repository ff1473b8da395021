package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	memberhttp "jobdeck/contexts/identity-access/membership-service/transport/http"
	orghttp "jobdeck/contexts/organizations/organization-service/transport/http"
)

func TestOrganizationsListIsPublic(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/organizations", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp orghttp.ListOrganizationsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Organizations) != 3 {
		t.Fatalf("expected three seeded orgs, got %d", len(resp.Organizations))
	}
}

func TestGetOrganizationNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/organizations/org-z", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestOrgMembersRequiresSessionAndMembership(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodGet, "/organizations/org-a/members", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rr.Code)
	}

	rr = doJSON(t, server, http.MethodGet, "/organizations/org-a/members", "0xbianca", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/organizations/org-a/members", "0xalice", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for member, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp memberhttp.ListOrgMembersResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Members) != 2 {
		t.Fatalf("expected two org-a members, got %d", len(resp.Members))
	}
}
