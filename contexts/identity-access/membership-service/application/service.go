package application

import (
	"context"
	"log/slog"
	"strings"

	"jobdeck/contexts/identity-access/membership-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/membership-service/domain/errors"
	"jobdeck/contexts/identity-access/membership-service/ports"
)

// Service answers membership, ownership, and identity-proof questions.
// All reads are side-effect free and idempotent; other modules consume
// them through their own ports, glued together in bootstrap.
type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (s Service) OrgForMember(ctx context.Context, address string) (string, bool, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil || len(memberships) == 0 {
		return "", false, err
	}
	return memberships[0].OrgID, true, nil
}

func (s Service) IsOrgMember(ctx context.Context, address string, orgID string) (bool, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return false, err
	}
	for _, member := range memberships {
		if member.OrgID == orgID {
			return true, nil
		}
	}
	return false, nil
}

func (s Service) IsOrgOwner(ctx context.Context, address string, orgID string) (bool, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return false, err
	}
	for _, member := range memberships {
		if member.OrgID == orgID && member.Role == entities.MemberRoleOwner {
			return true, nil
		}
	}
	return false, nil
}

// HasVerifiedOrgEmail is the identity proof consumed by delegation
// acceptance: the actor holds a verified email tied to the org.
func (s Service) HasVerifiedOrgEmail(ctx context.Context, address string, orgID string) (bool, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return false, err
	}
	for _, member := range memberships {
		if member.OrgID == orgID && member.EmailVerified {
			return true, nil
		}
	}
	return false, nil
}

func (s Service) VerifiedEmail(ctx context.Context, address string) (string, bool, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return "", false, err
	}
	for _, member := range memberships {
		if member.EmailVerified && member.Email != "" {
			return member.Email, true, nil
		}
	}
	return "", false, nil
}

// OwnerContact resolves the org's notifiable address: the first owner
// with a verified email.
func (s Service) OwnerContact(ctx context.Context, orgID string) (string, bool, error) {
	members, err := s.Repo.ListByOrg(ctx, strings.TrimSpace(orgID))
	if err != nil {
		return "", false, err
	}
	for _, member := range members {
		if member.Role == entities.MemberRoleOwner && member.EmailVerified && member.Email != "" {
			return member.Email, true, nil
		}
	}
	return "", false, nil
}

// CapabilitiesFor derives the session capability set the route gates
// check. Capabilities are intentionally coarse; org-scoped authority is
// re-checked inside each workflow.
func (s Service) CapabilitiesFor(ctx context.Context, address string) ([]string, error) {
	memberships, err := s.Repo.ListByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}
	capabilities := []string{"member", "org-member"}
	for _, member := range memberships {
		if member.Role == entities.MemberRoleEcosystemManager {
			capabilities = append(capabilities, "ecosystem-manager")
			break
		}
	}
	return capabilities, nil
}

// ListOrgMembers returns the member roster; the caller must belong to
// the org they are asking about.
func (s Service) ListOrgMembers(ctx context.Context, actorAddress string, orgID string) ([]entities.Member, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	member, err := s.IsOrgMember(ctx, actorAddress, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainerrors.ErrNotAuthorized
	}
	return s.Repo.ListByOrg(ctx, orgID)
}
