package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"jobdeck/contexts/organizations/organization-service/domain/entities"
	domainerrors "jobdeck/contexts/organizations/organization-service/domain/errors"
	"jobdeck/contexts/organizations/organization-service/ports"
)

// Service exposes directory reads: existence, display metadata, and the
// entitlement check the delegation workflow gates requests on.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) GetOrganization(ctx context.Context, orgID string) (entities.Organization, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return entities.Organization{}, domainerrors.ErrInvalidRequest
	}
	org, found, err := s.Repo.GetOrganization(ctx, orgID)
	if err != nil {
		return entities.Organization{}, err
	}
	if !found {
		return entities.Organization{}, domainerrors.ErrOrganizationNotFound
	}
	return org, nil
}

func (s Service) ListOrganizations(ctx context.Context) ([]entities.Organization, error) {
	return s.Repo.ListOrganizations(ctx)
}

// OrgSummary returns display metadata without signalling not-found as an
// error; consumers joining metadata onto other reads check the bool.
func (s Service) OrgSummary(ctx context.Context, orgID string) (entities.Organization, bool, error) {
	return s.Repo.GetOrganization(ctx, strings.TrimSpace(orgID))
}

func (s Service) OrgExists(ctx context.Context, orgID string) (bool, error) {
	_, found, err := s.Repo.GetOrganization(ctx, strings.TrimSpace(orgID))
	return found, err
}

func (s Service) HasActiveSubscription(ctx context.Context, orgID string) (bool, error) {
	org, found, err := s.Repo.GetOrganization(ctx, strings.TrimSpace(orgID))
	if err != nil || !found {
		return false, err
	}
	return org.SubscriptionActive(s.now()), nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
