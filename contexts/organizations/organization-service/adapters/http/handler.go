package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"jobdeck/contexts/organizations/organization-service/application"
	"jobdeck/contexts/organizations/organization-service/domain/entities"
	httptransport "jobdeck/contexts/organizations/organization-service/transport/http"
)

// Handler maps HTTP DTOs to directory queries.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetOrganizationHandler(ctx context.Context, orgID string) (httptransport.OrganizationDTO, error) {
	org, err := h.Service.GetOrganization(ctx, orgID)
	if err != nil {
		return httptransport.OrganizationDTO{}, err
	}
	return toDTO(org, time.Now().UTC()), nil
}

func (h Handler) ListOrganizationsHandler(ctx context.Context) (httptransport.ListOrganizationsResponse, error) {
	orgs, err := h.Service.ListOrganizations(ctx)
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("http organization list failed",
			"event", "organization_http_list_failed",
			"module", "organizations/organization-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.ListOrganizationsResponse{}, err
	}
	now := time.Now().UTC()
	items := make([]httptransport.OrganizationDTO, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, toDTO(org, now))
	}
	return httptransport.ListOrganizationsResponse{Organizations: items}, nil
}

func toDTO(org entities.Organization, now time.Time) httptransport.OrganizationDTO {
	return httptransport.OrganizationDTO{
		OrgID:              org.OrgID,
		Name:               org.Name,
		Logo:               org.Logo,
		Website:            org.Website,
		Summary:            org.Summary,
		SubscriptionActive: org.SubscriptionActive(now),
		CreatedAt:          org.CreatedAt,
	}
}
