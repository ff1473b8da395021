package ports

import (
	"context"
	"time"

	"jobdeck/contexts/organizations/organization-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Repository is the read boundary for the organization directory.
type Repository interface {
	GetOrganization(ctx context.Context, orgID string) (entities.Organization, bool, error)
	ListOrganizations(ctx context.Context) ([]entities.Organization, error)
}
