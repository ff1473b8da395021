package ports

import (
	"context"

	"jobdeck/contexts/identity-access/membership-service/domain/entities"
)

// Repository is the read boundary for membership state. Writes happen in
// the account-management surface, outside this module.
type Repository interface {
	ListByAddress(ctx context.Context, address string) ([]entities.Member, error)
	ListByOrg(ctx context.Context, orgID string) ([]entities.Member, error)
}
