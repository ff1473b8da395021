package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"jobdeck/contexts/organizations/organization-service/domain/entities"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetOrganization(ctx context.Context, orgID string) (entities.Organization, bool, error) {
	var row organizationModel
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, false, nil
		}
		return entities.Organization{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListOrganizations(ctx context.Context) ([]entities.Organization, error) {
	var rows []organizationModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Organization, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type organizationModel struct {
	OrgID                 string     `gorm:"column:org_id;primaryKey"`
	Name                  string     `gorm:"column:name"`
	Logo                  string     `gorm:"column:logo"`
	Website               string     `gorm:"column:website"`
	Summary               string     `gorm:"column:summary"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
}

func (organizationModel) TableName() string { return "organizations" }

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{
		OrgID:                 m.OrgID,
		Name:                  m.Name,
		Logo:                  m.Logo,
		Website:               m.Website,
		Summary:               m.Summary,
		SubscriptionExpiresAt: m.SubscriptionExpiresAt,
		CreatedAt:             m.CreatedAt,
	}
}
