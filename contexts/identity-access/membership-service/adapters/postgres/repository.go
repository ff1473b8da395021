package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"jobdeck/contexts/identity-access/membership-service/domain/entities"

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

func (r *Repository) ListByAddress(ctx context.Context, address string) ([]entities.Member, error) {
	var rows []memberModel
	if err := r.db.WithContext(ctx).
		Where("address = ?", address).
		Order("joined_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByOrg(ctx context.Context, orgID string) ([]entities.Member, error) {
	var rows []memberModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("joined_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func toEntities(rows []memberModel) []entities.Member {
	items := make([]entities.Member, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Member{
			Address:       row.Address,
			OrgID:         row.OrgID,
			Role:          entities.MemberRole(row.Role),
			Email:         row.Email,
			EmailVerified: row.EmailVerified,
			JoinedAt:      row.JoinedAt,
		})
	}
	return items
}

type memberModel struct {
	Address       string    `gorm:"column:address;primaryKey"`
	OrgID         string    `gorm:"column:org_id;primaryKey"`
	Role          string    `gorm:"column:role"`
	Email         string    `gorm:"column:email"`
	EmailVerified bool      `gorm:"column:email_verified"`
	JoinedAt      time.Time `gorm:"column:joined_at"`
}

func (memberModel) TableName() string { return "org_members" }
