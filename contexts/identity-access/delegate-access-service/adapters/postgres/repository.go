package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/delegate-access-service/domain/errors"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"

	eventAccessRequested = "delegate_access.requested"
	eventAccessAccepted  = "delegate_access.accepted"
	eventAccessRevoked   = "delegate_access.revoked"
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

func (r *Repository) FindForPair(ctx context.Context, fromOrgID string, toOrgID string) (entities.DelegationRecord, bool, error) {
	var row delegationModel
	err := r.db.WithContext(ctx).
		Where("from_org_id = ? AND to_org_id = ?", fromOrgID, toOrgID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DelegationRecord{}, false, nil
		}
		return entities.DelegationRecord{}, false, err
	}
	return row.toEntity(), true, nil
}

// CreatePending takes over the pair row when the current record is
// revoked or expired-pending, and inserts it otherwise. The takeover
// runs first as a conditional UPDATE: Postgres aborts a transaction
// after any statement error, so the unique violation must be the last
// statement attempted, never one recovered from. Two racing requests
// cannot both produce a live token: the update path is guarded by its
// WHERE clause and the insert path by the composite primary key.
func (r *Repository) CreatePending(ctx context.Context, input ports.CreatePendingInput) (entities.DelegationRecord, error) {
	row := delegationModel{
		FromOrgID:        input.FromOrgID,
		ToOrgID:          input.ToOrgID,
		Status:           string(entities.DelegationStatusPending),
		AuthToken:        input.AuthToken,
		RequestorAddress: input.RequestorAddress,
		CreatedAt:        input.CreatedAt.UTC(),
		UpdatedAt:        input.CreatedAt.UTC(),
		ExpiresAt:        input.ExpiresAt.UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		takeover := tx.Model(&delegationModel{}).
			Where(
				"from_org_id = ? AND to_org_id = ? AND (status = ? OR (status = ? AND expires_at <= ?))",
				input.FromOrgID,
				input.ToOrgID,
				string(entities.DelegationStatusRevoked),
				string(entities.DelegationStatusPending),
				input.CreatedAt.UTC(),
			).
			Updates(map[string]any{
				"status":            string(entities.DelegationStatusPending),
				"auth_token":        input.AuthToken,
				"requestor_address": input.RequestorAddress,
				"grantor_address":   "",
				"revoker_address":   "",
				"created_at":        input.CreatedAt.UTC(),
				"updated_at":        input.CreatedAt.UTC(),
				"expires_at":        input.ExpiresAt.UTC(),
			})
		if takeover.Error != nil {
			return takeover.Error
		}
		if takeover.RowsAffected == 0 {
			var existing delegationModel
			err := tx.
				Where("from_org_id = ? AND to_org_id = ?", input.FromOrgID, input.ToOrgID).
				First(&existing).
				Error
			if err == nil {
				return domainerrors.ErrDelegationExists
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if createErr := tx.Create(&row).Error; createErr != nil {
				// A racing request inserted the pair between the
				// existence check and here; its record is live.
				if isUniqueViolation(createErr) {
					return domainerrors.ErrDelegationExists
				}
				return createErr
			}
		}
		return r.appendOutbox(tx, input.OutboxID, eventAccessRequested, row.toEntity())
	})
	if err != nil {
		return entities.DelegationRecord{}, err
	}
	return row.toEntity(), nil
}

// Accept resolves the pending row for the target org and token, then
// performs the conditional transition. The UPDATE's WHERE clause is the
// compare-and-swap: of two concurrent accepts only one matches a row.
func (r *Repository) Accept(ctx context.Context, toOrgID string, authToken string, grantorAddress string, now time.Time) (entities.DelegationRecord, bool, error) {
	var accepted delegationModel
	matched := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row delegationModel
		err := tx.
			Where("to_org_id = ? AND status = ? AND auth_token = ?",
				toOrgID, string(entities.DelegationStatusPending), authToken).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		result := tx.Model(&delegationModel{}).
			Where(
				"from_org_id = ? AND to_org_id = ? AND status = ? AND auth_token = ? AND expires_at > ?",
				row.FromOrgID,
				row.ToOrgID,
				string(entities.DelegationStatusPending),
				authToken,
				now.UTC(),
			).
			Updates(map[string]any{
				"status":          string(entities.DelegationStatusAccepted),
				"auth_token":      "",
				"grantor_address": grantorAddress,
				"updated_at":      now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.
			Where("from_org_id = ? AND to_org_id = ?", row.FromOrgID, row.ToOrgID).
			First(&accepted).
			Error; err != nil {
			return err
		}
		matched = true
		return r.appendOutbox(tx, uuid.NewString(), eventAccessAccepted, accepted.toEntity())
	})
	if err != nil {
		return entities.DelegationRecord{}, false, err
	}
	if !matched {
		return entities.DelegationRecord{}, false, nil
	}
	return accepted.toEntity(), true, nil
}

func (r *Repository) Revoke(ctx context.Context, fromOrgID string, toOrgID string, revokerAddress string, now time.Time) (entities.DelegationRecord, bool, error) {
	var revoked delegationModel
	matched := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&delegationModel{}).
			Where(
				"from_org_id = ? AND to_org_id = ? AND status = ?",
				fromOrgID, toOrgID, string(entities.DelegationStatusAccepted),
			).
			Updates(map[string]any{
				"status":          string(entities.DelegationStatusRevoked),
				"revoker_address": revokerAddress,
				"updated_at":      now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.
			Where("from_org_id = ? AND to_org_id = ?", fromOrgID, toOrgID).
			First(&revoked).
			Error; err != nil {
			return err
		}
		matched = true
		return r.appendOutbox(tx, uuid.NewString(), eventAccessRevoked, revoked.toEntity())
	})
	if err != nil {
		return entities.DelegationRecord{}, false, err
	}
	if !matched {
		return entities.DelegationRecord{}, false, nil
	}
	return revoked.toEntity(), true, nil
}

func (r *Repository) ListForOrg(ctx context.Context, orgID string) ([]entities.DelegationRecord, error) {
	var rows []delegationModel
	if err := r.db.WithContext(ctx).
		Where("from_org_id = ? OR to_org_id = ?", orgID, orgID).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.DelegationRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	at := publishedAt.UTC()
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": &at,
		}).
		Error
}

func (r *Repository) appendOutbox(tx *gorm.DB, outboxID string, eventType string, record entities.DelegationRecord) error {
	// Outbox payloads never carry the raw token.
	record.AuthToken = ""
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:       outboxID,
		EventType:     eventType,
		OccurredAt:    record.UpdatedAt,
		SourceService: "delegate-access-service",
		SchemaVersion: 1,
		PartitionKey:  record.FromOrgID + ":" + record.ToOrgID,
		Data:          data,
	})
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: record.UpdatedAt,
	}
	return tx.Create(&row).Error
}

type delegationModel struct {
	FromOrgID        string    `gorm:"column:from_org_id;primaryKey"`
	ToOrgID          string    `gorm:"column:to_org_id;primaryKey"`
	Status           string    `gorm:"column:status"`
	AuthToken        string    `gorm:"column:auth_token"`
	RequestorAddress string    `gorm:"column:requestor_address"`
	GrantorAddress   string    `gorm:"column:grantor_address"`
	RevokerAddress   string    `gorm:"column:revoker_address"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
	ExpiresAt        time.Time `gorm:"column:expires_at"`
}

func (delegationModel) TableName() string { return "org_delegations" }

func (m delegationModel) toEntity() entities.DelegationRecord {
	return entities.DelegationRecord{
		FromOrgID:        m.FromOrgID,
		ToOrgID:          m.ToOrgID,
		Status:           entities.DelegationStatus(m.Status),
		AuthToken:        m.AuthToken,
		RequestorAddress: m.RequestorAddress,
		GrantorAddress:   m.GrantorAddress,
		RevokerAddress:   m.RevokerAddress,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		ExpiresAt:        m.ExpiresAt,
	}
}

type outboxModel struct {
	OutboxID  string     `gorm:"column:outbox_id;primaryKey"`
	EventType string     `gorm:"column:event_type"`
	Payload   []byte     `gorm:"column:payload"`
	Status    string     `gorm:"column:status"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string { return "delegate_access_outbox" }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
