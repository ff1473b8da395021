package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/delegate-access-service/domain/errors"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

const defaultNotifyTimeout = 10 * time.Second

// Service is the delegation workflow: request, accept, revoke, list.
// Every operation takes an explicit Principal; nothing is read from
// ambient request state.
type Service struct {
	Repo          ports.Repository
	Tokens        ports.TokenIssuer
	IDs           ports.IDGenerator
	Clock         ports.Clock
	Membership    ports.Membership
	Directory     ports.Directory
	Notifier      ports.Notifier
	AdminDomain   string
	NotifyTimeout time.Duration
	Logger        *slog.Logger
}

// RequestResult carries the acceptance link back to the caller. Message
// varies with whether a notifiable owner contact was found; that
// difference is informational, not an error.
type RequestResult struct {
	Record         entities.DelegationRecord
	AcceptanceLink string
	Message        string
	OwnerNotified  bool
}

// DelegationView is a record joined with directory display metadata and
// resolved identities. AuthToken and Link are populated only while the
// record is pending; a consumed token is never displayed again.
type DelegationView struct {
	FromOrgID   string
	FromOrgName string
	FromOrgLogo string
	ToOrgID     string
	ToOrgName   string
	ToOrgLogo   string
	Requestor   string
	Grantor     string
	Revoker     string
	Status      entities.DelegationStatus
	AuthToken   string
	Link        string
	CreatedAt   time.Time
}

// Request creates a pending delegation from the caller's organization to
// toOrgID. The requesting org is derived from the caller's membership,
// never taken from the request, so a member cannot request on behalf of
// an org they do not belong to.
func (s Service) Request(ctx context.Context, principal ports.Principal, toOrgID string) (RequestResult, error) {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(principal,
		ports.CapabilityMember, ports.CapabilityOrgMember, ports.CapabilityEcosystemManager); err != nil {
		return RequestResult{}, err
	}
	toOrgID = strings.TrimSpace(toOrgID)
	if toOrgID == "" {
		return RequestResult{}, domainerrors.ErrInvalidRequest
	}

	fromOrgID, found, err := s.Membership.OrgForMember(ctx, principal.Address)
	if err != nil {
		return RequestResult{}, err
	}
	if !found {
		return RequestResult{}, domainerrors.ErrNotAuthorized
	}
	if fromOrgID == toOrgID {
		return RequestResult{}, domainerrors.ErrSelfDelegation
	}

	exists, err := s.Directory.OrgExists(ctx, toOrgID)
	if err != nil {
		return RequestResult{}, err
	}
	if !exists {
		return RequestResult{}, domainerrors.ErrOrganizationNotFound
	}

	active, err := s.Directory.HasActiveSubscription(ctx, fromOrgID)
	if err != nil {
		return RequestResult{}, err
	}
	if !active {
		return RequestResult{}, domainerrors.ErrSubscriptionInactive
	}

	now := s.now()
	if existing, found, err := s.Repo.FindForPair(ctx, fromOrgID, toOrgID); err != nil {
		return RequestResult{}, err
	} else if found && !existing.Replaceable(now) {
		return RequestResult{}, domainerrors.ErrDelegationExists
	}

	token, expiresAt, err := s.Tokens.Issue(ctx, now)
	if err != nil {
		return RequestResult{}, err
	}
	outboxID, err := s.IDs.NewID(ctx)
	if err != nil {
		return RequestResult{}, err
	}

	record, err := s.Repo.CreatePending(ctx, ports.CreatePendingInput{
		OutboxID:         outboxID,
		FromOrgID:        fromOrgID,
		ToOrgID:          toOrgID,
		RequestorAddress: principal.Address,
		AuthToken:        token,
		CreatedAt:        now,
		ExpiresAt:        expiresAt,
	})
	if err != nil {
		logger.Error("delegate access request write failed",
			"event", "delegate_access_request_write_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "application",
			"from_org_id", fromOrgID,
			"to_org_id", toOrgID,
			"error", err.Error(),
		)
		return RequestResult{}, err
	}

	link := s.acceptanceLink(record)
	result := RequestResult{
		Record:         record,
		AcceptanceLink: link,
		Message:        "delegation request created; no verified owner contact was found, share the acceptance link directly",
	}

	contact, contactFound, err := s.Membership.OwnerContact(ctx, toOrgID)
	if err != nil {
		// Contact resolution failing does not undo the request.
		logger.Error("delegate access owner contact lookup failed",
			"event", "delegate_access_owner_contact_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "application",
			"to_org_id", toOrgID,
			"error", err.Error(),
		)
	} else if contactFound {
		result.Message = "delegation request created; the organization's owner has been notified"
		result.OwnerNotified = true
		s.dispatchNotice(ports.AccessRequestNotice{
			FromOrgID:      fromOrgID,
			ToOrgID:        toOrgID,
			RecipientEmail: contact,
			AcceptanceLink: link,
		})
	}

	logger.Info("delegate access requested",
		"event", "delegate_access_requested",
		"module", "identity-access/delegate-access-service",
		"layer", "application",
		"from_org_id", fromOrgID,
		"to_org_id", toOrgID,
		"expires_at", record.ExpiresAt,
		"owner_notified", result.OwnerNotified,
	)
	return result, nil
}

// Accept consumes the token and activates the grant. The token, once
// consumed, is permanently invalidated whether or not a second accept
// races in: the store's compare-and-swap on status and token guarantees
// at most one winner. Every precondition miss collapses into the same
// ambiguous error so callers cannot probe token validity.
func (s Service) Accept(ctx context.Context, principal ports.Principal, toOrgID string, authToken string) (entities.DelegationRecord, error) {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(principal); err != nil {
		return entities.DelegationRecord{}, err
	}
	toOrgID = strings.TrimSpace(toOrgID)
	if toOrgID == "" || strings.TrimSpace(authToken) == "" {
		return entities.DelegationRecord{}, domainerrors.ErrNotFoundOrExpired
	}

	verified, err := s.Membership.HasVerifiedOrgEmail(ctx, principal.Address, toOrgID)
	if err != nil {
		return entities.DelegationRecord{}, err
	}
	if !verified {
		return entities.DelegationRecord{}, domainerrors.ErrNotFoundOrExpired
	}

	record, ok, err := s.Repo.Accept(ctx, toOrgID, authToken, principal.Address, s.now())
	if err != nil {
		logger.Error("delegate access accept write failed",
			"event", "delegate_access_accept_write_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "application",
			"to_org_id", toOrgID,
			"error", err.Error(),
		)
		return entities.DelegationRecord{}, err
	}
	if !ok {
		return entities.DelegationRecord{}, domainerrors.ErrNotFoundOrExpired
	}

	logger.Info("delegate access accepted",
		"event", "delegate_access_accepted",
		"module", "identity-access/delegate-access-service",
		"layer", "application",
		"from_org_id", record.FromOrgID,
		"to_org_id", record.ToOrgID,
	)
	return record, nil
}

// Revoke tears down an accepted grant. Either side may revoke, but the
// required authority is asymmetric: any member of the requesting org, or
// an owner of the granting org.
func (s Service) Revoke(ctx context.Context, principal ports.Principal, fromOrgID string, toOrgID string) (entities.DelegationRecord, error) {
	logger := ResolveLogger(s.Logger)
	if err := s.authorize(principal, ports.CapabilityMember, ports.CapabilityOrgMember); err != nil {
		return entities.DelegationRecord{}, err
	}
	fromOrgID = strings.TrimSpace(fromOrgID)
	toOrgID = strings.TrimSpace(toOrgID)
	if fromOrgID == "" || toOrgID == "" {
		return entities.DelegationRecord{}, domainerrors.ErrInvalidRequest
	}

	allowed, err := s.canRevoke(ctx, principal.Address, fromOrgID, toOrgID)
	if err != nil {
		return entities.DelegationRecord{}, err
	}
	if !allowed {
		return entities.DelegationRecord{}, domainerrors.ErrNotAuthorized
	}

	record, ok, err := s.Repo.Revoke(ctx, fromOrgID, toOrgID, principal.Address, s.now())
	if err != nil {
		logger.Error("delegate access revoke write failed",
			"event", "delegate_access_revoke_write_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "application",
			"from_org_id", fromOrgID,
			"to_org_id", toOrgID,
			"error", err.Error(),
		)
		return entities.DelegationRecord{}, err
	}
	if !ok {
		return entities.DelegationRecord{}, domainerrors.ErrNotFoundOrNotActive
	}

	logger.Info("delegate access revoked",
		"event", "delegate_access_revoked",
		"module", "identity-access/delegate-access-service",
		"layer", "application",
		"from_org_id", fromOrgID,
		"to_org_id", toOrgID,
	)
	return record, nil
}

// ListForOrg returns both directions of delegation for orgID, enriched
// with directory metadata. The caller must be a verified member of the
// org they are asking about.
func (s Service) ListForOrg(ctx context.Context, principal ports.Principal, orgID string) ([]DelegationView, error) {
	if err := s.authorize(principal,
		ports.CapabilityMember, ports.CapabilityOrgMember, ports.CapabilityEcosystemManager); err != nil {
		return nil, err
	}
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}

	member, err := s.Membership.IsOrgMember(ctx, principal.Address, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainerrors.ErrNotAuthorized
	}

	records, err := s.Repo.ListForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	views := make([]DelegationView, 0, len(records))
	for _, record := range records {
		view := DelegationView{
			FromOrgID: record.FromOrgID,
			ToOrgID:   record.ToOrgID,
			Requestor: s.resolveIdentity(ctx, record.RequestorAddress),
			Grantor:   s.resolveIdentity(ctx, record.GrantorAddress),
			Revoker:   s.resolveIdentity(ctx, record.RevokerAddress),
			Status:    record.Status,
			CreatedAt: record.CreatedAt,
		}
		if record.Status == entities.DelegationStatusPending {
			view.AuthToken = record.AuthToken
			view.Link = s.acceptanceLink(record)
		}
		if summary, ok, err := s.Directory.OrgSummary(ctx, record.FromOrgID); err != nil {
			return nil, err
		} else if ok {
			view.FromOrgName = summary.Name
			view.FromOrgLogo = summary.Logo
		}
		if summary, ok, err := s.Directory.OrgSummary(ctx, record.ToOrgID); err != nil {
			return nil, err
		} else if ok {
			view.ToOrgName = summary.Name
			view.ToOrgLogo = summary.Logo
		}
		views = append(views, view)
	}
	return views, nil
}

func (s Service) authorize(principal ports.Principal, capabilities ...string) error {
	if strings.TrimSpace(principal.Address) == "" {
		return domainerrors.ErrNotAuthorized
	}
	if len(capabilities) > 0 && !principal.HasCapability(capabilities...) {
		return domainerrors.ErrNotAuthorized
	}
	return nil
}

func (s Service) canRevoke(ctx context.Context, address string, fromOrgID string, toOrgID string) (bool, error) {
	member, err := s.Membership.IsOrgMember(ctx, address, fromOrgID)
	if err != nil {
		return false, err
	}
	if member {
		return true, nil
	}
	return s.Membership.IsOrgOwner(ctx, address, toOrgID)
}

// dispatchNotice hands the acceptance link to the dispatcher off the
// request path. Failures are logged and swallowed; the request already
// succeeded.
func (s Service) dispatchNotice(notice ports.AccessRequestNotice) {
	if s.Notifier == nil {
		return
	}
	logger := ResolveLogger(s.Logger)
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.Notifier.AccessRequested(ctx, notice); err != nil {
			logger.Error("delegate access notification dispatch failed",
				"event", "delegate_access_notify_failed",
				"module", "identity-access/delegate-access-service",
				"layer", "application",
				"from_org_id", notice.FromOrgID,
				"to_org_id", notice.ToOrgID,
				"error", err.Error(),
			)
		}
	}()
}

func (s Service) acceptanceLink(record entities.DelegationRecord) string {
	return fmt.Sprintf("%s/delegate-access?fromOrgId=%s&toOrgId=%s&authToken=%s",
		strings.TrimRight(s.AdminDomain, "/"),
		url.QueryEscape(record.FromOrgID),
		url.QueryEscape(record.ToOrgID),
		url.QueryEscape(record.AuthToken),
	)
}

func (s Service) resolveIdentity(ctx context.Context, address string) string {
	if address == "" {
		return ""
	}
	email, ok, err := s.Membership.VerifiedEmail(ctx, address)
	if err != nil {
		// Display falls back to the raw address; the outage still
		// deserves a trace.
		ResolveLogger(s.Logger).Error("delegate access identity lookup failed",
			"event", "delegate_access_identity_lookup_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "application",
			"address", address,
			"error", err.Error(),
		)
		return address
	}
	if !ok {
		return address
	}
	return email
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
