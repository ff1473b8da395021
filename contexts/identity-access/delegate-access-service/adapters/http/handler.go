package httpadapter

import (
	"context"
	"log/slog"

	application "jobdeck/contexts/identity-access/delegate-access-service/application"
	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
	httptransport "jobdeck/contexts/identity-access/delegate-access-service/transport/http"
)

// Handler maps HTTP DTOs to workflow operations. Error-to-envelope
// conversion happens in the platform server so every module reports
// through the same shape.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ListHandler returns both directions of delegation for one org.
func (h Handler) ListHandler(
	ctx context.Context,
	principal ports.Principal,
	orgID string,
) (httptransport.ListDelegationsResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http delegate access list received",
		"event", "delegate_access_http_list_received",
		"module", "identity-access/delegate-access-service",
		"layer", "transport",
		"actor", principal.Address,
		"org_id", orgID,
	)

	views, err := h.Service.ListForOrg(ctx, principal, orgID)
	if err != nil {
		return httptransport.ListDelegationsResponse{}, err
	}

	items := make([]httptransport.DelegationRecordDTO, 0, len(views))
	for _, view := range views {
		item := httptransport.DelegationRecordDTO{
			FromOrgID:        view.FromOrgID,
			FromOrgName:      view.FromOrgName,
			FromOrgLogo:      view.FromOrgLogo,
			ToOrgID:          view.ToOrgID,
			ToOrgName:        view.ToOrgName,
			ToOrgLogo:        view.ToOrgLogo,
			Requestor:        view.Requestor,
			Grantor:          view.Grantor,
			Revoker:          view.Revoker,
			Status:           string(view.Status),
			CreatedTimestamp: view.CreatedAt,
		}
		if view.Status == entities.DelegationStatusPending {
			token := view.AuthToken
			link := view.Link
			item.AuthToken = &token
			item.Link = &link
		}
		items = append(items, item)
	}
	return httptransport.ListDelegationsResponse{
		Success: true,
		Message: "retrieved delegation requests",
		Data:    items,
	}, nil
}

// RequestHandler creates a pending delegation toward the target org.
func (h Handler) RequestHandler(
	ctx context.Context,
	principal ports.Principal,
	request httptransport.RequestDelegationRequest,
) (httptransport.RequestDelegationResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http delegate access request received",
		"event", "delegate_access_http_request_received",
		"module", "identity-access/delegate-access-service",
		"layer", "transport",
		"actor", principal.Address,
		"to_org_id", request.ToOrgID,
	)

	result, err := h.Service.Request(ctx, principal, request.ToOrgID)
	if err != nil {
		return httptransport.RequestDelegationResponse{}, err
	}
	link := result.AcceptanceLink
	return httptransport.RequestDelegationResponse{
		Success: true,
		Message: result.Message,
		Data:    &link,
	}, nil
}

// AcceptHandler consumes the token and activates the grant.
func (h Handler) AcceptHandler(
	ctx context.Context,
	principal ports.Principal,
	request httptransport.AcceptDelegationRequest,
) (httptransport.StatusResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http delegate access accept received",
		"event", "delegate_access_http_accept_received",
		"module", "identity-access/delegate-access-service",
		"layer", "transport",
		"actor", principal.Address,
		"to_org_id", request.ToOrgID,
	)

	if _, err := h.Service.Accept(ctx, principal, request.ToOrgID, request.AuthToken); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success: true,
		Message: "delegation accepted",
	}, nil
}

// RevokeHandler tears down an accepted grant from either side.
func (h Handler) RevokeHandler(
	ctx context.Context,
	principal ports.Principal,
	request httptransport.RevokeDelegationRequest,
) (httptransport.StatusResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("http delegate access revoke received",
		"event", "delegate_access_http_revoke_received",
		"module", "identity-access/delegate-access-service",
		"layer", "transport",
		"actor", principal.Address,
		"from_org_id", request.FromOrgID,
		"to_org_id", request.ToOrgID,
	)

	if _, err := h.Service.Revoke(ctx, principal, request.FromOrgID, request.ToOrgID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success: true,
		Message: "delegation revoked",
	}, nil
}
