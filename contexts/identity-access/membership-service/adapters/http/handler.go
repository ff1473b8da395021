package httpadapter

import (
	"context"
	"log/slog"

	"jobdeck/contexts/identity-access/membership-service/application"
	httptransport "jobdeck/contexts/identity-access/membership-service/transport/http"
)

// Handler maps HTTP DTOs to membership queries.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListOrgMembersHandler(
	ctx context.Context,
	actorAddress string,
	orgID string,
) (httptransport.ListOrgMembersResponse, error) {
	members, err := h.Service.ListOrgMembers(ctx, actorAddress, orgID)
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("http membership list failed",
			"event", "membership_http_list_failed",
			"module", "identity-access/membership-service",
			"layer", "transport",
			"org_id", orgID,
			"error", err.Error(),
		)
		return httptransport.ListOrgMembersResponse{}, err
	}

	items := make([]httptransport.MemberDTO, 0, len(members))
	for _, member := range members {
		item := httptransport.MemberDTO{
			Address:  member.Address,
			Role:     string(member.Role),
			JoinedAt: member.JoinedAt,
		}
		if member.EmailVerified {
			item.Email = member.Email
		}
		items = append(items, item)
	}
	return httptransport.ListOrgMembersResponse{
		OrgID:   orgID,
		Members: items,
	}, nil
}
