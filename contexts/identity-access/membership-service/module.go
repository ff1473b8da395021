package membership

import (
	"log/slog"
	"time"

	httpadapter "jobdeck/contexts/identity-access/membership-service/adapters/http"
	"jobdeck/contexts/identity-access/membership-service/adapters/memory"
	"jobdeck/contexts/identity-access/membership-service/application"
	"jobdeck/contexts/identity-access/membership-service/domain/entities"
	"jobdeck/contexts/identity-access/membership-service/ports"
)

// Module is the membership-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures runtime ports required by NewModule.
type Dependencies struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module seeded with the
// same org universe the delegate-access in-memory module uses.
func NewInMemoryModule(logger *slog.Logger) Module {
	joined := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore(
		entities.Member{Address: "0xalice", OrgID: "org-a", Role: entities.MemberRoleMember, Email: "alice@acme.dev", EmailVerified: true, JoinedAt: joined},
		entities.Member{Address: "0xandre", OrgID: "org-a", Role: entities.MemberRoleOwner, Email: "andre@acme.dev", EmailVerified: true, JoinedAt: joined},
		entities.Member{Address: "0xbianca", OrgID: "org-b", Role: entities.MemberRoleOwner, Email: "bianca@beacon.dev", EmailVerified: true, JoinedAt: joined.Add(24 * time.Hour)},
		entities.Member{Address: "0xbruno", OrgID: "org-b", Role: entities.MemberRoleMember, Email: "bruno@beacon.dev", EmailVerified: true, JoinedAt: joined.Add(48 * time.Hour)},
		entities.Member{Address: "0xcarol", OrgID: "org-c", Role: entities.MemberRoleOwner, Email: "carol@citrine.dev", EmailVerified: true, JoinedAt: joined},
	)
	module := NewModule(Dependencies{
		Repo:   store,
		Logger: logger,
	})
	module.Store = store
	return module
}
