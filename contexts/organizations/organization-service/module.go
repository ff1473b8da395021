package organization

import (
	"log/slog"
	"time"

	httpadapter "jobdeck/contexts/organizations/organization-service/adapters/http"
	"jobdeck/contexts/organizations/organization-service/adapters/memory"
	"jobdeck/contexts/organizations/organization-service/application"
	"jobdeck/contexts/organizations/organization-service/domain/entities"
	"jobdeck/contexts/organizations/organization-service/ports"
)

// Module is the organization-service composition root.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures runtime ports required by NewModule.
type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
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
	created := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	subscribed := time.Now().UTC().Add(90 * 24 * time.Hour)
	store := NewSeededStore(created, subscribed)
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}

// NewSeededStore returns the baseline directory used by in-memory
// wiring: two subscribed orgs and one without an active entitlement.
func NewSeededStore(created time.Time, subscribedUntil time.Time) *memory.Store {
	return memory.NewStore(
		entities.Organization{
			OrgID:                 "org-a",
			Name:                  "Acme Talent",
			Logo:                  "https://cdn.jobdeck.dev/logos/acme.png",
			Website:               "https://acme.dev",
			SubscriptionExpiresAt: &subscribedUntil,
			CreatedAt:             created,
		},
		entities.Organization{
			OrgID:                 "org-b",
			Name:                  "Beacon Works",
			Logo:                  "https://cdn.jobdeck.dev/logos/beacon.png",
			Website:               "https://beacon.dev",
			SubscriptionExpiresAt: &subscribedUntil,
			CreatedAt:             created,
		},
		entities.Organization{
			OrgID:     "org-c",
			Name:      "Citrine Labs",
			Logo:      "https://cdn.jobdeck.dev/logos/citrine.png",
			Website:   "https://citrine.dev",
			CreatedAt: created,
		},
	)
}
