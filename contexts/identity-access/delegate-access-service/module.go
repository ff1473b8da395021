package delegateaccess

import (
	"log/slog"
	"time"

	httpadapter "jobdeck/contexts/identity-access/delegate-access-service/adapters/http"
	"jobdeck/contexts/identity-access/delegate-access-service/adapters/memory"
	tokenadapter "jobdeck/contexts/identity-access/delegate-access-service/adapters/token"
	"jobdeck/contexts/identity-access/delegate-access-service/application"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// Module is the delegate-access-service composition root exposed to
// runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	// In-memory wiring only; nil in production builds.
	Store       *memory.Store
	Memberships *memory.Memberships
	Directory   *memory.Directory
	Notices     *memory.NoticeRecorder
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
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

// NewModule wires the workflow and transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:          deps.Repo,
		Tokens:        deps.Tokens,
		IDs:           deps.IDs,
		Clock:         deps.Clock,
		Membership:    deps.Membership,
		Directory:     deps.Directory,
		Notifier:      deps.Notifier,
		AdminDomain:   deps.AdminDomain,
		NotifyTimeout: deps.NotifyTimeout,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and a small seeded org/member universe.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	memberships := memory.NewMemberships(
		memory.Member{Address: "0xalice", OrgID: "org-a", Role: "member", Email: "alice@acme.dev", EmailVerified: true},
		memory.Member{Address: "0xandre", OrgID: "org-a", Role: "owner", Email: "andre@acme.dev", EmailVerified: true},
		memory.Member{Address: "0xbianca", OrgID: "org-b", Role: "owner", Email: "bianca@beacon.dev", EmailVerified: true},
		memory.Member{Address: "0xbruno", OrgID: "org-b", Role: "member", Email: "bruno@beacon.dev", EmailVerified: true},
		memory.Member{Address: "0xcarol", OrgID: "org-c", Role: "owner", Email: "carol@citrine.dev", EmailVerified: true},
	)
	directory := memory.NewDirectory(
		memory.Org{OrgID: "org-a", Name: "Acme Talent", Logo: "https://cdn.jobdeck.dev/logos/acme.png", SubscriptionActive: true},
		memory.Org{OrgID: "org-b", Name: "Beacon Works", Logo: "https://cdn.jobdeck.dev/logos/beacon.png", SubscriptionActive: true},
		memory.Org{OrgID: "org-c", Name: "Citrine Labs", Logo: "https://cdn.jobdeck.dev/logos/citrine.png", SubscriptionActive: false},
	)
	notices := memory.NewNoticeRecorder()

	module := NewModule(Dependencies{
		Repo:        store,
		Tokens:      tokenadapter.RandomIssuer{},
		IDs:         store,
		Clock:       store,
		Membership:  memberships,
		Directory:   directory,
		Notifier:    notices,
		AdminDomain: "https://admin.jobdeck.dev",
		Logger:      logger,
	})
	module.Store = store
	module.Memberships = memberships
	module.Directory = directory
	module.Notices = notices
	return module
}
