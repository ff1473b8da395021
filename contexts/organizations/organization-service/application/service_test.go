package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobdeck/contexts/organizations/organization-service/adapters/memory"
	"jobdeck/contexts/organizations/organization-service/domain/entities"
	domainerrors "jobdeck/contexts/organizations/organization-service/domain/errors"
)

func newTestService() (Service, *memory.Store) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	active := now.Add(30 * 24 * time.Hour)
	lapsed := now.Add(-24 * time.Hour)
	store := memory.NewStore(
		entities.Organization{OrgID: "org-a", Name: "Acme Talent", SubscriptionExpiresAt: &active},
		entities.Organization{OrgID: "org-b", Name: "Beacon Works", SubscriptionExpiresAt: &lapsed},
		entities.Organization{OrgID: "org-c", Name: "Citrine Labs"},
	)
	store.SetNow(now)
	return Service{Repo: store, Clock: store}, store
}

func TestGetOrganization(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	org, err := service.GetOrganization(ctx, "org-a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if org.Name != "Acme Talent" {
		t.Fatalf("unexpected org %+v", org)
	}

	_, err = service.GetOrganization(ctx, "org-z")
	if !errors.Is(err, domainerrors.ErrOrganizationNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = service.GetOrganization(ctx, "  ")
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestListOrganizationsSortedByName(t *testing.T) {
	service, _ := newTestService()
	orgs, err := service.ListOrganizations(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orgs) != 3 {
		t.Fatalf("expected three orgs, got %d", len(orgs))
	}
	for i := 1; i < len(orgs); i++ {
		if orgs[i-1].Name > orgs[i].Name {
			t.Fatalf("list is not sorted by name: %s before %s", orgs[i-1].Name, orgs[i].Name)
		}
	}
}

func TestSubscriptionEntitlement(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if active, _ := service.HasActiveSubscription(ctx, "org-a"); !active {
		t.Fatal("future expiry means active")
	}
	if active, _ := service.HasActiveSubscription(ctx, "org-b"); active {
		t.Fatal("lapsed expiry means inactive")
	}
	if active, _ := service.HasActiveSubscription(ctx, "org-c"); active {
		t.Fatal("no subscription record means inactive")
	}
	if active, _ := service.HasActiveSubscription(ctx, "org-z"); active {
		t.Fatal("unknown org means inactive")
	}
}

func TestOrgExistsAndSummary(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if exists, _ := service.OrgExists(ctx, "org-a"); !exists {
		t.Fatal("expected org-a to exist")
	}
	if exists, _ := service.OrgExists(ctx, "org-z"); exists {
		t.Fatal("org-z must not exist")
	}

	org, found, err := service.OrgSummary(ctx, "org-b")
	if err != nil || !found || org.Name != "Beacon Works" {
		t.Fatalf("summary: %+v found=%v err=%v", org, found, err)
	}
	if _, found, _ := service.OrgSummary(ctx, "org-z"); found {
		t.Fatal("summary for unknown org must report not found")
	}
}
