package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobdeck/contexts/identity-access/membership-service/adapters/memory"
	"jobdeck/contexts/identity-access/membership-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/membership-service/domain/errors"
)

func newTestService() Service {
	joined := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	return Service{
		Repo: memory.NewStore(
			entities.Member{Address: "0xalice", OrgID: "org-a", Role: entities.MemberRoleMember, Email: "alice@acme.dev", EmailVerified: true, JoinedAt: joined},
			entities.Member{Address: "0xandre", OrgID: "org-a", Role: entities.MemberRoleOwner, Email: "andre@acme.dev", EmailVerified: true, JoinedAt: joined.Add(time.Hour)},
			entities.Member{Address: "0xbianca", OrgID: "org-b", Role: entities.MemberRoleOwner, Email: "bianca@beacon.dev", EmailVerified: false, JoinedAt: joined},
		),
	}
}

func TestMembershipAndOwnershipChecks(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	orgID, found, err := service.OrgForMember(ctx, "0xalice")
	if err != nil || !found || orgID != "org-a" {
		t.Fatalf("org for member: org=%s found=%v err=%v", orgID, found, err)
	}
	if _, found, _ := service.OrgForMember(ctx, "0xnobody"); found {
		t.Fatal("unknown address must not resolve to an org")
	}

	if owner, _ := service.IsOrgOwner(ctx, "0xalice", "org-a"); owner {
		t.Fatal("plain member must not be owner")
	}
	if owner, _ := service.IsOrgOwner(ctx, "0xandre", "org-a"); !owner {
		t.Fatal("expected owner")
	}
	if member, _ := service.IsOrgMember(ctx, "0xandre", "org-b"); member {
		t.Fatal("membership must be org-scoped")
	}
}

func TestVerifiedEmailChecks(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if ok, _ := service.HasVerifiedOrgEmail(ctx, "0xalice", "org-a"); !ok {
		t.Fatal("expected verified org email")
	}
	if ok, _ := service.HasVerifiedOrgEmail(ctx, "0xbianca", "org-b"); ok {
		t.Fatal("unverified email must not count as identity proof")
	}
	if ok, _ := service.HasVerifiedOrgEmail(ctx, "0xalice", "org-b"); ok {
		t.Fatal("verification is tied to the org, not the address alone")
	}

	email, found, _ := service.VerifiedEmail(ctx, "0xandre")
	if !found || email != "andre@acme.dev" {
		t.Fatalf("verified email: %s found=%v", email, found)
	}
}

func TestOwnerContactSkipsUnverifiedOwners(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	contact, found, _ := service.OwnerContact(ctx, "org-a")
	if !found || contact != "andre@acme.dev" {
		t.Fatalf("owner contact: %s found=%v", contact, found)
	}
	if _, found, _ := service.OwnerContact(ctx, "org-b"); found {
		t.Fatal("owner without verified email is not a contact")
	}
}

func TestCapabilitiesFor(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	capabilities, err := service.CapabilitiesFor(ctx, "0xalice")
	if err != nil {
		t.Fatalf("capabilities failed: %v", err)
	}
	if len(capabilities) != 2 || capabilities[0] != "member" || capabilities[1] != "org-member" {
		t.Fatalf("unexpected capabilities %v", capabilities)
	}
	capabilities, _ = service.CapabilitiesFor(ctx, "0xnobody")
	if len(capabilities) != 0 {
		t.Fatalf("unknown address must carry no capabilities, got %v", capabilities)
	}
}

func TestListOrgMembersRequiresMembership(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	members, err := service.ListOrgMembers(ctx, "0xalice", "org-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected two members, got %d", len(members))
	}

	_, err = service.ListOrgMembers(ctx, "0xbianca", "org-a")
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
	_, err = service.ListOrgMembers(ctx, "0xalice", "")
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}
