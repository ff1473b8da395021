package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/delegate-access-service/domain/errors"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var baseTime = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

// newTestRepository runs the real gorm repository against a file-backed
// sqlite database, so every statement the adapter issues is executed by
// an SQL engine inside a live transaction.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "delegate.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&delegationModel{}, &outboxModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func pendingInput(outboxID string, token string, createdAt time.Time) ports.CreatePendingInput {
	return ports.CreatePendingInput{
		OutboxID:         outboxID,
		FromOrgID:        "org-a",
		ToOrgID:          "org-b",
		RequestorAddress: "0xalice",
		AuthToken:        token,
		CreatedAt:        createdAt,
		ExpiresAt:        createdAt.Add(7 * 24 * time.Hour),
	}
}

func TestCreatePendingInsertsFreshPair(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	record, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-fresh", baseTime))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record.Status != entities.DelegationStatusPending || record.AuthToken != "tok-fresh" {
		t.Fatalf("unexpected record %+v", record)
	}

	stored, found, err := repo.FindForPair(ctx, "org-a", "org-b")
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if stored.AuthToken != "tok-fresh" {
		t.Fatalf("stored token %q", stored.AuthToken)
	}

	outbox, err := repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	if len(outbox) != 1 || outbox[0].EventType != eventAccessRequested {
		t.Fatalf("unexpected outbox %+v", outbox)
	}
	var envelope ports.EventEnvelope
	if err := json.Unmarshal(outbox[0].Payload, &envelope); err != nil {
		t.Fatalf("payload is not an envelope: %v", err)
	}
	if strings.Contains(string(envelope.Data), "tok-fresh") {
		t.Fatal("outbox payload must not carry the raw token")
	}
}

func TestCreatePendingRejectsLivePair(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-first", baseTime)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := repo.CreatePending(ctx, pendingInput("out-2", "tok-second", baseTime.Add(time.Hour)))
	if !errors.Is(err, domainerrors.ErrDelegationExists) {
		t.Fatalf("live pending pair must reject, got %v", err)
	}

	if _, ok, err := repo.Accept(ctx, "org-b", "tok-first", "0xbianca", baseTime.Add(2*time.Hour)); err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}
	_, err = repo.CreatePending(ctx, pendingInput("out-3", "tok-third", baseTime.Add(3*time.Hour)))
	if !errors.Is(err, domainerrors.ErrDelegationExists) {
		t.Fatalf("accepted pair must reject, got %v", err)
	}

	stored, _, _ := repo.FindForPair(ctx, "org-a", "org-b")
	if stored.Status != entities.DelegationStatusAccepted {
		t.Fatalf("rejected re-requests must leave the row alone, got %+v", stored)
	}
}

func TestCreatePendingReplacesRevokedRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-first", baseTime)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok, err := repo.Accept(ctx, "org-b", "tok-first", "0xbianca", baseTime.Add(time.Hour)); err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}
	if _, ok, err := repo.Revoke(ctx, "org-a", "org-b", "0xbianca", baseTime.Add(2*time.Hour)); err != nil || !ok {
		t.Fatalf("revoke: ok=%v err=%v", ok, err)
	}

	renewed, err := repo.CreatePending(ctx, pendingInput("out-2", "tok-renewed", baseTime.Add(3*time.Hour)))
	if err != nil {
		t.Fatalf("re-request over revoked row failed: %v", err)
	}
	if renewed.Status != entities.DelegationStatusPending || renewed.AuthToken != "tok-renewed" {
		t.Fatalf("unexpected renewed record %+v", renewed)
	}

	stored, _, _ := repo.FindForPair(ctx, "org-a", "org-b")
	if stored.Status != entities.DelegationStatusPending || stored.AuthToken != "tok-renewed" {
		t.Fatalf("row was not taken over: %+v", stored)
	}
	if stored.GrantorAddress != "" || stored.RevokerAddress != "" {
		t.Fatalf("takeover must clear grantor and revoker, got %+v", stored)
	}
}

func TestCreatePendingReplacesExpiredPendingRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-stale", baseTime)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	afterExpiry := baseTime.Add(8 * 24 * time.Hour)
	renewed, err := repo.CreatePending(ctx, pendingInput("out-2", "tok-renewed", afterExpiry))
	if err != nil {
		t.Fatalf("re-request over expired pending failed: %v", err)
	}
	if renewed.AuthToken != "tok-renewed" {
		t.Fatalf("unexpected record %+v", renewed)
	}

	stored, _, _ := repo.FindForPair(ctx, "org-a", "org-b")
	if stored.AuthToken != "tok-renewed" || !stored.ExpiresAt.After(afterExpiry) {
		t.Fatalf("stale row was not replaced: %+v", stored)
	}

	if _, ok, _ := repo.Accept(ctx, "org-b", "tok-stale", "0xbianca", afterExpiry.Add(time.Hour)); ok {
		t.Fatal("the replaced token must be dead")
	}
}

func TestAcceptTransitionIsConditional(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-accept", baseTime)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, ok, err := repo.Accept(ctx, "org-b", "tok-wrong", "0xbianca", baseTime.Add(time.Hour)); err != nil || ok {
		t.Fatalf("wrong token must miss: ok=%v err=%v", ok, err)
	}
	if _, ok, err := repo.Accept(ctx, "org-b", "tok-accept", "0xbianca", baseTime.Add(8*24*time.Hour)); err != nil || ok {
		t.Fatalf("expired token must miss: ok=%v err=%v", ok, err)
	}

	accepted, ok, err := repo.Accept(ctx, "org-b", "tok-accept", "0xbianca", baseTime.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}
	if accepted.AuthToken != "" || accepted.GrantorAddress != "0xbianca" {
		t.Fatalf("unexpected accepted record %+v", accepted)
	}

	if _, ok, _ := repo.Accept(ctx, "org-b", "tok-accept", "0xbruno", baseTime.Add(2*time.Hour)); ok {
		t.Fatal("a consumed token must not accept twice")
	}
}

func TestRevokeRequiresAcceptedRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-revoke", baseTime)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok, _ := repo.Revoke(ctx, "org-a", "org-b", "0xbianca", baseTime.Add(time.Hour)); ok {
		t.Fatal("pending rows must not revoke")
	}

	if _, ok, err := repo.Accept(ctx, "org-b", "tok-revoke", "0xbianca", baseTime.Add(time.Hour)); err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}
	revoked, ok, err := repo.Revoke(ctx, "org-a", "org-b", "0xbianca", baseTime.Add(2*time.Hour))
	if err != nil || !ok {
		t.Fatalf("revoke: ok=%v err=%v", ok, err)
	}
	if revoked.Status != entities.DelegationStatusRevoked || revoked.RevokerAddress != "0xbianca" {
		t.Fatalf("unexpected revoked record %+v", revoked)
	}

	if _, ok, _ := repo.Revoke(ctx, "org-a", "org-b", "0xbianca", baseTime.Add(3*time.Hour)); ok {
		t.Fatal("revoked rows must not revoke twice")
	}
}

func TestOutboxMarkPublishedDrainsQueue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.CreatePending(ctx, pendingInput("out-1", "tok-outbox", baseTime)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok, err := repo.Accept(ctx, "org-b", "tok-outbox", "0xbianca", baseTime.Add(time.Hour)); err != nil || !ok {
		t.Fatalf("accept: ok=%v err=%v", ok, err)
	}

	pending, err := repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected two outbox rows, got %d", len(pending))
	}

	for _, message := range pending {
		if err := repo.MarkOutboxPublished(ctx, message.OutboxID, baseTime.Add(2*time.Hour)); err != nil {
			t.Fatalf("mark published: %v", err)
		}
	}
	pending, err = repo.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must leave the queue, %d remain", len(pending))
	}
}
