package tokenadapter

import (
	"context"
	"testing"
	"time"
)

func TestIssueTokenShape(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	token, expiresAt, err := RandomIssuer{}.Issue(context.Background(), now)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if len(token) != 43 {
		t.Fatalf("expected 43-character token, got %d characters", len(token))
	}
	for _, r := range token {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			t.Fatalf("token contains non URL-safe character %q", r)
		}
	}
	if want := now.Add(7 * 24 * time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiresAt)
	}
}

func TestIssueTokensAreUnique(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		token, _, err := RandomIssuer{}.Issue(context.Background(), now)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatal("issuer produced a duplicate token")
		}
		seen[token] = struct{}{}
	}
}
