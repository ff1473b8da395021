package tokenadapter

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const (
	// 32 bytes of entropy encode to a fixed 43-character URL-safe token;
	// collision probability is negligible over a record's lifetime.
	tokenBytes = 32

	// Expiry is fixed at issuance and never extended.
	delegationTTL = 7 * 24 * time.Hour
)

// RandomIssuer implements ports.TokenIssuer with crypto/rand tokens.
type RandomIssuer struct{}

func (RandomIssuer) Issue(_ context.Context, now time.Time) (string, time.Time, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// Entropy-source exhaustion is process-fatal territory, not a
		// business outcome; surface it as a wrapped infra error.
		return "", time.Time{}, fmt.Errorf("read token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), now.Add(delegationTTL).UTC(), nil
}
