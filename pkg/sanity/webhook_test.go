package sanity

import (
	"errors"
	"testing"
	"time"

	"go-touring-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("whsec", 5*time.Minute)
	body := []byte(`{"_type":"service","slug":{"current":"tour-manager"}}`)

	header := v.Sign(body, time.Now())
	assert.NoError(t, v.Verify(header, body))
}

func TestVerifier_Rejects(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	v := NewVerifier("whsec", 5*time.Minute)
	v.now = func() time.Time { return now }
	body := []byte(`{"_type":"service"}`)
	valid := v.Sign(body, now)

	tests := []struct {
		name   string
		v      *Verifier
		header string
		body   []byte
		reason string
	}{
		{"no secret", NewVerifier("", 0), valid, body, "no secret configured"},
		{"missing header", v, "", body, "missing signature header"},
		{"malformed header", v, "garbage", body, "malformed signature header"},
		{"bad timestamp", v, "t=abc,v1=xyz", body, "malformed timestamp"},
		{"tampered body", v, valid, []byte(`{"_type":"post"}`), "signature mismatch"},
		{"wrong secret", NewVerifier("other", 0), valid, body, "signature mismatch"},
		{"expired", v, v.Sign(body, now.Add(-10*time.Minute)), body, "timestamp outside tolerance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Verify(tt.header, tt.body)
			var sigErr *SignatureError
			if assert.True(t, errors.As(err, &sigErr)) {
				assert.Equal(t, tt.reason, sigErr.Reason)
			}
			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}

func TestVerifier_ZeroToleranceAcceptsOldTimestamps(t *testing.T) {
	v := NewVerifier("whsec", 0)
	body := []byte(`{}`)
	assert.NoError(t, v.Verify(v.Sign(body, time.Unix(0, 0)), body))
}

func TestParseHeader(t *testing.T) {
	ts, sig, ok := parseHeader("t=1700000000000, v1=abc_-")
	assert.True(t, ok)
	assert.Equal(t, "1700000000000", ts)
	assert.Equal(t, "abc_-", sig)

	_, _, ok = parseHeader("t=1700000000000")
	assert.False(t, ok)
}
