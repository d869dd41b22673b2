package sanity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"go-touring-backend/internal/domain"
)

// SignatureHeader is the header carrying the webhook signature.
const SignatureHeader = "sanity-webhook-signature"

// SignatureError explains why a webhook signature was rejected. It matches
// domain.ErrInvalidSignature with errors.Is.
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return "invalid webhook signature: " + e.Reason
}

func (e *SignatureError) Unwrap() error {
	return domain.ErrInvalidSignature
}

// Verifier checks "t=<unix ms>,v1=<base64url hmac>" signature headers.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier returns a verifier for secret. A zero tolerance accepts any
// timestamp; an empty secret rejects every request.
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{
		secret:    []byte(secret),
		tolerance: tolerance,
		now:       time.Now,
	}
}

// Verify checks header against the raw request body.
func (v *Verifier) Verify(header string, body []byte) error {
	if len(v.secret) == 0 {
		return &SignatureError{Reason: "no secret configured"}
	}
	if header == "" {
		return &SignatureError{Reason: "missing signature header"}
	}

	timestamp, signature, ok := parseHeader(header)
	if !ok {
		return &SignatureError{Reason: "malformed signature header"}
	}

	ms, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return &SignatureError{Reason: "malformed timestamp"}
	}
	if v.tolerance > 0 {
		age := v.now().Sub(time.UnixMilli(ms))
		if age < 0 {
			age = -age
		}
		if age > v.tolerance {
			return &SignatureError{Reason: "timestamp outside tolerance"}
		}
	}

	expected := sign(v.secret, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return &SignatureError{Reason: "signature mismatch"}
	}
	return nil
}

// Sign produces a header value for body at ts, as the CMS does.
func (v *Verifier) Sign(body []byte, ts time.Time) string {
	timestamp := strconv.FormatInt(ts.UnixMilli(), 10)
	return "t=" + timestamp + ",v1=" + sign(v.secret, timestamp, body)
}

func sign(secret []byte, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func parseHeader(header string) (timestamp, signature string, ok bool) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}
	return timestamp, signature, timestamp != "" && signature != ""
}
