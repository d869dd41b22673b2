package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-touring-backend/pkg/validation"
)

const contactPath = "/v1/contact"

var (
	// ErrRejected means the server refused the submission as invalid.
	ErrRejected = errors.New("contact submission rejected")
	// ErrServerFailure covers every other non-200 answer.
	ErrServerFailure = errors.New("contact server failure")
)

// TransportError is a network failure before any response arrived. It is
// safe to retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "Error de conexión. Inténtalo de nuevo."
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ContactClient submits the contact form the way the site does: it runs the
// same validation locally and only calls the API with a well-formed payload.
type ContactClient struct {
	BaseURL    string
	HTTPClient *http.Client
	validator  *validation.ContactValidator
}

func NewContactClient(baseURL string, validator *validation.ContactValidator) *ContactClient {
	if validator == nil {
		validator = validation.NewContactValidator(nil)
	}
	return &ContactClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		validator: validator,
	}
}

// Submit returns validation.FieldErrors when raw fails local validation,
// *TransportError on network failure, ErrRejected on 400 and
// ErrServerFailure on any other non-200 status.
func (c *ContactClient) Submit(ctx context.Context, raw map[string]interface{}) error {
	if _, fieldErrs := c.validator.Validate(raw); fieldErrs != nil {
		return fieldErrs
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+contactPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return ErrRejected
	default:
		return ErrServerFailure
	}
}
