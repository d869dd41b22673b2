package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-touring-backend/internal/domain"
)

const (
	serviceDocumentType = "service"
	noMatchMessage      = "No matching type to revalidate"
)

// SignatureVerifier checks a webhook signature header against the raw body.
type SignatureVerifier interface {
	Verify(header string, body []byte) error
}

type revalidateUsecase struct {
	verifier SignatureVerifier
	content  domain.ContentUsecase
	now      func() time.Time
}

func NewRevalidateUsecase(verifier SignatureVerifier, content domain.ContentUsecase) domain.RevalidateUsecase {
	return &revalidateUsecase{
		verifier: verifier,
		content:  content,
		now:      time.Now,
	}
}

// HandleWebhook invalidates the pages of a changed service document.
// Signature failures unwrap to domain.ErrInvalidSignature and bodies without a
// document type return domain.ErrMissingType.
func (uc *revalidateUsecase) HandleWebhook(ctx context.Context, signatureHeader string, body []byte) (*domain.RevalidateResult, error) {
	if err := uc.verifier.Verify(signatureHeader, body); err != nil {
		return nil, err
	}

	var payload domain.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingType, err)
	}
	if payload.Type == "" {
		return nil, domain.ErrMissingType
	}

	if payload.Type != serviceDocumentType {
		return &domain.RevalidateResult{Revalidated: false, Message: noMatchMessage}, nil
	}

	slug := ""
	if payload.Slug != nil {
		slug = payload.Slug.Current
	}
	if err := uc.content.Invalidate(ctx, slug); err != nil {
		return nil, err
	}

	paths := []string{"/"}
	if slug != "" {
		paths = append(paths, "/servicios/"+slug)
	}
	return &domain.RevalidateResult{
		Revalidated: true,
		Now:         uc.now().UnixMilli(),
		Paths:       paths,
	}, nil
}
