package usecase

import (
	"context"
	"fmt"
	"time"

	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/logger"
	"go-touring-backend/pkg/validation"

	"github.com/google/uuid"
)

type contactUsecase struct {
	validator *validation.ContactValidator
	notifier  domain.ContactNotifier
	now       func() time.Time
	newID     func() string
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(validator *validation.ContactValidator, notifier domain.ContactNotifier) domain.ContactUsecase {
	return &contactUsecase{
		validator: validator,
		notifier:  notifier,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit validates the raw payload and hands the sanitized record to the notifier.
// Validation failures are returned as validation.FieldErrors.
func (uc *contactUsecase) Submit(ctx context.Context, raw map[string]interface{}) (string, error) {
	submission, fieldErrs := uc.validator.Validate(raw)
	if fieldErrs != nil {
		return "", fieldErrs
	}

	envelope := domain.ContactEnvelope{
		ReferenceID: uc.newID(),
		ReceivedAt:  uc.now().UTC(),
		Submission:  *submission,
	}

	if err := uc.notifier.Notify(ctx, envelope); err != nil {
		return "", fmt.Errorf("failed to deliver contact submission %s: %w", envelope.ReferenceID, err)
	}

	logger.Log.InfoContext(ctx, "Contact submission accepted",
		"reference_id", envelope.ReferenceID,
		"service", submission.Service,
	)
	return envelope.ReferenceID, nil
}

func (uc *contactUsecase) ServiceOptions() []domain.ServiceOption {
	out := make([]domain.ServiceOption, len(domain.ServiceOptions))
	copy(out, domain.ServiceOptions)
	return out
}
