package notify

import (
	"context"
	"log/slog"

	"go-touring-backend/config"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/email"
	"go-touring-backend/pkg/logger"
)

// FromConfig picks the notifier named by NOTIFY_BACKEND. Backends that are
// not fully configured fall back to the log notifier.
func FromConfig(cfg *config.Config) (domain.ContactNotifier, func() error) {
	noop := func() error { return nil }

	switch cfg.NotifyBackend {
	case "smtp":
		svc := email.NewEmailService(cfg)
		if svc.IsConfigured() {
			return svc, noop
		}
		logger.Log.Warn("SMTP not fully configured - contact submissions will only be logged")
	case "kafka":
		n, err := NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaContactTopic)
		if err == nil {
			return n, n.Close
		}
		logger.Log.Warn("Kafka notifier unavailable - contact submissions will only be logged", "error", err)
	case "log", "":
	default:
		logger.Log.Warn("Unknown NOTIFY_BACKEND, using log", "backend", cfg.NotifyBackend)
	}
	return NewLogNotifier(logger.Log), noop
}

// LogNotifier writes submissions to the application log.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "contact_delivery")}
}

func (n *LogNotifier) Notify(ctx context.Context, envelope domain.ContactEnvelope) error {
	sub := envelope.Submission
	n.log.InfoContext(ctx, "[Contact Form]",
		"reference_id", envelope.ReferenceID,
		"received_at", envelope.ReceivedAt,
		"name", sub.Name,
		"company", sub.Company,
		"email", sub.Email,
		"phone", sub.Phone,
		"service", sub.Service,
		"message", sub.Message,
	)
	return nil
}
