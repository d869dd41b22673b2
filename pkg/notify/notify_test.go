package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"go-touring-backend/config"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/email"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func envelope() domain.ContactEnvelope {
	return domain.ContactEnvelope{
		ReferenceID: "0b6f1c1e-ref",
		ReceivedAt:  time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Submission: domain.ContactSubmission{
			Name:    "Jon",
			Company: "Apolo",
			Email:   "jon@example.com",
			Service: domain.ServiceMerchandising,
			Message: "Queremos merchandising para la gira",
		},
	}
}

func TestKafkaNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	n := &KafkaNotifier{writer: w, topic: "contact-submissions"}

	require.NoError(t, n.Notify(context.Background(), envelope()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "0b6f1c1e-ref", string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, contactEventType, string(msg.Headers[0].Value))

	var decoded domain.ContactEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, envelope(), decoded)

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	n := &KafkaNotifier{writer: &fakeWriter{err: boom}, topic: "t"}

	err := n.Notify(context.Background(), envelope())
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaNotifier_Validation(t *testing.T) {
	_, err := NewKafkaNotifier(nil, "t")
	assert.Error(t, err)
	_, err = NewKafkaNotifier([]string{"localhost:9092"}, "")
	assert.Error(t, err)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), envelope()))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "[Contact Form]", line["msg"])
	assert.Equal(t, "contact_delivery", line["component"])
	assert.Equal(t, "0b6f1c1e-ref", line["reference_id"])
	assert.Equal(t, "merchandising", line["service"])
}

func TestFromConfig(t *testing.T) {
	n, closeFn := FromConfig(&config.Config{NotifyBackend: "smtp"})
	assert.IsType(t, &LogNotifier{}, n, "unconfigured smtp falls back to log")
	assert.NoError(t, closeFn())

	n, _ = FromConfig(&config.Config{
		NotifyBackend:  "smtp",
		SMTPHost:       "smtp.example.com",
		SMTPUsername:   "u",
		SMTPPassword:   "p",
		ContactEmailTo: "info@example.com",
	})
	assert.IsType(t, &email.EmailService{}, n)

	n, closeFn = FromConfig(&config.Config{NotifyBackend: "kafka", KafkaBrokers: []string{"localhost:9092"}, KafkaContactTopic: "c"})
	assert.IsType(t, &KafkaNotifier{}, n)
	assert.NoError(t, closeFn())

	n, _ = FromConfig(&config.Config{NotifyBackend: "pigeon"})
	assert.IsType(t, &LogNotifier{}, n)
}
