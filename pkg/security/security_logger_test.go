package security

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jon@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("j@example.com"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
	assert.Equal(t, "", MaskEmail(""))
}

func TestHashValue(t *testing.T) {
	h := HashValue("admin-1")
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashValue("admin-1"))
	assert.NotEqual(t, h, HashValue("admin-2"))
}

func TestSecurityLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "touring-backend", "test")

	sl.LogValidationFailed(context.Background(), "jon@example.com", "10.0.0.1", "req-1", []string{"message"})
	sl.LogInvalidSignature(context.Background(), "10.0.0.2", "req-2", "bad mac")
	sl.LogCachePurged(context.Background(), "admin-1", "10.0.0.3", "req-3")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, string(EventValidationFailed), entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, `{"fields":["message"]}`, fields["details"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, HashValue("admin-1"), entries[2].ContextMap()["subject_value"])
}

func TestDefaultLogger_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*SecurityLogger, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = DefaultLogger()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, sl := range got {
		assert.Same(t, got[0], sl)
	}

	installed := InitSecurityLogger("touring-backend", "test")
	assert.Same(t, installed, DefaultLogger())
}
