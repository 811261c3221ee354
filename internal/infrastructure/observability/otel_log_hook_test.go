package observability

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	otellog "go.opentelemetry.io/otel/log"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  otellog.Severity
	}{
		{zerolog.DebugLevel, otellog.SeverityDebug},
		{zerolog.InfoLevel, otellog.SeverityInfo},
		{zerolog.WarnLevel, otellog.SeverityWarn},
		{zerolog.ErrorLevel, otellog.SeverityError},
		{zerolog.FatalLevel, otellog.SeverityFatal},
		{zerolog.NoLevel, otellog.SeverityUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, severityFor(tt.level))
		})
	}
}

func TestOTelHook_RunWithNoopProvider(t *testing.T) {
	hook := NewOTelHook("test")
	logger := zerolog.Nop().Hook(hook)

	assert.NotPanics(t, func() {
		logger.Info().Str("k", "v").Msg("hello")
	})
}

func TestRecordHelpersTolerateNilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRequestMetric(t.Context(), nil, "GET", "/health", 200, 0)
		RecordCacheHit(t.Context(), nil, "provider")
		RecordMatchRun(t.Context(), nil, "high", "matched", 3, 0)
	})
}
