package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name   string
		format LogFormat
		want   logrus.Formatter
	}{
		{name: "json", format: LogFormatJSON, want: &logrus.JSONFormatter{}},
		{name: "text", format: LogFormatText, want: &logrus.TextFormatter{}},
		{name: "unknown", format: "yaml", want: &logrus.TextFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.format)
			assert.IsType(t, tt.want, logger.Formatter)
			assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	assert.Equal(t, logrus.DebugLevel, NewLogger(LogFormatText).GetLevel())
}
