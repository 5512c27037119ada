package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/quranfruits/internal/config"
	"github.com/knowledge-engine/quranfruits/internal/logging"
)

func TestNewTextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("component", "test").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=test")
	assert.NotContains(t, buf.String(), "time=")
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "debug", Format: "json", Timestamps: true}, &buf)
	require.NoError(t, err)

	logger.WithField("verses", 3).Debug("Corpus loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Corpus loaded", entry["msg"])
	assert.Equal(t, float64(3), entry["verses"])
	assert.Contains(t, entry, "time")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = logging.New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
