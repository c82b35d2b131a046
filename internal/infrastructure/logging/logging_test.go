//go:build !integration

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	out := &bytes.Buffer{}
	logger, err := New("debug", "json", out)
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("account_id", "0.0.1001").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "0.0.1001", entry["account_id"])
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New("chatty", "text", nil)
	require.Error(t, err)

	_, err = New("info", "xml", nil)
	require.Error(t, err)
}
