package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSONOutputWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, JSONOutput: true, Output: &buf})

	WithComponent("repository").Info().Msg("listed computers")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "repository", line["component"])
	assert.Equal(t, "listed computers", line["message"])
}

func TestWithOperationTagsBothFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, JSONOutput: true, Output: &buf})

	WithOperation("cli", "list-files").Warn().Msg("no files matched")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cli", line["component"])
	assert.Equal(t, "list-files", line["operation"])
}

func TestLevelForVerbosity(t *testing.T) {
	assert.Equal(t, WarnLevel, LevelForVerbosity(0))
	assert.Equal(t, InfoLevel, LevelForVerbosity(1))
	assert.Equal(t, DebugLevel, LevelForVerbosity(2))
	assert.Equal(t, TraceLevel, LevelForVerbosity(3))
	assert.Equal(t, TraceLevel, LevelForVerbosity(7))
}
