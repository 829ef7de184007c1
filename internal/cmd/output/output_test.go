package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/errors"
	"github.com/agentstation/signlib/pkg/query"
)

var videos = []*catalogs.Video{
	{ID: "d1", Title: "Hello", Category: "Greetings", Tags: []string{"basic", "beginner"}, Source: catalogs.SourceDemo, CreatedAt: 1},
	{ID: "v_2", Title: "Untitled", Tags: []string{}, Source: catalogs.SourceManual, CreatedAt: 2},
}

func TestFormatVideosTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.FormatVideos(&buf, output.FormatTable, videos, query.Set{"d1": true}))

	out := buf.String()
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "basic, beginner")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "♥")
	assert.NotContains(t, out, "v_2")
}

func TestFormatVideosWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.FormatVideos(&buf, output.FormatWide, videos, nil))
	assert.Contains(t, buf.String(), "v_2")
	assert.Contains(t, buf.String(), "Manual")
}

func TestFormatVideosJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.FormatVideos(&buf, output.FormatJSON, videos, nil))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0]["id"])
	assert.Nil(t, got[0]["filePath"])
}

func TestFormatSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	s := query.Count(videos, query.Set{"d1": true})
	require.NoError(t, output.FormatSummary(&buf, output.FormatYAML, s))
	assert.Contains(t, buf.String(), "total: 2")
	assert.Contains(t, buf.String(), "name: Greetings")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := output.ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := output.ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}
