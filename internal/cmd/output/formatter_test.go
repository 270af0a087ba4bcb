package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "yaml", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatJSON).Format(&buf, map[string]int{"count": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 3}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatYAML).Format(&buf, map[string]string{"status": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "status: ok\n", buf.String())
}

func TestTextFormatterLines(t *testing.T) {
	var buf bytes.Buffer
	lines := Lines{
		{Text: "Framework Components"},
		{Symbol: "✓", Text: "Main configuration", Indent: 1},
		{Symbol: "✗", Text: "Modular engine", Indent: 1},
	}
	err := NewFormatter(FormatText).Format(&buf, lines)
	require.NoError(t, err)
	assert.Equal(t, "Framework Components\n  ✓ Main configuration\n  ✗ Modular engine\n", buf.String())
}

func TestTextFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatText).Format(&buf, map[string]bool{"ok": true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, buf.String())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Behavioral Rules", Title("behavioral_rules"))
	assert.Equal(t, "Meta", Title("meta"))
}
