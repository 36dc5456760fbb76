package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	t.Cleanup(func() {
		UnsetTestOutput()
		SetBaseFields(nil)
		logger = nil
	})

	logger = nil
	InitLogger(level, format)
	fn()
	return buf.String()
}

// jsonLines decodes every line of JSON handler output.
func jsonLines(t *testing.T, output string) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		records = append(records, rec)
	}
	return records
}

func TestLevels(t *testing.T) {
	emitAll := func() {
		Debug("request sent")
		Info("fetching manifest")
		Warn("archive produced no members")
		Error("download failed")
	}

	tests := []struct {
		level string
		want  []string
	}{
		{level: "debug", want: []string{"request sent", "fetching manifest", "archive produced no members", "download failed"}},
		{level: "info", want: []string{"fetching manifest", "archive produced no members", "download failed"}},
		{level: "warn", want: []string{"archive produced no members", "download failed"}},
		{level: "error", want: []string{"download failed"}},
		{level: "chatty", want: []string{"fetching manifest", "archive produced no members", "download failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			records := jsonLines(t, captureOutput(t, tt.level, FormatJSON, emitAll))

			var got []string
			for _, rec := range records {
				got = append(got, rec["msg"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsInJSON(t *testing.T) {
	output := captureOutput(t, "debug", FormatJSON, func() {
		Info("Dataset fetched", Fields{"name": "reads", "bytes": 1024, "archive": false})
		DebugfWithFields(Fields{"url": "http://example.org/a.bed"}, "GET %s returned %d", "a.bed", 200)
		Success("Run finished", Fields{"datasets": 3})
	})

	records := jsonLines(t, output)
	require.Len(t, records, 3)

	assert.Equal(t, "Dataset fetched", records[0]["msg"])
	assert.Equal(t, "reads", records[0]["name"])
	assert.EqualValues(t, 1024, records[0]["bytes"])
	assert.Equal(t, false, records[0]["archive"])

	assert.Equal(t, "GET a.bed returned 200", records[1]["msg"])
	assert.Equal(t, "DEBUG", records[1]["level"])
	assert.Equal(t, "http://example.org/a.bed", records[1]["url"])

	assert.Equal(t, "INFO", records[2]["level"])
	assert.Equal(t, "success", records[2]["status"])
	assert.EqualValues(t, 3, records[2]["datasets"])
}

func TestTextFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatText, func() {
		Warn("Skipping manifest element", Fields{"position": "entry 2"})
		Infof("expanded %d members", 4)
	})

	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, `msg="Skipping manifest element"`)
	assert.Contains(t, output, `position="entry 2"`)
	assert.Contains(t, output, `msg="expanded 4 members"`)
}

func TestSetOutputFormat_KeepsLevelAndBaseFields(t *testing.T) {
	buf := &bytes.Buffer{}
	output := captureOutput(t, "warn", FormatText, func() {
		SetBaseFields(Fields{"run_id": "r-1"})
		SetTestOutput(buf)
		SetOutputFormat(FormatJSON)
		Info("dropped at warn level")
		Warn("kept")
	})
	assert.Empty(t, output)

	records := jsonLines(t, buf.String())
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0]["msg"])
	assert.Equal(t, "r-1", records[0]["run_id"])
}

func TestSetBaseFields(t *testing.T) {
	output := captureOutput(t, "info", FormatText, func() {
		SetBaseFields(Fields{"run_id": "abc123"})
		Info("fetching manifest")
		Warn("skipping element")
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "run_id=abc123")
	}
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	captureOutput(t, "info", FormatText, func() {
		logger = nil
		assert.NotNil(t, GetLogger())
	})
}

func TestMergeFields_LaterWins(t *testing.T) {
	attrs := mergeFields(Fields{"name": "reads", "ext": "bed"}, Fields{"ext": "fastq"})
	require.Len(t, attrs, 4)

	got := map[string]any{}
	for i := 0; i < len(attrs); i += 2 {
		got[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, map[string]any{"name": "reads", "ext": "fastq"}, got)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"INFO":    "INFO",
		"warning": "WARN",
		"Warn":    "WARN",
		"ERROR":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in).String(), in)
	}
}
