package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:        CodeNotFound,
		Message:     "interface Persn not found",
		Package:     "example/model",
		Interface:   "Persn",
		Suggestions: []string{"Person"},
	}

	assert.Equal(t, "[example/model] Persn: [not-found] interface Persn not found (did you mean Person?)", d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Err())

	d.AddWarning(CodeNotAdaptable, "generic interface", "example/model", "Box")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Err())

	d.AddError(CodeNotFound, "interface A not found", "example/model", "A")

	var other Diagnostics
	other.AddError(CodeNotFound, "interface B not found", "example/model", "B")
	d.Merge(other)

	err := d.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interface A not found")
	assert.Contains(t, err.Error(), "interface B not found")
	assert.Len(t, d.Warnings, 1)
}

func TestDiagnostics_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var d Diagnostics
	d.AddWarning(CodeNotAdaptable, "generic interface", "example/model", "Box")
	d.AddError(CodeNotFound, "interface A not found", "example/model", "A", "B")
	d.Log(logger)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "code=not-found")
	assert.Contains(t, out, "interface=Box")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("ERROR")), bytes.Index(buf.Bytes(), []byte("WARN")))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(0).String())
}
