package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
}

func TestDiagnosticString(t *testing.T) {
	withField := &Diagnostic{
		Severity: SeverityError,
		Resource: "lex_bot.order_bot",
		Field:    "locale",
		Message:  "value \"xx_XX\" is not one of: en_US",
	}
	assert.Equal(t, `ERROR: lex_bot.order_bot: locale: value "xx_XX" is not one of: en_US`, withField.String())

	withoutField := &Diagnostic{
		Severity: SeverityWarning,
		Resource: "output.region",
		Message:  "output does not reference any resource",
	}
	assert.Equal(t, "WARNING: output.region: output does not reference any resource", withoutField.String())
}

func TestDiagnostics(t *testing.T) {
	var ds Diagnostics
	assert.False(t, ds.HasErrors())

	ds = ds.Append(&Diagnostic{Severity: SeverityWarning, Resource: "a.b", Message: "w"})
	assert.False(t, ds.HasErrors())
	assert.Empty(t, ds.Errs())

	ds = ds.Append(&Diagnostic{Severity: SeverityError, Resource: "c.d", Message: "e"})
	assert.True(t, ds.HasErrors())
	assert.Len(t, ds.Errs(), 1)
	assert.Equal(t, "c.d", ds.Errs()[0].Resource)
}
