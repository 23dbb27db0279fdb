package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidationResultCreation tests creating a new result
func TestValidationResultCreation(t *testing.T) {
	result := NewResult()

	assert.NotNil(t, result)
	assert.Empty(t, result.Messages)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanImport())
	assert.True(t, result.CanPromote())
}

// TestAddError tests adding error messages
func TestAddError(t *testing.T) {
	result := NewResult()

	result.AddError(CodeMissingTypeColumn, `case list sheet "Sheet1" has no "type" column`)

	assert.Len(t, result.Messages, 1)
	assert.False(t, result.IsValid())
	assert.False(t, result.CanImport())
	assert.False(t, result.CanPromote())
	assert.Equal(t, 1, result.ErrorCount())
}

// TestAddWarning tests adding warning messages
func TestAddWarning(t *testing.T) {
	result := NewResult()

	result.AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted from the case list")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())    // Warnings don't make it invalid
	assert.True(t, result.CanImport())  // Can import with warnings
	assert.False(t, result.CanPromote()) // Cannot promote with warnings
	assert.Equal(t, 1, result.WarningCount())
}

// TestAddInfo tests adding info messages
func TestAddInfo(t *testing.T) {
	result := NewResult()

	result.AddInfo("INFO_CODE", "This is informational")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanImport())
	assert.True(t, result.CanPromote())
	assert.Equal(t, 1, result.InfoCount())
}

// TestMultipleMessages tests collecting multiple messages
func TestMultipleMessages(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeRowParseError, "row 14: invalid duration_minutes: not-a-number").
		AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted from the case list").
		AddInfo("INFO_CODE", "import completed with warnings")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
	assert.False(t, result.IsValid())
	assert.False(t, result.CanImport())
	assert.False(t, result.CanPromote())
}

// TestMessagesByCode tests filtering messages by code
func TestMessagesByCode(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeRowParseError, "row 3: invalid duration_minutes").
		AddError(CodeRowParseError, "row 9: invalid earliest_start")

	messages := result.MessagesByCode(CodeRowParseError)

	assert.Len(t, messages, 2)
	for _, msg := range messages {
		assert.Equal(t, CodeRowParseError, msg.Code)
	}
}

// TestMessagesBySeverity tests filtering messages by severity
func TestMessagesBySeverity(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeRowParseError, "row 3: invalid duration_minutes").
		AddError(CodeRowParseError, "row 9: invalid earliest_start").
		AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted from the case list").
		AddInfo("CODE", "Info 1")

	errors := result.MessagesBySeverity(SeverityError)
	warnings := result.MessagesBySeverity(SeverityWarning)
	infos := result.MessagesBySeverity(SeverityInfo)

	assert.Len(t, errors, 2)
	assert.Len(t, warnings, 1)
	assert.Len(t, infos, 1)
}

// TestHasErrorsAndWarnings tests flag methods
func TestHasErrorsAndWarnings(t *testing.T) {
	resultClean := NewResult()
	assert.False(t, resultClean.HasErrors())
	assert.False(t, resultClean.HasWarnings())

	resultWithError := NewResult().AddError("CODE", "Error")
	assert.True(t, resultWithError.HasErrors())
	assert.False(t, resultWithError.HasWarnings())

	resultWithWarning := NewResult().AddWarning("CODE", "Warning")
	assert.False(t, resultWithWarning.HasErrors())
	assert.True(t, resultWithWarning.HasWarnings())

	resultWithBoth := NewResult().
		AddError("ERR", "Error").
		AddWarning("WARN", "Warning")
	assert.True(t, resultWithBoth.HasErrors())
	assert.True(t, resultWithBoth.HasWarnings())
}

// TestWithContext tests messages with additional context
func TestWithContext(t *testing.T) {
	result := NewResult()

	context := map[string]interface{}{
		"row":      14,
		"raw_text": "ninety",
	}

	result.AddErrorWithContext(CodeRowParseError, "invalid duration_minutes", context)

	assert.Len(t, result.Messages, 1)
	msg := result.Messages[0]
	assert.Equal(t, context, msg.Context)
	assert.Equal(t, 14, msg.Context["row"])
}

// TestToJSON tests JSON serialization
func TestToJSON(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeMissingTypeColumn, "case list has no type column").
		AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted")

	json, err := result.ToJSON()

	assert.NoError(t, err)
	assert.NotEmpty(t, json)
	assert.Contains(t, json, "MISSING_TYPE_COLUMN")
	assert.Contains(t, json, "NO_SURGERIES_PARSED")
	assert.Contains(t, json, "ERROR")
	assert.Contains(t, json, "WARNING")
}

// TestFromJSON tests JSON deserialization
func TestFromJSON(t *testing.T) {
	original := NewResult()
	original.
		AddError(CodeMissingTypeColumn, "case list has no type column").
		AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted")

	jsonStr, err := original.ToJSON()
	require.NoError(t, err)

	// Deserialize
	restored, err := FromJSON(jsonStr)
	require.NoError(t, err)

	assert.Len(t, restored.Messages, 2)
	assert.Equal(t, original.ErrorCount(), restored.ErrorCount())
	assert.Equal(t, original.WarningCount(), restored.WarningCount())
}

// TestSummary tests human-readable summary
func TestSummary(t *testing.T) {
	result := NewResult()
	result.
		AddError(CodeMissingTypeColumn, "case list has no type column").
		AddWarning(CodeNoSurgeriesParsed, "no surgeries were extracted").
		AddInfo("INFO", "Done")

	summary := result.Summary()

	assert.Contains(t, summary, "1 errors")
	assert.Contains(t, summary, "1 warnings")
	assert.Contains(t, summary, "1 info")
	assert.Contains(t, summary, "MISSING_TYPE_COLUMN")
	assert.Contains(t, summary, "NO_SURGERIES_PARSED")
}

// TestChaining tests method chaining
func TestChaining(t *testing.T) {
	result := NewResult().
		AddError("CODE1", "Error 1").
		AddWarning("CODE2", "Warning 1").
		AddInfo("CODE3", "Info 1")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
}

// TestRealWorldExample tests a realistic case-list import scenario
func TestRealWorldExample(t *testing.T) {
	// Simulating a case-list spreadsheet import with multiple issues
	result := NewResult()

	// Several rows failed to parse
	result.AddErrorWithContext(
		CodeRowParseError,
		"invalid duration_minutes",
		map[string]interface{}{
			"row":      14,
			"raw_text": "ninety",
			"count":    3,
		},
	)

	// Surgeon email didn't resolve to any known staff member
	result.AddErrorWithContext(
		CodeRowParseError,
		"unresolved surgeon_email",
		map[string]interface{}{
			"emails": []string{"dr.lee@example.com", "unknown@example.com"},
			"count":  2,
		},
	)

	// No surgeries scheduled for a given sheet
	result.AddWarning(
		CodeNoSurgeriesParsed,
		"no surgeries were extracted from the case list",
	)

	// Informational: how many rows were processed
	result.AddInfo(
		"ROWS_PROCESSED",
		"processed 150 case-list rows",
	)

	// Cannot import due to errors
	assert.False(t, result.CanImport())
	// Cannot promote due to errors and warnings
	assert.False(t, result.CanPromote())
	// Has both errors and warnings
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
}
