package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agalitsyn/meetup-tasks/internal/importer"
	"github.com/agalitsyn/meetup-tasks/internal/model"
)

const validHeader = "title,description,assignedTo,phone,deadline,priority"

func TestParseCSV_ValidFile(t *testing.T) {
	csv := validHeader + "\n" +
		"Setup venue,Book conference room,John Doe,+1234567890,2025-02-28,high\n" +
		"Send invitations,Email all members,Jane Smith,+1987654321,2025-02-25,high\n"

	result := importer.ParseCSV(csv)

	require.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Data, 2)

	first := result.Data[0]
	assert.Equal(t, "Setup venue", first.Title)
	assert.Equal(t, "Book conference room", first.Description)
	assert.Equal(t, "John Doe", first.AssignedTo)
	assert.Equal(t, "+1234567890", first.Phone)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), first.Deadline)
	assert.Equal(t, model.TaskPriorityHigh, first.Priority)

	// row order is preserved end to end
	assert.Equal(t, "Send invitations", result.Data[1].Title)
}

func TestParseCSV_SingleValidRow(t *testing.T) {
	result := importer.ParseCSV("title,assignedto,phone,deadline\nSetup venue,John Doe,+1234567890,2025-02-28\n")

	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "", result.Data[0].Description)
	assert.Equal(t, model.TaskPriorityMedium, result.Data[0].Priority)
}

func TestParseCSV_TooShort(t *testing.T) {
	for name, input := range map[string]string{
		"empty":                   "",
		"blank lines":             "\n\n  \n",
		"header only":             validHeader,
		"header trailing newline": validHeader + "\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			result := importer.ParseCSV(input)
			assert.False(t, result.Success)
			assert.Equal(t, []string{"CSV file must contain headers and at least one data row"}, result.Errors)
			assert.Empty(t, result.Data)
		})
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no phone", "title,assignedto,deadline", "Missing required columns: phone"},
		{"no title", "description,assignedto,phone,deadline", "Missing required columns: title"},
		{"several missing", "title,deadline", "Missing required columns: assignedto, phone"},
		{"all missing", "a,b,c,d", "Missing required columns: title, assignedto, phone, deadline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := importer.ParseCSV(tt.header + "\nsome,data,in,a,row\n")
			assert.False(t, result.Success)
			assert.Equal(t, []string{tt.want}, result.Errors)
			assert.Empty(t, result.Data)
		})
	}
}

func TestParseCSV_HeadersCaseInsensitive(t *testing.T) {
	result := importer.ParseCSV("TITLE, AssignedTo ,PHONE,Deadline\nSetup,John,+123456789,2025-02-28\n")
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "John", result.Data[0].AssignedTo)
}

func TestParseCSV_RowValidation(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		warning string
	}{
		{"missing title", ",desc,John,+123456789,2025-02-28,high", "Row 2: Missing title"},
		{"missing phone", "Setup,desc,John,,2025-02-28,high", "Row 2: Missing phone number"},
		{"missing deadline", "Setup,desc,John,+123456789,,high", "Row 2: Invalid or missing deadline"},
		{"garbage deadline", "Setup,desc,John,+123456789,next tuesday,high", "Row 2: Invalid or missing deadline"},
		{"missing assignee", "Setup,desc,,+123456789,2025-02-28,high", "Row 2: Missing assigned person name"},
		{"insufficient fields", "Setup,John", "Row 2: Skipped - insufficient data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := importer.ParseCSV(validHeader + "\n" + tt.row + "\n")
			assert.False(t, result.Success)
			assert.Equal(t, []string{tt.warning}, result.Warnings)
			// zero survivors is a hard failure even with warnings present
			assert.Equal(t, []string{"No valid tasks found in CSV"}, result.Errors)
			assert.Empty(t, result.Data)
		})
	}
}

func TestParseCSV_FirstFailingFieldWins(t *testing.T) {
	// title, phone and assignee are all empty: only the title warning shows
	result := importer.ParseCSV(validHeader + "\n,desc,,,bad-date,nope\n")
	assert.Equal(t, []string{"Row 2: Missing title"}, result.Warnings)
}

func TestParseCSV_PartialSuccess(t *testing.T) {
	csv := validHeader + "\n" +
		"Setup venue,,John Doe,+1234567890,2025-02-28,high\n" +
		",missing title,Jane,+1987654321,2025-02-25,low\n" +
		"Order catering,,Bob Ray,+1555000111,2025-03-01,low\n"

	result := importer.ParseCSV(csv)

	require.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"Row 3: Missing title"}, result.Warnings)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "Setup venue", result.Data[0].Title)
	assert.Equal(t, "Order catering", result.Data[1].Title)
}

func TestParseCSV_Priority(t *testing.T) {
	t.Run("unknown value falls back to medium with a warning", func(t *testing.T) {
		result := importer.ParseCSV(validHeader + "\nSetup,desc,John,+123456789,2025-02-28,URGENT\n")
		require.True(t, result.Success)
		require.Len(t, result.Data, 1)
		assert.Equal(t, model.TaskPriorityMedium, result.Data[0].Priority)
		assert.Equal(t, []string{`Row 2: Invalid priority, using "medium"`}, result.Warnings)
	})

	t.Run("recognized value is normalized to lower case", func(t *testing.T) {
		result := importer.ParseCSV(validHeader + "\nSetup,desc,John,+123456789,2025-02-28,HIGH\n")
		require.True(t, result.Success)
		assert.Equal(t, model.TaskPriorityHigh, result.Data[0].Priority)
		assert.Empty(t, result.Warnings)
	})

	t.Run("empty field defaults silently", func(t *testing.T) {
		result := importer.ParseCSV(validHeader + "\nSetup,desc,John,+123456789,2025-02-28,\n")
		require.True(t, result.Success)
		assert.Equal(t, model.TaskPriorityMedium, result.Data[0].Priority)
		assert.Empty(t, result.Warnings)
	})

	t.Run("absent column defaults silently", func(t *testing.T) {
		result := importer.ParseCSV("title,assignedto,phone,deadline\nSetup,John,+123456789,2025-02-28\n")
		require.True(t, result.Success)
		assert.Equal(t, model.TaskPriorityMedium, result.Data[0].Priority)
		assert.Empty(t, result.Warnings)
	})
}

func TestParseCSV_RowNumbersSkipBlankLines(t *testing.T) {
	// blank lines are dropped before numbering, so the bad row is row 3
	csv := validHeader + "\n\nSetup,desc,John,+123456789,2025-02-28,high\n\n,desc,Jane,+123,2025-02-25,low\n"
	result := importer.ParseCSV(csv)
	require.True(t, result.Success)
	assert.Equal(t, []string{"Row 3: Missing title"}, result.Warnings)
}

func TestParseCSV_DeadlineNormalized(t *testing.T) {
	result := importer.ParseCSV(validHeader + "\nSetup,desc,John,+123456789,2025-02-28T14:00:00,low\n")
	require.True(t, result.Success)
	assert.Equal(t, time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC), result.Data[0].Deadline)
}

func TestParseXLSX_NotSupported(t *testing.T) {
	result := importer.ParseXLSX()
	assert.False(t, result.Success)
	assert.Equal(t, []string{"XLSX support requires additional setup. Please use CSV format."}, result.Errors)
	assert.Empty(t, result.Data)
}
