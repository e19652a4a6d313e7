// Package importer turns loosely-structured task spreadsheets into validated
// ImportedTask records with per-row diagnostics.
package importer

import (
	"fmt"
	"strings"

	"github.com/agalitsyn/meetup-tasks/internal/model"
	"github.com/agalitsyn/meetup-tasks/internal/validate"
)

// ParseResult is the import envelope. Errors are file-level and fatal: if any
// is present the import produced no usable data. Warnings are row-level and
// recoverable: each names one skipped or patched-up row of an otherwise
// successful import.
type ParseResult struct {
	Success  bool
	Data     []model.ImportedTask
	Errors   []string
	Warnings []string
}

var requiredColumns = []string{"title", "assignedto", "phone", "deadline"}

// ParseCSV parses comma-delimited text into task records. The first non-blank
// line is the header (case-insensitive column names, any order); required
// columns are title, assignedto, phone and deadline. Fields are split on raw
// commas: quoting is not supported, a field containing a comma will misalign
// the row.
//
// Rows failing validation are skipped one by one with a warning; the parse
// only fails outright when the file has no usable header, misses a required
// column, or no row survives.
func ParseCSV(text string) (result ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ParseResult{
				Errors:   append(result.Errors, fmt.Sprintf("Error parsing CSV: %v", r)),
				Warnings: result.Warnings,
			}
		}
	}()

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		result.Errors = append(result.Errors, "CSV file must contain headers and at least one data row")
		return result
	}

	headers := splitFields(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	var missing []string
	for _, col := range requiredColumns {
		if !contains(headers, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, "Missing required columns: "+strings.Join(missing, ", "))
		return result
	}

	for i := 1; i < len(lines); i++ {
		rowNum := i + 1 // human-readable, header is row 1
		values := splitFields(lines[i])

		if len(values) < len(requiredColumns) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Skipped - insufficient data", rowNum))
			continue
		}

		row := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(values) {
				row[header] = values[j]
			} else {
				row[header] = ""
			}
		}

		if row["title"] == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Missing title", rowNum))
			continue
		}
		if row["phone"] == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Missing phone number", rowNum))
			continue
		}
		deadline, err := validate.ParseDate(row["deadline"])
		if row["deadline"] == "" || err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Invalid or missing deadline", rowNum))
			continue
		}
		if row["assignedto"] == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Missing assigned person name", rowNum))
			continue
		}

		priority := model.TaskPriorityMedium
		if row["priority"] != "" {
			if p, ok := model.ParseTaskPriority(row["priority"]); ok {
				priority = p
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Row %d: Invalid priority, using \"medium\"", rowNum))
			}
		}

		result.Data = append(result.Data, model.ImportedTask{
			Title:       row["title"],
			Description: row["description"],
			AssignedTo:  row["assignedto"],
			Phone:       row["phone"],
			Deadline:    deadline,
			Priority:    priority,
		})
	}

	if len(result.Data) == 0 {
		result.Errors = append(result.Errors, "No valid tasks found in CSV")
		return result
	}

	result.Success = true
	return result
}

// ParseXLSX is a placeholder: spreadsheet binaries are not supported, the
// caller is expected to hand decoded CSV text to ParseCSV instead.
func ParseXLSX() ParseResult {
	return ParseResult{
		Errors: []string{"XLSX support requires additional setup. Please use CSV format."},
	}
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
