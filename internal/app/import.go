package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agalitsyn/secret"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/meetup-tasks/internal/importer"
)

// importCommand runs the bulk-import flow: the file format is gated on
// extension before any parsing, the parser only ever sees decoded CSV text.
func (s *Session) importCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: import <file.csv>")
	}
	event, err := s.requireEvent(ctx)
	if err != nil {
		return err
	}

	path := args[0]
	var result importer.ParseResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not read file: %w", err)
		}
		result = importer.ParseCSV(string(raw))
	case ".xlsx":
		result = importer.ParseXLSX()
	default:
		fmt.Fprintln(s.out, color.RedString("Only CSV files are supported. Please use .csv format."))
		return nil
	}

	for _, e := range result.Errors {
		fmt.Fprintln(s.out, color.RedString(e))
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(s.out, color.YellowString(w))
	}
	if !result.Success {
		return nil
	}

	created, err := s.taskStorage.BulkImportTasks(ctx, event.ID, result.Data)
	if err != nil {
		return fmt.Errorf("could not import tasks: %w", err)
	}
	for _, t := range created {
		lgr.Printf("DEBUG imported task id=%s assignee=%s phone=%s", t.ID, t.AssignedTo, secret.NewString(t.Phone))
	}
	fmt.Fprintln(s.out, color.GreenString("Imported %d tasks into %q", len(created), event.Name))
	return nil
}
