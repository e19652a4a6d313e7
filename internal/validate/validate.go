// Package validate holds the pure input checks shared by the CSV importer
// and the interactive forms.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Deadline values are accepted ISO-8601-first. The layout list is fixed on
// purpose: natural-language date parsing is locale-dependent, so anything
// outside these shapes is rejected.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Permissive phone shape: optional +, optional parenthesized groups, digit
// groups separated by spaces, dots or hyphens. A sanity filter, not a
// national-format validator.
var phoneRe = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)

func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Email checks a local@domain.tld shape. No email field exists in the data
// model yet, kept for forward compatibility.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(s string) bool {
	return emailRe.MatchString(s)
}
