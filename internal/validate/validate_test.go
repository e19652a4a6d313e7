package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agalitsyn/meetup-tasks/internal/validate"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-02-28", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"2025-02-28T14:00:00", time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC)},
		{"2025-02-28T14:00:00Z", time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC)},
		{"2025-02-28 14:00:00", time.Date(2025, 2, 28, 14, 0, 0, 0, time.UTC)},
		{"2025/02/28", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"02/28/2025", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"  2025-02-28  ", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := validate.ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, input := range []string{"", "garbage", "next tuesday", "2025-13-45", "28.02.2025"} {
		t.Run(input, func(t *testing.T) {
			_, err := validate.ParseDate(input)
			assert.Error(t, err)
			assert.False(t, validate.IsValidDate(input))
		})
	}
}

func TestPhone(t *testing.T) {
	valid := []string{
		"+1234567890",
		"123-456-7890",
		"(123) 456-7890",
		"(123) 456 7890",
		"123.456.7890",
		"123",
	}
	for _, s := range valid {
		assert.True(t, validate.Phone(s), "expected valid: %q", s)
	}

	invalid := []string{
		"",
		"12",
		"abc",
		"call me",
		"123-456-7890 ext 5",
	}
	for _, s := range invalid {
		assert.False(t, validate.Phone(s), "expected invalid: %q", s)
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, validate.Email("john@example.com"))
	assert.True(t, validate.Email("a@b.co"))
	assert.False(t, validate.Email("john@example"))
	assert.False(t, validate.Email("john example.com"))
	assert.False(t, validate.Email(""))
}
