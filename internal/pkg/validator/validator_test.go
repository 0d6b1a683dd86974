package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()
	assert.True(t, IsValidUUID("b2c6f9a0-1b2c-4d3e-8f4a-5b6c7d8e9f0a"))
	assert.True(t, IsValidUUID("B2C6F9A0-1B2C-4D3E-8F4A-5B6C7D8E9F0A"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("b2c6f9a01b2c4d3e8f4a5b6c7d8e9f0a"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2026-01-31")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("2026-02-30")
	assert.False(t, ok)
	_, ok = IsValidDate("31-01-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestDayOf(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2026, 8, 25, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), DayOf(stamp))
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "amount", Message: "must be positive"},
		{Field: "date", Message: "must be in YYYY-MM-DD format"},
	}
	assert.Equal(t, "amount: must be positive; date: must be in YYYY-MM-DD format", errs.Error())
	assert.Equal(t, map[string]string{
		"amount": "must be positive",
		"date":   "must be in YYYY-MM-DD format",
	}, errs.ToMap())
}
