package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-01-15"))
	assert.False(t, IsValidDate("2024-13-01"))
	assert.False(t, IsValidDate("15/01/2024"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.False(t, IsValidEmail("Alice <alice@example.com>"))
	assert.False(t, IsValidEmail("alice"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidHourRange(t *testing.T) {
	assert.True(t, IsValidHourRange(9, 17))
	assert.True(t, IsValidHourRange(0, 24))
	assert.False(t, IsValidHourRange(10, 10))
	assert.False(t, IsValidHourRange(-1, 3))
	assert.False(t, IsValidHourRange(20, 25))
}

func TestIsHalfHour(t *testing.T) {
	assert.True(t, IsHalfHour(9))
	assert.True(t, IsHalfHour(9.5))
	assert.False(t, IsHalfHour(9.25))
}

func TestGenerateIDs(t *testing.T) {
	run := GenerateRunID()
	assert.True(t, strings.HasPrefix(run, "run_"))
	assert.Len(t, run, 14)
	assert.NotEqual(t, run, GenerateRunID())
}
