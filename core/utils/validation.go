package utils

import (
	"math"
	"net/mail"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func IsValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}

// IsValidHourRange reports whether start and end are hours of one day with
// end after start.
func IsValidHourRange(start, end float64) bool {
	if math.IsNaN(start) || math.IsNaN(end) {
		return false
	}
	return start >= 0 && end <= 24 && end > start
}

// IsHalfHour reports whether h falls on the half-hour grid.
func IsHalfHour(h float64) bool {
	return math.Mod(h*2, 1) == 0
}
