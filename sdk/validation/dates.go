package validation

import (
	"fmt"
	"time"
)

// ParseFlexibleDate tries to parse a date string using multiple common formats
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.DateOnly, // YYYY-MM-DD
		"2006/01/02",  // YYYY/MM/DD
		"01/02/2006",  // MM/DD/YYYY
		"01-02-2006",  // MM-DD-YYYY
		"02/01/2006",  // DD/MM/YYYY (European)
		"02-01-2006",  // DD-MM-YYYY
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
