package services

import (
	"fmt"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// checkDate accepts empty values; callers decide whether a field is required.
func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ErrValidation, field)
	}
	return nil
}

func today() string {
	return time.Now().Format(dateLayout)
}
