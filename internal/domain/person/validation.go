package person

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/registro/client/internal/domain/shared"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Validate checks the form data against the registration rules in order and
// returns a validation error for the first rule that fails. It is pure: no
// I/O, and identical input against the same clock always yields the same
// verdict.
func (d FormData) Validate(now time.Time) error {
	if msg := d.firstViolation(now); msg != "" {
		return shared.NewValidationError(msg)
	}
	return nil
}

// ValidateAll applies the single-person rule set to every record, labeling
// failures with the 1-based record index. All records are checked against the
// same clock so a batch straddling midnight cannot produce mixed verdicts.
func ValidateAll(batch []FormData, now time.Time) error {
	for i, d := range batch {
		if msg := d.firstViolation(now); msg != "" {
			return shared.NewValidationError(fmt.Sprintf("person %d: %s", i+1, msg))
		}
	}
	return nil
}

func (d FormData) firstViolation(now time.Time) string {
	if len(strings.TrimSpace(d.FirstName)) < 2 {
		return "first name must be at least 2 characters"
	}
	if len(strings.TrimSpace(d.LastName)) < 2 {
		return "last name must be at least 2 characters"
	}
	if d.BirthDate == "" {
		return "birth date is required"
	}
	birthDate, err := time.Parse(BirthDateLayout, d.BirthDate)
	if err != nil {
		return "birth date is not a valid date"
	}
	if birthDate.After(now) {
		return "birth date cannot be in the future"
	}
	if d.ProfessionID == 0 {
		return "profession is required"
	}
	if len(strings.TrimSpace(d.Address)) < 5 {
		return "address must be at least 5 characters"
	}
	if len(d.Phone) < 10 {
		return "phone must be at least 10 digits"
	}
	if !digitsOnly.MatchString(d.Phone) {
		return "phone must contain only digits"
	}
	return ""
}
