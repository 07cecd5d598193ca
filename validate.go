package famtask

import (
	"regexp"
	"strings"
)

// MinPasswordLength is the client-side form floor. The backend owns the
// real policy; this only exists to avoid a guaranteed-failing round-trip.
const MinPasswordLength = 4

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateCredentials runs the client-side form checks: email shape and
// minimum password length. A failure here means no network call is issued.
func ValidateCredentials(email, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
