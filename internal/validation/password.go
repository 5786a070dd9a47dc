package validation

import "fmt"

const (
	minPasswordLength = 5
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// ValidatePassword checks the password length rules applied at signup and profile update.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}
	return nil
}
