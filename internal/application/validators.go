package application

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator contains validation helpers for guest contact data.
type Validator struct{}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)
	nameRegex  = regexp.MustCompile(`^[\p{L}\s\-']+$`)
)

// ValidateName checks that a name field is present and well-formed.
func (v *Validator) ValidateName(name, fieldName string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if len(name) < 2 {
		return fmt.Errorf("%s must have at least 2 characters", fieldName)
	}
	if len(name) > 50 {
		return fmt.Errorf("%s cannot exceed 50 characters", fieldName)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidatePhone checks the phone number format.
func (v *Validator) ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}

	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if !phoneRegex.MatchString(clean) {
		return fmt.Errorf("phone %q must have between 7 and 15 digits", phone)
	}
	return nil
}

// ValidateEmail checks the email format. An empty email is allowed; the
// confirmation email is simply skipped then.
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email %q is not valid", email)
	}
	return nil
}

// ValidateGuest validates all guest contact fields and returns every
// problem found, not just the first one.
func (v *Validator) ValidateGuest(firstName, lastName, phone, email string) []error {
	var errs []error

	if err := v.ValidateName(firstName, "first name"); err != nil {
		errs = append(errs, err)
	}
	if err := v.ValidateName(lastName, "last name"); err != nil {
		errs = append(errs, err)
	}
	if err := v.ValidatePhone(phone); err != nil {
		errs = append(errs, err)
	}
	if err := v.ValidateEmail(email); err != nil {
		errs = append(errs, err)
	}

	return errs
}
