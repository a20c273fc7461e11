package pricing

import (
	"errors"
	"fmt"
	"strings"

	"offer-form-backend/internal/domain"
	"offer-form-backend/pkg/sanitize"
)

// Validate checks a form at submission time and returns the first
// failing rule as a user-facing German message, or nil. Rules run in a
// fixed order: first name, last name, email, address, then per mat
// length/width and amount. Item messages carry the 1-based mat number.
func Validate(f *domain.OfferForm) error {
	if strings.TrimSpace(f.FirstName) == "" {
		return errors.New("Bitte Vornamen eingeben.")
	}
	if strings.TrimSpace(f.LastName) == "" {
		return errors.New("Bitte Nachnamen eingeben.")
	}
	if !sanitize.IsEmail(f.Email) {
		return errors.New("Bitte gültige E-Mail eingeben.")
	}
	if strings.TrimSpace(f.Address.Street) == "" ||
		strings.TrimSpace(f.Address.Zip) == "" ||
		strings.TrimSpace(f.Address.City) == "" {
		return errors.New("Bitte vollständige Adresse eingeben.")
	}
	for i, m := range f.Mats {
		if ParseDecimal(m.Length) <= 0 || ParseDecimal(m.Width) <= 0 {
			return fmt.Errorf("Matte %d: Länge/Breite > 0 angeben.", i+1)
		}
		// Prefix parse like the form, but no clamp: "0" must fail here
		// even though pricing would price it as 1.
		if n, ok := parseIntPrefix(m.Amount); !ok || n < 1 {
			return fmt.Errorf("Matte %d: Menge muss mindestens 1 sein.", i+1)
		}
	}
	return nil
}
