package usecase

import (
	"strings"

	"solar-quote-backend/internal/domain"
)

const (
	errFullNameRequired     = "Full name is required"
	errEmailRequired        = "Valid email address is required"
	errPhoneRequired        = "Phone number is required"
	errAddressRequired      = "Address is required"
	errSuburbRequired       = "Suburb is required"
	errConsumptionRequired  = "Daily energy consumption is required"
	errInterestsNotArray    = "Interests must be an array of valid options"
	errInterestsNoneAllowed = "At least one valid interest must be selected"
)

// ValidateQuoteForm checks every rule and collects all violations in rule
// order. form.Interests.Values is replaced with its allow-listed subset.
func ValidateQuoteForm(form *domain.QuoteForm) domain.ValidationResult {
	var errs []string

	if isBlank(form.FullName) {
		errs = append(errs, errFullNameRequired)
	}
	if !strings.Contains(string(form.Email), "@") {
		errs = append(errs, errEmailRequired)
	}
	if isBlank(form.Phone) {
		errs = append(errs, errPhoneRequired)
	}
	if isBlank(form.Address) {
		errs = append(errs, errAddressRequired)
	}
	if isBlank(form.Suburb) {
		errs = append(errs, errSuburbRequired)
	}
	if isBlank(form.DailyEnergyConsumption) {
		errs = append(errs, errConsumptionRequired)
	}

	if form.Interests.Malformed {
		errs = append(errs, errInterestsNotArray)
	}
	form.Interests.Values = filterInterests(form.Interests.Values)
	if len(form.Interests.Values) == 0 {
		errs = append(errs, errInterestsNoneAllowed)
	}

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

func filterInterests(values []string) []string {
	filtered := make([]string, 0, len(values))
	for _, v := range values {
		if domain.IsAllowedInterest(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func isBlank(f domain.FormField) bool {
	return strings.TrimSpace(string(f)) == ""
}
