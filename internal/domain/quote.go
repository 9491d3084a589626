package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// AllowedInterests is the fixed set of services a customer can ask about.
var AllowedInterests = []string{
	"Commercial Solar",
	"Residential Solar",
	"Battery Storage",
	"Radiant Heating",
	"Split System",
	"EV Charging",
	"Pool Heat Pump",
}

// IsAllowedInterest reports whether tag is on the allow-list (exact match).
func IsAllowedInterest(tag string) bool {
	for _, allowed := range AllowedInterests {
		if tag == allowed {
			return true
		}
	}
	return false
}

// FormField is a text field of the quote form. Any JSON value that is not a
// string decodes to the empty string.
type FormField string

func (f *FormField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = ""
		return nil
	}
	*f = FormField(s)
	return nil
}

// InterestList is the interests field as submitted. Malformed is set when the
// JSON value was present but not an array. An absent or null value is an
// empty list.
type InterestList struct {
	Values    []string
	Malformed bool
}

func (l *InterestList) UnmarshalJSON(data []byte) error {
	*l = InterestList{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		l.Malformed = true
		return nil
	}

	l.Values = make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		// non-string entries can never match the allow-list
		if err := json.Unmarshal(item, &s); err == nil {
			l.Values = append(l.Values, s)
		}
	}
	return nil
}

// QuoteForm is the raw quote form body.
type QuoteForm struct {
	FullName               FormField    `json:"fullName"`
	Email                  FormField    `json:"email"`
	Phone                  FormField    `json:"phone"`
	Address                FormField    `json:"address"`
	Suburb                 FormField    `json:"suburb"`
	Interests              InterestList `json:"interests"`
	DailyEnergyConsumption FormField    `json:"dailyEnergyConsumption"`
}

// UnmarshalJSON matches keys exactly; encoding/json alone would accept
// "FULLNAME" for fullName.
func (f *QuoteForm) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = QuoteForm{}
	fields := map[string]json.Unmarshaler{
		"fullName":               &f.FullName,
		"email":                  &f.Email,
		"phone":                  &f.Phone,
		"address":                &f.Address,
		"suburb":                 &f.Suburb,
		"interests":              &f.Interests,
		"dailyEnergyConsumption": &f.DailyEnergyConsumption,
	}
	for key, value := range raw {
		target, ok := fields[key]
		if !ok {
			continue
		}
		if err := target.UnmarshalJSON(value); err != nil {
			return err
		}
	}
	return nil
}

// Normalize builds the canonical request: text fields trimmed, email
// lower-cased, interests taken as-is (the validator has already filtered them).
func (f *QuoteForm) Normalize() QuoteRequest {
	interests := make([]string, len(f.Interests.Values))
	copy(interests, f.Interests.Values)

	return QuoteRequest{
		FullName:               strings.TrimSpace(string(f.FullName)),
		Email:                  strings.ToLower(strings.TrimSpace(string(f.Email))),
		Phone:                  strings.TrimSpace(string(f.Phone)),
		Address:                strings.TrimSpace(string(f.Address)),
		Suburb:                 strings.TrimSpace(string(f.Suburb)),
		Interests:              interests,
		DailyEnergyConsumption: strings.TrimSpace(string(f.DailyEnergyConsumption)),
	}
}

// QuoteRequest is a validated, normalized quote request.
type QuoteRequest struct {
	FullName               string   `json:"fullName"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Address                string   `json:"address"`
	Suburb                 string   `json:"suburb"`
	Interests              []string `json:"interests"`
	DailyEnergyConsumption string   `json:"dailyEnergyConsumption"`
}

// ValidationResult is the outcome of checking a QuoteForm.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// EmailResult is the outcome of one provider call. Failures carry the
// provider's error text; they are never returned as Go errors.
type EmailResult struct {
	Success   bool
	MessageID string
	Error     string
}

func EmailSent(messageID string) EmailResult {
	return EmailResult{Success: true, MessageID: messageID}
}

func EmailFailed(err error) EmailResult {
	return EmailResult{Success: false, Error: err.Error()}
}

// QuoteSubmission describes a quote that reached the business inbox.
type QuoteSubmission struct {
	Reference    string
	Request      QuoteRequest
	Business     EmailResult
	Confirmation EmailResult
}

var ErrQuoteDispatchFailed = errors.New("quote request email could not be delivered")

// ValidationError carries the client-facing validation messages.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// QuoteDispatcher sends the two transactional emails of a quote submission.
type QuoteDispatcher interface {
	SendQuoteRequest(ctx context.Context, quote QuoteRequest) EmailResult
	SendConfirmationEmail(ctx context.Context, email, name string) EmailResult
}

// QuoteUsecase defines the quote submission flow
type QuoteUsecase interface {
	// SubmitQuote validates, normalizes and dispatches a quote form
	SubmitQuote(ctx context.Context, form *QuoteForm) (*QuoteSubmission, error)
}
