// File: internal/user/password.go
package user

import (
	"net/http"
	"strings"
	"unicode"

	"thrive_backend/internal/common"
)

// passwordSpecialSet is the punctuation accepted by the "special" requirement.
const passwordSpecialSet = `!@#$%^&*(),.?":{}|<>`

// PasswordRequirement is one predicate of the registration password policy.
type PasswordRequirement struct {
	ID    string
	Text  string
	Check func(password string) bool
}

// PasswordRequirements is the full policy. All predicates must hold for a
// password to be accepted.
var PasswordRequirements = []PasswordRequirement{
	{
		ID:   "length",
		Text: "At least 8 characters",
		Check: func(p string) bool {
			return len(p) >= 8
		},
	},
	{
		ID:   "uppercase",
		Text: "At least one uppercase letter",
		Check: func(p string) bool {
			return strings.ContainsFunc(p, unicode.IsUpper)
		},
	},
	{
		ID:   "lowercase",
		Text: "At least one lowercase letter",
		Check: func(p string) bool {
			return strings.ContainsFunc(p, unicode.IsLower)
		},
	},
	{
		ID:   "number",
		Text: "At least one number",
		Check: func(p string) bool {
			return strings.ContainsFunc(p, unicode.IsDigit)
		},
	},
	{
		ID:   "special",
		Text: "At least one special character",
		Check: func(p string) bool {
			return strings.ContainsAny(p, passwordSpecialSet)
		},
	},
}

// ValidatePassword returns the requirements the password does not meet,
// in policy order. An empty result means the password is acceptable.
func ValidatePassword(password string) []PasswordRequirement {
	var unmet []PasswordRequirement
	for _, req := range PasswordRequirements {
		if !req.Check(password) {
			unmet = append(unmet, req)
		}
	}
	return unmet
}

// NewWeakPasswordError builds the 400 returned when registration is rejected
// by the policy. Unmet requirement texts are surfaced for form UX.
func NewWeakPasswordError(unmet []PasswordRequirement) *common.APIError {
	details := make(map[string]string, len(unmet))
	for _, req := range unmet {
		details[req.ID] = req.Text
	}
	return common.NewAPIError(http.StatusBadRequest, "WEAK_PASSWORD",
		"Password does not meet security requirements.").WithDetails(details)
}
