// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases the address.
// All email lookups and writes go through this so "A@X.com" and "a@x.com"
// resolve to the same user.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of spaces.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Enum lowercases and trims a value destined for an enum-typed field
// (role, status, donationStatus). The result still has to be validated.
func Enum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BloodGroup uppercases and strips all whitespace, so " ab + " becomes "AB+".
func BloodGroup(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
