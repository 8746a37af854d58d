package utils

import "regexp"

// phoneNumberPattern matches E.164-style numbers like +12223334444:
// a plus sign followed by exactly 11 digits.
var phoneNumberPattern = regexp.MustCompile(`^\+[0-9]{11}$`)

// IsValidPhoneNumber reports whether the given string is a valid phone
// number in the +12223334444 format.
func IsValidPhoneNumber(phoneNumber string) bool {
	return phoneNumberPattern.MatchString(phoneNumber)
}
