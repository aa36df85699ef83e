package directory

// NormalizePhone canonicalizes a raw sender identifier or user-typed phone
// number to the directory's fixed-width key: the last 10 digits after
// stripping everything else. International prefixes and formatting vary per
// platform, so matching has to be tolerant of both. Returns "" when fewer
// than 10 digits remain, which callers treat as unusable.
func NormalizePhone(input string) string {
	digits := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] >= '0' && input[i] <= '9' {
			digits = append(digits, input[i])
		}
	}
	if len(digits) < 10 {
		return ""
	}
	return string(digits[len(digits)-10:])
}
