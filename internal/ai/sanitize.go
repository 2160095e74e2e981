package ai

import "regexp"

// Generative models occasionally emit JavaScript-flavored numeric tokens
// that are not valid JSON. They only appear in value position, so the
// repair is a plain token swap.
var nonJSONTokens = regexp.MustCompile(`(:\s*)(?:NaN|undefined|-?Infinity)\b`)

// SanitizeJSON repairs non-JSON numeric literals (NaN, undefined,
// Infinity, -Infinity) in value position, replacing them with null so the
// payload can be parsed. Everything else passes through untouched.
func SanitizeJSON(raw string) string {
	return nonJSONTokens.ReplaceAllString(raw, "${1}null")
}
