// Package ticker handles symbol validation and discovery of candidate
// tickers to scan.
package ticker

import (
	"regexp"
	"strings"
)

const maxTickerLength = 10

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// ValidationResult reports whether a raw symbol is acceptable and, when it
// is, its sanitized (trimmed, uppercased) form. Errors lists every check
// that failed.
type ValidationResult struct {
	Valid     bool
	Sanitized string
	Errors    []string
}

// Validate checks a raw ticker symbol against the accepted format:
// 1-10 characters of A-Z, 0-9, dot, or dash after trimming and
// uppercasing, with no leading, trailing, or consecutive separators.
func Validate(raw string) ValidationResult {
	sanitized := strings.ToUpper(strings.TrimSpace(raw))
	var errs []string

	if len(sanitized) == 0 {
		errs = append(errs, "ticker must not be empty")
	}
	if len(sanitized) > maxTickerLength {
		errs = append(errs, "ticker cannot exceed 10 characters")
	}
	if len(sanitized) > 0 && !tickerPattern.MatchString(sanitized) {
		errs = append(errs, "ticker contains invalid characters")
	}
	if strings.Contains(sanitized, "..") || strings.Contains(sanitized, "--") ||
		strings.Contains(sanitized, ".-") || strings.Contains(sanitized, "-.") {
		errs = append(errs, "ticker cannot contain consecutive dots or dashes")
	}
	if len(sanitized) > 0 && (strings.HasPrefix(sanitized, ".") || strings.HasPrefix(sanitized, "-") ||
		strings.HasSuffix(sanitized, ".") || strings.HasSuffix(sanitized, "-")) {
		errs = append(errs, "ticker cannot start or end with dot or dash")
	}

	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}
	return ValidationResult{Valid: true, Sanitized: sanitized}
}

// IsValid reports whether a raw symbol passes all validation checks.
func IsValid(raw string) bool {
	return Validate(raw).Valid
}
