package errors

import "unicode"

// MaxSourceLength is the maximum accepted circmark document length. The
// grammar itself has no limit; this bound protects the HTTP API from
// pathological payloads.
const MaxSourceLength = 4096

// ValidateSource performs cheap pre-parse validation of a circmark source
// string. The lexer rejects individual bad characters with precise
// positions; this check only guards the obvious cases that should never
// reach the parser at all.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidInput, "source cannot be empty")
	}
	if len(source) > MaxSourceLength {
		return New(ErrCodeInvalidInput, "source too long (max %d characters)", MaxSourceLength)
	}
	for _, r := range source {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "source contains control characters")
		}
		if r > unicode.MaxASCII {
			return New(ErrCodeInvalidInput, "source must be ASCII")
		}
	}
	return nil
}
