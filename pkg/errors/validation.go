package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
)

// MaxWordLength bounds topic words accepted from API requests.
const MaxWordLength = 128

// ValidateWord validates a topic word received from an untrusted source.
//
// Rules:
//   - No empty words
//   - Maximum length of MaxWordLength bytes
//   - No control characters or null bytes
func ValidateWord(word string) error {
	if word == "" {
		return New(ErrCodeInvalidInput, "topic word cannot be empty")
	}

	if len(word) > MaxWordLength {
		return New(ErrCodeInvalidInput, "topic word too long (max %d characters)", MaxWordLength)
	}

	for _, r := range word {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "topic word contains invalid control characters")
		}
	}

	return nil
}

// ValidateDimensions validates a canvas size. Both sides must be finite and
// strictly positive; the layout engine does not check this itself.
func ValidateDimensions(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %g", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return New(ErrCodeInvalidDimensions, "height must be positive, got %g", height)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL parses, has a host and uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}

	return nil
}
