package logging

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidName is returned for names that cannot be used as a file name
// inside the log directory.
var ErrInvalidName = errors.New("invalid logger name")

// NormalizeName returns the NFC form of name, or ErrInvalidName when the name
// is empty, is "." or "..", or contains a path separator or control character.
func NormalizeName(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, name)
	}
	name = norm.NFC.String(name)

	switch name {
	case "":
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	case ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return name, nil
}
