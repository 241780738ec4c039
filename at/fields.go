package at

import (
	"strconv"
	"strings"
	"unicode"
)

// Field delimiter used by positional URC arguments.
const Delimiter = ","

// RemoveAllWhiteSpaces strips every whitespace character from s.
func RemoveAllWhiteSpaces(s string) (string, error) {
	if s == "" {
		return "", ErrBadParameter
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s), nil
}

// RemoveAllDoubleQuotes strips every '"' from s.
func RemoveAllDoubleQuotes(s string) (string, error) {
	if s == "" {
		return "", ErrBadParameter
	}
	return strings.ReplaceAll(s, `"`, ""), nil
}

// RemoveLeadingWhiteSpaces trims whitespace from the front of s. A string made
// only of whitespace has nothing left to tokenize and reports ErrNoToken.
func RemoveLeadingWhiteSpaces(s string) (string, error) {
	if s == "" {
		return "", ErrBadParameter
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", ErrNoToken
	}
	return s, nil
}

// NextToken cuts the next comma separated field off the front of *s and
// advances *s past the delimiter. Empty fields between two delimiters are
// returned as empty tokens; an exhausted input reports ErrNoToken.
func NextToken(s *string) (string, error) {
	if s == nil {
		return "", ErrBadParameter
	}
	if *s == "" {
		return "", ErrNoToken
	}
	token, rest, found := strings.Cut(*s, Delimiter)
	if found {
		*s = rest
	} else {
		*s = ""
	}
	return token, nil
}

// StrToI parses the whole token as a signed 32-bit integer in base.
func StrToI(token string, base int) (int32, error) {
	v, err := strconv.ParseInt(token, base, 32)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return int32(v), nil
}
