package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxRequestBytes = 1 << 20

	passwordMinLen = 8
	passwordMaxLen = 20
	contentMinLen  = 3
	contentMaxLen  = 200
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]{5,20}$`)

// fieldErrors collects validation failures for one request body.
type fieldErrors []ErrorDetail

func (f *fieldErrors) add(field, msg, typ string) {
	*f = append(*f, ErrorDetail{Loc: []string{"body", field}, Msg: msg, Type: typ})
}

func (f *fieldErrors) missing(field string) {
	f.add(field, "field required", "value_error.missing")
}

func (f *fieldErrors) username(value string) {
	if !usernamePattern.MatchString(value) {
		f.add("username", "username must be 5 to 20 letters or digits", "value_error.str.regex")
	}
}

func (f *fieldErrors) email(value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !dottedDomain(value) {
		f.add("email", "value is not a valid email address", "value_error.email")
	}
}

// dottedDomain rejects single-label domains such as user@localhost.
func dottedDomain(address string) bool {
	domain := address[strings.LastIndexByte(address, '@')+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func (f *fieldErrors) length(field, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < minLen:
		f.add(field, fmt.Sprintf("ensure this value has at least %d characters", minLen), "value_error.any_str.min_length")
	case n > maxLen:
		f.add(field, fmt.Sprintf("ensure this value has at most %d characters", maxLen), "value_error.any_str.max_length")
	}
}

// decodeBody reads a JSON request body into dst. On failure it writes a
// validation error and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeValidationError(w, []ErrorDetail{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error.jsondecode",
		}})
		return false
	}
	return true
}

// passwordHasAllClasses reports whether password contains an ASCII upper
// case letter, an ASCII lower case letter, an ASCII digit and any character
// outside [A-Za-z0-9].
func passwordHasAllClasses(password string) bool {
	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
