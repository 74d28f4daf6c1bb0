package validator

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// WithinLimit reports whether s is at most max characters long. Limits are
// counted in runes, not bytes, so multi-byte text is not penalized.
func WithinLimit(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// SerializedSize returns the number of bytes v occupies once JSON-encoded.
// Free-form field maps are capped by their serialized size rather than by
// key count.
func SerializedSize(v interface{}) (int, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

// IsValidRating reports whether a rating score is on the 1-5 scale.
func IsValidRating(score int) bool {
	return score >= 1 && score <= 5
}

// IsValidProgress reports whether a progress percentage is within 0-100.
func IsValidProgress(progress int) bool {
	return progress >= 0 && progress <= 100
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// RSI citizen handle: 3-30 chars, A-Z, a-z, 0-9, _, -
var handleRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)

func IsValidHandle(handle string) bool {
	return handleRegex.MatchString(handle)
}

// RSI organization SID: 3-10 alphanumeric characters.
var orgSIDRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,10}$`)

func IsValidOrgSID(sid string) bool {
	return orgSIDRegex.MatchString(sid)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

type Date time.Time

// ParseDate parses a date string in "YYYY-MM-DD" format and returns a Date type.
func ParseDate(dateStr string) (Date, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

// Before reports whether the date d is before u.
func (d Date) Before(u Date) bool {
	return time.Time(d).Before(time.Time(u))
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	// Try RFC3339 format (ISO8601 with timezone)
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	// Try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
