package controller

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// StringCheck validates one already-trimmed string value; empty result means
// valid. Checks compose left to right inside Field.
type StringCheck func(value string) string

// Required rejects empty (post-trim) values.
func Required(msg string) StringCheck {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// MinLen rejects non-empty values shorter than n runes.
func MinLen(n int, msg string) StringCheck {
	return func(v string) string {
		if v != "" && len([]rune(v)) < n {
			return msg
		}
		return ""
	}
}

// MaxLen rejects values longer than n runes.
func MaxLen(n int, msg string) StringCheck {
	return func(v string) string {
		if len([]rune(v)) > n {
			return msg
		}
		return ""
	}
}

// URL rejects non-empty values that are not http(s) URLs. Empty values pass,
// so optional URL fields validate without a Required check.
func URL(msg string) StringCheck {
	return func(v string) string {
		if v != "" && !urlPattern.MatchString(v) {
			return msg
		}
		return ""
	}
}

// OneOf rejects values outside the allowed set.
func OneOf(allowed []string, msg string) StringCheck {
	return func(v string) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return msg
	}
}

// ISODate rejects non-empty values that are not YYYY-MM-DD.
func ISODate(msg string) StringCheck {
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	return func(v string) string {
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Field builds a rule from per-value checks. The value is trimmed before
// checking.
func Field[T, D any](name string, get func(D) string, checks ...StringCheck) Rule[T, D] {
	return Rule[T, D]{
		Field: name,
		Check: func(d D, _ []T, _ int64) string {
			v := strings.TrimSpace(get(d))
			for _, check := range checks {
				if msg := check(v); msg != "" {
					return msg
				}
			}
			return ""
		},
	}
}

// UniqueName rejects a draft whose name collides case-insensitively with
// another item in the collection. The item currently being edited is
// excluded, so saving an unchanged name is accepted.
func UniqueName[T, D any](field string, get func(D) string, itemName func(T) string, itemID func(T) int64, msg string) Rule[T, D] {
	return Rule[T, D]{
		Field: field,
		Check: func(d D, items []T, editingID int64) string {
			name := strings.ToLower(strings.TrimSpace(get(d)))
			if name == "" {
				return ""
			}
			for _, item := range items {
				if editingID != 0 && itemID(item) == editingID {
					continue
				}
				if strings.ToLower(strings.TrimSpace(itemName(item))) == name {
					return msg
				}
			}
			return ""
		},
	}
}

// DateNotBefore rejects an end date earlier than the start date. Either side
// empty passes; the rule re-evaluates whenever the draft changes, so edits
// to the start date refresh the end date's validity. ISO dates compare
// correctly as strings.
func DateNotBefore[T, D any](field string, getStart, getEnd func(D) string, msg string) Rule[T, D] {
	return Rule[T, D]{
		Field: field,
		Check: func(d D, _ []T, _ int64) string {
			start := strings.TrimSpace(getStart(d))
			end := strings.TrimSpace(getEnd(d))
			if start == "" || end == "" {
				return ""
			}
			if end < start {
				return msg
			}
			return ""
		},
	}
}

// IntRange rejects numeric fields outside [min, max].
func IntRange[T, D any](field string, get func(D) int, min, max int, msg string) Rule[T, D] {
	return Rule[T, D]{
		Field: field,
		Check: func(d D, _ []T, _ int64) string {
			v := get(d)
			if v < min || v > max {
				return msg
			}
			return ""
		},
	}
}
