package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringChecks(t *testing.T) {
	assert.Equal(t, "required", Required("required")(""))
	assert.Empty(t, Required("required")("x"))

	assert.Equal(t, "short", MinLen(3, "short")("ab"))
	assert.Empty(t, MinLen(3, "short")("abc"))
	assert.Empty(t, MinLen(3, "short")(""), "empty is Required's business, not MinLen's")

	assert.Equal(t, "long", MaxLen(3, "long")("abcd"))
	assert.Empty(t, MaxLen(3, "long")("abc"))
	assert.Empty(t, MaxLen(2, "long")("éé"), "length counts runes, not bytes")

	assert.Empty(t, URL("bad url")("https://example.com"))
	assert.Empty(t, URL("bad url")("HTTP://EXAMPLE.COM"))
	assert.Empty(t, URL("bad url")(""), "empty passes so optional fields skip Required")
	assert.Equal(t, "bad url", URL("bad url")("ftp://example.com"))
	assert.Equal(t, "bad url", URL("bad url")("example.com"))

	allowed := []string{"FRONTEND", "BACKEND"}
	assert.Empty(t, OneOf(allowed, "bad value")("BACKEND"))
	assert.Equal(t, "bad value", OneOf(allowed, "bad value")("backend"), "enum values are exact")

	assert.Empty(t, ISODate("bad date")("2024-06-30"))
	assert.Empty(t, ISODate("bad date")(""))
	assert.Equal(t, "bad date", ISODate("bad date")("30/06/2024"))
}

type rangeDraft struct{ Order int }

func TestIntRange(t *testing.T) {
	rule := IntRange[struct{}, rangeDraft]("order", func(d rangeDraft) int { return d.Order }, 0, 99, "out of range")

	assert.Empty(t, rule.Check(rangeDraft{Order: 0}, nil, 0))
	assert.Empty(t, rule.Check(rangeDraft{Order: 99}, nil, 0))
	assert.Equal(t, "out of range", rule.Check(rangeDraft{Order: -1}, nil, 0))
	assert.Equal(t, "out of range", rule.Check(rangeDraft{Order: 100}, nil, 0))
}

func TestFieldTrimsBeforeChecks(t *testing.T) {
	type d struct{ Name string }
	rule := Field[struct{}, d]("name", func(v d) string { return v.Name }, Required("required"))

	assert.Equal(t, "required", rule.Check(d{Name: "   "}, nil, 0), "whitespace-only is empty after trim")
	assert.Empty(t, rule.Check(d{Name: " ok "}, nil, 0))
}

func TestDateNotBeforeRefreshesWithStart(t *testing.T) {
	type d struct{ Start, End string }
	rule := DateNotBefore[struct{}, d]("end",
		func(v d) string { return v.Start },
		func(v d) string { return v.End },
		"end before start")

	assert.Equal(t, "end before start", rule.Check(d{Start: "2024-05-01", End: "2024-01-01"}, nil, 0))
	assert.Empty(t, rule.Check(d{Start: "2023-05-01", End: "2024-01-01"}, nil, 0))
	assert.Empty(t, rule.Check(d{Start: "2024-05-01"}, nil, 0), "open-ended positions pass")
	assert.Empty(t, rule.Check(d{End: "2024-01-01"}, nil, 0))
	assert.Empty(t, rule.Check(d{Start: "2024-01-01", End: "2024-01-01"}, nil, 0), "same day is allowed")
}
